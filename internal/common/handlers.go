package common

import (
	"DiningAPI/internal/hours"
	v0common "DiningAPI/internal/v0/common"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type StatusResponse struct {
	InternalServerLatency string    `json:"internal_server_latency"`
	Uptime                string    `json:"uptime"`
	ScheduleSource        string    `json:"schedule_source"`
	ScheduleLoadedAt      time.Time `json:"schedule_loaded_at"`
}

// Uptime Logic
var startTime time.Time

func uptime() time.Duration {
	return time.Since(startTime)
}

func init() {
	startTime = time.Now()
}

// Ping Logic
func ping() time.Duration {
	start := time.Now()
	duration := time.Since(start)
	return duration
}

// Status reports uptime and which schedule table is being served
func Status(schedule hours.TableProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		table := schedule.Table()
		data := StatusResponse{
			InternalServerLatency: ping().String(),
			Uptime:                uptime().Truncate(time.Second).String(),
			ScheduleSource:        table.Source(),
			ScheduleLoadedAt:      table.LoadedAt(),
		}
		v0common.Success(c, http.StatusOK, data)
	}
}

// RegisterRoutes registers the routes shared by every API version
func RegisterRoutes(rg *gin.RouterGroup, schedule hours.TableProvider) {
	rg.GET("/status", Status(schedule))
}

//Dining hours service. Open, closed and limited status for campus dining halls.
//API Copyright (C) 2025 OpenSourceDUTH
//This program is free software: you can redistribute it and/or modify
//it under the terms of the GNU General Public License as published by
//the Free Software Foundation, either version 3 of the License, or
//(at your option) any later version.
//
//This program is distributed in the hope that it will be useful,
//but WITHOUT ANY WARRANTY; without even the implied warranty of
//MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//GNU General Public License for more details.
//
//You should have received a copy of the GNU General Public License
//along with this program.  If not, see <https://www.gnu.org/licenses/>.
