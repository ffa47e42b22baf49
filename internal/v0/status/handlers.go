package status

import (
	"DiningAPI/internal/hours"
	"DiningAPI/internal/v0/common"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Reloader rebuilds the schedule table from its source
type Reloader interface {
	Reload(ctx context.Context) (*hours.Table, error)
}

// Handler serves hall status computed by the engine
type Handler struct {
	engine   *hours.Engine
	tables   hours.TableProvider
	reloader Reloader
	log      logrus.FieldLogger
}

func NewHandler(engine *hours.Engine, store *hours.Store, log logrus.FieldLogger) *Handler {
	return &Handler{engine: engine, tables: store, reloader: store, log: log}
}

// instant reads the optional "at" query parameter (RFC 3339). Zero means now.
func (h *Handler) instant(c *gin.Context) (time.Time, error) {
	raw := c.Query("at")
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid 'at' parameter %q, expected RFC 3339 like 2025-10-13T12:00:00Z", raw)
	}
	return t, nil
}

// hall resolves the :hall path parameter
func (h *Handler) hall(c *gin.Context) (hours.HallID, error) {
	id := hours.HallID(c.Param("hall"))
	if !id.Valid() {
		return "", fmt.Errorf("%w: %s", hours.ErrUnknownHall, id)
	}
	return id, nil
}

func (h *Handler) GetHalls(c *gin.Context) {
	at, err := h.instant(c)
	if err != nil {
		common.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if at.IsZero() {
		at = time.Now()
	}

	all := h.engine.AllStatuses(at)
	out := make([]HallStatusResponse, 0, len(all))
	for _, hs := range all {
		out = append(out, HallStatusResponse{
			ID:     hs.ID,
			Name:   hs.DisplayName,
			At:     at.In(h.engine.Location()).Format(time.RFC3339),
			Status: newStatusResponse(hs.Status),
		})
	}
	common.Success(c, http.StatusOK, out)
}

func (h *Handler) GetHall(c *gin.Context) {
	id, err := h.hall(c)
	if err != nil {
		common.Error(c, http.StatusNotFound, err.Error())
		return
	}
	at, err := h.instant(c)
	if err != nil {
		common.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if at.IsZero() {
		at = time.Now()
	}

	common.Success(c, http.StatusOK, HallStatusResponse{
		ID:     id,
		Name:   hours.DisplayName(id),
		At:     at.In(h.engine.Location()).Format(time.RFC3339),
		Status: newStatusResponse(h.engine.Status(id, at)),
	})
}

func (h *Handler) GetHallSchedule(c *gin.Context) {
	id, err := h.hall(c)
	if err != nil {
		common.Error(c, http.StatusNotFound, err.Error())
		return
	}

	out := ScheduleResponse{ID: id, Name: hours.DisplayName(id), Meals: []hours.MealPeriod{}}
	if sched, ok := h.tables.Table().Schedule(id); ok {
		out.Name = sched.Name
		if sched.Meals != nil {
			out.Meals = sched.Meals
		}
	}
	common.Success(c, http.StatusOK, out)
}

func (h *Handler) PostReload(c *gin.Context) {
	table, err := h.reloader.Reload(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("schedule reload failed")
		status := http.StatusInternalServerError
		if errors.Is(err, context.Canceled) {
			status = http.StatusServiceUnavailable
		}
		common.Error(c, status, err.Error())
		return
	}

	h.log.WithFields(logrus.Fields{
		"source":     table.Source(),
		"request_id": common.RequestID(c),
	}).Info("schedule reloaded")
	common.Success(c, http.StatusOK, ReloadResponse{
		Source:   table.Source(),
		LoadedAt: table.LoadedAt().Format(time.RFC3339),
	})
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
