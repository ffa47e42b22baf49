package env

import (
	"os"
	"strconv"
	"strings"
	"time"
)

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func GetInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func GetDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// GetStrings splits a comma separated variable, dropping empty entries
func GetStrings(key string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Environment variable keys
const (
	// Server
	EnvPort        = "PORT"
	EnvGinMode     = "GIN_MODE"
	EnvLogLevel    = "LOG_LEVEL"
	EnvEnvironment = "ENVIRONMENT"

	// Schedule
	EnvTimezone           = "TIMEZONE"
	EnvScheduleSource     = "SCHEDULE_SOURCE"
	EnvScheduleFile       = "SCHEDULE_FILE"
	EnvScheduleDB         = "SCHEDULE_DB"
	EnvScheduleReloadCron = "SCHEDULE_RELOAD_CRON"
	EnvEnforceStartDate   = "ENFORCE_START_DATE"

	// Admin access and limits
	EnvAdminTokenHash  = "ADMIN_TOKEN_HASH"
	EnvAdminAllowedIPs = "ADMIN_ALLOWED_IPS"
	EnvRateLimitRPM    = "RATE_LIMIT_RPM"
)

/*
Dining hours service. Open, closed and limited status for campus dining halls.
API Copyright (C) 2025 OpenSourceDUTH
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
