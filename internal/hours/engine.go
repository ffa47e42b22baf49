package hours

import (
	"slices"
	"time"
)

// Engine answers open/closed questions against the current schedule table.
// It holds no mutable state, so one Engine can serve any number of callers.
type Engine struct {
	tables       TableProvider
	loc          *time.Location
	now          func() time.Time
	enforceStart bool
}

type Option func(*Engine)

// WithLocation sets the zone instants are converted to before reading the
// weekday and wall-clock time. Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// WithStartDateEnforcement makes meal periods with a start date inactive
// before that date.
func WithStartDateEnforcement() Option {
	return func(e *Engine) {
		e.enforceStart = true
	}
}

// WithNow replaces the clock used when callers pass a zero instant
func WithNow(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates a new engine reading schedules from tables
func NewEngine(tables TableProvider, opts ...Option) *Engine {
	e := &Engine{
		tables: tables,
		loc:    time.Local,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// HallStatus is one row of the all-halls overview
type HallStatus struct {
	ID          HallID
	DisplayName string
	Status      Status
}

// Location returns the zone used for weekday and time-of-day
func (e *Engine) Location() *time.Location {
	return e.loc
}

// Status computes the hall's status at the instant. A zero instant means now.
// A hall without a schedule is closed with no next opening.
func (e *Engine) Status(hall HallID, at time.Time) Status {
	if at.IsZero() {
		at = e.now()
	}
	local := at.In(e.loc)
	weekday, minutes := local.Weekday(), ClockOf(local)

	r := resolver{
		meals:        e.tables.Table().Meals(hall),
		date:         DateOf(local),
		enforceStart: e.enforceStart,
	}

	if meal, ok := r.current(weekday, minutes); ok {
		closing := EffectiveClosingTime(meal, weekday)
		meal.AdditionalServices = nil
		meal.Days = slices.Clone(meal.Days)
		if r.limitedOnly(weekday, minutes) {
			return OpenLimited{Meal: meal, ClosingTime: closing}
		}
		return Open{Meal: meal, ClosingTime: closing}
	}

	next, ok := r.nextOpening(weekday, minutes)
	if !ok {
		return Closed{}
	}
	next.Meal.AdditionalServices = nil
	next.Meal.Days = slices.Clone(next.Meal.Days)
	return Closed{Next: &next}
}

// AllStatuses returns every hall's status in the fixed Halls order
func (e *Engine) AllStatuses(at time.Time) []HallStatus {
	if at.IsZero() {
		at = e.now()
	}
	out := make([]HallStatus, 0, len(Halls))
	for _, id := range Halls {
		out = append(out, HallStatus{
			ID:          id,
			DisplayName: DisplayName(id),
			Status:      e.Status(id, at),
		})
	}
	return out
}

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
