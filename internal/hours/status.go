package hours

import "time"

// Kind is the wire name of a status variant
type Kind string

const (
	KindOpen        Kind = "open"
	KindOpenLimited Kind = "open-limited"
	KindClosed      Kind = "closed"
)

// Status is one of Open, OpenLimited or Closed
type Status interface {
	Kind() Kind
	isStatus()
}

// Open means a primary meal period window contains the instant
type Open struct {
	Meal        MealPeriod
	ClosingTime Clock
}

// OpenLimited means only additional services are running. Meal is the
// period that owns the running service.
type OpenLimited struct {
	Meal        MealPeriod
	ClosingTime Clock
}

// Closed carries the next opening when one exists today or tomorrow
type Closed struct {
	Next *NextOpening
}

// NextOpening is the primary window that opens next
type NextOpening struct {
	Meal     MealPeriod
	Time     Clock
	Day      time.Weekday
	Tomorrow bool
}

func (Open) Kind() Kind        { return KindOpen }
func (OpenLimited) Kind() Kind { return KindOpenLimited }
func (Closed) Kind() Kind      { return KindClosed }

func (Open) isStatus()        {}
func (OpenLimited) isStatus() {}
func (Closed) isStatus()      {}

// WithinWindow reports whether the weekday is listed and open <= minutes <= close.
// Both boundaries count as open.
func WithinWindow(weekday time.Weekday, minutes Clock, w Window) bool {
	if !w.Days.Contains(weekday) {
		return false
	}
	return minutes >= w.Open && minutes <= w.Close
}

// AnyAdditionalServiceOpen reports whether any of the meal's additional services contains the instant
func AnyAdditionalServiceOpen(weekday time.Weekday, minutes Clock, meal MealPeriod) bool {
	for _, s := range meal.AdditionalServices {
		if WithinWindow(weekday, minutes, s.Window()) {
			return true
		}
	}
	return false
}

// CurrentMealPeriod returns the first declared period whose primary window
// or any additional service contains the instant.
func CurrentMealPeriod(meals []MealPeriod, weekday time.Weekday, minutes Clock) (MealPeriod, bool) {
	return resolver{meals: meals}.current(weekday, minutes)
}

// LimitedOnly reports whether no primary window is open while at least one additional service is.
func LimitedOnly(meals []MealPeriod, weekday time.Weekday, minutes Clock) bool {
	return resolver{meals: meals}.limitedOnly(weekday, minutes)
}

// FindNextOpening returns the earliest primary window opening strictly after
// minutes today, or failing that the earliest one tomorrow. It never looks
// past tomorrow. Equal opening times keep declaration order.
func FindNextOpening(meals []MealPeriod, weekday time.Weekday, minutes Clock) (NextOpening, bool) {
	return resolver{meals: meals}.nextOpening(weekday, minutes)
}

// EffectiveClosingTime is the later of the meal's own close and the close of
// any additional service scheduled on weekday.
func EffectiveClosingTime(meal MealPeriod, weekday time.Weekday) Clock {
	closing := meal.Close
	for _, s := range meal.AdditionalServices {
		if s.Days.Contains(weekday) && s.Close > closing {
			closing = s.Close
		}
	}
	return closing
}

// resolver runs the lookups over one hall's meals. With enforceStart set,
// periods whose start date is after the examined date are skipped.
type resolver struct {
	meals        []MealPeriod
	date         Date
	enforceStart bool
}

func (r resolver) inEffect(m MealPeriod, dayOffset int) bool {
	if !r.enforceStart {
		return true
	}
	return m.InEffectOn(r.date.AddDays(dayOffset))
}

func (r resolver) current(weekday time.Weekday, minutes Clock) (MealPeriod, bool) {
	for _, m := range r.meals {
		if !r.inEffect(m, 0) {
			continue
		}
		if WithinWindow(weekday, minutes, m.Window()) || AnyAdditionalServiceOpen(weekday, minutes, m) {
			return m, true
		}
	}
	return MealPeriod{}, false
}

func (r resolver) limitedOnly(weekday time.Weekday, minutes Clock) bool {
	// every primary window first, a single open one rules out "limited"
	for _, m := range r.meals {
		if r.inEffect(m, 0) && WithinWindow(weekday, minutes, m.Window()) {
			return false
		}
	}
	for _, m := range r.meals {
		if r.inEffect(m, 0) && AnyAdditionalServiceOpen(weekday, minutes, m) {
			return true
		}
	}
	return false
}

func (r resolver) nextOpening(weekday time.Weekday, minutes Clock) (NextOpening, bool) {
	if m, ok := r.earliest(weekday, 0, func(m MealPeriod) bool { return m.Open > minutes }); ok {
		return NextOpening{Meal: m, Time: m.Open, Day: weekday}, true
	}
	tomorrow := (weekday + 1) % 7
	if m, ok := r.earliest(tomorrow, 1, func(MealPeriod) bool { return true }); ok {
		return NextOpening{Meal: m, Time: m.Open, Day: tomorrow, Tomorrow: true}, true
	}
	return NextOpening{}, false
}

// earliest picks the candidate with the smallest open time on weekday. The
// strict comparison keeps the first declared period on ties.
func (r resolver) earliest(weekday time.Weekday, dayOffset int, keep func(MealPeriod) bool) (MealPeriod, bool) {
	var best MealPeriod
	found := false
	for _, m := range r.meals {
		if !m.Days.Contains(weekday) || !r.inEffect(m, dayOffset) || !keep(m) {
			continue
		}
		if !found || m.Open < best.Open {
			best = m
			found = true
		}
	}
	return best, found
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
