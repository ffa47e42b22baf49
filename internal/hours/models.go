package hours

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// HallID is the short code of a dining hall
type HallID string

const (
	Cooper     HallID = "cooper"
	Lakeside   HallID = "lakeside"
	Pathfinder HallID = "pathfinder"
)

// Halls is the fixed enumeration order used by every "all halls" listing.
var Halls = []HallID{Cooper, Lakeside, Pathfinder}

var displayNames = map[HallID]string{
	Cooper:     "Cooper Dining Center",
	Lakeside:   "Lakeside Dining Center",
	Pathfinder: "Pathfinder Dining Center",
}

// Valid reports whether the id belongs to the closed set of halls
func (id HallID) Valid() bool {
	_, ok := displayNames[id]
	return ok
}

// DisplayName returns the human readable hall name
func DisplayName(id HallID) string {
	return displayNames[id]
}

// MealType is informational only, it never takes part in open/closed decisions.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Brunch    MealType = "brunch"
	Dinner    MealType = "dinner"
	LateNight MealType = "latenight"
)

// Day is a weekday name as written in the schedule document
type Day string

const (
	Sunday    Day = "Sunday"
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Saturday  Day = "Saturday"
)

var dayIndex = map[Day]time.Weekday{
	Sunday:    time.Sunday,
	Monday:    time.Monday,
	Tuesday:   time.Tuesday,
	Wednesday: time.Wednesday,
	Thursday:  time.Thursday,
	Friday:    time.Friday,
	Saturday:  time.Saturday,
}

// Weekday maps the name onto time.Weekday (Sunday = 0).
// Unknown names are a configuration defect and panic.
func (d Day) Weekday() time.Weekday {
	w, ok := dayIndex[d]
	if !ok {
		panic(fmt.Sprintf("hours: unknown weekday %q", string(d)))
	}
	return w
}

// DayIndex returns the 0..6 index of a weekday name, Sunday = 0
func DayIndex(d Day) int {
	return int(d.Weekday())
}

// DayOf returns the weekday name for w
func DayOf(w time.Weekday) Day {
	return Day(w.String())
}

// Days is a set of weekday names. Duplicates are harmless.
type Days []Day

// Contains reports whether w is one of the days
func (ds Days) Contains(w time.Weekday) bool {
	for _, d := range ds {
		if d.Weekday() == w {
			return true
		}
	}
	return false
}

// Window is one recurring service window on the listed days.
// Open and Close fall on the same calendar day.
type Window struct {
	Days  Days
	Open  Clock
	Close Clock
}

// AdditionalService is a supplementary window attached to a meal period
// (for example a grab-and-go counter).
type AdditionalService struct {
	Name  string `json:"name" validate:"required"`
	Days  Days   `json:"daysOfWeek" validate:"required,min=1,dive,weekday"`
	Open  Clock  `json:"openTime" validate:"clock"`
	Close Clock  `json:"closeTime" validate:"clock,gtfield=Open"`
	Note  string `json:"note,omitempty"`
}

func (s AdditionalService) Window() Window {
	return Window{Days: s.Days, Open: s.Open, Close: s.Close}
}

// UnmarshalJSON rejects services without an opening or closing time.
// A missing time would otherwise decode as midnight.
func (s *AdditionalService) UnmarshalJSON(data []byte) error {
	type plain AdditionalService
	if err := json.Unmarshal(data, (*plain)(s)); err != nil {
		return err
	}
	if err := requireTimes(data); err != nil {
		return fmt.Errorf("additional service %q: %w", s.Name, err)
	}
	return nil
}

// MealPeriod is one named primary service window of a hall
type MealPeriod struct {
	Type               MealType            `json:"type" validate:"required,oneof=breakfast lunch brunch dinner latenight"`
	Name               string              `json:"name" validate:"required"`
	Days               Days                `json:"daysOfWeek" validate:"required,min=1,dive,weekday"`
	Open               Clock               `json:"openTime" validate:"clock"`
	Close              Clock               `json:"closeTime" validate:"clock,gtfield=Open"`
	StartDate          *Date               `json:"startDate,omitempty"`
	AdditionalServices []AdditionalService `json:"additionalServices,omitempty" validate:"dive"`
}

func (m MealPeriod) Window() Window {
	return Window{Days: m.Days, Open: m.Open, Close: m.Close}
}

// UnmarshalJSON rejects periods without an opening or closing time
func (m *MealPeriod) UnmarshalJSON(data []byte) error {
	type plain MealPeriod
	if err := json.Unmarshal(data, (*plain)(m)); err != nil {
		return err
	}
	if err := requireTimes(data); err != nil {
		return fmt.Errorf("meal period %q: %w", m.Name, err)
	}
	return nil
}

func requireTimes(data []byte) error {
	var present struct {
		Open  *Clock `json:"openTime"`
		Close *Clock `json:"closeTime"`
	}
	if err := json.Unmarshal(data, &present); err != nil {
		return err
	}
	switch {
	case present.Open == nil:
		return fmt.Errorf("openTime is required")
	case present.Close == nil:
		return fmt.Errorf("closeTime is required")
	}
	return nil
}

// InEffectOn reports whether the period has started by the given date.
// Periods without a start date are always in effect.
func (m MealPeriod) InEffectOn(d Date) bool {
	if m.StartDate == nil {
		return true
	}
	return !d.Before(*m.StartDate)
}

// HallSchedule is the ordered list of meal periods for one hall.
// Declaration order is significant: it breaks ties in every lookup.
type HallSchedule struct {
	ID    HallID       `json:"id" validate:"required,hall"`
	Name  string       `json:"name" validate:"required"`
	Meals []MealPeriod `json:"meals" validate:"dive"`
}

// Document is the on-disk shape of the weekly schedule
type Document struct {
	DiningHalls []HallSchedule `json:"diningHalls" validate:"required,dive"`
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
