package hours

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrUnknownHall is returned for hall ids outside the closed set
var ErrUnknownHall = errors.New("unknown dining hall")

// Table is the validated, read-only weekly schedule. It is never mutated
// after NewTable returns; reloads build a new Table.
type Table struct {
	halls    map[HallID]HallSchedule
	source   string
	loadedAt time.Time
}

// TableProvider hands out the table currently in use
type TableProvider interface {
	Table() *Table
}

// NewTable validates the document and indexes it by hall id
func NewTable(doc Document, source string) (*Table, error) {
	if err := Validate(doc); err != nil {
		return nil, err
	}
	halls := make(map[HallID]HallSchedule, len(doc.DiningHalls))
	for _, h := range doc.DiningHalls {
		if _, dup := halls[h.ID]; dup {
			return nil, fmt.Errorf("schedule for %q is defined more than once", h.ID)
		}
		halls[h.ID] = h
	}
	return &Table{halls: halls, source: source, loadedAt: time.Now()}, nil
}

// Table lets a bare *Table act as its own provider
func (t *Table) Table() *Table {
	return t
}

// Schedule returns the hall's schedule as loaded
func (t *Table) Schedule(id HallID) (HallSchedule, bool) {
	if t == nil {
		return HallSchedule{}, false
	}
	h, ok := t.halls[id]
	return h, ok
}

// Meals returns the hall's meal periods in declaration order.
// A hall missing from the table has none.
func (t *Table) Meals(id HallID) []MealPeriod {
	h, _ := t.Schedule(id)
	return h.Meals
}

func (t *Table) Source() string {
	if t == nil {
		return ""
	}
	return t.source
}

func (t *Table) LoadedAt() time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.loadedAt
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func documentValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
			_, ok := dayIndex[Day(fl.Field().String())]
			return ok
		})
		_ = validate.RegisterValidation("hall", func(fl validator.FieldLevel) bool {
			return HallID(fl.Field().String()).Valid()
		})
		_ = validate.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
			return Clock(fl.Field().Int()).Valid()
		})
	})
	return validate
}

// Validate checks the document against the schedule rules: known hall ids,
// non-empty weekday sets drawn from the seven names and open < close for
// every window.
func Validate(doc Document) error {
	err := documentValidator().Struct(doc)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid schedule: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Document.")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must list at least one day"
	case "weekday":
		return fmt.Sprintf("%s has unknown weekday %q", field, fe.Value())
	case "hall":
		return fmt.Sprintf("%s has unknown hall id %q", field, fe.Value())
	case "clock":
		return field + " is out of range"
	case "gtfield":
		return field + " must be after the opening time"
	case "oneof":
		return fmt.Sprintf("%s has unknown meal type %q", field, fe.Value())
	}
	return fmt.Sprintf("%s failed %s", field, fe.Tag())
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
