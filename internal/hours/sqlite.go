package hours

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// SQLiteSource reads the schedule from the hours database.
// The schema lives in internal/databases/migrations/hours.
type SQLiteSource struct {
	db   *sql.DB
	name string
}

// NewSQLiteSource creates a new sqlite backed schedule source
func NewSQLiteSource(db *sql.DB, name string) *SQLiteSource {
	return &SQLiteSource{db: db, name: name}
}

func (s *SQLiteSource) Name() string { return "sqlite:" + s.name }

// Load reads every hall, meal period and additional service in declaration order
func (s *SQLiteSource) Load(ctx context.Context) (*Table, error) {
	doc, err := s.Document(ctx)
	if err != nil {
		return nil, err
	}
	return NewTable(doc, s.Name())
}

// Document reads the raw schedule document without validating it
func (s *SQLiteSource) Document(ctx context.Context) (Document, error) {
	var doc Document

	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM halls ORDER BY position")
	if err != nil {
		return doc, err
	}
	index := map[HallID]int{}
	for rows.Next() {
		var h HallSchedule
		if err := rows.Scan(&h.ID, &h.Name); err != nil {
			rows.Close()
			return doc, err
		}
		index[h.ID] = len(doc.DiningHalls)
		doc.DiningHalls = append(doc.DiningHalls, h)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return doc, err
	}

	services, err := s.additionalServices(ctx)
	if err != nil {
		return doc, err
	}

	rows, err = s.db.QueryContext(ctx, `
		SELECT id, hall_id, type, name, days, open_time, close_time, start_date
		FROM meal_periods
		ORDER BY hall_id, position`)
	if err != nil {
		return doc, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id                    int64
			hall                  HallID
			m                     MealPeriod
			days, openAt, closeAt string
			startDate             sql.NullString
		)
		if err := rows.Scan(&id, &hall, &m.Type, &m.Name, &days, &openAt, &closeAt, &startDate); err != nil {
			return doc, err
		}
		if m.Open, err = ParseClock(openAt); err != nil {
			return doc, fmt.Errorf("meal period %d: %w", id, err)
		}
		if m.Close, err = ParseClock(closeAt); err != nil {
			return doc, fmt.Errorf("meal period %d: %w", id, err)
		}
		if startDate.Valid && startDate.String != "" {
			d, err := ParseDate(startDate.String)
			if err != nil {
				return doc, fmt.Errorf("meal period %d: %w", id, err)
			}
			m.StartDate = &d
		}
		m.Days = splitDays(days)
		m.AdditionalServices = services[id]

		i, ok := index[hall]
		if !ok {
			return doc, fmt.Errorf("meal period %d references missing hall %q", id, hall)
		}
		doc.DiningHalls[i].Meals = append(doc.DiningHalls[i].Meals, m)
	}
	return doc, rows.Err()
}

func (s *SQLiteSource) additionalServices(ctx context.Context) (map[int64][]AdditionalService, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT meal_period_id, name, days, open_time, close_time, note
		FROM additional_services
		ORDER BY meal_period_id, position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[int64][]AdditionalService{}
	for rows.Next() {
		var (
			mealID                int64
			a                     AdditionalService
			days, openAt, closeAt string
			note                  sql.NullString
		)
		if err := rows.Scan(&mealID, &a.Name, &days, &openAt, &closeAt, &note); err != nil {
			return nil, err
		}
		if a.Open, err = ParseClock(openAt); err != nil {
			return nil, fmt.Errorf("additional service %q: %w", a.Name, err)
		}
		if a.Close, err = ParseClock(closeAt); err != nil {
			return nil, fmt.Errorf("additional service %q: %w", a.Name, err)
		}
		a.Days = splitDays(days)
		a.Note = note.String
		out[mealID] = append(out[mealID], a)
	}
	return out, rows.Err()
}

// Seed replaces the stored schedule with doc in a single transaction
func (s *SQLiteSource) Seed(ctx context.Context, doc Document) error {
	if err := Validate(doc); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	// Defer a rollback in case anything fails.
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range []string{"additional_services", "meal_periods", "halls"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}

	for hallPos, h := range doc.DiningHalls {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO halls (id, name, position) VALUES (?, ?, ?)",
			h.ID, h.Name, hallPos,
		); err != nil {
			return err
		}
		for mealPos, m := range h.Meals {
			var start interface{}
			if m.StartDate != nil {
				start = m.StartDate.String()
			}
			res, err := tx.ExecContext(ctx, `
				INSERT INTO meal_periods (hall_id, position, type, name, days, open_time, close_time, start_date)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				h.ID, mealPos, m.Type, m.Name, joinDays(m.Days), m.Open.String(), m.Close.String(), start,
			)
			if err != nil {
				return err
			}
			mealID, err := res.LastInsertId()
			if err != nil {
				return err
			}
			for servicePos, a := range m.AdditionalServices {
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO additional_services (meal_period_id, position, name, days, open_time, close_time, note)
					VALUES (?, ?, ?, ?, ?, ?, ?)`,
					mealID, servicePos, a.Name, joinDays(a.Days), a.Open.String(), a.Close.String(), a.Note,
				); err != nil {
					return err
				}
			}
		}
	}

	return tx.Commit()
}

func joinDays(days Days) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = string(d)
	}
	return strings.Join(parts, ",")
}

func splitDays(s string) Days {
	var days Days
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			days = append(days, Day(p))
		}
	}
	return days
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
