package hours

import "fmt"

// Text shown by the status badges, cards and the all-halls overview.

const LimitedNotice = "Limited service available (additional services only)"

// Badge is the short status label
func Badge(s Status) string {
	switch s.Kind() {
	case KindOpen:
		return "OPEN"
	case KindOpenLimited:
		return "OPEN Limited"
	case KindClosed:
		return "CLOSED"
	}
	return "UNKNOWN"
}

// Summary is the one-line card text: "Lunch until 2 PM", "Opens 5 PM" or "Closed today"
func Summary(s Status) string {
	switch st := s.(type) {
	case Open:
		return fmt.Sprintf("%s until %s", st.Meal.Name, st.ClosingTime.Display())
	case OpenLimited:
		return fmt.Sprintf("%s until %s", st.Meal.Name, st.ClosingTime.Display())
	case Closed:
		if st.Next != nil {
			return "Opens " + st.Next.Time.Display()
		}
	}
	return "Closed today"
}

// Detail is the longer overview text
func Detail(s Status) string {
	switch st := s.(type) {
	case Open:
		return fmt.Sprintf("%s - Open until %s", st.Meal.Name, st.ClosingTime.Display())
	case OpenLimited:
		return fmt.Sprintf("%s - Open until %s. %s", st.Meal.Name, st.ClosingTime.Display(), LimitedNotice)
	case Closed:
		if st.Next != nil {
			return fmt.Sprintf("Opens at %s for %s", st.Next.Time.Display(), st.Next.Meal.Name)
		}
	}
	return "No scheduled hours today"
}

// HoursRange renders "7 AM - 10:30 AM"
func HoursRange(open, close Clock) string {
	return open.Display() + " - " + close.Display()
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
