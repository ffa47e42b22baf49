package status

import "DiningAPI/internal/hours"

type MealResponse struct {
	Type         hours.MealType `json:"type"`
	Name         string         `json:"name"`
	OpenTime     string         `json:"open_time"`
	CloseTime    string         `json:"close_time"`
	HoursDisplay string         `json:"hours_display"`
}

type NextOpeningResponse struct {
	Meal        MealResponse `json:"meal"`
	Time        string       `json:"time"`
	TimeDisplay string       `json:"time_display"`
	Day         hours.Day    `json:"day"`
	Tomorrow    bool         `json:"tomorrow"`
}

type StatusResponse struct {
	Status             hours.Kind           `json:"status"`
	Badge              string               `json:"badge"`
	Summary            string               `json:"summary"`
	Detail             string               `json:"detail"`
	Meal               *MealResponse        `json:"meal,omitempty"`
	ClosingTime        string               `json:"closing_time,omitempty"`
	ClosingTimeDisplay string               `json:"closing_time_display,omitempty"`
	NextOpening        *NextOpeningResponse `json:"next_opening,omitempty"`
}

type HallStatusResponse struct {
	ID     hours.HallID   `json:"id"`
	Name   string         `json:"name"`
	At     string         `json:"at"`
	Status StatusResponse `json:"status"`
}

type ScheduleResponse struct {
	ID    hours.HallID       `json:"id"`
	Name  string             `json:"name"`
	Meals []hours.MealPeriod `json:"meals"`
}

type ReloadResponse struct {
	Source   string `json:"source"`
	LoadedAt string `json:"loaded_at"`
}

func newMealResponse(m hours.MealPeriod) MealResponse {
	return MealResponse{
		Type:         m.Type,
		Name:         m.Name,
		OpenTime:     m.Open.String(),
		CloseTime:    m.Close.String(),
		HoursDisplay: hours.HoursRange(m.Open, m.Close),
	}
}

// newStatusResponse flattens the status variant into the wire shape
func newStatusResponse(s hours.Status) StatusResponse {
	out := StatusResponse{
		Status:  s.Kind(),
		Badge:   hours.Badge(s),
		Summary: hours.Summary(s),
		Detail:  hours.Detail(s),
	}

	switch st := s.(type) {
	case hours.Open:
		meal := newMealResponse(st.Meal)
		out.Meal = &meal
		out.ClosingTime = st.ClosingTime.String()
		out.ClosingTimeDisplay = st.ClosingTime.Display()
	case hours.OpenLimited:
		meal := newMealResponse(st.Meal)
		out.Meal = &meal
		out.ClosingTime = st.ClosingTime.String()
		out.ClosingTimeDisplay = st.ClosingTime.Display()
	case hours.Closed:
		if st.Next != nil {
			out.NextOpening = &NextOpeningResponse{
				Meal:        newMealResponse(st.Next.Meal),
				Time:        st.Next.Time.String(),
				TimeDisplay: st.Next.Time.Display(),
				Day:         hours.DayOf(st.Next.Day),
				Tomorrow:    st.Next.Tomorrow,
			}
		}
	}
	return out
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
