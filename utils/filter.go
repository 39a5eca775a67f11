package utils

import (
	"strings"

	"barbershop-web/models"
)

// StatusAll is the filter dropdown value for every status.
const StatusAll models.Status = "All"

// AppointmentFilter narrows an appointments table. Zero fields match all rows;
// set fields must all match.
type AppointmentFilter struct {
	Status models.Status `form:"status"`
	Date   string        `form:"date"`
	Search string        `form:"search"`
}

func (f AppointmentFilter) Active() bool {
	return (f.Status != "" && f.Status != StatusAll) || f.Date != "" || strings.TrimSpace(f.Search) != ""
}

func (f AppointmentFilter) Match(a models.Appointment) bool {
	if f.Status != "" && f.Status != StatusAll && a.Status != f.Status {
		return false
	}
	if f.Date != "" && NormalizeDate(a.Date) != NormalizeDate(f.Date) {
		return false
	}
	return containsFold(f.Search, a.Customer, a.ServiceLabel(), a.BarberLabel())
}

func FilterAppointments(list models.Appointments, f AppointmentFilter) models.Appointments {
	out := models.Appointments{}
	for _, a := range list {
		if f.Match(a) {
			out = append(out, a)
		}
	}
	return out
}

// UserFilter narrows the users table by role and a name/email search.
type UserFilter struct {
	Role   string `form:"role"`
	Search string `form:"search"`
}

func (f UserFilter) Match(u models.User) bool {
	if f.Role != "" && !strings.EqualFold(u.Role, f.Role) {
		return false
	}
	return containsFold(f.Search, u.DisplayName(), u.Email)
}

func FilterUsers(list []models.User, f UserFilter) []models.User {
	out := []models.User{}
	for _, u := range list {
		if f.Match(u) {
			out = append(out, u)
		}
	}
	return out
}

// containsFold reports whether any field contains term, ignoring case.
// An empty term matches.
func containsFold(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
