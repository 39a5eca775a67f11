package models

// Appointment is the backend's appointment row as returned by the user and
// admin listings. Admin listings carry display names in Customer/Service/Barber,
// user listings in ServiceName/BarberName.
type Appointment struct {
	ID             int64   `json:"appointment_id"`
	UserID         int64   `json:"user_id,omitempty"`
	ServiceID      int64   `json:"service_id,omitempty"`
	BarberID       int64   `json:"barber_id,omitempty"`
	Customer       string  `json:"customer,omitempty"`
	Service        string  `json:"service,omitempty"`
	Barber         string  `json:"barber,omitempty"`
	ServiceName    string  `json:"service_name,omitempty"`
	BarberName     string  `json:"barber_name,omitempty"`
	Date           string  `json:"appt_date"`
	Time           string  `json:"appt_time"`
	PriceAtBooking Number  `json:"price_at_booking"`
	DurationMin    Number  `json:"duration_min,omitempty"`
	Status         Status  `json:"status"`
	Notes          *string `json:"notes"`
}

// ServiceLabel returns whichever service name the listing provided.
func (a Appointment) ServiceLabel() string {
	if a.Service != "" {
		return a.Service
	}
	return a.ServiceName
}

// BarberLabel returns whichever barber name the listing provided.
func (a Appointment) BarberLabel() string {
	if a.Barber != "" {
		return a.Barber
	}
	return a.BarberName
}

// Actions returns the actions offered for the appointment's current status.
func (a Appointment) Actions() ActionSet {
	return AllowedActions(a.Status)
}

// CreateAppointmentInput is the booking request body.
type CreateAppointmentInput struct {
	ServiceID int64   `json:"service_id"`
	BarberID  int64   `json:"barber_id"`
	Date      string  `json:"appt_date"`
	Time      string  `json:"appt_time"`
	Notes     *string `json:"notes"`
}

// Appointments is a view's transient copy of the backend list.
// The update helpers return a new slice and never modify the receiver.
type Appointments []Appointment

// Upcoming returns Pending and Approved appointments.
func (l Appointments) Upcoming() Appointments {
	out := Appointments{}
	for _, a := range l {
		if a.Status.Upcoming() {
			out = append(out, a)
		}
	}
	return out
}

// History returns Completed, Cancelled and Rejected appointments.
func (l Appointments) History() Appointments {
	out := Appointments{}
	for _, a := range l {
		switch a.Status {
		case StatusCompleted, StatusCancelled, StatusRejected:
			out = append(out, a)
		}
	}
	return out
}

// WithStatus returns appointments whose status equals s.
func (l Appointments) WithStatus(s Status) Appointments {
	out := Appointments{}
	for _, a := range l {
		if a.Status == s {
			out = append(out, a)
		}
	}
	return out
}

// SetStatus returns a copy with the status of appointment id replaced.
func (l Appointments) SetStatus(id int64, s Status) Appointments {
	out := make(Appointments, len(l))
	copy(out, l)
	for i := range out {
		if out[i].ID == id {
			out[i].Status = s
		}
	}
	return out
}

// Replace returns a copy with the row matching updated.ID swapped for updated.
func (l Appointments) Replace(updated Appointment) Appointments {
	out := make(Appointments, len(l))
	copy(out, l)
	for i := range out {
		if out[i].ID == updated.ID {
			out[i] = updated
		}
	}
	return out
}

// Remove returns a copy without appointment id.
func (l Appointments) Remove(id int64) Appointments {
	out := make(Appointments, 0, len(l))
	for _, a := range l {
		if a.ID != id {
			out = append(out, a)
		}
	}
	return out
}

// Find returns appointment id if present.
func (l Appointments) Find(id int64) (Appointment, bool) {
	for _, a := range l {
		if a.ID == id {
			return a, true
		}
	}
	return Appointment{}, false
}

// AppointmentChange is the local effect of a successful action. It travels
// with the redirect back to the view and is applied to the reloaded list.
type AppointmentChange struct {
	ID      int64        `json:"id"`
	Status  Status       `json:"status,omitempty"`
	Record  *Appointment `json:"record,omitempty"`
	Removed bool         `json:"removed,omitempty"`
}

// ChangeFor returns the change for a successful action on id. A record
// returned by the backend for the same id replaces the row.
func ChangeFor(a Action, id int64, record *Appointment) *AppointmentChange {
	if record != nil && record.ID == id {
		return &AppointmentChange{ID: id, Record: record}
	}
	if s, ok := ResultStatus(a); ok {
		return &AppointmentChange{ID: id, Status: s}
	}
	return &AppointmentChange{ID: id, Removed: true}
}

// Apply returns l with the change applied. A nil change returns l.
func (ch *AppointmentChange) Apply(l Appointments) Appointments {
	switch {
	case ch == nil:
		return l
	case ch.Removed:
		return l.Remove(ch.ID)
	case ch.Record != nil:
		return l.Replace(*ch.Record)
	case ch.Status != "":
		return l.SetStatus(ch.ID, ch.Status)
	}
	return l
}
