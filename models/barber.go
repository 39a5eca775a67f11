package models

// Barber is a staff member customers can book.
type Barber struct {
	ID             int64      `json:"barber_id"`
	Name           string     `json:"name"`
	Specialization string     `json:"specialization"`
	WorkingHours   string     `json:"working_hours"`
	Phone          FlexString `json:"phone"`
	IsActive       FlexBool   `json:"is_active"`
}

// BarberInput is the create/update body for admin barber management.
type BarberInput struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	WorkingHours   string `json:"working_hours"`
	Phone          string `json:"phone"`
	IsActive       bool   `json:"is_active"`
}

// ActiveBarbers keeps barbers flagged active.
func ActiveBarbers(list []Barber) []Barber {
	out := []Barber{}
	for _, b := range list {
		if b.IsActive {
			out = append(out, b)
		}
	}
	return out
}
