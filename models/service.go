package models

// Service is a bookable barbershop service.
type Service struct {
	ID          int64    `json:"service_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       Number   `json:"price"`
	DurationMin Number   `json:"duration_min"`
	IsActive    FlexBool `json:"is_active"`
}

// ServiceInput is the create/update body for admin service management.
type ServiceInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	DurationMin int     `json:"duration_min"`
	IsActive    bool    `json:"is_active"`
}

// ActiveServices keeps services flagged active.
func ActiveServices(list []Service) []Service {
	out := []Service{}
	for _, s := range list {
		if s.IsActive {
			out = append(out, s)
		}
	}
	return out
}
