package utils

import (
	"slices"
	"time"
)

const (
	SlotLayout = "03:04 PM"
	slotStep   = 30 * time.Minute
)

var (
	openingTime = 9 * time.Hour
	closingTime = 18 * time.Hour
)

// TimeSlots lists the bookable half-hour slots, "09:00 AM" through "05:30 PM".
func TimeSlots() []string {
	var slots []string
	base := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	for t := openingTime; t < closingTime; t += slotStep {
		slots = append(slots, base.Add(t).Format(SlotLayout))
	}
	return slots
}

// IsTimeSlot reports whether s is one of TimeSlots.
func IsTimeSlot(s string) bool {
	return slices.Contains(TimeSlots(), s)
}

// SlotOffset returns a slot's offset from midnight. Slots the backend stored
// in 24-hour form ("14:30" or "14:30:00") are accepted too.
func SlotOffset(s string) (time.Duration, bool) {
	for _, layout := range []string{SlotLayout, "15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, true
		}
	}
	return 0, false
}
