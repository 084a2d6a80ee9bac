package service

import (
	"time"

	"wordisland/internal/models"
)

// Calendar decides what "today" is for streak and quest logic
type Calendar struct {
	Now      func() time.Time
	Location *time.Location
}

func NewCalendar(loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.Local
	}
	return &Calendar{Now: time.Now, Location: loc}
}

// Today returns the current calendar day in the configured zone
func (c *Calendar) Today() models.Date {
	return models.DateOf(c.Now().In(c.Location))
}
