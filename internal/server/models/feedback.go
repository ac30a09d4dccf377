package models

import "time"

// Feedback is one submitted feedback form. Rating is 1..5.
type Feedback struct {
	ID        string
	Name      string
	Email     string
	Rating    int
	Category  string
	Message   string
	CreatedAt time.Time
}
