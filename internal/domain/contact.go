package domain

import "time"

// ContactMessage is a message submitted via the public contact form.
type ContactMessage struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       *string   `json:"phone"`
	Subject     string    `json:"subject"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// ContactMessageInput carries the fields accepted from the contact form.
type ContactMessageInput struct {
	Name    string
	Email   string
	Phone   *string
	Subject string
	Message string
}
