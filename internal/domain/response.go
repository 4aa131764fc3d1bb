package domain

import "time"

// Response is an entry in a ticket's append-only conversation thread.
type Response struct {
	ID        string
	TicketID  string
	AuthorID  string
	Message   string
	CreatedAt time.Time

	// Author name/role, populated on thread reads for display.
	AuthorName string
	AuthorRole Role
}
