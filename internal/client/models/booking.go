package models

// Booking is a client ledger row, also posted to the "bookings" collection.
type Booking struct {
	ID         string `json:"id,omitempty"`
	EventID    string `json:"eventId"`
	UserID     string `json:"userId"`
	UserName   string `json:"userName"`
	EventTitle string `json:"eventTitle"`
	Date       string `json:"date"`
}
