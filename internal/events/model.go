package events

import "time"

// Event statuses.
const (
	EventUpcoming  = "upcoming"
	EventLive      = "live"
	EventCompleted = "completed"
	EventCancelled = "cancelled"
)

// Ticket statuses.
const (
	TicketValid     = "valid"
	TicketUsed      = "used"
	TicketCancelled = "cancelled"
	TicketRefunded  = "refunded"
)

// Categories returns the fixed event category list.
func Categories() []string {
	return []string{
		"religious", "business", "technology", "entertainment",
		"education", "sports", "health", "community", "other",
	}
}

// Event is a ticketed happening, physical or online.
type Event struct {
	ID            string    `json:"id"`
	OrganizerID   string    `json:"organizerId"`
	OrganizerName string    `json:"organizerName"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Venue         string    `json:"venue"`
	Address       string    `json:"address,omitempty"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	TicketPrice   int64     `json:"ticketPrice"`
	Currency      string    `json:"currency"`
	Capacity      int       `json:"capacity"`
	TicketsSold   int       `json:"ticketsSold"`
	Online        bool      `json:"isOnline"`
	OnlineURL     string    `json:"onlineUrl,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// AvailableTickets reports remaining capacity.
func (e Event) AvailableTickets() int {
	return e.Capacity - e.TicketsSold
}

// SoldOut reports whether no tickets remain.
func (e Event) SoldOut() bool {
	return e.TicketsSold >= e.Capacity
}

// Ticket is an admission record for an event.
type Ticket struct {
	ID          string    `json:"id"`
	EventID     string    `json:"eventId"`
	EventTitle  string    `json:"eventTitle"`
	UserID      string    `json:"userId"`
	UserName    string    `json:"userName"`
	TicketType  string    `json:"ticketType"`
	Quantity    int       `json:"quantity"`
	TotalPrice  int64     `json:"totalPrice"`
	QRCode      string    `json:"qrCode"`
	Status      string    `json:"status"`
	PurchasedAt time.Time `json:"purchasedAt"`
}
