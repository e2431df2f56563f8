package events

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/trunorth/platform/internal/middleware"
)

// Service implements event and ticketing operations.
type Service struct {
	repo     Repository
	currency string
}

// NewService builds an events service.
func NewService(repo Repository, currency string) *Service {
	return &Service{repo: repo, currency: currency}
}

// ListEvents returns events that are still upcoming or live, soonest first.
func (s *Service) ListEvents(ctx context.Context) ([]Event, error) {
	all, err := s.repo.Events(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Event, 0, len(all))
	for _, e := range all {
		if e.Status == EventCancelled || e.Status == EventCompleted {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

// GetEvent returns an event by id.
func (s *Service) GetEvent(ctx context.Context, id string) (Event, error) {
	return s.repo.Event(ctx, id)
}

// CreateEventInput captures a new event.
type CreateEventInput struct {
	Title       string
	Description string
	Category    string
	Venue       string
	Address     string
	StartDate   time.Time
	EndDate     time.Time
	TicketPrice int64
	Capacity    int
	Online      bool
	OnlineURL   string
}

// CreateEvent registers a new event for the organizer.
func (s *Service) CreateEvent(ctx context.Context, organizer middleware.Actor, input CreateEventInput) (Event, error) {
	if input.Title == "" {
		return Event{}, errors.New("title is required")
	}
	if input.Capacity <= 0 {
		return Event{}, errors.New("capacity must be positive")
	}
	if input.TicketPrice < 0 {
		return Event{}, errors.New("ticket price cannot be negative")
	}
	if input.EndDate.Before(input.StartDate) {
		return Event{}, errors.New("end date cannot precede start date")
	}

	name := organizer.Name
	if name == "" {
		name = "Unknown"
	}
	e := Event{
		ID:            uuid.New().String(),
		OrganizerID:   organizer.ID,
		OrganizerName: name,
		Title:         input.Title,
		Description:   input.Description,
		Category:      input.Category,
		Venue:         input.Venue,
		Address:       input.Address,
		StartDate:     input.StartDate.UTC(),
		EndDate:       input.EndDate.UTC(),
		TicketPrice:   input.TicketPrice,
		Currency:      s.currency,
		Capacity:      input.Capacity,
		Online:        input.Online,
		OnlineURL:     input.OnlineURL,
		Status:        EventUpcoming,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repo.CreateEvent(ctx, e); err != nil {
		return Event{}, err
	}
	return e, nil
}

// PurchaseTickets issues tickets against remaining capacity.
func (s *Service) PurchaseTickets(ctx context.Context, buyer middleware.Actor, eventID string, quantity int) (Ticket, error) {
	if quantity <= 0 {
		quantity = 1
	}
	e, err := s.repo.Event(ctx, eventID)
	if err != nil {
		return Ticket{}, err
	}

	t := Ticket{
		ID:          uuid.New().String(),
		EventID:     e.ID,
		EventTitle:  e.Title,
		UserID:      buyer.ID,
		UserName:    buyer.Name,
		TicketType:  "General",
		Quantity:    quantity,
		TotalPrice:  e.TicketPrice * int64(quantity),
		QRCode:      fmt.Sprintf("TRUNORTH-%s-%d", e.ID, time.Now().UnixMilli()),
		Status:      TicketValid,
		PurchasedAt: time.Now().UTC(),
	}
	if err := s.repo.IssueTicket(ctx, t); err != nil {
		return Ticket{}, err
	}
	return t, nil
}

// MyTickets lists the caller's tickets, newest first.
func (s *Service) MyTickets(ctx context.Context, userID string) ([]Ticket, error) {
	ts, err := s.repo.TicketsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.Slice(ts, func(i, j int) bool { return ts[i].PurchasedAt.After(ts[j].PurchasedAt) })
	return ts, nil
}
