package events

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrEventNotFound indicates a missing event.
	ErrEventNotFound = errors.New("event not found")

	// ErrNotEnoughTickets indicates the purchase exceeds remaining capacity.
	ErrNotEnoughTickets = errors.New("not enough tickets available")
)

// Repository persists events and tickets. IssueTicket must check and consume
// capacity atomically.
type Repository interface {
	CreateEvent(ctx context.Context, e Event) error
	Event(ctx context.Context, id string) (Event, error)
	Events(ctx context.Context) ([]Event, error)

	IssueTicket(ctx context.Context, t Ticket) error
	TicketsByUser(ctx context.Context, userID string) ([]Ticket, error)
}

type memoryRepository struct {
	mu      sync.RWMutex
	events  map[string]Event
	tickets map[string]Ticket
}

// NewMemoryRepository constructs an in-memory repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		events:  make(map[string]Event),
		tickets: make(map[string]Ticket),
	}
}

func (r *memoryRepository) CreateEvent(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[e.ID] = e
	return nil
}

func (r *memoryRepository) Event(_ context.Context, id string) (Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.events[id]
	if !ok {
		return Event{}, ErrEventNotFound
	}
	return e, nil
}

func (r *memoryRepository) Events(_ context.Context) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Event, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e)
	}
	return out, nil
}

func (r *memoryRepository) IssueTicket(_ context.Context, t Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[t.EventID]
	if !ok {
		return ErrEventNotFound
	}
	if e.TicketsSold+t.Quantity > e.Capacity {
		return ErrNotEnoughTickets
	}
	e.TicketsSold += t.Quantity
	r.events[e.ID] = e
	r.tickets[t.ID] = t
	return nil
}

func (r *memoryRepository) TicketsByUser(_ context.Context, userID string) ([]Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Ticket, 0)
	for _, t := range r.tickets {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}
