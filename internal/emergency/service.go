package emergency

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/trunorth/platform/internal/identity"
	"github.com/trunorth/platform/internal/middleware"
	"github.com/trunorth/platform/internal/notification"
)

var (
	ErrInvalidReport     = errors.New("emergency: invalid report")
	ErrInvalidAlert      = errors.New("emergency: invalid alert")
	ErrInvalidTransition = errors.New("emergency: invalid status transition")
	ErrForbidden         = errors.New("emergency: forbidden")
)

var reportTypes = map[string]bool{
	TypeMedical: true, TypeFire: true, TypeCrime: true,
	TypeAccident: true, TypeNaturalDisaster: true, TypeOther: true,
}

var severities = map[string]int{
	SeverityCritical: 0,
	SeverityHigh:     1,
	SeverityMedium:   2,
	SeverityLow:      3,
}

var alertTypes = map[string]int{
	AlertWarning:  0,
	AlertWatch:    1,
	AlertAdvisory: 2,
	AlertInfo:     3,
}

var reportTransitions = map[string][]string{
	ReportPending:    {ReportDispatched, ReportCancelled},
	ReportDispatched: {ReportResolved, ReportCancelled},
}

// Service handles emergency reports, broadcast alerts and SOS triggers.
type Service struct {
	repo     Repository
	notifier notification.Notifier
}

func NewService(repo Repository, notifier notification.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

type ReportInput struct {
	Type        string   `json:"type"`
	Severity    string   `json:"severity"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    Location `json:"location"`
}

func (in ReportInput) validate() error {
	if !reportTypes[in.Type] {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidReport, in.Type)
	}
	if _, ok := severities[in.Severity]; !ok {
		return fmt.Errorf("%w: unknown severity %q", ErrInvalidReport, in.Severity)
	}
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidReport)
	}
	return nil
}

// CreateReport files a new emergency report. Anonymous reports are allowed.
func (s *Service) CreateReport(ctx context.Context, actor middleware.Actor, in ReportInput) (*Report, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	r := &Report{
		ID:           uuid.NewString(),
		Type:         in.Type,
		Severity:     in.Severity,
		Title:        in.Title,
		Description:  in.Description,
		Location:     in.Location,
		ReporterID:   actor.ID,
		ReporterName: actor.Name,
		Status:       ReportPending,
		Responders:   []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateReport(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Reports lists reports visible to the actor. Admins and dispatchers see
// everything; other users only their own filings. An optional status filter
// narrows the result.
func (s *Service) Reports(ctx context.Context, actor middleware.Actor, status string) ([]*Report, error) {
	all, err := s.repo.Reports(ctx)
	if err != nil {
		return nil, err
	}

	privileged := actor.Role == identity.RoleAdmin || actor.Role == identity.RoleDispatcher
	out := make([]*Report, 0, len(all))
	for _, r := range all {
		if !privileged && r.ReporterID != actor.ID {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *Service) Report(ctx context.Context, id string) (*Report, error) {
	return s.repo.ReportByID(ctx, id)
}

// UpdateStatus moves a report through its lifecycle. Only dispatchers and
// admins may change status.
func (s *Service) UpdateStatus(ctx context.Context, actor middleware.Actor, id, status string) (*Report, error) {
	if actor.Role != identity.RoleAdmin && actor.Role != identity.RoleDispatcher {
		return nil, ErrForbidden
	}

	r, err := s.repo.ReportByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !transitionAllowed(r.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.Status, status)
	}
	r.Status = status
	if status == ReportDispatched && r.AssignedTo == "" {
		r.AssignedTo = actor.ID
	}
	r.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateReport(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Respond records a responder as attending the report.
func (s *Service) Respond(ctx context.Context, actor middleware.Actor, id string) (*Report, error) {
	if actor.Role != identity.RoleAdmin && actor.Role != identity.RoleResponder {
		return nil, ErrForbidden
	}

	r, err := s.repo.ReportByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, rid := range r.Responders {
		if rid == actor.ID {
			return r, nil
		}
	}
	r.Responders = append(r.Responders, actor.ID)
	r.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateReport(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// SOS files a critical medical report from a one-tap panic trigger and fans
// out a notification.
func (s *Service) SOS(ctx context.Context, actor middleware.Actor, loc Location) (*Report, error) {
	r, err := s.CreateReport(ctx, actor, ReportInput{
		Type:        TypeMedical,
		Severity:    SeverityCritical,
		Title:       "SOS alert",
		Description: "One-tap SOS trigger",
		Location:    loc,
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindSOS,
			Destination: actor.ID,
			Body:        fmt.Sprintf("SOS report %s filed", r.ID),
		})
	}
	return r, nil
}

type AlertInput struct {
	Type          string    `json:"type"`
	Title         string    `json:"title"`
	Message       string    `json:"message"`
	AffectedAreas []string  `json:"affectedAreas"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// CreateAlert publishes a broadcast alert. Admin only.
func (s *Service) CreateAlert(ctx context.Context, actor middleware.Actor, in AlertInput) (*Alert, error) {
	if actor.Role != identity.RoleAdmin {
		return nil, ErrForbidden
	}
	if _, ok := alertTypes[in.Type]; !ok {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidAlert, in.Type)
	}
	if in.Title == "" || in.Message == "" {
		return nil, fmt.Errorf("%w: title and message are required", ErrInvalidAlert)
	}

	a := &Alert{
		ID:            uuid.NewString(),
		Type:          in.Type,
		Title:         in.Title,
		Message:       in.Message,
		AffectedAreas: in.AffectedAreas,
		ExpiresAt:     in.ExpiresAt,
		Active:        true,
		CreatedAt:     time.Now().UTC(),
	}
	if a.AffectedAreas == nil {
		a.AffectedAreas = []string{}
	}
	if err := s.repo.CreateAlert(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ActiveAlerts lists unexpired alerts, most severe type first.
func (s *Service) ActiveAlerts(ctx context.Context) ([]*Alert, error) {
	all, err := s.repo.Alerts(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	out := make([]*Alert, 0, len(all))
	for _, a := range all {
		if !a.Active {
			continue
		}
		if !a.ExpiresAt.IsZero() && a.ExpiresAt.Before(now) {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return alertTypes[out[i].Type] < alertTypes[out[j].Type]
	})
	return out, nil
}

func transitionAllowed(from, to string) bool {
	for _, t := range reportTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}
