package donations

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/trunorth/platform/internal/middleware"
)

// Service implements crowdfunding operations.
type Service struct {
	repo     Repository
	currency string
}

// NewService builds a donations service.
func NewService(repo Repository, currency string) *Service {
	return &Service{repo: repo, currency: currency}
}

// CampaignFilter narrows a campaign listing.
type CampaignFilter struct {
	Category string
	Search   string
}

// ListCampaigns returns active campaigns matching the filter, most raised first.
func (s *Service) ListCampaigns(ctx context.Context, filter CampaignFilter) ([]Campaign, error) {
	all, err := s.repo.Campaigns(ctx)
	if err != nil {
		return nil, err
	}
	search := strings.ToLower(filter.Search)
	out := make([]Campaign, 0, len(all))
	for _, c := range all {
		if c.Status != CampaignActive {
			continue
		}
		if filter.Category != "" && c.Category != filter.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.Title), search) &&
			!strings.Contains(strings.ToLower(c.Description), search) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RaisedAmount > out[j].RaisedAmount })
	return out, nil
}

// GetCampaign returns a campaign and its most recent donations.
func (s *Service) GetCampaign(ctx context.Context, id string) (Campaign, []Donation, error) {
	c, err := s.repo.Campaign(ctx, id)
	if err != nil {
		return Campaign{}, nil, err
	}
	ds, err := s.repo.Donations(ctx, id)
	if err != nil {
		return Campaign{}, nil, err
	}
	sort.Slice(ds, func(i, j int) bool { return ds[i].CreatedAt.After(ds[j].CreatedAt) })
	if len(ds) > 20 {
		ds = ds[:20]
	}
	return c, ds, nil
}

// CreateCampaignInput captures a new campaign.
type CreateCampaignInput struct {
	Title        string
	Description  string
	TargetAmount int64
	Category     string
	Deadline     time.Time
}

// CreateCampaign opens a new crowdfunding drive.
func (s *Service) CreateCampaign(ctx context.Context, creator middleware.Actor, input CreateCampaignInput) (Campaign, error) {
	if len(input.Title) < 5 {
		return Campaign{}, errors.New("title must be at least 5 characters")
	}
	if len(input.Description) < 20 {
		return Campaign{}, errors.New("description must be at least 20 characters")
	}
	if input.TargetAmount <= 0 {
		return Campaign{}, errors.New("target amount must be positive")
	}
	if !campaignCategories[input.Category] {
		return Campaign{}, errors.New("unknown campaign category")
	}
	if !input.Deadline.After(time.Now()) {
		return Campaign{}, errors.New("deadline must be in the future")
	}

	name := creator.Name
	if name == "" {
		name = "Anonymous"
	}
	now := time.Now().UTC()
	c := Campaign{
		ID:           uuid.New().String(),
		Title:        input.Title,
		Description:  input.Description,
		TargetAmount: input.TargetAmount,
		Currency:     s.currency,
		Category:     input.Category,
		CreatorID:    creator.ID,
		CreatorName:  name,
		Status:       CampaignActive,
		Deadline:     input.Deadline.UTC(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateCampaign(ctx, c); err != nil {
		return Campaign{}, err
	}
	return c, nil
}

// DonateInput captures a contribution. Anonymous donations drop the donor
// name from the public record.
type DonateInput struct {
	CampaignID string
	Amount     int64
	Message    string
	Anonymous  bool
}

// Donate records a contribution and returns it with the updated campaign.
func (s *Service) Donate(ctx context.Context, donor middleware.Actor, input DonateInput) (Donation, Campaign, error) {
	if input.Amount <= 0 {
		return Donation{}, Campaign{}, errors.New("amount must be positive")
	}

	d := Donation{
		ID:         uuid.New().String(),
		CampaignID: input.CampaignID,
		DonorID:    donor.ID,
		Amount:     input.Amount,
		Currency:   s.currency,
		Message:    input.Message,
		Anonymous:  input.Anonymous,
		CreatedAt:  time.Now().UTC(),
	}
	if !input.Anonymous && donor.Name != "" {
		d.DonorName = donor.Name
	}

	c, err := s.repo.Donate(ctx, d)
	if err != nil {
		return Donation{}, Campaign{}, err
	}
	return d, c, nil
}

// MyCampaigns lists campaigns created by the user, newest first.
func (s *Service) MyCampaigns(ctx context.Context, userID string) ([]Campaign, error) {
	all, err := s.repo.Campaigns(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Campaign, 0)
	for _, c := range all {
		if c.CreatorID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// DonationWithCampaign pairs a donation with a summary of its campaign.
type DonationWithCampaign struct {
	Donation
	Campaign *CampaignSummary `json:"campaign"`
}

// CampaignSummary is the slim campaign reference attached to donation history.
type CampaignSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// MyDonations lists the user's donation history, newest first, enriched with
// campaign titles.
func (s *Service) MyDonations(ctx context.Context, userID string) ([]DonationWithCampaign, error) {
	ds, err := s.repo.DonationsByDonor(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.Slice(ds, func(i, j int) bool { return ds[i].CreatedAt.After(ds[j].CreatedAt) })

	out := make([]DonationWithCampaign, 0, len(ds))
	for _, d := range ds {
		entry := DonationWithCampaign{Donation: d}
		if c, err := s.repo.Campaign(ctx, d.CampaignID); err == nil {
			entry.Campaign = &CampaignSummary{ID: c.ID, Title: c.Title}
		}
		out = append(out, entry)
	}
	return out, nil
}
