package donations

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrCampaignNotFound indicates a missing campaign.
	ErrCampaignNotFound = errors.New("campaign not found")

	// ErrCampaignClosed indicates the campaign no longer accepts donations.
	ErrCampaignClosed = errors.New("campaign is not accepting donations")
)

// Repository persists campaigns and donations. Donate must apply the donation
// and the raised-amount update atomically.
type Repository interface {
	CreateCampaign(ctx context.Context, c Campaign) error
	Campaign(ctx context.Context, id string) (Campaign, error)
	Campaigns(ctx context.Context) ([]Campaign, error)

	// Donate appends the donation, adds its amount to the campaign's raised
	// total, and completes the campaign when the target is reached. It returns
	// the updated campaign.
	Donate(ctx context.Context, d Donation) (Campaign, error)
	Donations(ctx context.Context, campaignID string) ([]Donation, error)
	DonationsByDonor(ctx context.Context, donorID string) ([]Donation, error)
}

type memoryRepository struct {
	mu        sync.RWMutex
	campaigns map[string]Campaign
	donations map[string]Donation
}

// NewMemoryRepository constructs an in-memory repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		campaigns: make(map[string]Campaign),
		donations: make(map[string]Donation),
	}
}

func (r *memoryRepository) CreateCampaign(_ context.Context, c Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.campaigns[c.ID] = c
	return nil
}

func (r *memoryRepository) Campaign(_ context.Context, id string) (Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.campaigns[id]
	if !ok {
		return Campaign{}, ErrCampaignNotFound
	}
	return c, nil
}

func (r *memoryRepository) Campaigns(_ context.Context) ([]Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Campaign, 0, len(r.campaigns))
	for _, c := range r.campaigns {
		out = append(out, c)
	}
	return out, nil
}

func (r *memoryRepository) Donate(_ context.Context, d Donation) (Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.campaigns[d.CampaignID]
	if !ok {
		return Campaign{}, ErrCampaignNotFound
	}
	if c.Status != CampaignActive {
		return Campaign{}, ErrCampaignClosed
	}
	r.donations[d.ID] = d
	c.RaisedAmount += d.Amount
	c.UpdatedAt = d.CreatedAt
	if c.RaisedAmount >= c.TargetAmount {
		c.Status = CampaignCompleted
	}
	r.campaigns[c.ID] = c
	return c, nil
}

func (r *memoryRepository) Donations(_ context.Context, campaignID string) ([]Donation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Donation, 0)
	for _, d := range r.donations {
		if d.CampaignID == campaignID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *memoryRepository) DonationsByDonor(_ context.Context, donorID string) ([]Donation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Donation, 0)
	for _, d := range r.donations {
		if d.DonorID == donorID {
			out = append(out, d)
		}
	}
	return out, nil
}
