package donations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/trunorth/platform/internal/middleware"
)

var creator = middleware.Actor{ID: "creator-1", Name: "Amina"}

func openCampaign(t *testing.T, svc *Service, target int64) Campaign {
	t.Helper()
	c, err := svc.CreateCampaign(context.Background(), creator, CreateCampaignInput{
		Title:        "Borehole for the village",
		Description:  "Clean water access for five hundred households",
		TargetAmount: target,
		Category:     "community",
		Deadline:     time.Now().Add(30 * 24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create campaign: %v", err)
	}
	return c
}

func TestCreateCampaignValidation(t *testing.T) {
	svc := NewService(NewMemoryRepository(), "NGN")
	ctx := context.Background()
	future := time.Now().Add(time.Hour)

	cases := []struct {
		name  string
		input CreateCampaignInput
	}{
		{"short title", CreateCampaignInput{Title: "Hey", Description: "long enough description here", TargetAmount: 100, Category: "community", Deadline: future}},
		{"short description", CreateCampaignInput{Title: "A good cause", Description: "short", TargetAmount: 100, Category: "community", Deadline: future}},
		{"zero target", CreateCampaignInput{Title: "A good cause", Description: "long enough description here", TargetAmount: 0, Category: "community", Deadline: future}},
		{"bad category", CreateCampaignInput{Title: "A good cause", Description: "long enough description here", TargetAmount: 100, Category: "yachts", Deadline: future}},
		{"past deadline", CreateCampaignInput{Title: "A good cause", Description: "long enough description here", TargetAmount: 100, Category: "community", Deadline: time.Now().Add(-time.Hour)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateCampaign(ctx, creator, tc.input); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestDonateRaisesAmount(t *testing.T) {
	svc := NewService(NewMemoryRepository(), "NGN")
	ctx := context.Background()
	c := openCampaign(t, svc, 10_000)

	donor := middleware.Actor{ID: "donor-1", Name: "Bala"}
	d, updated, err := svc.Donate(ctx, donor, DonateInput{CampaignID: c.ID, Amount: 2_500, Message: "Godspeed"})
	if err != nil {
		t.Fatalf("donate: %v", err)
	}
	if updated.RaisedAmount != 2_500 {
		t.Fatalf("expected raised 2500, got %d", updated.RaisedAmount)
	}
	if d.DonorName != "Bala" {
		t.Fatalf("expected donor name on public donation, got %q", d.DonorName)
	}
	if updated.Progress() != 25 {
		t.Fatalf("expected 25%% progress, got %v", updated.Progress())
	}
}

func TestAnonymousDonationHidesName(t *testing.T) {
	svc := NewService(NewMemoryRepository(), "NGN")
	ctx := context.Background()
	c := openCampaign(t, svc, 10_000)

	donor := middleware.Actor{ID: "donor-1", Name: "Bala"}
	d, _, err := svc.Donate(ctx, donor, DonateInput{CampaignID: c.ID, Amount: 100, Anonymous: true})
	if err != nil {
		t.Fatalf("donate: %v", err)
	}
	if d.DonorName != "" {
		t.Fatalf("anonymous donation must not carry a name, got %q", d.DonorName)
	}
}

func TestDonationCompletesCampaignAtTarget(t *testing.T) {
	svc := NewService(NewMemoryRepository(), "NGN")
	ctx := context.Background()
	c := openCampaign(t, svc, 1_000)

	donor := middleware.Actor{ID: "donor-1"}
	_, updated, err := svc.Donate(ctx, donor, DonateInput{CampaignID: c.ID, Amount: 1_500})
	if err != nil {
		t.Fatalf("donate: %v", err)
	}
	if updated.Status != CampaignCompleted {
		t.Fatalf("expected completed campaign, got %s", updated.Status)
	}
	if updated.Progress() != 100 {
		t.Fatalf("progress is capped at 100, got %v", updated.Progress())
	}

	// closed campaigns accept no further donations
	_, _, err = svc.Donate(ctx, donor, DonateInput{CampaignID: c.ID, Amount: 100})
	if !errors.Is(err, ErrCampaignClosed) {
		t.Fatalf("expected ErrCampaignClosed, got %v", err)
	}

	// completed campaigns drop out of the active listing
	active, err := svc.ListCampaigns(ctx, CampaignFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("expected no active campaigns, got %d", len(active))
	}
}

func TestMyDonationsCarriesCampaignTitle(t *testing.T) {
	svc := NewService(NewMemoryRepository(), "NGN")
	ctx := context.Background()
	c := openCampaign(t, svc, 10_000)

	donor := middleware.Actor{ID: "donor-1", Name: "Bala"}
	if _, _, err := svc.Donate(ctx, donor, DonateInput{CampaignID: c.ID, Amount: 100}); err != nil {
		t.Fatalf("donate: %v", err)
	}

	history, err := svc.MyDonations(ctx, donor.ID)
	if err != nil {
		t.Fatalf("my donations: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 donation, got %d", len(history))
	}
	if history[0].Campaign == nil || history[0].Campaign.Title != c.Title {
		t.Fatalf("expected campaign summary, got %+v", history[0].Campaign)
	}
}
