package donations

import "time"

// Campaign categories.
var campaignCategories = map[string]bool{
	"medical":   true,
	"education": true,
	"emergency": true,
	"community": true,
	"religious": true,
}

// Campaign statuses.
const (
	CampaignActive    = "active"
	CampaignCompleted = "completed"
	CampaignCancelled = "cancelled"
)

// Campaign is a crowdfunding drive. Amounts are integer minor units.
type Campaign struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	TargetAmount int64     `json:"targetAmount"`
	RaisedAmount int64     `json:"raisedAmount"`
	Currency     string    `json:"currency"`
	Category     string    `json:"category"`
	CreatorID    string    `json:"creatorId"`
	CreatorName  string    `json:"creatorName"`
	Status       string    `json:"status"`
	Deadline     time.Time `json:"deadline"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Progress is the funded percentage, capped at 100.
func (c Campaign) Progress() float64 {
	if c.TargetAmount <= 0 {
		return 0
	}
	p := float64(c.RaisedAmount) / float64(c.TargetAmount) * 100
	if p > 100 {
		return 100
	}
	return p
}

// DaysLeft counts whole days until the deadline; negative once passed.
func (c Campaign) DaysLeft() int {
	return int(time.Until(c.Deadline).Hours() / 24)
}

// Donation records a single contribution. DonorName stays empty for anonymous
// donations.
type Donation struct {
	ID         string    `json:"id"`
	CampaignID string    `json:"campaignId"`
	DonorID    string    `json:"donorId,omitempty"`
	DonorName  string    `json:"donorName,omitempty"`
	Amount     int64     `json:"amount"`
	Currency   string    `json:"currency"`
	Message    string    `json:"message,omitempty"`
	Anonymous  bool      `json:"isAnonymous"`
	CreatedAt  time.Time `json:"createdAt"`
}
