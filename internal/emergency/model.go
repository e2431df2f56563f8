package emergency

import "time"

// Report types.
const (
	TypeMedical         = "medical"
	TypeFire            = "fire"
	TypeCrime           = "crime"
	TypeAccident        = "accident"
	TypeNaturalDisaster = "natural_disaster"
	TypeOther           = "other"
)

// Report severities.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Report statuses.
const (
	ReportPending    = "pending"
	ReportDispatched = "dispatched"
	ReportResolved   = "resolved"
	ReportCancelled  = "cancelled"
)

// Alert types, most to least severe.
const (
	AlertWarning  = "warning"
	AlertWatch    = "watch"
	AlertAdvisory = "advisory"
	AlertInfo     = "info"
)

// Location pins a report to a place. All fields are optional.
type Location struct {
	Address   string  `json:"address,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// Report is a citizen-filed emergency.
type Report struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Severity     string    `json:"severity"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Location     Location  `json:"location"`
	ReporterID   string    `json:"reporterId,omitempty"`
	ReporterName string    `json:"reporterName,omitempty"`
	Status       string    `json:"status"`
	AssignedTo   string    `json:"assignedTo,omitempty"`
	Responders   []string  `json:"responders"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Alert is a broadcast advisory for affected areas.
type Alert struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Title         string    `json:"title"`
	Message       string    `json:"message"`
	AffectedAreas []string  `json:"affectedAreas"`
	ExpiresAt     time.Time `json:"expiresAt"`
	Active        bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Hotlines returns the static emergency contact numbers.
func Hotlines() map[string]string {
	return map[string]string{
		"police":    "112",
		"fire":      "112",
		"ambulance": "112",
		"national":  "0805-9000-999",
		"trunorth":  "0700-TRUNORTH",
	}
}
