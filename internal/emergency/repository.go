package emergency

import (
	"context"
	"errors"
)

var (
	ErrReportNotFound = errors.New("emergency: report not found")
	ErrAlertNotFound  = errors.New("emergency: alert not found")
)

// Repository stores reports and alerts.
type Repository interface {
	CreateReport(ctx context.Context, r *Report) error
	ReportByID(ctx context.Context, id string) (*Report, error)
	Reports(ctx context.Context) ([]*Report, error)
	UpdateReport(ctx context.Context, r *Report) error

	CreateAlert(ctx context.Context, a *Alert) error
	Alerts(ctx context.Context) ([]*Alert, error)
}
