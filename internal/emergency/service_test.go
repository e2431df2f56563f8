package emergency

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trunorth/platform/internal/identity"
	"github.com/trunorth/platform/internal/middleware"
	"github.com/trunorth/platform/internal/notification"
)

var (
	citizen    = middleware.Actor{ID: "user-1", Name: "Chidi", Role: identity.RoleUser}
	dispatcher = middleware.Actor{ID: "disp-1", Name: "Ngozi", Role: identity.RoleDispatcher}
	responder  = middleware.Actor{ID: "resp-1", Name: "Musa", Role: identity.RoleResponder}
	sysadmin   = middleware.Actor{ID: "admin-1", Name: "Root", Role: identity.RoleAdmin}
)

type recordingNotifier struct {
	messages []notification.Message
}

func (r *recordingNotifier) Send(_ context.Context, m notification.Message) error {
	r.messages = append(r.messages, m)
	return nil
}

func fileReport(t *testing.T, svc *Service, actor middleware.Actor) *Report {
	t.Helper()
	r, err := svc.CreateReport(context.Background(), actor, ReportInput{
		Type:     TypeFire,
		Severity: SeverityHigh,
		Title:    "Market fire",
		Location: Location{Address: "Central Market"},
	})
	require.NoError(t, err)
	return r
}

func TestCreateReportValidation(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil)
	ctx := context.Background()

	_, err := svc.CreateReport(ctx, citizen, ReportInput{Type: "volcano", Severity: SeverityHigh, Title: "x"})
	assert.ErrorIs(t, err, ErrInvalidReport)

	_, err = svc.CreateReport(ctx, citizen, ReportInput{Type: TypeFire, Severity: "extreme", Title: "x"})
	assert.ErrorIs(t, err, ErrInvalidReport)

	_, err = svc.CreateReport(ctx, citizen, ReportInput{Type: TypeFire, Severity: SeverityHigh})
	assert.ErrorIs(t, err, ErrInvalidReport)
}

func TestReportsVisibility(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil)
	ctx := context.Background()

	mine := fileReport(t, svc, citizen)
	fileReport(t, svc, middleware.Actor{ID: "user-2", Role: identity.RoleUser})

	own, err := svc.Reports(ctx, citizen, "")
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, mine.ID, own[0].ID)

	all, err := svc.Reports(ctx, dispatcher, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := svc.Reports(ctx, sysadmin, ReportPending)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	resolved, err := svc.Reports(ctx, sysadmin, ReportResolved)
	require.NoError(t, err)
	assert.Empty(t, resolved)
}

func TestUpdateStatusRoleGateAndLifecycle(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil)
	ctx := context.Background()
	r := fileReport(t, svc, citizen)

	_, err := svc.UpdateStatus(ctx, citizen, r.ID, ReportDispatched)
	assert.ErrorIs(t, err, ErrForbidden)

	// pending cannot jump straight to resolved
	_, err = svc.UpdateStatus(ctx, dispatcher, r.ID, ReportResolved)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	updated, err := svc.UpdateStatus(ctx, dispatcher, r.ID, ReportDispatched)
	require.NoError(t, err)
	assert.Equal(t, ReportDispatched, updated.Status)
	assert.Equal(t, dispatcher.ID, updated.AssignedTo)

	updated, err = svc.UpdateStatus(ctx, dispatcher, r.ID, ReportResolved)
	require.NoError(t, err)
	assert.Equal(t, ReportResolved, updated.Status)

	// resolved is terminal
	_, err = svc.UpdateStatus(ctx, dispatcher, r.ID, ReportDispatched)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRespondRecordsResponderOnce(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil)
	ctx := context.Background()
	r := fileReport(t, svc, citizen)

	_, err := svc.Respond(ctx, citizen, r.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Respond(ctx, responder, r.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{responder.ID}, updated.Responders)

	// responding twice is a no-op
	updated, err = svc.Respond(ctx, responder, r.ID)
	require.NoError(t, err)
	assert.Len(t, updated.Responders, 1)
}

func TestSOSFilesCriticalReportAndNotifies(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := NewService(NewMemoryRepository(), notifier)
	ctx := context.Background()

	r, err := svc.SOS(ctx, citizen, Location{Latitude: 9.05, Longitude: 7.49})
	require.NoError(t, err)
	assert.Equal(t, TypeMedical, r.Type)
	assert.Equal(t, SeverityCritical, r.Severity)
	assert.Equal(t, ReportPending, r.Status)

	require.Len(t, notifier.messages, 1)
	assert.Equal(t, notification.KindSOS, notifier.messages[0].Kind)
}

func TestAnonymousSOSAllowed(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil)

	r, err := svc.SOS(context.Background(), middleware.Actor{}, Location{})
	require.NoError(t, err)
	assert.Empty(t, r.ReporterID)
}

func TestAlertsAdminOnlyAndSeverityOrder(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil)
	ctx := context.Background()

	_, err := svc.CreateAlert(ctx, dispatcher, AlertInput{Type: AlertInfo, Title: "t", Message: "m"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.CreateAlert(ctx, sysadmin, AlertInput{Type: "doom", Title: "t", Message: "m"})
	assert.ErrorIs(t, err, ErrInvalidAlert)

	_, err = svc.CreateAlert(ctx, sysadmin, AlertInput{Type: AlertInfo, Title: "Road closure", Message: "Expect delays"})
	require.NoError(t, err)
	_, err = svc.CreateAlert(ctx, sysadmin, AlertInput{Type: AlertWarning, Title: "Flood warning", Message: "Move to high ground"})
	require.NoError(t, err)

	alerts, err := svc.ActiveAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, AlertWarning, alerts[0].Type)
}
