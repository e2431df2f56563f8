package emergency

import (
	"context"
	"sync"
)

// MemoryRepository is an in-memory Repository for development and tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	reports map[string]*Report
	order   []string
	alerts  []*Alert
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{reports: make(map[string]*Report)}
}

func (m *MemoryRepository) CreateReport(_ context.Context, r *Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *r
	m.reports[cp.ID] = &cp
	m.order = append(m.order, cp.ID)
	return nil
}

func (m *MemoryRepository) ReportByID(_ context.Context, id string) (*Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.reports[id]
	if !ok {
		return nil, ErrReportNotFound
	}
	cp := *r
	return &cp, nil
}

// Reports returns all reports, newest first.
func (m *MemoryRepository) Reports(_ context.Context) ([]*Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Report, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		cp := *m.reports[m.order[i]]
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MemoryRepository) UpdateReport(_ context.Context, r *Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.reports[r.ID]; !ok {
		return ErrReportNotFound
	}
	cp := *r
	m.reports[cp.ID] = &cp
	return nil
}

func (m *MemoryRepository) CreateAlert(_ context.Context, a *Alert) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *a
	m.alerts = append(m.alerts, &cp)
	return nil
}

func (m *MemoryRepository) Alerts(_ context.Context) ([]*Alert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Alert, 0, len(m.alerts))
	for _, a := range m.alerts {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}
