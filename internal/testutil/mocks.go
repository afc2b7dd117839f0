// Package testutil provides hand-rolled test doubles for the
// repositories and pipeline collaborators.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/centerpulse/centerpulse/internal/domain/center"
	"github.com/centerpulse/centerpulse/internal/domain/rule"
	"github.com/centerpulse/centerpulse/internal/domain/sentalert"
	"github.com/centerpulse/centerpulse/internal/domain/user"
	"github.com/centerpulse/centerpulse/internal/metrics"
	"github.com/centerpulse/centerpulse/internal/notify"
)

// FakeClock returns a fixed instant, adjustable per test
type FakeClock struct {
	Time time.Time
}

// Now implements engine.Clock
func (c *FakeClock) Now() time.Time { return c.Time }

// Advance moves the fake clock forward
func (c *FakeClock) Advance(d time.Duration) { c.Time = c.Time.Add(d) }

// MockCenterRepository is a mock implementation of center.Repository
type MockCenterRepository struct {
	Centers []*center.Center
	Err     error
}

// NewMockCenterRepository creates a new mock center repository
func NewMockCenterRepository() *MockCenterRepository {
	return &MockCenterRepository{}
}

func (m *MockCenterRepository) Create(_ context.Context, c *center.Center) error {
	if m.Err != nil {
		return m.Err
	}
	m.Centers = append(m.Centers, c)
	return nil
}

func (m *MockCenterRepository) GetByID(_ context.Context, id string) (*center.Center, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, c := range m.Centers {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MockCenterRepository) Update(_ context.Context, c *center.Center) error {
	if m.Err != nil {
		return m.Err
	}
	for i, existing := range m.Centers {
		if existing.ID == c.ID {
			m.Centers[i] = c
			return nil
		}
	}
	return ErrNotFound
}

func (m *MockCenterRepository) Delete(_ context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	for i, c := range m.Centers {
		if c.ID == id {
			m.Centers = append(m.Centers[:i], m.Centers[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MockCenterRepository) List(_ context.Context) ([]*center.Center, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Centers, nil
}

func (m *MockCenterRepository) ListActive(_ context.Context) ([]*center.Center, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var active []*center.Center
	for _, c := range m.Centers {
		if c.Active {
			active = append(active, c)
		}
	}
	return active, nil
}

// MockRuleRepository is a mock implementation of rule.Repository
type MockRuleRepository struct {
	Rules []*rule.AlertRule
	Err   error
}

// NewMockRuleRepository creates a new mock rule repository
func NewMockRuleRepository() *MockRuleRepository {
	return &MockRuleRepository{}
}

func (m *MockRuleRepository) Create(_ context.Context, r *rule.AlertRule) error {
	if m.Err != nil {
		return m.Err
	}
	m.Rules = append(m.Rules, r)
	return nil
}

func (m *MockRuleRepository) GetByID(_ context.Context, id string) (*rule.AlertRule, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, r := range m.Rules {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MockRuleRepository) Update(_ context.Context, r *rule.AlertRule) error {
	if m.Err != nil {
		return m.Err
	}
	for i, existing := range m.Rules {
		if existing.ID == r.ID {
			m.Rules[i] = r
			return nil
		}
	}
	return ErrNotFound
}

func (m *MockRuleRepository) Delete(_ context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	for i, r := range m.Rules {
		if r.ID == id {
			m.Rules = append(m.Rules[:i], m.Rules[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MockRuleRepository) List(_ context.Context) ([]*rule.AlertRule, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Rules, nil
}

func (m *MockRuleRepository) ListEnabled(_ context.Context) ([]*rule.AlertRule, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var enabled []*rule.AlertRule
	for _, r := range m.Rules {
		if r.Enabled {
			enabled = append(enabled, r)
		}
	}
	return enabled, nil
}

// MockUserRepository is a mock implementation of user.Repository
type MockUserRepository struct {
	Users []*user.User
	Err   error
}

// NewMockUserRepository creates a new mock user repository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) GetByID(_ context.Context, id string) (*user.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MockUserRepository) ListByRoles(_ context.Context, roles []string) ([]*user.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	roleSet := make(map[string]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}
	var matched []*user.User
	for _, u := range m.Users {
		if u.Active && roleSet[u.Role] {
			matched = append(matched, u)
		}
	}
	return matched, nil
}

func (m *MockUserRepository) ListByMinPermission(_ context.Context, level int) ([]*user.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var matched []*user.User
	for _, u := range m.Users {
		if u.Active && u.PermissionLevel >= level {
			matched = append(matched, u)
		}
	}
	return matched, nil
}

// MockSentAlertRepository is a mock implementation of
// sentalert.Repository backed by an in-memory slice
type MockSentAlertRepository struct {
	mu     sync.Mutex
	Alerts []*sentalert.SentAlert

	InsertErr error
	ExistsErr error
	AckErr    error
	ListErr   error
}

// NewMockSentAlertRepository creates a new mock sent alert repository
func NewMockSentAlertRepository() *MockSentAlertRepository {
	return &MockSentAlertRepository{}
}

func (m *MockSentAlertRepository) Insert(_ context.Context, a *sentalert.SentAlert) error {
	if m.InsertErr != nil {
		return m.InsertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Alerts = append(m.Alerts, a)
	return nil
}

func (m *MockSentAlertRepository) GetByID(_ context.Context, id string) (*sentalert.SentAlert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.Alerts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MockSentAlertRepository) ExistsSince(_ context.Context, ruleID, centerID string, since time.Time) (bool, error) {
	if m.ExistsErr != nil {
		return false, m.ExistsErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.Alerts {
		if a.RuleID == ruleID && a.CenterID == centerID && !a.SentAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockSentAlertRepository) ListWithPagination(_ context.Context, filter sentalert.Filter, limit, offset int) ([]*sentalert.SentAlert, int64, error) {
	if m.ListErr != nil {
		return nil, 0, m.ListErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []*sentalert.SentAlert
	for _, a := range m.Alerts {
		if filter.CenterID != "" && a.CenterID != filter.CenterID {
			continue
		}
		if filter.AlertType != "" && a.AlertType != filter.AlertType {
			continue
		}
		if !filter.Since.IsZero() && a.SentAt.Before(filter.Since) {
			continue
		}
		matched = append(matched, a)
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (m *MockSentAlertRepository) Acknowledge(_ context.Context, id, by, action string, at time.Time) (bool, error) {
	if m.AckErr != nil {
		return false, m.AckErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.Alerts {
		if a.ID != id {
			continue
		}
		if a.AcknowledgedAt != nil {
			return false, nil
		}
		a.AcknowledgedBy = &by
		a.AcknowledgedAt = &at
		if action != "" {
			a.ResponseAction = &action
		}
		return true, nil
	}
	return false, nil
}

func (m *MockSentAlertRepository) Summarize(_ context.Context, since time.Time) (*sentalert.Summary, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &sentalert.Summary{
		ByType:   make(map[string]int),
		ByCenter: make(map[string]int),
	}
	for _, a := range m.Alerts {
		if a.SentAt.Before(since) {
			continue
		}
		s.Total++
		if a.AcknowledgedAt != nil {
			s.Acknowledged++
		}
		s.ByType[a.AlertType]++
		s.ByCenter[a.CenterID]++
	}
	s.Unacknowledged = s.Total - s.Acknowledged
	return s, nil
}

// MockMetricsProvider is a mock implementation of metrics.Provider
type MockMetricsProvider struct {
	Snapshot *metrics.Snapshot
	DQ       *metrics.DQStats
	Approval *metrics.ApprovalStats
	Err      error
}

func (m *MockMetricsProvider) SalesSnapshot(_ context.Context, centerID string, _ time.Time) (*metrics.Snapshot, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Snapshot != nil {
		return m.Snapshot, nil
	}
	return &metrics.Snapshot{CenterID: centerID}, nil
}

func (m *MockMetricsProvider) DQStats(_ context.Context, _ string, _ time.Time) (*metrics.DQStats, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.DQ != nil {
		return m.DQ, nil
	}
	return &metrics.DQStats{}, nil
}

func (m *MockMetricsProvider) ApprovalStats(_ context.Context, _ string, _ time.Time) (*metrics.ApprovalStats, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Approval != nil {
		return m.Approval, nil
	}
	return &metrics.ApprovalStats{}, nil
}

// CaptureDispatcher records dispatch calls without delivering anything
type CaptureDispatcher struct {
	mu      sync.Mutex
	Calls   []DispatchCall
	Results []notify.DeliveryResult
}

// DispatchCall records the arguments of one Dispatch invocation
type DispatchCall struct {
	Channels []string
	Message  notify.Message
}

func (d *CaptureDispatcher) Dispatch(_ context.Context, channels []string, msg notify.Message) []notify.DeliveryResult {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Calls = append(d.Calls, DispatchCall{Channels: channels, Message: msg})
	if d.Results != nil {
		return d.Results
	}
	results := make([]notify.DeliveryResult, len(channels))
	for i, ch := range channels {
		results[i] = notify.DeliveryResult{Channel: ch, Success: true}
	}
	return results
}

// CaptureTransport records per-channel sends for dispatcher tests
type CaptureTransport struct {
	ChannelName string
	Outcome     notify.Outcome
	Err         error

	mu   sync.Mutex
	Sent []notify.Message
}

func (t *CaptureTransport) Channel() string { return t.ChannelName }

func (t *CaptureTransport) Send(_ context.Context, msg notify.Message) (notify.Outcome, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return notify.OutcomeDelivered, t.Err
	}
	t.Sent = append(t.Sent, msg)
	return t.Outcome, nil
}
