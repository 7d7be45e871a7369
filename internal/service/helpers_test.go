package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-desk/internal/classifier"
	"github.com/spec-kit/complaint-desk/internal/config"
	"github.com/spec-kit/complaint-desk/internal/domain"
	"github.com/spec-kit/complaint-desk/internal/events"
	"github.com/spec-kit/complaint-desk/internal/notification"
	"github.com/spec-kit/complaint-desk/internal/repository"
	"github.com/spec-kit/complaint-desk/internal/repository/memory"
)

type sent struct {
	Address string
	Kind    notification.Kind
	Data    notification.Data
}

type recordingSink struct {
	mu        sync.Mutex
	sent      []sent
	delivered bool
}

func (r *recordingSink) Notify(_ context.Context, address string, kind notification.Kind, data notification.Data) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sent{Address: address, Kind: kind, Data: data})
	return r.delivered
}

func (r *recordingSink) kinds() []notification.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notification.Kind, len(r.sent))
	for i, s := range r.sent {
		out[i] = s.Kind
	}
	return out
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type harness struct {
	store       repository.Store
	clock       *testClock
	sink        *recordingSink
	dispatcher  events.Dispatcher
	complaints  *ComplaintService
	departments *DepartmentService
	feedback    *FeedbackService
	analytics   *AnalyticsService
}

func fakeCategory(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "bill"):
		return "Billing"
	case strings.Contains(lower, "internet"), strings.Contains(lower, "slow"):
		return "Technical"
	}
	return "Other"
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := memory.NewStore()
	clock := &testClock{now: time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)}
	sink := &recordingSink{delivered: true}
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	NewAuditService(dispatcher, store.Notes, zap.NewNop()).RegisterHandlers()

	mail := config.MailConfig{EscalationEmail: "manager@x.com", FeedbackBaseURL: "http://desk.local/"}
	return &harness{
		store:      store,
		clock:      clock,
		sink:       sink,
		dispatcher: dispatcher,
		complaints: NewComplaintService(ComplaintDependencies{
			ComplaintRepo:  store.Complaints,
			DepartmentRepo: store.Departments,
			UserRepo:       store.Users,
			NoteRepo:       store.Notes,
			Classifier:     classifier.Func(fakeCategory),
			Notifier:       sink,
			Dispatcher:     dispatcher,
			Mail:           mail,
			Now:            clock.Now,
		}),
		departments: NewDepartmentService(DepartmentDependencies{
			DepartmentRepo: store.Departments,
			ComplaintRepo:  store.Complaints,
		}),
		feedback: NewFeedbackService(FeedbackDependencies{
			FeedbackRepo:  store.Feedback,
			ComplaintRepo: store.Complaints,
			Dispatcher:    dispatcher,
			Now:           clock.Now,
		}),
		analytics: NewAnalyticsService(AnalyticsDependencies{
			ComplaintRepo:  store.Complaints,
			DepartmentRepo: store.Departments,
			FeedbackRepo:   store.Feedback,
			Now:            clock.Now,
		}),
	}
}

func (h *harness) department(t *testing.T, name, email string) *domain.Department {
	t.Helper()
	dept, err := h.departments.Add(context.Background(), name, email, "")
	require.NoError(t, err)
	return dept
}

func (h *harness) customer(t *testing.T, username string) *domain.User {
	t.Helper()
	user := &domain.User{Username: username, Email: username + "@mail.com", Role: domain.RoleCustomer, IsActive: true}
	require.NoError(t, h.store.Users.Create(context.Background(), user))
	return user
}

func (h *harness) complaint(t *testing.T, text string, customerID *int64) *domain.Complaint {
	t.Helper()
	c, err := h.complaints.Create(context.Background(), text, customerID)
	require.NoError(t, err)
	return c
}
