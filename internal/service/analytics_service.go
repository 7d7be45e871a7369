package service

import (
	"context"
	"math"
	"time"

	"github.com/spec-kit/complaint-desk/internal/config"
	"github.com/spec-kit/complaint-desk/internal/domain"
	"github.com/spec-kit/complaint-desk/internal/repository"
	apperrors "github.com/spec-kit/complaint-desk/pkg/util/errorutil"
)

const trendMonths = 6

// Analytics is the dashboard snapshot.
type Analytics struct {
	TotalComplaints      int                            `json:"total_complaints"`
	CategoryDistribution map[string]int                 `json:"category_distribution"`
	ForwardingStatus     ForwardingStatus               `json:"forwarding_status"`
	ResolutionStatus     map[domain.ComplaintStatus]int `json:"resolution_status"`
	CompletionRate       CompletionRate                 `json:"completion_rate"`
	MonthlyTrends        map[string]int                 `json:"monthly_trends"`
	DepartmentStats      map[string]int                 `json:"department_stats"`
	AvgResponseHours     float64                        `json:"avg_response_hours"`
	TodayComplaints      int                            `json:"today_complaints"`
	AvgComplaintsPerDay  float64                        `json:"avg_complaints_per_day"`
}

// ForwardingStatus splits complaints by whether they were ever forwarded.
type ForwardingStatus struct {
	Forwarded    int `json:"forwarded"`
	NotForwarded int `json:"not_forwarded"`
}

// CompletionRate splits complaints by completion.
type CompletionRate struct {
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// KPIMetrics are the headline service-level numbers.
type KPIMetrics struct {
	TotalComplaints    int     `json:"total_complaints"`
	Resolved30Days     int     `json:"resolved_30_days"`
	AvgResolutionHours float64 `json:"avg_resolution_hours"`
	SLAComplianceRate  float64 `json:"sla_compliance_rate"`
	AvgCustomerRating  float64 `json:"avg_customer_rating"`
	EscalatedCases     int     `json:"escalated_cases"`
}

// AnalyticsService computes read-only aggregates from scratch on each call.
type AnalyticsService struct {
	complaints  repository.ComplaintRepository
	departments repository.DepartmentRepository
	feedback    repository.FeedbackRepository
	lifecycle   config.LifecycleConfig
	now         func() time.Time
}

// AnalyticsDependencies bundles repositories for analytics.
type AnalyticsDependencies struct {
	ComplaintRepo  repository.ComplaintRepository
	DepartmentRepo repository.DepartmentRepository
	FeedbackRepo   repository.FeedbackRepository
	Lifecycle      config.LifecycleConfig
	Now            func() time.Time
}

// NewAnalyticsService constructs the service.
func NewAnalyticsService(deps AnalyticsDependencies) *AnalyticsService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &AnalyticsService{
		complaints:  deps.ComplaintRepo,
		departments: deps.DepartmentRepo,
		feedback:    deps.FeedbackRepo,
		lifecycle:   deps.Lifecycle,
		now:         now,
	}
}

// GetAnalytics aggregates the full complaint set.
func (s *AnalyticsService) GetAnalytics(ctx context.Context) (*Analytics, error) {
	now := s.now()
	complaints, err := s.complaints.ListWithFilter(ctx, repository.ComplaintFilter{})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	depts, err := s.departments.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	deptNames := make(map[int64]string, len(depts))
	for _, d := range depts {
		deptNames[d.ID] = d.Name
	}

	a := &Analytics{
		TotalComplaints:      len(complaints),
		CategoryDistribution: map[string]int{},
		ResolutionStatus:     map[domain.ComplaintStatus]int{},
		MonthlyTrends:        monthKeys(now, trendMonths),
		DepartmentStats:      map[string]int{},
	}

	var (
		responseHours float64
		responded     int
		earliest      time.Time
	)
	year, month, day := now.Date()
	for _, c := range complaints {
		a.CategoryDistribution[c.Category]++
		a.ResolutionStatus[c.Status]++
		if c.Forwarded() {
			a.ForwardingStatus.Forwarded++
		}
		if c.IsCompleted() {
			a.CompletionRate.Completed++
		}
		if c.AssignedDepartmentID != nil {
			name, ok := deptNames[*c.AssignedDepartmentID]
			if !ok {
				name = "Unknown"
			}
			a.DepartmentStats[name]++
		}
		created := c.CreatedAt.In(now.Location())
		if key := created.Format("2006-01"); hasKey(a.MonthlyTrends, key) {
			a.MonthlyTrends[key]++
		}
		if y, m, d := created.Date(); y == year && m == month && d == day {
			a.TodayComplaints++
		}
		if c.ForwardedAt != nil {
			responseHours += c.ForwardedAt.Sub(c.CreatedAt).Hours()
			responded++
		}
		if earliest.IsZero() || c.CreatedAt.Before(earliest) {
			earliest = c.CreatedAt
		}
	}
	a.ForwardingStatus.NotForwarded = a.TotalComplaints - a.ForwardingStatus.Forwarded
	a.CompletionRate.Pending = a.TotalComplaints - a.CompletionRate.Completed
	if responded > 0 {
		a.AvgResponseHours = round1(responseHours / float64(responded))
	}
	if a.TotalComplaints > 0 {
		days := int(now.Sub(earliest).Hours() / 24)
		if days < 1 {
			days = 1
		}
		a.AvgComplaintsPerDay = round1(float64(a.TotalComplaints) / float64(days))
	}
	return a, nil
}

// GetKPIMetrics computes the headline service-level numbers.
func (s *AnalyticsService) GetKPIMetrics(ctx context.Context) (*KPIMetrics, error) {
	now := s.now()
	complaints, err := s.complaints.ListWithFilter(ctx, repository.ComplaintFilter{})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	avgRating, err := s.feedback.AverageRating(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	k := &KPIMetrics{TotalComplaints: len(complaints)}
	resolvedSince := now.AddDate(0, 0, -30)
	slaCutoff := now.Add(-s.lifecycle.SLAWindow())

	var (
		resolutionHours float64
		resolved        int
		oldEnough       int
		oldAndBreached  int
	)
	for _, c := range complaints {
		if c.SLABreached {
			k.EscalatedCases++
		}
		if c.IsCompleted() && c.CompletedAt != nil {
			resolutionHours += c.CompletedAt.Sub(c.CreatedAt).Hours()
			resolved++
			if c.CompletedAt.After(resolvedSince) {
				k.Resolved30Days++
			}
		}
		if c.CreatedAt.Before(slaCutoff) {
			oldEnough++
			if c.SLABreached {
				oldAndBreached++
			}
		}
	}
	if resolved > 0 {
		k.AvgResolutionHours = round1(resolutionHours / float64(resolved))
	}
	k.SLAComplianceRate = 100
	if oldEnough > 0 {
		k.SLAComplianceRate = round1(float64(oldEnough-oldAndBreached) / float64(oldEnough) * 100)
	}
	if avgRating != nil {
		k.AvgCustomerRating = round1(*avgRating)
	}
	return k, nil
}

// monthKeys returns zeroed YYYY-MM buckets for the last n calendar months.
func monthKeys(now time.Time, n int) map[string]int {
	keys := make(map[string]int, n)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := 0; i < n; i++ {
		keys[first.AddDate(0, -i, 0).Format("2006-01")] = 0
	}
	return keys
}

func hasKey(m map[string]int, key string) bool {
	_, ok := m[key]
	return ok
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
