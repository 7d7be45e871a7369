package service

import (
	"strings"

	"github.com/spec-kit/complaint-desk/internal/domain"
)

var (
	crisisKeywords     = []string{"urgent", "emergency", "critical", "immediately"}
	outageKeywords     = []string{"not working", "broken", "failed", "outage"}
	highPriorityGroups = []string{"Billing", "Technical"}
)

// DerivePriority applies the fixed rule order and names the rule that fired.
func DerivePriority(text, category string) (domain.Priority, string) {
	lower := strings.ToLower(text)
	if kw, ok := containsAny(lower, crisisKeywords); ok {
		return domain.PriorityHigh, "crisis keyword: " + kw
	}
	if kw, ok := containsAny(lower, outageKeywords); ok {
		return domain.PriorityHigh, "outage keyword: " + kw
	}
	for _, group := range highPriorityGroups {
		if category == group {
			return domain.PriorityHigh, "category: " + group
		}
	}
	return domain.PriorityMedium, "default"
}

func containsAny(text string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return kw, true
		}
	}
	return "", false
}
