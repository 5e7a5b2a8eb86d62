// Package insights derives dashboard figures from cached collections.
// Every function is pure: missing numeric fields count as zero and no
// input yields an error.
package insights

import (
	"fmt"
	"math"

	"github.com/dtroode/creatorhub/internal/model"
)

// Priority orders alerts and triage entries.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
	PriorityMedium Priority = "medium"
	PriorityNormal Priority = "normal"
	PriorityLow    Priority = "low"
)

// AlertKind is the stable label of an alert rule.
type AlertKind string

const (
	AlertLowPerformance AlertKind = "High priority"
	AlertFanActivity    AlertKind = "Notification"
	AlertContentGap     AlertKind = "AI recommendation"
)

const (
	// PerformanceAlertThreshold is the mean performance below which the
	// high priority alert fires.
	PerformanceAlertThreshold = 70
	// ContentAlertThreshold is the content count below which the
	// recommendation fires.
	ContentAlertThreshold = 5
)

// Alert is one dashboard notice.
type Alert struct {
	Kind     AlertKind
	Priority Priority
	Text     string
	Action   string
}

// MeanPerformance returns the average performance of users, 0 for none.
func MeanPerformance(users []model.User) float64 {
	if len(users) == 0 {
		return 0
	}
	var sum float64
	for _, u := range users {
		sum += u.Performance
	}
	return sum / float64(len(users))
}

// Alerts evaluates each rule independently, in priority order.
func Alerts(users []model.User, fans []model.Fan, content []model.Content) []Alert {
	alerts := make([]Alert, 0, 3)

	if avg := MeanPerformance(users); avg < PerformanceAlertThreshold {
		alerts = append(alerts, Alert{
			Kind:     AlertLowPerformance,
			Priority: PriorityHigh,
			Text:     fmt.Sprintf("Average employee performance is low (%d%%). Action required.", int(math.Round(avg))),
			Action:   "View analysis",
		})
	}

	if len(fans) > 0 {
		alerts = append(alerts, Alert{
			Kind:     AlertFanActivity,
			Priority: PriorityMedium,
			Text:     fmt.Sprintf("%d active fans.", len(fans)),
			Action:   "View details",
		})
	}

	if len(content) < ContentAlertThreshold {
		alerts = append(alerts, Alert{
			Kind:     AlertContentGap,
			Priority: PriorityLow,
			Text:     "Increase your content production to boost engagement.",
			Action:   "Create",
		})
	}

	return alerts
}
