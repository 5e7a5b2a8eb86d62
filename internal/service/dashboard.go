package service

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/dtroode/creatorhub/internal/datacache"
	"github.com/dtroode/creatorhub/internal/insights"
	"github.com/dtroode/creatorhub/internal/logger"
	"github.com/dtroode/creatorhub/internal/model"
)

const recentFansLimit = 5

// Notice is a per-collection message shown instead of a widget's content.
type Notice struct {
	Collection model.Collection
	Failed     bool
	Text       string
}

// FanActivity is a fan with a relative last-activity label.
type FanActivity struct {
	Fan   model.Fan
	Label string
}

// Report is everything the dashboard renders for one snapshot.
type Report struct {
	GeneratedAt  time.Time
	UpdatedAt    time.Time
	Loading      bool
	Err          error
	Alerts       []insights.Alert
	Stats        insights.PerformanceStats
	Summary      insights.Summary
	Triage       []insights.TriageMessage
	TriageCounts insights.TriageCounts
	RecentFans   []FanActivity
	Notices      []Notice
}

// Dashboard turns data cache snapshots into reports.
type Dashboard struct {
	baseline *insights.Period
	logger   *logger.Logger
}

// NewDashboard creates a Dashboard. A nil baseline makes trends estimated.
func NewDashboard(baseline *insights.Period, logger *logger.Logger) *Dashboard {
	return &Dashboard{baseline: baseline, logger: logger}
}

// Report derives the dashboard from snap. It does no I/O.
func (d *Dashboard) Report(snap datacache.Snapshot, now time.Time) Report {
	triage := insights.Triage(snap.Users, snap.Fans)

	r := Report{
		GeneratedAt:  now,
		UpdatedAt:    snap.UpdatedAt,
		Loading:      snap.Loading,
		Err:          snap.Err,
		Alerts:       insights.Alerts(snap.Users, snap.Fans, snap.Content),
		Stats:        insights.Stats(snap.Users, snap.Fans, d.baseline),
		Summary:      insights.Summarize(snap.Users, snap.Content, snap.Images),
		Triage:       triage,
		TriageCounts: insights.CountTriage(triage),
		RecentFans:   recentFans(snap.Fans, now),
		Notices:      notices(snap),
	}

	if r.Err != nil {
		d.logger.Warn("Dashboard service: report built from an incomplete fetch",
			"error", r.Err.Error())
	}
	return r
}

func notices(snap datacache.Snapshot) []Notice {
	out := make([]Notice, 0, len(model.Collections))
	for _, c := range model.Collections {
		switch st := snap.State(c); st.Status {
		case model.StatusFailed:
			out = append(out, Notice{Collection: c, Failed: true, Text: fmt.Sprintf("could not load %s", c)})
		case model.StatusEmpty:
			out = append(out, Notice{Collection: c, Text: fmt.Sprintf("no %s yet", c)})
		}
	}
	return out
}

// recentFans returns the most recently active fans first. Fans without a
// known activity time come last in their original order.
func recentFans(fans []model.Fan, now time.Time) []FanActivity {
	sorted := slices.Clone(fans)
	slices.SortStableFunc(sorted, func(a, b model.Fan) int {
		switch {
		case a.LastActivity.IsZero() && b.LastActivity.IsZero():
			return 0
		case a.LastActivity.IsZero():
			return 1
		case b.LastActivity.IsZero():
			return -1
		}
		return cmp.Compare(b.LastActivity.UnixNano(), a.LastActivity.UnixNano())
	})

	n := min(len(sorted), recentFansLimit)
	out := make([]FanActivity, 0, n)
	for _, f := range sorted[:n] {
		out = append(out, FanActivity{Fan: f, Label: insights.ActivityLabel(f.LastActivity, now)})
	}
	return out
}
