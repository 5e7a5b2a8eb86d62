package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/creatorhub/internal/datacache"
	"github.com/dtroode/creatorhub/internal/insights"
	"github.com/dtroode/creatorhub/internal/model"
	"github.com/dtroode/creatorhub/internal/testutil"
)

func snapshot(states map[model.Collection]model.CollectionStatus) datacache.Snapshot {
	snap := datacache.Snapshot{
		Users:       []model.User{},
		Fans:        []model.Fan{},
		Content:     []model.Content{},
		Images:      []model.Image{},
		Collections: map[model.Collection]datacache.CollectionState{},
	}
	for c, st := range states {
		snap.Collections[c] = datacache.CollectionState{Status: st}
	}
	return snap
}

func TestDashboard_Report(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	snap := snapshot(map[model.Collection]model.CollectionStatus{
		model.CollectionUsers:   model.StatusOK,
		model.CollectionFans:    model.StatusOK,
		model.CollectionContent: model.StatusFailed,
		model.CollectionImages:  model.StatusEmpty,
	})
	snap.Users = []model.User{{ID: "1", Performance: 40}, {ID: "2", Performance: 90}}
	snap.Fans = []model.Fan{
		{ID: "a", Name: "Old", TotalSpent: 150, LastActivity: now.Add(-48 * time.Hour)},
		{ID: "b", Name: "Unknown"},
		{ID: "c", Name: "Fresh", TotalSpent: 10, LastActivity: now.Add(-5 * time.Minute)},
	}

	r := NewDashboard(nil, testutil.MakeNoopLogger()).Report(snap, now)

	assert.Equal(t, now, r.GeneratedAt)
	require.Len(t, r.Alerts, 3)
	assert.Equal(t, insights.AlertLowPerformance, r.Alerts[0].Kind)
	assert.Equal(t, 65.0, r.Stats.AvgPerformance)
	assert.True(t, r.Stats.Estimated)
	assert.Equal(t, insights.TriageCounts{Unread: 2, VIP: 1, Urgent: 1}, r.TriageCounts)

	assert.Equal(t, []Notice{
		{Collection: model.CollectionContent, Failed: true, Text: "could not load content"},
		{Collection: model.CollectionImages, Text: "no images yet"},
	}, r.Notices)

	require.Len(t, r.RecentFans, 3)
	assert.Equal(t, "Fresh", r.RecentFans[0].Fan.Name)
	assert.Equal(t, "5 min ago", r.RecentFans[0].Label)
	assert.Equal(t, "2 days ago", r.RecentFans[1].Label)
	assert.Equal(t, "Unknown", r.RecentFans[2].Label)
}

func TestDashboard_ReportWithBaseline(t *testing.T) {
	snap := snapshot(nil)
	snap.Users = []model.User{{ID: "1", Performance: 50}}

	r := NewDashboard(&insights.Period{Revenue: 2500}, testutil.MakeNoopLogger()).Report(snap, time.Now())
	assert.False(t, r.Stats.Estimated)
	assert.Equal(t, 100.0, r.Stats.Revenue.Trend)
}

func TestDashboard_ReportCarriesAggregateError(t *testing.T) {
	snap := snapshot(nil)
	snap.Err = errors.New("fetch cycle failed")
	snap.Loading = true

	r := NewDashboard(nil, testutil.MakeNoopLogger()).Report(snap, time.Now())
	assert.Error(t, r.Err)
	assert.True(t, r.Loading)
	assert.Empty(t, r.Notices, "idle collections have no notice")
}

func TestDashboard_RecentFansLimit(t *testing.T) {
	now := time.Now()
	snap := snapshot(nil)
	for i := range 8 {
		snap.Fans = append(snap.Fans, model.Fan{ID: model.ID(rune('a' + i)), LastActivity: now.Add(-time.Duration(i) * time.Hour)})
	}

	r := NewDashboard(nil, testutil.MakeNoopLogger()).Report(snap, now)
	require.Len(t, r.RecentFans, 5)
	assert.Equal(t, model.ID("a"), r.RecentFans[0].Fan.ID)
	assert.Equal(t, model.ID("e"), r.RecentFans[4].Fan.ID)
}
