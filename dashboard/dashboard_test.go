package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"nexuscrm/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore aggregates over in-memory slices, mirroring what the SQL
// queries compute.
type fakeStore struct {
	workspaces  []model.Workspace
	memberships []model.Membership
	contacts    []model.Contact
	items       []model.Item
	err         error
}

func (f *fakeStore) CountWorkspacesForUser(_ context.Context, userID uint) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	memberOf := map[uint]bool{}
	for _, m := range f.memberships {
		if m.UserID == userID {
			memberOf[m.WorkspaceID] = true
		}
	}
	var count int64
	for _, ws := range f.workspaces {
		if ws.OwnerID == userID || memberOf[ws.ID] {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) SumWorkspaceValueByStages(
	_ context.Context, ownerID uint, stages []model.Stage) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	inSet := map[model.Stage]bool{}
	for _, s := range stages {
		inSet[s] = true
	}
	var sum float64
	for _, ws := range f.workspaces {
		if ws.OwnerID == ownerID && inSet[ws.Stage] {
			sum += ws.Value
		}
	}
	return sum, nil
}

func (f *fakeStore) CountContactsByOwner(_ context.Context, ownerID uint) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var count int64
	for _, c := range f.contacts {
		if c.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) CountItemsByAssignee(_ context.Context, userID uint) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var count int64
	for _, i := range f.items {
		if i.AssigneeID != nil && *i.AssigneeID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) CountItemsByAssigneeAndStatus(
	_ context.Context, userID uint, status model.ItemStatus) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var count int64
	for _, i := range f.items {
		if i.AssigneeID != nil && *i.AssigneeID == userID && i.Status == status {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) CountOverdueItemsByAssignee(
	_ context.Context, userID uint, before time.Time) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var count int64
	for _, i := range f.items {
		if i.AssigneeID == nil || *i.AssigneeID != userID {
			continue
		}
		if i.Status == model.StatusCompleted || i.DueDate == nil {
			continue
		}
		if i.DueDate.Before(before) {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) RecentItemsByAssignee(
	_ context.Context, userID uint, limit int) ([]model.Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	var items []model.Item
	for _, i := range f.items {
		if i.AssigneeID != nil && *i.AssigneeID == userID {
			items = append(items, i)
		}
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (f *fakeStore) StageBreakdownByOwner(
	_ context.Context, ownerID uint) ([]StageGroup, error) {
	if f.err != nil {
		return nil, f.err
	}
	byStage := map[model.Stage]*StageGroup{}
	var groups []StageGroup
	for _, ws := range f.workspaces {
		if ws.OwnerID != ownerID {
			continue
		}
		g, ok := byStage[ws.Stage]
		if !ok {
			groups = append(groups, StageGroup{Stage: ws.Stage})
			g = &groups[len(groups)-1]
			byStage[ws.Stage] = g
		}
		g.Count++
		g.Value += ws.Value
	}
	return groups, nil
}

func newAggregator(store Store, now time.Time) *Aggregator {
	a := NewAggregator(store)
	a.now = func() time.Time { return now }
	return a
}

func assignedItem(userID uint, status model.ItemStatus) model.Item {
	id := userID
	return model.Item{AssigneeID: &id, Status: status}
}

func ownedWorkspace(id, owner uint, stage model.Stage, value float64) model.Workspace {
	ws := model.Workspace{OwnerID: owner, Stage: stage, Value: value}
	ws.ID = id
	return ws
}

func TestCompletionRatio(t *testing.T) {
	cases := []struct {
		name      string
		completed int64
		assigned  int64
		want      int
	}{
		{"no items", 0, 0, 0},
		{"quarter", 1, 4, 25},
		{"two thirds rounds up", 2, 3, 67},
		{"all done", 5, 5, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, completionRatio(tc.completed, tc.assigned))
		})
	}
}

func TestSummaryCounts(t *testing.T) {
	const user = uint(1)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{
		items: []model.Item{
			assignedItem(user, model.StatusCompleted),
			assignedItem(user, model.StatusTodo),
			assignedItem(user, model.StatusInProgress),
			assignedItem(user, model.StatusReview),
			assignedItem(2, model.StatusTodo),
		},
	}
	agg := newAggregator(store, now)

	summary, err := agg.Summary(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, int64(4), summary.AssignedCount)
	assert.Equal(t, int64(1), summary.CompletedCount)
	assert.Equal(t, 25, summary.CompletionRatio)
}

func TestSummaryActiveValue(t *testing.T) {
	const user = uint(1)
	store := &fakeStore{
		workspaces: []model.Workspace{
			ownedWorkspace(1, user, model.StageQualified, 1000),
			ownedWorkspace(2, user, model.StageDiscovery, 500),
			ownedWorkspace(3, 2, model.StageQualified, 9000),
		},
	}
	agg := newAggregator(store, time.Now())

	summary, err := agg.Summary(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, float64(1000), summary.ActiveValue, "discovery stage value is not active revenue")
}

func TestSummaryOverdue(t *testing.T) {
	const user = uint(1)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	pastDue := assignedItem(user, model.StatusInProgress)
	pastDue.DueDate = &yesterday
	pastDone := assignedItem(user, model.StatusCompleted)
	pastDone.DueDate = &yesterday
	futureDue := assignedItem(user, model.StatusTodo)
	futureDue.DueDate = &tomorrow
	noDue := assignedItem(user, model.StatusTodo)

	store := &fakeStore{items: []model.Item{pastDue, pastDone, futureDue, noDue}}
	agg := newAggregator(store, now)

	summary, err := agg.Summary(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.OverdueCount)
}

func TestSummaryWorkspaceCountOwnerAndMember(t *testing.T) {
	const user = uint(1)
	store := &fakeStore{
		workspaces: []model.Workspace{
			ownedWorkspace(1, user, model.StageDiscovery, 0),
			ownedWorkspace(2, 2, model.StageDiscovery, 0),
			ownedWorkspace(3, 3, model.StageDiscovery, 0),
		},
		memberships: []model.Membership{
			{WorkspaceID: 1, UserID: user}, // owner row, must not double count
			{WorkspaceID: 2, UserID: user},
		},
	}
	agg := newAggregator(store, time.Now())

	summary, err := agg.Summary(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.WorkspaceCount)
	assert.Equal(t, summary.WorkspaceCount, summary.ProjectCount, "projects_count mirrors deals_count")
}

func TestSummaryRecentLimit(t *testing.T) {
	const user = uint(1)
	store := &fakeStore{}
	for i := 0; i < 8; i++ {
		store.items = append(store.items, assignedItem(user, model.StatusTodo))
	}
	agg := newAggregator(store, time.Now())

	summary, err := agg.Summary(context.Background(), user)
	require.NoError(t, err)
	assert.Len(t, summary.RecentItems, RecentItemLimit)
}

func TestSummaryPipelineBreakdown(t *testing.T) {
	const user = uint(1)
	store := &fakeStore{
		workspaces: []model.Workspace{
			ownedWorkspace(1, user, model.StageQualified, 1000),
			ownedWorkspace(2, user, model.StageQualified, 500),
			ownedWorkspace(3, user, model.StageClosedLost, 700),
		},
	}
	agg := newAggregator(store, time.Now())

	summary, err := agg.Summary(context.Background(), user)
	require.NoError(t, err)
	require.Len(t, summary.Pipeline, 2)
	byStage := map[model.Stage]StageGroup{}
	for _, g := range summary.Pipeline {
		byStage[g.Stage] = g
	}
	assert.Equal(t, int64(2), byStage[model.StageQualified].Count)
	assert.Equal(t, float64(1500), byStage[model.StageQualified].Value)
	assert.Equal(t, int64(1), byStage[model.StageClosedLost].Count)
}

func TestSummaryStoreFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	agg := newAggregator(store, time.Now())

	summary, err := agg.Summary(context.Background(), 1)
	assert.Nil(t, summary, "no partial results on failure")
	assert.ErrorIs(t, err, ErrAggregationFailed)
}
