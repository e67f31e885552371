// Package dashboard computes the per-user summary shown on the CRM
// landing page. All queries are read-only and request-scoped; a store
// failure aborts the whole summary rather than returning partial
// numbers.
package dashboard

import (
	"context"
	"fmt"
	"math"
	"time"

	"nexuscrm/model"
)

// ErrAggregationFailed wraps any store error raised while building a
// summary.
var ErrAggregationFailed = fmt.Errorf("dashboard aggregation failed")

// ActiveStages are the pipeline stages whose deal value counts toward
// revenue. Fixed policy, not user-configurable.
var ActiveStages = []model.Stage{
	model.StageQualified,
	model.StageProposal,
	model.StageNegotiation,
	model.StageClosedWon,
}

// RecentItemLimit is the number of most-recently-created assigned
// items included in the summary.
const RecentItemLimit = 5

// StageGroup is one row of the pipeline breakdown.
type StageGroup struct {
	Stage model.Stage `json:"stage"`
	Count int64       `json:"count"`
	Value float64     `json:"value"`
}

// Store is the read side the aggregator runs on.
type Store interface {
	// CountWorkspacesForUser counts workspaces where the user is the
	// owner or a member.
	CountWorkspacesForUser(ctx context.Context, userID uint) (int64, error)
	// SumWorkspaceValueByStages sums the value of workspaces owned by
	// the user whose stage is in the given set.
	SumWorkspaceValueByStages(ctx context.Context, ownerID uint, stages []model.Stage) (float64, error)
	CountContactsByOwner(ctx context.Context, ownerID uint) (int64, error)
	// Item counts are keyed on assignment alone; membership in the
	// parent workspace is not re-checked.
	CountItemsByAssignee(ctx context.Context, userID uint) (int64, error)
	CountItemsByAssigneeAndStatus(ctx context.Context, userID uint, status model.ItemStatus) (int64, error)
	// CountOverdueItemsByAssignee counts non-completed items assigned
	// to the user with a due date strictly before the given day.
	CountOverdueItemsByAssignee(ctx context.Context, userID uint, before time.Time) (int64, error)
	RecentItemsByAssignee(ctx context.Context, userID uint, limit int) ([]model.Item, error)
	StageBreakdownByOwner(ctx context.Context, ownerID uint) ([]StageGroup, error)
}

// Summary is the aggregated snapshot for one user. ProjectCount
// mirrors WorkspaceCount so both front-end route generations keep
// working.
type Summary struct {
	WorkspaceCount  int64        `json:"deals_count"`
	ProjectCount    int64        `json:"projects_count"`
	ActiveValue     float64      `json:"total_revenue"`
	ContactCount    int64        `json:"contacts_count"`
	AssignedCount   int64        `json:"my_tasks_count"`
	CompletedCount  int64        `json:"completed_tasks_count"`
	OverdueCount    int64        `json:"overdue_activities"`
	CompletionRatio int          `json:"completed_ratio"`
	RecentItems     []model.Item `json:"recent_tasks"`
	Pipeline        []StageGroup `json:"pipeline_data"`
}

// Aggregator builds Summary values. Stateless; one instance serves
// all requests.
type Aggregator struct {
	store Store
	now   func() time.Time
}

func NewAggregator(store Store) *Aggregator {
	return &Aggregator{store: store, now: time.Now}
}

// Summary computes the snapshot for the user. Any store error is
// returned wrapped in ErrAggregationFailed.
func (a *Aggregator) Summary(ctx context.Context, userID uint) (*Summary, error) {
	workspaceCount, err := a.store.CountWorkspacesForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: workspace count: %v", ErrAggregationFailed, err)
	}
	activeValue, err := a.store.SumWorkspaceValueByStages(ctx, userID, ActiveStages)
	if err != nil {
		return nil, fmt.Errorf("%w: active value: %v", ErrAggregationFailed, err)
	}
	contactCount, err := a.store.CountContactsByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: contact count: %v", ErrAggregationFailed, err)
	}
	assigned, err := a.store.CountItemsByAssignee(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: assigned count: %v", ErrAggregationFailed, err)
	}
	completed, err := a.store.CountItemsByAssigneeAndStatus(ctx, userID, model.StatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("%w: completed count: %v", ErrAggregationFailed, err)
	}
	overdue, err := a.store.CountOverdueItemsByAssignee(ctx, userID, startOfDay(a.now()))
	if err != nil {
		return nil, fmt.Errorf("%w: overdue count: %v", ErrAggregationFailed, err)
	}
	recent, err := a.store.RecentItemsByAssignee(ctx, userID, RecentItemLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: recent items: %v", ErrAggregationFailed, err)
	}
	pipeline, err := a.store.StageBreakdownByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: pipeline breakdown: %v", ErrAggregationFailed, err)
	}

	return &Summary{
		WorkspaceCount:  workspaceCount,
		ProjectCount:    workspaceCount,
		ActiveValue:     activeValue,
		ContactCount:    contactCount,
		AssignedCount:   assigned,
		CompletedCount:  completed,
		OverdueCount:    overdue,
		CompletionRatio: completionRatio(completed, assigned),
		RecentItems:     recent,
		Pipeline:        pipeline,
	}, nil
}

// completionRatio is the completed share in whole percent, rounded to
// nearest. Zero assigned items means zero, not a division by zero.
func completionRatio(completed, assigned int64) int {
	if assigned == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(assigned) * 100))
}

// startOfDay keeps the overdue comparison on calendar days: an item
// due yesterday is overdue, one due later today is not.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
