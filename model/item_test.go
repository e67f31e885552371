package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	cases := []struct {
		name    string
		due     *time.Time
		status  ItemStatus
		overdue bool
	}{
		{"past due in progress", &yesterday, StatusInProgress, true},
		{"past due completed", &yesterday, StatusCompleted, false},
		{"future due", &tomorrow, StatusTodo, false},
		{"no due date", nil, StatusTodo, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := Item{DueDate: tc.due, Status: tc.status}
			assert.Equal(t, tc.overdue, item.IsOverdue(now))
		})
	}
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, StageQualified.Valid())
	assert.False(t, Stage("archived").Valid())

	assert.True(t, StatusInProgress.Valid())
	assert.False(t, ItemStatus("paused").Valid())

	assert.True(t, PriorityUrgent.Valid())
	assert.False(t, Priority("critical").Valid())

	assert.True(t, MemberRoleMember.Valid())
	assert.False(t, MemberRole("viewer").Valid())
}
