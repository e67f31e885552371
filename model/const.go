package model

// User role in platform
type Role uint8

const (
	_ Role = iota
	RoleUser
	RoleAdmin
)

// Member role inside a workspace
type MemberRole string

const (
	MemberRoleOwner  MemberRole = "owner"
	MemberRoleAdmin  MemberRole = "admin"
	MemberRoleMember MemberRole = "member"
)

// Pipeline stage of a workspace (deal)
type Stage string

const (
	StageDiscovery   Stage = "discovery"
	StageQualified   Stage = "qualified"
	StageProposal    Stage = "proposal"
	StageNegotiation Stage = "negotiation"
	StageClosedWon   Stage = "closed_won"
	StageClosedLost  Stage = "closed_lost"
)

// Item status
type ItemStatus string

const (
	StatusTodo       ItemStatus = "todo"
	StatusInProgress ItemStatus = "in_progress"
	StatusReview     ItemStatus = "review"
	StatusCompleted  ItemStatus = "completed"
)

// Item priority
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Workspace type: team workspaces are shared, personal ones are
// only listed for their owner.
type WorkspaceType string

const (
	TypeTeam     WorkspaceType = "team"
	TypePersonal WorkspaceType = "personal"
)

func (r MemberRole) Valid() bool {
	switch r {
	case MemberRoleOwner, MemberRoleAdmin, MemberRoleMember:
		return true
	}
	return false
}

func (s Stage) Valid() bool {
	switch s {
	case StageDiscovery, StageQualified, StageProposal,
		StageNegotiation, StageClosedWon, StageClosedLost:
		return true
	}
	return false
}

func (s ItemStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusCompleted:
		return true
	}
	return false
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}
