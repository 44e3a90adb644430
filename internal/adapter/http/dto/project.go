package dto

import "github.com/shopspring/decimal"

// CreateProjectRequest accepts either {post_id, applicant_id} to accept an
// applicant or {freelancer_id, post} to hire directly.
type CreateProjectRequest struct {
	PostID       *uint64      `json:"post_id" binding:"omitempty,gt=0"`
	ApplicantID  *uint64      `json:"applicant_id" binding:"omitempty,gt=0"`
	FreelancerID *uint64      `json:"freelancer_id" binding:"omitempty,gt=0"`
	Post         *PostRequest `json:"post"`
}

type TaskSummaryItem struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

type TodoItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	DueLabel  string `json:"due_label,omitempty"`
}

type PhaseItem struct {
	ID                string          `json:"id"`
	ProjectID         string          `json:"project_id"`
	Position          int             `json:"position"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	Status            string          `json:"status"`
	Tasks             TaskSummaryItem `json:"tasks"`
	Completion        int             `json:"completion"`
	Deadline          string          `json:"deadline"`
	DaysUntilDeadline int             `json:"days_until_deadline"`
	Overdue           bool            `json:"overdue"`
	Price             decimal.Decimal `json:"price"`
	Deliverable       *string         `json:"deliverable,omitempty"`
	Todos             []TodoItem      `json:"todos"`
	CompletedAt       *string         `json:"completed_at,omitempty"`
	NextPhaseID       *string         `json:"next_phase_id,omitempty"`
	PreviousPhaseID   *string         `json:"previous_phase_id,omitempty"`
	CreatedAt         string          `json:"created_at"`
	UpdatedAt         string          `json:"updated_at"`
}

// PendingTodoItem is an open todo listed at project level.
type PendingTodoItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	DueLabel  string `json:"due_label,omitempty"`
	PhaseID   string `json:"phase_id"`
	PhaseName string `json:"phase_name"`
}

type PhaseStatisticsItem struct {
	Total             int `json:"total"`
	Completed         int `json:"completed"`
	InProgress        int `json:"in_progress"`
	NotStarted        int `json:"not_started"`
	OverallCompletion int `json:"overall_completion"`
}

type ProjectItem struct {
	ID             string              `json:"id"`
	PostID         uint64              `json:"post_id"`
	ClientID       uint64              `json:"client_id"`
	FreelancerID   uint64              `json:"freelancer_id"`
	ApplicantID    *uint64             `json:"applicant_id,omitempty"`
	Title          string              `json:"title"`
	Origin         string              `json:"origin"`
	PhasesLocked   bool                `json:"phases_locked"`
	Phases         []PhaseItem         `json:"phases"`
	PendingTodos   []PendingTodoItem   `json:"pending_todos"`
	Statistics     PhaseStatisticsItem `json:"statistics"`
	CurrentPhaseID *string             `json:"current_phase_id,omitempty"`
	CreatedAt      string              `json:"created_at"`
}
