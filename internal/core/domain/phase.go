package domain

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PhaseStatus string

const (
	PhaseStatusNotStarted PhaseStatus = "not_started"
	PhaseStatusInProgress PhaseStatus = "in_progress"
	PhaseStatusCompleted  PhaseStatus = "completed"
)

func (s PhaseStatus) Valid() bool {
	return s.rank() >= 0
}

func (s PhaseStatus) rank() int {
	switch s {
	case PhaseStatusNotStarted:
		return 0
	case PhaseStatusInProgress:
		return 1
	case PhaseStatusCompleted:
		return 2
	default:
		return -1
	}
}

// CanTransitionTo allows staying put or moving forward, never back.
func (s PhaseStatus) CanTransitionTo(next PhaseStatus) bool {
	return next.Valid() && next.rank() >= s.rank()
}

type TaskSummary struct {
	Completed int
	Total     int
}

type Todo struct {
	ID        string
	Title     string
	Completed bool
	DueLabel  string
}

type Phase struct {
	ID          string
	ProjectID   string
	Position    int
	Name        string
	Description string
	Status      PhaseStatus
	Tasks       TaskSummary
	Deadline    time.Time
	Price       decimal.Decimal
	Deliverable *string
	Todos       []Todo
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type TodoDraft struct {
	Title    string
	DueLabel string
}

type TodoPatch struct {
	Title    *string
	DueLabel *string
}

type PhaseDraft struct {
	Name        string
	Description string
	Deadline    time.Time
	Price       *decimal.Decimal
	Deliverable *string
	Todos       []TodoDraft
}

// PhasePatch is an explicit edit. Status only changes through this path.
type PhasePatch struct {
	Name           *string
	Description    *string
	Deadline       *time.Time
	Price          *decimal.Decimal
	Deliverable    *string
	DeliverableSet bool
	Status         *PhaseStatus
}

// Normalize trims the draft and drops todo rows left blank in the form.
func (d PhaseDraft) Normalize() PhaseDraft {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
	d.Deliverable = trimmedOrNil(d.Deliverable)
	todos := make([]TodoDraft, 0, len(d.Todos))
	for _, t := range d.Todos {
		t.Title = strings.TrimSpace(t.Title)
		t.DueLabel = strings.TrimSpace(t.DueLabel)
		if t.Title == "" {
			continue
		}
		todos = append(todos, t)
	}
	d.Todos = todos
	return d
}

func ValidatePhaseDraft(d PhaseDraft) error {
	v := &ValidationError{}
	if d.Name == "" {
		v.Add("name", CodeRequired)
	}
	if d.Deadline.IsZero() {
		v.Add("deadline", CodeRequired)
	}
	switch {
	case d.Price == nil:
		v.Add("price", CodeRequired)
	case d.Price.IsNegative():
		v.Add("price", CodeNegative)
	case !fitsPriceScale(*d.Price):
		v.Add("price", CodeTooPrecise)
	}
	if len(d.Todos) == 0 {
		v.Add("todos", CodeRequired)
	}
	return v.OrNil()
}

// NewPhase builds a not-started phase from a normalized, valid draft.
func NewPhase(id, projectID string, position int, d PhaseDraft, newID func() string, now time.Time) Phase {
	p := Phase{
		ID:          id,
		ProjectID:   projectID,
		Position:    position,
		Name:        d.Name,
		Description: d.Description,
		Status:      PhaseStatusNotStarted,
		Deadline:    dateOnly(d.Deadline),
		Price:       *d.Price,
		Deliverable: d.Deliverable,
		Todos:       make([]Todo, 0, len(d.Todos)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, t := range d.Todos {
		p.Todos = append(p.Todos, Todo{ID: newID(), Title: t.Title, DueLabel: t.DueLabel})
	}
	p.Recount()
	return p
}

// Recount derives the task summary from the live todo set.
func (p *Phase) Recount() {
	completed := 0
	for _, t := range p.Todos {
		if t.Completed {
			completed++
		}
	}
	p.Tasks = TaskSummary{Completed: completed, Total: len(p.Todos)}
}

func (p Phase) CompletionPercentage() int {
	if p.Tasks.Total == 0 {
		return 0
	}
	return int(math.Round(float64(p.Tasks.Completed) / float64(p.Tasks.Total) * 100))
}

// DaysUntilDeadline counts whole calendar days; negative once the deadline passed.
func (p Phase) DaysUntilDeadline(today time.Time) int {
	return int(dateOnly(p.Deadline).Sub(dateOnly(today)).Hours() / 24)
}

func (p Phase) IsOverdue(today time.Time) bool {
	if p.Status == PhaseStatusCompleted {
		return false
	}
	return p.DaysUntilDeadline(today) < 0
}

func (p Phase) FindTodo(id string) (Todo, bool) {
	for _, t := range p.Todos {
		if t.ID == id {
			return t, true
		}
	}
	return Todo{}, false
}

func (p *Phase) AddTodo(id string, d TodoDraft) (Todo, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return Todo{}, &ValidationError{Fields: []FieldError{{Field: "title", Code: CodeRequired}}}
	}
	todo := Todo{ID: id, Title: title, DueLabel: strings.TrimSpace(d.DueLabel)}
	p.Todos = append(p.Todos, todo)
	p.Recount()
	return todo, nil
}

func (p *Phase) ToggleTodo(id string) (Todo, bool) {
	for i := range p.Todos {
		if p.Todos[i].ID == id {
			p.Todos[i].Completed = !p.Todos[i].Completed
			p.Recount()
			return p.Todos[i], true
		}
	}
	return Todo{}, false
}

func (p *Phase) EditTodo(id string, patch TodoPatch) (Todo, error) {
	for i := range p.Todos {
		if p.Todos[i].ID != id {
			continue
		}
		if patch.Title != nil {
			title := strings.TrimSpace(*patch.Title)
			if title == "" {
				return Todo{}, &ValidationError{Fields: []FieldError{{Field: "title", Code: CodeRequired}}}
			}
			p.Todos[i].Title = title
		}
		if patch.DueLabel != nil {
			p.Todos[i].DueLabel = strings.TrimSpace(*patch.DueLabel)
		}
		return p.Todos[i], nil
	}
	return Todo{}, ErrTodoNotFound
}

// RemoveTodo drops the todo if present. Removing the last one leaves total=0.
func (p *Phase) RemoveTodo(id string) bool {
	for i, t := range p.Todos {
		if t.ID == id {
			p.Todos = append(p.Todos[:i:i], p.Todos[i+1:]...)
			p.Recount()
			return true
		}
	}
	return false
}

// ApplyPatch edits p in place. Nothing is written when a field fails.
func (p *Phase) ApplyPatch(patch PhasePatch, now time.Time) error {
	v := &ValidationError{}
	var name string
	if patch.Name != nil {
		name = strings.TrimSpace(*patch.Name)
		if name == "" {
			v.Add("name", CodeRequired)
		}
	}
	if patch.Deadline != nil && patch.Deadline.IsZero() {
		v.Add("deadline", CodeRequired)
	}
	if patch.Price != nil {
		switch {
		case patch.Price.IsNegative():
			v.Add("price", CodeNegative)
		case !fitsPriceScale(*patch.Price):
			v.Add("price", CodeTooPrecise)
		}
	}
	if patch.Status != nil {
		switch {
		case !patch.Status.Valid():
			v.Add("status", CodeInvalid)
		case !p.Status.CanTransitionTo(*patch.Status):
			v.Add("status", CodeBackward)
		}
	}
	if err := v.OrNil(); err != nil {
		return err
	}

	if patch.Name != nil {
		p.Name = name
	}
	if patch.Description != nil {
		p.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Deadline != nil {
		p.Deadline = dateOnly(*patch.Deadline)
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.DeliverableSet {
		p.Deliverable = trimmedOrNil(patch.Deliverable)
	}
	if patch.Status != nil && *patch.Status != p.Status {
		p.Status = *patch.Status
		if p.Status == PhaseStatusCompleted {
			completedAt := now
			p.CompletedAt = &completedAt
		}
	}
	p.UpdatedAt = now
	return nil
}

func (p Phase) Clone() Phase {
	p.Todos = append([]Todo{}, p.Todos...)
	if p.Deliverable != nil {
		value := *p.Deliverable
		p.Deliverable = &value
	}
	if p.CompletedAt != nil {
		value := *p.CompletedAt
		p.CompletedAt = &value
	}
	return p
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
