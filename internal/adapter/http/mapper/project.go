package mapper

import (
	"errors"
	"time"

	"skillink/internal/adapter/http/dto"
	"skillink/internal/core/domain"
)

// PhaseOrder selects how a project's phases are listed. Next and previous
// links always follow the sequence.
type PhaseOrder string

const (
	OrderSequence PhaseOrder = "sequence"
	OrderPriority PhaseOrder = "priority"
)

var ErrUnknownOrder = errors.New("unknown phase order")

func ParsePhaseOrder(value string) (PhaseOrder, error) {
	switch PhaseOrder(value) {
	case "", OrderSequence:
		return OrderSequence, nil
	case OrderPriority:
		return OrderPriority, nil
	}
	return "", ErrUnknownOrder
}

func ToProjectItems(projects []domain.Project, today time.Time) []dto.ProjectItem {
	items := make([]dto.ProjectItem, 0, len(projects))
	for _, project := range projects {
		items = append(items, ToProjectItem(project, today, OrderSequence))
	}
	return items
}

func ToProjectItem(project domain.Project, today time.Time, order PhaseOrder) dto.ProjectItem {
	stats := project.Statistics()
	item := dto.ProjectItem{
		ID:           project.ID,
		PostID:       project.PostID,
		ClientID:     project.ClientID,
		FreelancerID: project.FreelancerID,
		Title:        project.Title,
		Origin:       string(project.Origin),
		PhasesLocked: project.PhasesLocked,
		Phases:       make([]dto.PhaseItem, 0, len(project.Phases)),
		PendingTodos: []dto.PendingTodoItem{},
		Statistics: dto.PhaseStatisticsItem{
			Total:             stats.Total,
			Completed:         stats.Completed,
			InProgress:        stats.InProgress,
			NotStarted:        stats.NotStarted,
			OverallCompletion: stats.OverallCompletion,
		},
		CreatedAt: project.CreatedAt.Format(time.RFC3339),
	}

	if project.ApplicantID != nil {
		value := *project.ApplicantID
		item.ApplicantID = &value
	}

	if current, ok := project.CurrentPhase(); ok {
		id := current.ID
		item.CurrentPhaseID = &id
	}

	phases := project.Phases
	if order == OrderPriority {
		phases = domain.SortPhasesByPriority(phases)
	}
	for _, phase := range phases {
		phaseItem := ToPhaseItem(phase, today)
		if next, ok := project.NextPhase(phase.ID); ok {
			id := next.ID
			phaseItem.NextPhaseID = &id
		}
		if previous, ok := project.PreviousPhase(phase.ID); ok {
			id := previous.ID
			phaseItem.PreviousPhaseID = &id
		}
		item.Phases = append(item.Phases, phaseItem)
	}

	for _, pending := range project.IncompleteTodos() {
		item.PendingTodos = append(item.PendingTodos, dto.PendingTodoItem{
			ID:        pending.ID,
			Title:     pending.Title,
			DueLabel:  pending.DueLabel,
			PhaseID:   pending.PhaseID,
			PhaseName: pending.PhaseName,
		})
	}

	return item
}

func ToPhaseItem(phase domain.Phase, today time.Time) dto.PhaseItem {
	item := dto.PhaseItem{
		ID:                phase.ID,
		ProjectID:         phase.ProjectID,
		Position:          phase.Position,
		Name:              phase.Name,
		Description:       phase.Description,
		Status:            string(phase.Status),
		Tasks:             dto.TaskSummaryItem{Completed: phase.Tasks.Completed, Total: phase.Tasks.Total},
		Completion:        phase.CompletionPercentage(),
		Deadline:          phase.Deadline.Format("2006-01-02"),
		DaysUntilDeadline: phase.DaysUntilDeadline(today),
		Overdue:           phase.IsOverdue(today),
		Price:             phase.Price,
		Todos:             make([]dto.TodoItem, 0, len(phase.Todos)),
		CreatedAt:         phase.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         phase.UpdatedAt.Format(time.RFC3339),
	}

	if phase.Deliverable != nil {
		value := *phase.Deliverable
		item.Deliverable = &value
	}

	if phase.CompletedAt != nil {
		value := phase.CompletedAt.Format("2006-01-02")
		item.CompletedAt = &value
	}

	for _, todo := range phase.Todos {
		item.Todos = append(item.Todos, dto.TodoItem{
			ID:        todo.ID,
			Title:     todo.Title,
			Completed: todo.Completed,
			DueLabel:  todo.DueLabel,
		})
	}

	return item
}
