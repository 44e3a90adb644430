package ports

import (
	"context"

	"skillink/internal/core/domain"
)

type ProjectRepository interface {
	Create(ctx context.Context, project domain.Project) error
	// Get returns the project without its phases.
	Get(ctx context.Context, id string) (domain.Project, error)
	Update(ctx context.Context, project domain.Project) error
	// ListByParticipant returns the projects where userID is the client or
	// the freelancer, most recent first, without their phases.
	ListByParticipant(ctx context.Context, userID uint64) ([]domain.Project, error)
}

type PhaseRepository interface {
	Create(ctx context.Context, phase domain.Phase) error
	Get(ctx context.Context, id string) (domain.Phase, error)
	GetByTodoID(ctx context.Context, todoID string) (domain.Phase, error)
	Update(ctx context.Context, phase domain.Phase) error
	Delete(ctx context.Context, id string) error
	// ListByProject returns phases in sequence order.
	ListByProject(ctx context.Context, projectID string) ([]domain.Phase, error)
}

type PhaseService interface {
	GetProject(ctx context.Context, id string) (domain.Project, error)
	ListProjects(ctx context.Context, actor domain.Actor) ([]domain.Project, error)
	LockPhases(ctx context.Context, actor domain.Actor, projectID string) (domain.Project, error)
	UnlockPhases(ctx context.Context, actor domain.Actor, projectID string) (domain.Project, error)
	AddPhase(ctx context.Context, actor domain.Actor, projectID string, draft domain.PhaseDraft) (domain.Phase, error)
	UpdatePhase(ctx context.Context, actor domain.Actor, phaseID string, patch domain.PhasePatch) (domain.Phase, error)
	DeletePhase(ctx context.Context, actor domain.Actor, phaseID string) error
	AddTodo(ctx context.Context, actor domain.Actor, phaseID string, draft domain.TodoDraft) (domain.Phase, error)
	ToggleTodo(ctx context.Context, actor domain.Actor, todoID string) (domain.Phase, error)
	EditTodo(ctx context.Context, actor domain.Actor, todoID string, patch domain.TodoPatch) (domain.Phase, error)
	DeleteTodo(ctx context.Context, actor domain.Actor, todoID string) (domain.Phase, error)
}
