package service

import (
	"context"
	"errors"

	"skillink/internal/core/domain"
	"skillink/internal/core/ports"
)

type PhaseService struct {
	*runtime
	projects ports.ProjectRepository
	phases   ports.PhaseRepository
}

func (s *PhaseService) GetProject(ctx context.Context, id string) (domain.Project, error) {
	return s.loadProject(ctx, id)
}

// ListProjects returns the actor's projects, as client or as freelancer,
// with their phases.
func (s *PhaseService) ListProjects(ctx context.Context, actor domain.Actor) ([]domain.Project, error) {
	if !actor.IsClient() && !actor.IsFreelancer() {
		return nil, domain.Forbidden(actor, "list projects")
	}

	projects, err := s.projects.ListByParticipant(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		phases, err := s.phases.ListByProject(ctx, projects[i].ID)
		if err != nil {
			return nil, err
		}
		projects[i].Phases = phases
	}
	return projects, nil
}

func (s *PhaseService) LockPhases(ctx context.Context, actor domain.Actor, projectID string) (domain.Project, error) {
	return s.setPhasesLocked(ctx, actor, projectID, true)
}

func (s *PhaseService) UnlockPhases(ctx context.Context, actor domain.Actor, projectID string) (domain.Project, error) {
	return s.setPhasesLocked(ctx, actor, projectID, false)
}

func (s *PhaseService) setPhasesLocked(ctx context.Context, actor domain.Actor, projectID string, locked bool) (domain.Project, error) {
	unlock := s.locks.Lock(projectKey(projectID))
	defer unlock()

	project, err := s.loadProject(ctx, projectID)
	if err != nil {
		return domain.Project{}, err
	}
	if !project.IsClient(actor) {
		return domain.Project{}, domain.Forbidden(actor, "lock project phases")
	}
	if project.PhasesLocked == locked {
		return project, nil
	}

	project.PhasesLocked = locked
	if err := s.projects.Update(ctx, project); err != nil {
		return domain.Project{}, err
	}

	event := EventPhasesUnlocked
	if locked {
		event = EventPhasesLocked
	}
	s.publish(ctx, event, projectEvent(project))
	return project, nil
}

// AddPhase appends a not-started phase at the end of the project's sequence.
func (s *PhaseService) AddPhase(ctx context.Context, actor domain.Actor, projectID string, draft domain.PhaseDraft) (domain.Phase, error) {
	unlock := s.locks.Lock(projectKey(projectID))
	defer unlock()

	project, err := s.loadProject(ctx, projectID)
	if err != nil {
		return domain.Phase{}, err
	}
	if err := authorizePhaseEdit(project, actor); err != nil {
		return domain.Phase{}, err
	}

	d := draft.Normalize()
	if err := domain.ValidatePhaseDraft(d); err != nil {
		return domain.Phase{}, err
	}

	position := 0
	if n := len(project.Phases); n > 0 {
		position = project.Phases[n-1].Position + 1
	}
	phase := domain.NewPhase(s.newID(), projectID, position, d, s.newID, s.now())
	if err := s.phases.Create(ctx, phase); err != nil {
		return domain.Phase{}, err
	}

	s.publish(ctx, EventPhaseAdded, phaseEvent(phase, "", actor))
	return phase, nil
}

// UpdatePhase is the only path that changes a phase's status. Only the
// project's client may mark a phase completed.
func (s *PhaseService) UpdatePhase(ctx context.Context, actor domain.Actor, phaseID string, patch domain.PhasePatch) (domain.Phase, error) {
	phase, project, unlock, err := s.lockPhase(ctx, phaseID)
	if err != nil {
		return domain.Phase{}, err
	}
	defer unlock()

	if err := authorizePhaseEdit(project, actor); err != nil {
		return domain.Phase{}, err
	}
	// Signing a phase off is the client's call; the freelancer only starts it.
	completes := patch.Status != nil && *patch.Status == domain.PhaseStatusCompleted
	if completes && phase.Status != domain.PhaseStatusCompleted && !project.IsClient(actor) {
		return domain.Phase{}, domain.Forbidden(actor, "approve phase")
	}

	previous := phase.Status
	if err := phase.ApplyPatch(patch, s.now()); err != nil {
		return domain.Phase{}, err
	}
	if err := s.phases.Update(ctx, phase); err != nil {
		return domain.Phase{}, err
	}

	s.publish(ctx, EventPhaseUpdated, phaseEvent(phase, "", actor))
	if previous != domain.PhaseStatusCompleted && phase.Status == domain.PhaseStatusCompleted {
		s.publish(ctx, EventPhaseCompleted, phaseEvent(phase, "", actor))
	}
	return phase, nil
}

// DeletePhase is idempotent.
func (s *PhaseService) DeletePhase(ctx context.Context, actor domain.Actor, phaseID string) error {
	phase, project, unlock, err := s.lockPhase(ctx, phaseID)
	if errors.Is(err, domain.ErrPhaseNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	defer unlock()

	if err := authorizePhaseEdit(project, actor); err != nil {
		return err
	}
	if err := s.phases.Delete(ctx, phaseID); err != nil {
		return err
	}

	s.publish(ctx, EventPhaseDeleted, phaseEvent(phase, "", actor))
	return nil
}

func (s *PhaseService) AddTodo(ctx context.Context, actor domain.Actor, phaseID string, draft domain.TodoDraft) (domain.Phase, error) {
	phase, project, unlock, err := s.lockPhase(ctx, phaseID)
	if err != nil {
		return domain.Phase{}, err
	}
	defer unlock()

	return s.mutateTodo(ctx, actor, project, phase, func(p *domain.Phase) (string, error) {
		todo, err := p.AddTodo(s.newID(), draft)
		return todo.ID, err
	})
}

// ToggleTodo flips one todo and recounts the summary. Status is left alone.
func (s *PhaseService) ToggleTodo(ctx context.Context, actor domain.Actor, todoID string) (domain.Phase, error) {
	phase, project, unlock, err := s.lockTodo(ctx, todoID)
	if err != nil {
		return domain.Phase{}, err
	}
	defer unlock()

	return s.mutateTodo(ctx, actor, project, phase, func(p *domain.Phase) (string, error) {
		if _, ok := p.ToggleTodo(todoID); !ok {
			return "", domain.ErrTodoNotFound
		}
		return todoID, nil
	})
}

func (s *PhaseService) EditTodo(ctx context.Context, actor domain.Actor, todoID string, patch domain.TodoPatch) (domain.Phase, error) {
	phase, project, unlock, err := s.lockTodo(ctx, todoID)
	if err != nil {
		return domain.Phase{}, err
	}
	defer unlock()

	return s.mutateTodo(ctx, actor, project, phase, func(p *domain.Phase) (string, error) {
		_, err := p.EditTodo(todoID, patch)
		return todoID, err
	})
}

// DeleteTodo ignores unknown todos and returns a zero phase for them.
// Removing the last todo of a phase is allowed.
func (s *PhaseService) DeleteTodo(ctx context.Context, actor domain.Actor, todoID string) (domain.Phase, error) {
	phase, project, unlock, err := s.lockTodo(ctx, todoID)
	if errors.Is(err, domain.ErrTodoNotFound) {
		return domain.Phase{}, nil
	}
	if err != nil {
		return domain.Phase{}, err
	}
	defer unlock()

	return s.mutateTodo(ctx, actor, project, phase, func(p *domain.Phase) (string, error) {
		p.RemoveTodo(todoID)
		return todoID, nil
	})
}

func (s *PhaseService) mutateTodo(ctx context.Context, actor domain.Actor, project domain.Project, phase domain.Phase, mutate func(*domain.Phase) (string, error)) (domain.Phase, error) {
	if !project.IsParticipant(actor) {
		return domain.Phase{}, domain.Forbidden(actor, "edit phase todos")
	}

	todoID, err := mutate(&phase)
	if err != nil {
		return domain.Phase{}, err
	}
	phase.UpdatedAt = s.now()
	if err := s.phases.Update(ctx, phase); err != nil {
		return domain.Phase{}, err
	}

	s.publish(ctx, EventTodoChanged, phaseEvent(phase, todoID, actor))
	return phase, nil
}

// lockPhase resolves the owning project, takes its lock and reloads the phase
// so the caller works on the latest version.
func (s *PhaseService) lockPhase(ctx context.Context, phaseID string) (domain.Phase, domain.Project, func(), error) {
	return s.lockBy(ctx, func() (domain.Phase, error) { return s.phases.Get(ctx, phaseID) })
}

func (s *PhaseService) lockTodo(ctx context.Context, todoID string) (domain.Phase, domain.Project, func(), error) {
	return s.lockBy(ctx, func() (domain.Phase, error) { return s.phases.GetByTodoID(ctx, todoID) })
}

func (s *PhaseService) lockBy(ctx context.Context, find func() (domain.Phase, error)) (domain.Phase, domain.Project, func(), error) {
	peek, err := find()
	if err != nil {
		return domain.Phase{}, domain.Project{}, nil, err
	}

	unlock := s.locks.Lock(projectKey(peek.ProjectID))
	phase, err := find()
	if err != nil {
		unlock()
		return domain.Phase{}, domain.Project{}, nil, err
	}
	project, err := s.projects.Get(ctx, phase.ProjectID)
	if err != nil {
		unlock()
		return domain.Phase{}, domain.Project{}, nil, err
	}
	return phase, project, unlock, nil
}

func (s *PhaseService) loadProject(ctx context.Context, id string) (domain.Project, error) {
	project, err := s.projects.Get(ctx, id)
	if err != nil {
		return domain.Project{}, err
	}
	phases, err := s.phases.ListByProject(ctx, id)
	if err != nil {
		return domain.Project{}, err
	}
	project.Phases = phases
	return project, nil
}

// authorizePhaseEdit gates structural changes to the phase sequence.
func authorizePhaseEdit(project domain.Project, actor domain.Actor) error {
	if !project.IsParticipant(actor) {
		return domain.Forbidden(actor, "edit project phases")
	}
	if project.PhasesLocked {
		return domain.ErrPhasesLocked
	}
	return nil
}

func projectEvent(p domain.Project) ProjectEvent {
	return ProjectEvent{
		ProjectID:    p.ID,
		PostID:       p.PostID,
		ClientID:     p.ClientID,
		FreelancerID: p.FreelancerID,
		Origin:       string(p.Origin),
	}
}

func phaseEvent(p domain.Phase, todoID string, actor domain.Actor) PhaseEvent {
	return PhaseEvent{
		ProjectID:  p.ProjectID,
		PhaseID:    p.ID,
		TodoID:     todoID,
		Status:     string(p.Status),
		Completion: p.CompletionPercentage(),
		ActorID:    actor.ID,
	}
}

var _ ports.PhaseService = (*PhaseService)(nil)
