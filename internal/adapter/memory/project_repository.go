package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"skillink/internal/core/domain"
	"skillink/internal/core/ports"
)

type ProjectRepository struct {
	mu       sync.RWMutex
	projects map[string]domain.Project
}

var _ ports.ProjectRepository = (*ProjectRepository)(nil)

func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{projects: make(map[string]domain.Project)}
}

func (r *ProjectRepository) Create(_ context.Context, project domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[project.ID]; ok {
		return fmt.Errorf("project %s already exists", project.ID)
	}
	project.Phases = nil
	r.projects[project.ID] = project.Clone()
	return nil
}

func (r *ProjectRepository) Get(_ context.Context, id string) (domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	project, ok := r.projects[id]
	if !ok {
		return domain.Project{}, domain.ErrProjectNotFound
	}
	return project.Clone(), nil
}

func (r *ProjectRepository) Update(_ context.Context, project domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[project.ID]; !ok {
		return domain.ErrProjectNotFound
	}
	project.Phases = nil
	r.projects[project.ID] = project.Clone()
	return nil
}

func (r *ProjectRepository) ListByParticipant(_ context.Context, userID uint64) ([]domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Project, 0)
	for _, project := range r.projects {
		if project.ClientID == userID || project.FreelancerID == userID {
			out = append(out, project.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

type PhaseRepository struct {
	mu     sync.RWMutex
	phases map[string]domain.Phase
}

var _ ports.PhaseRepository = (*PhaseRepository)(nil)

func NewPhaseRepository() *PhaseRepository {
	return &PhaseRepository{phases: make(map[string]domain.Phase)}
}

func (r *PhaseRepository) Create(_ context.Context, phase domain.Phase) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.phases[phase.ID]; ok {
		return fmt.Errorf("phase %s already exists", phase.ID)
	}
	r.phases[phase.ID] = phase.Clone()
	return nil
}

func (r *PhaseRepository) Get(_ context.Context, id string) (domain.Phase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	phase, ok := r.phases[id]
	if !ok {
		return domain.Phase{}, domain.ErrPhaseNotFound
	}
	return phase.Clone(), nil
}

func (r *PhaseRepository) GetByTodoID(_ context.Context, todoID string) (domain.Phase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, phase := range r.phases {
		if _, ok := phase.FindTodo(todoID); ok {
			return phase.Clone(), nil
		}
	}
	return domain.Phase{}, domain.ErrTodoNotFound
}

func (r *PhaseRepository) Update(_ context.Context, phase domain.Phase) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.phases[phase.ID]; !ok {
		return domain.ErrPhaseNotFound
	}
	r.phases[phase.ID] = phase.Clone()
	return nil
}

func (r *PhaseRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.phases, id)
	return nil
}

func (r *PhaseRepository) ListByProject(_ context.Context, projectID string) ([]domain.Phase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Phase, 0)
	for _, phase := range r.phases {
		if phase.ProjectID == projectID {
			out = append(out, phase.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Position < out[j].Position
	})
	return out, nil
}
