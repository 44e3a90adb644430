package domain

import (
	"sort"
	"time"
)

type ProjectOrigin string

const (
	ProjectOriginAcceptedApplicant ProjectOrigin = "accepted_applicant"
	ProjectOriginDirectHire        ProjectOrigin = "direct_hire"
)

// Project is the engagement realized from a post once a freelancer is bound to it.
type Project struct {
	ID           string
	PostID       uint64
	ClientID     uint64
	FreelancerID uint64
	ApplicantID  *uint64
	Title        string
	Origin       ProjectOrigin
	PhasesLocked bool
	Phases       []Phase
	CreatedAt    time.Time
}

type PhaseStatistics struct {
	Total             int
	Completed         int
	InProgress        int
	NotStarted        int
	OverallCompletion int
}

type PendingTodo struct {
	Todo
	PhaseID   string
	PhaseName string
}

func NewProjectFromApplicant(id string, post Post, applicant Applicant, now time.Time) Project {
	applicantID := applicant.ID
	return newProject(id, post, applicant.ID, &applicantID, ProjectOriginAcceptedApplicant, now)
}

func NewProjectFromHire(id string, post Post, freelancer Freelancer, now time.Time) Project {
	return newProject(id, post, freelancer.ID, nil, ProjectOriginDirectHire, now)
}

func newProject(id string, post Post, freelancerID uint64, applicantID *uint64, origin ProjectOrigin, now time.Time) Project {
	return Project{
		ID:           id,
		PostID:       post.ID,
		ClientID:     post.OwnerID,
		FreelancerID: freelancerID,
		ApplicantID:  applicantID,
		Title:        post.Title,
		Origin:       origin,
		Phases:       []Phase{},
		CreatedAt:    now,
	}
}

func (p Project) IsClient(actor Actor) bool {
	return actor.ID != 0 && actor.ID == p.ClientID && actor.Role == RoleClient
}

func (p Project) IsParticipant(actor Actor) bool {
	if actor.ID == 0 {
		return false
	}
	return p.IsClient(actor) || (actor.ID == p.FreelancerID && actor.Role == RoleFreelancer)
}

func (p Project) Statistics() PhaseStatistics {
	stats := PhaseStatistics{Total: len(p.Phases)}
	completedTasks, totalTasks := 0, 0
	for _, phase := range p.Phases {
		switch phase.Status {
		case PhaseStatusCompleted:
			stats.Completed++
		case PhaseStatusInProgress:
			stats.InProgress++
		default:
			stats.NotStarted++
		}
		completedTasks += phase.Tasks.Completed
		totalTasks += phase.Tasks.Total
	}
	stats.OverallCompletion = Phase{Tasks: TaskSummary{Completed: completedTasks, Total: totalTasks}}.CompletionPercentage()
	return stats
}

func (p Project) phaseIndex(phaseID string) int {
	for i, phase := range p.Phases {
		if phase.ID == phaseID {
			return i
		}
	}
	return -1
}

func (p Project) NextPhase(phaseID string) (Phase, bool) {
	i := p.phaseIndex(phaseID)
	if i < 0 || i == len(p.Phases)-1 {
		return Phase{}, false
	}
	return p.Phases[i+1], true
}

func (p Project) PreviousPhase(phaseID string) (Phase, bool) {
	i := p.phaseIndex(phaseID)
	if i <= 0 {
		return Phase{}, false
	}
	return p.Phases[i-1], true
}

// CurrentPhase is the first phase not yet completed.
func (p Project) CurrentPhase() (Phase, bool) {
	for _, phase := range p.Phases {
		if phase.Status != PhaseStatusCompleted {
			return phase, true
		}
	}
	return Phase{}, false
}

func (p Project) IncompleteTodos() []PendingTodo {
	var out []PendingTodo
	for _, phase := range p.Phases {
		for _, todo := range phase.Todos {
			if todo.Completed {
				continue
			}
			out = append(out, PendingTodo{Todo: todo, PhaseID: phase.ID, PhaseName: phase.Name})
		}
	}
	return out
}

// SortPhasesByPriority orders in-progress work first, then not started, then completed.
// Phases of equal status keep their sequence order.
func SortPhasesByPriority(phases []Phase) []Phase {
	order := map[PhaseStatus]int{
		PhaseStatusInProgress: 1,
		PhaseStatusNotStarted: 2,
		PhaseStatusCompleted:  3,
	}
	out := append([]Phase{}, phases...)
	sort.SliceStable(out, func(i, j int) bool {
		return order[out[i].Status] < order[out[j].Status]
	})
	return out
}

func (p Project) Clone() Project {
	if p.ApplicantID != nil {
		value := *p.ApplicantID
		p.ApplicantID = &value
	}
	phases := make([]Phase, 0, len(p.Phases))
	for _, phase := range p.Phases {
		phases = append(phases, phase.Clone())
	}
	p.Phases = phases
	return p
}
