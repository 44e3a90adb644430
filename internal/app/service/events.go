package service

import (
	"context"

	"go.uber.org/zap"

	"skillink/pkg/metrics"
)

// Routing keys published on the lifecycle exchange.
const (
	EventPostCreated        = "post.created"
	EventPostUpdated        = "post.updated"
	EventPostDeleted        = "post.deleted"
	EventPostDiscarded      = "post.discarded"
	EventApplicantApplied   = "applicant.applied"
	EventApplicantCancelled = "applicant.cancelled"
	EventApplicantRefused   = "applicant.refused"
	EventProjectCreated     = "project.created"
	EventPhasesLocked       = "project.phases_locked"
	EventPhasesUnlocked     = "project.phases_unlocked"
	EventPhaseAdded         = "phase.added"
	EventPhaseUpdated       = "phase.updated"
	EventPhaseCompleted     = "phase.completed"
	EventPhaseDeleted       = "phase.deleted"
	EventTodoChanged        = "todo.changed"
)

type PostEvent struct {
	PostID  uint64 `json:"post_id"`
	OwnerID uint64 `json:"owner_id"`
	ActorID uint64 `json:"actor_id"`
	Policy  string `json:"policy,omitempty"`
}

type ApplicantEvent struct {
	PostID      uint64 `json:"post_id"`
	ApplicantID uint64 `json:"applicant_id"`
	ActorID     uint64 `json:"actor_id"`
}

type ProjectEvent struct {
	ProjectID    string `json:"project_id"`
	PostID       uint64 `json:"post_id"`
	ClientID     uint64 `json:"client_id"`
	FreelancerID uint64 `json:"freelancer_id"`
	Origin       string `json:"origin"`
}

type PhaseEvent struct {
	ProjectID  string `json:"project_id"`
	PhaseID    string `json:"phase_id"`
	TodoID     string `json:"todo_id,omitempty"`
	Status     string `json:"status"`
	Completion int    `json:"completion"`
	ActorID    uint64 `json:"actor_id"`
}

// publish never fails the caller. Delivery problems are logged and counted.
func (r *runtime) publish(ctx context.Context, routingKey string, payload any) {
	metrics.IncrementLifecycleEvent(routingKey)
	if r.events == nil {
		return
	}
	if err := r.events.Publish(ctx, routingKey, payload); err != nil {
		metrics.IncrementEventPublishFailure(routingKey)
		zap.L().Warn("failed to publish lifecycle event",
			zap.String("routing_key", routingKey),
			zap.Error(err),
		)
	}
}
