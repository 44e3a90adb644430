package ports

import (
	"context"

	"skillink/internal/core/domain"
)

// FreelancerDirectory is the read side of the profile collaborator.
type FreelancerDirectory interface {
	GetFreelancer(ctx context.Context, id uint64) (domain.Freelancer, error)
}

// EventPublisher receives lifecycle events. Delivery is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type LifecycleService interface {
	AcceptApplicant(ctx context.Context, actor domain.Actor, postID, applicantID uint64) (domain.Project, error)
	HireDirectly(ctx context.Context, actor domain.Actor, freelancerID uint64, draft domain.PostDraft) (domain.Project, error)
	DiscardEdit(ctx context.Context, actor domain.Actor) error
}
