package service

import (
	"context"
	"errors"
	"strings"

	"skillink/internal/core/domain"
	"skillink/internal/core/ports"
)

type ApplicantService struct {
	*runtime
	posts ports.PostRepository
}

// Apply appends the applicant once. Applying again is a silent no-op.
func (s *ApplicantService) Apply(ctx context.Context, actor domain.Actor, postID uint64, applicant domain.Applicant) (domain.Post, error) {
	if !actor.IsFreelancer() || applicant.ID != actor.ID {
		return domain.Post{}, domain.Forbidden(actor, "apply to post")
	}

	unlock := s.locks.Lock(postKey(postID))
	defer unlock()

	post, err := s.posts.Get(ctx, postID)
	if err != nil {
		return domain.Post{}, err
	}
	if post.IsOwner(actor) {
		return domain.Post{}, domain.Forbidden(actor, "apply to own post")
	}

	applicant.Name = strings.TrimSpace(applicant.Name)
	applicant.Avatar = strings.TrimSpace(applicant.Avatar)
	if !post.AddApplicant(applicant) {
		return post, nil
	}
	if err := s.posts.Update(ctx, post); err != nil {
		return domain.Post{}, err
	}

	s.publish(ctx, EventApplicantApplied, ApplicantEvent{PostID: postID, ApplicantID: applicant.ID, ActorID: actor.ID})
	return post, nil
}

// Cancel withdraws the actor's own application. Missing posts and
// applicants are ignored.
func (s *ApplicantService) Cancel(ctx context.Context, actor domain.Actor, postID, applicantID uint64) error {
	if !actor.IsFreelancer() || actor.ID != applicantID {
		return domain.Forbidden(actor, "cancel application")
	}

	unlock := s.locks.Lock(postKey(postID))
	defer unlock()

	return s.detach(ctx, actor, postID, applicantID, EventApplicantCancelled, nil)
}

// Refuse is Cancel performed by the post owner.
func (s *ApplicantService) Refuse(ctx context.Context, actor domain.Actor, postID, applicantID uint64) error {
	unlock := s.locks.Lock(postKey(postID))
	defer unlock()

	return s.detach(ctx, actor, postID, applicantID, EventApplicantRefused, func(post domain.Post) error {
		if !post.IsOwner(actor) {
			return domain.Forbidden(actor, "refuse applicant")
		}
		return nil
	})
}

// Accept checks that the owner may accept the applicant and returns the pair
// for the coordinator. The applicant stays on the post.
func (s *ApplicantService) Accept(ctx context.Context, actor domain.Actor, postID, applicantID uint64) (domain.Post, domain.Applicant, error) {
	unlock := s.locks.Lock(postKey(postID))
	defer unlock()

	return s.accept(ctx, actor, postID, applicantID)
}

func (s *ApplicantService) accept(ctx context.Context, actor domain.Actor, postID, applicantID uint64) (domain.Post, domain.Applicant, error) {
	post, err := s.posts.Get(ctx, postID)
	if err != nil {
		return domain.Post{}, domain.Applicant{}, err
	}
	if !post.IsOwner(actor) {
		return domain.Post{}, domain.Applicant{}, domain.Forbidden(actor, "accept applicant")
	}

	applicant, ok := post.FindApplicant(applicantID)
	if !ok {
		return domain.Post{}, domain.Applicant{}, domain.ErrApplicantNotFound
	}
	return post, applicant, nil
}

func (s *ApplicantService) detach(ctx context.Context, actor domain.Actor, postID, applicantID uint64, event string, authorize func(domain.Post) error) error {
	post, err := s.posts.Get(ctx, postID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if authorize != nil {
		if err := authorize(post); err != nil {
			return err
		}
	}

	if !post.RemoveApplicant(applicantID) {
		return nil
	}
	if err := s.posts.Update(ctx, post); err != nil {
		return err
	}

	s.publish(ctx, event, ApplicantEvent{PostID: postID, ApplicantID: applicantID, ActorID: actor.ID})
	return nil
}

var _ ports.ApplicantService = (*ApplicantService)(nil)
