package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"skillink/internal/core/domain"
	"skillink/internal/core/ports"
)

// LifecycleService moves a post across into project territory. It owns no
// entity and drives the other services instead.
type LifecycleService struct {
	*runtime
	posts       *PostService
	applicants  *ApplicantService
	projects    ports.ProjectRepository
	freelancers ports.FreelancerDirectory
	policy      domain.DiscardPolicy
}

// AcceptApplicant creates the project for an accepted applicant and then
// consumes the applicant from the post.
func (s *LifecycleService) AcceptApplicant(ctx context.Context, actor domain.Actor, postID, applicantID uint64) (domain.Project, error) {
	unlock := s.locks.Lock(postKey(postID))
	defer unlock()

	post, applicant, err := s.applicants.accept(ctx, actor, postID, applicantID)
	if err != nil {
		return domain.Project{}, err
	}

	project := domain.NewProjectFromApplicant(s.newID(), post, applicant, s.now())
	if err := s.projects.Create(ctx, project); err != nil {
		return domain.Project{}, err
	}

	consumed := post.Clone()
	consumed.RemoveApplicant(applicantID)
	if err := s.posts.posts.Update(ctx, consumed); err != nil {
		// The project exists; the applicant is only left on display.
		zap.L().Error("failed to consume accepted applicant",
			zap.Uint64("post_id", postID),
			zap.Uint64("applicant_id", applicantID),
			zap.String("project_id", project.ID),
			zap.Error(err),
		)
	}

	s.publish(ctx, EventProjectCreated, projectEvent(project))
	return project, nil
}

// HireDirectly skips the applicant ledger: it publishes a post on behalf of
// the client and binds the freelancer to it straight away.
func (s *LifecycleService) HireDirectly(ctx context.Context, actor domain.Actor, freelancerID uint64, draft domain.PostDraft) (domain.Project, error) {
	if !actor.IsClient() {
		return domain.Project{}, domain.Forbidden(actor, "hire freelancer")
	}

	freelancer, err := s.freelancers.GetFreelancer(ctx, freelancerID)
	if err != nil {
		return domain.Project{}, err
	}
	if strings.TrimSpace(string(draft.Category)) == "" {
		draft.Category = freelancer.Category
	}

	post, err := s.posts.createPost(ctx, actor, draft)
	if err != nil {
		return domain.Project{}, err
	}

	project := domain.NewProjectFromHire(s.newID(), post, freelancer, s.now())
	if err := s.projects.Create(ctx, project); err != nil {
		if delErr := s.posts.posts.Delete(ctx, post.ID); delErr != nil {
			zap.L().Error("failed to roll back hire post",
				zap.Uint64("post_id", post.ID),
				zap.Error(delErr),
			)
		}
		return domain.Project{}, err
	}

	s.publish(ctx, EventProjectCreated, projectEvent(project))
	return project, nil
}

// DiscardEdit abandons the current edit session. Depending on the policy the
// edited post is deleted or restored to its snapshot and the slot is emptied.
// A session that replaced the discarded one in the meantime is left alone.
func (s *LifecycleService) DiscardEdit(ctx context.Context, actor domain.Actor) error {
	peek, err := s.posts.slot.Get(ctx)
	if err != nil {
		return err
	}
	if peek.IsEmpty() {
		return nil
	}
	if actor.ID == 0 || actor.ID != peek.ActorID {
		return domain.Forbidden(actor, "discard edit")
	}

	unlock := s.locks.Lock(postKey(peek.PostID))
	defer unlock()
	unlockSlot := s.locks.Lock(editSlotKey)
	defer unlockSlot()

	// Another session may have replaced the one we looked at.
	session, err := s.posts.slot.Get(ctx)
	if err != nil {
		return err
	}
	if session.PostID != peek.PostID || session.ActorID != peek.ActorID {
		return nil
	}

	switch s.policy {
	case domain.DiscardReverts:
		err = s.revert(ctx, session)
	default:
		err = s.posts.posts.Delete(ctx, session.PostID)
	}
	if err != nil {
		return err
	}
	if err := s.posts.slot.Clear(ctx); err != nil {
		return err
	}

	s.publish(ctx, EventPostDiscarded, PostEvent{
		PostID:  session.PostID,
		OwnerID: session.Snapshot.OwnerID,
		ActorID: actor.ID,
		Policy:  string(s.policy),
	})
	return nil
}

// revert restores the snapshot's fields while keeping applicants that
// arrived during the edit.
func (s *LifecycleService) revert(ctx context.Context, session domain.EditSession) error {
	current, err := s.posts.posts.Get(ctx, session.PostID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	draft := session.Draft()
	draft.ApplicantsSet = false
	restored := current.WithDraft(draft, s.now())
	return s.posts.posts.Update(ctx, restored)
}

var _ ports.LifecycleService = (*LifecycleService)(nil)
