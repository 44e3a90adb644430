package service

import (
	"context"
	"errors"
	"iter"

	"github.com/shopspring/decimal"

	"skillink/internal/core/domain"
	"skillink/internal/core/ports"
)

type PostService struct {
	*runtime
	posts ports.PostRepository
	slot  ports.EditSlot
	floor decimal.Decimal
}

func (s *PostService) CreatePost(ctx context.Context, actor domain.Actor, draft domain.PostDraft) (domain.Post, error) {
	return s.createPost(ctx, actor, draft)
}

func (s *PostService) createPost(ctx context.Context, actor domain.Actor, draft domain.PostDraft) (domain.Post, error) {
	if !actor.IsClient() {
		return domain.Post{}, domain.Forbidden(actor, "create post")
	}

	d := draft.Normalize()
	if err := domain.ValidatePostDraft(d, s.floor); err != nil {
		return domain.Post{}, err
	}

	created, err := s.posts.Create(ctx, domain.NewPost(actor.ID, d, s.now()))
	if err != nil {
		return domain.Post{}, err
	}

	s.publish(ctx, EventPostCreated, PostEvent{PostID: created.ID, OwnerID: created.OwnerID, ActorID: actor.ID})
	return created, nil
}

func (s *PostService) UpdatePost(ctx context.Context, actor domain.Actor, id uint64, draft domain.PostDraft) (domain.Post, error) {
	unlock := s.locks.Lock(postKey(id))
	defer unlock()

	current, err := s.posts.Get(ctx, id)
	if err != nil {
		return domain.Post{}, err
	}
	if !current.IsOwner(actor) {
		return domain.Post{}, domain.Forbidden(actor, "update post")
	}

	d := draft.Normalize()
	if err := domain.ValidatePostDraft(d, s.floor); err != nil {
		return domain.Post{}, err
	}

	updated := current.WithDraft(d, s.now())
	if err := s.posts.Update(ctx, updated); err != nil {
		return domain.Post{}, err
	}
	if err := s.releaseEdit(ctx, id); err != nil {
		return domain.Post{}, err
	}

	s.publish(ctx, EventPostUpdated, PostEvent{PostID: id, OwnerID: updated.OwnerID, ActorID: actor.ID})
	return updated, nil
}

// DeletePost is idempotent: a missing post is not an error.
func (s *PostService) DeletePost(ctx context.Context, actor domain.Actor, id uint64) error {
	unlock := s.locks.Lock(postKey(id))
	defer unlock()

	current, err := s.posts.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !current.IsOwner(actor) {
		return domain.Forbidden(actor, "delete post")
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.releaseEdit(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, EventPostDeleted, PostEvent{PostID: id, OwnerID: current.OwnerID, ActorID: actor.ID})
	return nil
}

func (s *PostService) GetPost(ctx context.Context, id uint64) (domain.Post, error) {
	return s.posts.Get(ctx, id)
}

// ListPosts filters a snapshot of the catalog. The returned sequence can be
// ranged over any number of times and always yields the same posts.
func (s *PostService) ListPosts(ctx context.Context, filter domain.PostFilter) (iter.Seq[domain.Post], error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FilterPosts(posts, filter), nil
}

func (s *PostService) Categories() []domain.Category {
	return domain.Categories()
}

// StartEdit overwrites whatever session the slot held before.
func (s *PostService) StartEdit(ctx context.Context, actor domain.Actor, id uint64) (domain.EditSession, error) {
	unlock := s.locks.Lock(postKey(id))
	defer unlock()

	post, err := s.posts.Get(ctx, id)
	if err != nil {
		return domain.EditSession{}, err
	}
	if !post.IsOwner(actor) {
		return domain.EditSession{}, domain.Forbidden(actor, "edit post")
	}

	session := domain.EditSession{
		PostID:    id,
		ActorID:   actor.ID,
		Snapshot:  post,
		StartedAt: s.now(),
	}
	unlockSlot := s.locks.Lock(editSlotKey)
	defer unlockSlot()
	if err := s.slot.Set(ctx, session); err != nil {
		return domain.EditSession{}, err
	}
	return session, nil
}

func (s *PostService) CurrentEdit(ctx context.Context) (domain.EditSession, error) {
	return s.slot.Get(ctx)
}

func (s *PostService) ClearEdit(ctx context.Context) error {
	unlock := s.locks.Lock(editSlotKey)
	defer unlock()

	return s.slot.Clear(ctx)
}

// releaseEdit empties the slot when it still points at postID. Callers hold
// the post's lock.
func (s *PostService) releaseEdit(ctx context.Context, postID uint64) error {
	unlock := s.locks.Lock(editSlotKey)
	defer unlock()

	session, err := s.slot.Get(ctx)
	if err != nil {
		return err
	}
	if session.PostID != postID {
		return nil
	}
	return s.slot.Clear(ctx)
}

var _ ports.PostService = (*PostService)(nil)
