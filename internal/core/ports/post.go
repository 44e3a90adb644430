package ports

import (
	"context"
	"iter"

	"skillink/internal/core/domain"
)

type PostRepository interface {
	Create(ctx context.Context, post domain.Post) (domain.Post, error)
	Get(ctx context.Context, id uint64) (domain.Post, error)
	Update(ctx context.Context, post domain.Post) error
	Delete(ctx context.Context, id uint64) error
	// List returns the catalog most recent first.
	List(ctx context.Context) ([]domain.Post, error)
}

// EditSlot holds the single process-wide "currently editing" session.
type EditSlot interface {
	Get(ctx context.Context) (domain.EditSession, error)
	Set(ctx context.Context, session domain.EditSession) error
	Clear(ctx context.Context) error
}

type PostService interface {
	CreatePost(ctx context.Context, actor domain.Actor, draft domain.PostDraft) (domain.Post, error)
	UpdatePost(ctx context.Context, actor domain.Actor, id uint64, draft domain.PostDraft) (domain.Post, error)
	DeletePost(ctx context.Context, actor domain.Actor, id uint64) error
	GetPost(ctx context.Context, id uint64) (domain.Post, error)
	ListPosts(ctx context.Context, filter domain.PostFilter) (iter.Seq[domain.Post], error)
	Categories() []domain.Category
	StartEdit(ctx context.Context, actor domain.Actor, id uint64) (domain.EditSession, error)
	CurrentEdit(ctx context.Context) (domain.EditSession, error)
	ClearEdit(ctx context.Context) error
}

type ApplicantService interface {
	Apply(ctx context.Context, actor domain.Actor, postID uint64, applicant domain.Applicant) (domain.Post, error)
	Cancel(ctx context.Context, actor domain.Actor, postID, applicantID uint64) error
	Accept(ctx context.Context, actor domain.Actor, postID, applicantID uint64) (domain.Post, domain.Applicant, error)
	Refuse(ctx context.Context, actor domain.Actor, postID, applicantID uint64) error
}
