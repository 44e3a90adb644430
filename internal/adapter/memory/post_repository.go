package memory

import (
	"context"
	"sync"

	"skillink/internal/core/domain"
	"skillink/internal/core/ports"
)

// PostRepository keeps the catalog most recent first. Values are copied on
// the way in and out so callers never share slices with the store.
type PostRepository struct {
	mu     sync.RWMutex
	nextID uint64
	posts  []domain.Post
}

var _ ports.PostRepository = (*PostRepository)(nil)

func NewPostRepository() *PostRepository {
	return &PostRepository{nextID: 1}
}

// Create assigns a fresh id unless the post already carries one (seed data).
func (r *PostRepository) Create(_ context.Context, post domain.Post) (domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if post.ID == 0 {
		post.ID = r.nextID
	}
	if post.ID >= r.nextID {
		r.nextID = post.ID + 1
	}

	stored := post.Clone()
	r.posts = append([]domain.Post{stored}, r.posts...)
	return stored.Clone(), nil
}

func (r *PostRepository) Get(_ context.Context, id uint64) (domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return domain.Post{}, domain.ErrPostNotFound
	}
	return r.posts[i].Clone(), nil
}

func (r *PostRepository) Update(_ context.Context, post domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(post.ID)
	if i < 0 {
		return domain.ErrPostNotFound
	}
	r.posts[i] = post.Clone()
	return nil
}

func (r *PostRepository) Delete(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOf(id); i >= 0 {
		r.posts = append(r.posts[:i:i], r.posts[i+1:]...)
	}
	return nil
}

func (r *PostRepository) List(_ context.Context) ([]domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (r *PostRepository) indexOf(id uint64) int {
	for i, p := range r.posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}
