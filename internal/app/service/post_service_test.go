package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"skillink/internal/app/service"
	"skillink/internal/core/domain"
)

func postIDs(t *testing.T, f *fixture, filter domain.PostFilter) []uint64 {
	t.Helper()
	seq, err := f.svc.Posts.ListPosts(context.Background(), filter)
	require.NoError(t, err)
	var ids []uint64
	for p := range seq {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestCreatePost_ValidAndInvalidPriceRange(t *testing.T) {
	f := newFixture(t, "")
	ctx := context.Background()

	post, err := f.svc.Posts.CreatePost(ctx, owner, postDraft())
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
	assert.Equal(t, owner.ID, post.OwnerID)
	assert.True(t, post.MinPrice.LessThan(post.MaxPrice))

	bad := postDraft()
	bad.MinPrice = decimal.NewFromInt(500)
	bad.MaxPrice = decimal.NewFromInt(100)
	_, err = f.svc.Posts.CreatePost(ctx, owner, bad)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Has("max_price"))
	assert.Len(t, postIDs(t, f, domain.PostFilter{}), 1)
}

func TestCreatePost_RequiresClient(t *testing.T) {
	f := newFixture(t, "")

	_, err := f.svc.Posts.CreatePost(context.Background(), amina, postDraft())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.Posts.CreatePost(context.Background(), domain.Guest(), postDraft())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreatePost_MostRecentFirst(t *testing.T) {
	f := newFixture(t, "")
	first := f.createPost(t)
	second := f.createPost(t)

	assert.Equal(t, []uint64{second.ID, first.ID}, postIDs(t, f, domain.PostFilter{}))
	f.events.AssertCalled(t, "Publish", mock.Anything, service.EventPostCreated, mock.Anything)
}

func TestUpdatePost_PreservesApplicantsAndChecksOwner(t *testing.T) {
	f := newFixture(t, "")
	ctx := context.Background()
	post := f.createPost(t)
	_, err := f.svc.Applicants.Apply(ctx, amina, post.ID, domain.Applicant{ID: amina.ID})
	require.NoError(t, err)

	draft := postDraft()
	draft.Title = "Build a Vue App"

	_, err = f.svc.Posts.UpdatePost(ctx, otherClient, post.ID, draft)
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.Posts.UpdatePost(ctx, owner, 999, draft)
	require.ErrorIs(t, err, domain.ErrPostNotFound)

	updated, err := f.svc.Posts.UpdatePost(ctx, owner, post.ID, draft)
	require.NoError(t, err)
	assert.Equal(t, "Build a Vue App", updated.Title)
	require.Len(t, updated.Applicants, 1)
	assert.Equal(t, amina.ID, updated.Applicants[0].ID)
}

func TestUpdatePost_InvalidLeavesStoreUntouched(t *testing.T) {
	f := newFixture(t, "")
	ctx := context.Background()
	post := f.createPost(t)

	draft := postDraft()
	draft.Title = " "
	draft.MaxPrice = draft.MinPrice
	_, err := f.svc.Posts.UpdatePost(ctx, owner, post.ID, draft)
	require.ErrorIs(t, err, domain.ErrValidation)

	stored, err := f.svc.Posts.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.Title, stored.Title)
	assert.True(t, stored.MinPrice.LessThan(stored.MaxPrice))
}

func TestUpdatePost_ClearsEditSlot(t *testing.T) {
	f := newFixture(t, "")
	ctx := context.Background()
	post := f.createPost(t)
	_, err := f.svc.Posts.StartEdit(ctx, owner, post.ID)
	require.NoError(t, err)

	_, err = f.svc.Posts.UpdatePost(ctx, owner, post.ID, postDraft())
	require.NoError(t, err)

	session, err := f.svc.Posts.CurrentEdit(ctx)
	require.NoError(t, err)
	assert.True(t, session.IsEmpty())
}

func TestDeletePost_IsIdempotent(t *testing.T) {
	f := newFixture(t, "")
	ctx := context.Background()
	post := f.createPost(t)

	require.ErrorIs(t, f.svc.Posts.DeletePost(ctx, otherClient, post.ID), domain.ErrForbidden)
	require.NoError(t, f.svc.Posts.DeletePost(ctx, owner, post.ID))
	require.NoError(t, f.svc.Posts.DeletePost(ctx, owner, post.ID))

	_, err := f.svc.Posts.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListPosts_IdempotentAndCommutative(t *testing.T) {
	f := newFixture(t, "")
	f.createPost(t)
	design := postDraft()
	design.Title = "Logo Design Needed"
	design.Category = domain.CategoryDesign
	design.Description = "Creative minimal logo for an eco friendly brand."
	_, err := f.svc.Posts.CreatePost(context.Background(), owner, design)
	require.NoError(t, err)

	filter := domain.PostFilter{Query: "rest react"}
	assert.Equal(t, postIDs(t, f, filter), postIDs(t, f, filter))
	assert.Equal(t, postIDs(t, f, filter), postIDs(t, f, domain.PostFilter{Query: "REACT rest"}))
	assert.Len(t, postIDs(t, f, domain.PostFilter{Category: string(domain.CategoryDesign)}), 1)
	assert.Len(t, postIDs(t, f, domain.PostFilter{Category: string(domain.CategoryAll)}), 2)
}

func TestStartEdit_OverwritesPreviousSession(t *testing.T) {
	f := newFixture(t, "")
	ctx := context.Background()
	first := f.createPost(t)
	second := f.createPost(t)

	_, err := f.svc.Posts.StartEdit(ctx, otherClient, first.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.Posts.StartEdit(ctx, owner, first.ID)
	require.NoError(t, err)
	_, err = f.svc.Posts.StartEdit(ctx, owner, second.ID)
	require.NoError(t, err)

	session, err := f.svc.Posts.CurrentEdit(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, session.PostID)
	assert.Equal(t, second.Title, session.Draft().Title)

	require.NoError(t, f.svc.Posts.ClearEdit(ctx))
	session, err = f.svc.Posts.CurrentEdit(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PostDraft{}, session.Draft())
}

func TestPublishFailureDoesNotFailOperation(t *testing.T) {
	f := newFixture(t, "")
	f.events.ExpectedCalls = nil
	f.events.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))

	post, err := f.svc.Posts.CreatePost(context.Background(), owner, postDraft())

	require.NoError(t, err)
	assert.NotZero(t, post.ID)
	f.events.AssertNumberOfCalls(t, "Publish", 1)
}
