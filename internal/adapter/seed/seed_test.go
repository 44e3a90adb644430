package seed

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillink/internal/adapter/memory"
	"skillink/internal/core/domain"
)

const sample = `
posts:
  - id: 2
    owner_id: 2
    title: Logo Design Needed
    category: Design & Creative
    description: Need a creative logo for a new eco-friendly brand.
    min_price: "50"
    max_price: "200"
    requirements: [Logo Design]
    applicants:
      - id: 103
        name: Sara AI
  - id: 1
    owner_id: 1
    title: Build a React App
    category: Development & IT
    description: Modern and scalable web application with API integration.
    min_price: "100"
    max_price: "500"
    requirements: [React]
freelancers:
  - id: 103
    name: Sara AI
    category: AI Services
    rating: 4.9
`

var floor = decimal.NewFromInt(10)

func TestApply_LoadsCatalogInFileOrder(t *testing.T) {
	ctx := context.Background()
	file, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	posts := memory.NewPostRepository()
	freelancers := memory.NewFreelancerDirectory()

	require.NoError(t, file.Apply(ctx, posts, freelancers, floor, time.Now()))

	listed, err := posts.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, uint64(2), listed[0].ID)
	assert.Equal(t, uint64(1), listed[1].ID)
	assert.Len(t, listed[0].Applicants, 1)

	sara, err := freelancers.GetFreelancer(ctx, 103)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryAI, sara.Category)

	created, err := posts.Create(ctx, domain.Post{Title: "next"})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), created.ID)
}

func TestApply_SkipsNonEmptyStore(t *testing.T) {
	ctx := context.Background()
	file, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	posts := memory.NewPostRepository()
	_, err = posts.Create(ctx, domain.Post{Title: "existing"})
	require.NoError(t, err)

	require.NoError(t, file.Apply(ctx, posts, memory.NewFreelancerDirectory(), floor, time.Now()))

	listed, err := posts.List(ctx)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestApply_RejectsInvalidPost(t *testing.T) {
	file := &File{Posts: []Post{{ID: 1, Title: "x", MinPrice: "5", MaxPrice: "1"}}}

	err := file.Apply(context.Background(), memory.NewPostRepository(), memory.NewFreelancerDirectory(), floor, time.Now())

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse(strings.NewReader("posts:\n  - id: 1\n    budget: 3\n"))

	assert.Error(t, err)
}

func TestLoad_RepositorySeedFile(t *testing.T) {
	file, err := Load("../../../data/seed.yaml")
	require.NoError(t, err)

	posts := memory.NewPostRepository()
	require.NoError(t, file.Apply(context.Background(), posts, memory.NewFreelancerDirectory(), floor, time.Now()))

	listed, err := posts.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, listed, 10)
	assert.Equal(t, "Build a React App", listed[0].Title)
}
