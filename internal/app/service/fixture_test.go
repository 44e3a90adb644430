package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"skillink/internal/adapter/memory"
	"skillink/internal/app/service"
	"skillink/internal/core/domain"
)

var (
	owner       = domain.Actor{ID: 1, Role: domain.RoleClient}
	otherClient = domain.Actor{ID: 2, Role: domain.RoleClient}
	amina       = domain.Actor{ID: 101, Role: domain.RoleFreelancer}
	karim       = domain.Actor{ID: 102, Role: domain.RoleFreelancer}

	fixedNow = time.Date(2026, 11, 17, 9, 0, 0, 0, time.UTC)
)

type publisherMock struct {
	mock.Mock
}

func (m *publisherMock) Publish(ctx context.Context, routingKey string, payload any) error {
	args := m.Called(ctx, routingKey, payload)
	return args.Error(0)
}

type fixture struct {
	svc      *service.Services
	posts    *memory.PostRepository
	projects *memory.ProjectRepository
	phases   *memory.PhaseRepository
	slot     *memory.EditSlot
	events   *publisherMock
}

func newFixture(t *testing.T, policy domain.DiscardPolicy) *fixture {
	t.Helper()
	f := &fixture{
		posts:    memory.NewPostRepository(),
		projects: memory.NewProjectRepository(),
		phases:   memory.NewPhaseRepository(),
		slot:     memory.NewEditSlot(),
		events:   &publisherMock{},
	}
	f.events.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	n := 0
	f.svc = service.New(service.Dependencies{
		Posts:    f.posts,
		Projects: f.projects,
		Phases:   f.phases,
		EditSlot: f.slot,
		Freelancers: memory.NewFreelancerDirectory(domain.Freelancer{
			ID:       9,
			Name:     "Sara Design",
			Category: domain.CategoryDesign,
		}),
		Events:        f.events,
		PriceFloor:    decimal.NewFromInt(10),
		DiscardPolicy: policy,
	},
		service.WithClock(func() time.Time { return fixedNow }),
		service.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
	return f
}

func postDraft() domain.PostDraft {
	return domain.PostDraft{
		Title:        "Build a React App",
		Category:     domain.CategoryDevelopment,
		Description:  "Scalable web application with a REST API and auth.",
		MinPrice:     decimal.NewFromInt(100),
		MaxPrice:     decimal.NewFromInt(500),
		Requirements: []string{"React"},
	}
}

func (f *fixture) createPost(t *testing.T) domain.Post {
	t.Helper()
	post, err := f.svc.Posts.CreatePost(context.Background(), owner, postDraft())
	require.NoError(t, err)
	return post
}

func (f *fixture) acceptedProject(t *testing.T) domain.Project {
	t.Helper()
	ctx := context.Background()
	post := f.createPost(t)
	_, err := f.svc.Applicants.Apply(ctx, amina, post.ID, domain.Applicant{ID: amina.ID, Name: "Amina Dev"})
	require.NoError(t, err)
	project, err := f.svc.Lifecycle.AcceptApplicant(ctx, owner, post.ID, amina.ID)
	require.NoError(t, err)
	return project
}

func phaseDraft(titles ...string) domain.PhaseDraft {
	price := decimal.NewFromInt(1500)
	todos := make([]domain.TodoDraft, 0, len(titles))
	for _, title := range titles {
		todos = append(todos, domain.TodoDraft{Title: title, DueLabel: "Nov 20"})
	}
	return domain.PhaseDraft{
		Name:     "Discovery",
		Deadline: time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC),
		Price:    &price,
		Todos:    todos,
	}
}
