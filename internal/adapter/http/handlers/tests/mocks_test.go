package tests

import (
	"context"
	"iter"

	"skillink/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type postServiceMock struct {
	mock.Mock
}

func (m *postServiceMock) CreatePost(ctx context.Context, actor domain.Actor, draft domain.PostDraft) (domain.Post, error) {
	args := m.Called(ctx, actor, draft)
	return args.Get(0).(domain.Post), args.Error(1)
}

func (m *postServiceMock) UpdatePost(ctx context.Context, actor domain.Actor, id uint64, draft domain.PostDraft) (domain.Post, error) {
	args := m.Called(ctx, actor, id, draft)
	return args.Get(0).(domain.Post), args.Error(1)
}

func (m *postServiceMock) DeletePost(ctx context.Context, actor domain.Actor, id uint64) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *postServiceMock) GetPost(ctx context.Context, id uint64) (domain.Post, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Post), args.Error(1)
}

func (m *postServiceMock) ListPosts(ctx context.Context, filter domain.PostFilter) (iter.Seq[domain.Post], error) {
	args := m.Called(ctx, filter)

	var posts iter.Seq[domain.Post]
	if value := args.Get(0); value != nil {
		posts = value.(iter.Seq[domain.Post])
	}
	return posts, args.Error(1)
}

func (m *postServiceMock) Categories() []domain.Category {
	return m.Called().Get(0).([]domain.Category)
}

func (m *postServiceMock) StartEdit(ctx context.Context, actor domain.Actor, id uint64) (domain.EditSession, error) {
	args := m.Called(ctx, actor, id)
	return args.Get(0).(domain.EditSession), args.Error(1)
}

func (m *postServiceMock) CurrentEdit(ctx context.Context) (domain.EditSession, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.EditSession), args.Error(1)
}

func (m *postServiceMock) ClearEdit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type applicantServiceMock struct {
	mock.Mock
}

func (m *applicantServiceMock) Apply(ctx context.Context, actor domain.Actor, postID uint64, applicant domain.Applicant) (domain.Post, error) {
	args := m.Called(ctx, actor, postID, applicant)
	return args.Get(0).(domain.Post), args.Error(1)
}

func (m *applicantServiceMock) Cancel(ctx context.Context, actor domain.Actor, postID, applicantID uint64) error {
	return m.Called(ctx, actor, postID, applicantID).Error(0)
}

func (m *applicantServiceMock) Accept(ctx context.Context, actor domain.Actor, postID, applicantID uint64) (domain.Post, domain.Applicant, error) {
	args := m.Called(ctx, actor, postID, applicantID)
	return args.Get(0).(domain.Post), args.Get(1).(domain.Applicant), args.Error(2)
}

func (m *applicantServiceMock) Refuse(ctx context.Context, actor domain.Actor, postID, applicantID uint64) error {
	return m.Called(ctx, actor, postID, applicantID).Error(0)
}

type lifecycleServiceMock struct {
	mock.Mock
}

func (m *lifecycleServiceMock) AcceptApplicant(ctx context.Context, actor domain.Actor, postID, applicantID uint64) (domain.Project, error) {
	args := m.Called(ctx, actor, postID, applicantID)
	return args.Get(0).(domain.Project), args.Error(1)
}

func (m *lifecycleServiceMock) HireDirectly(ctx context.Context, actor domain.Actor, freelancerID uint64, draft domain.PostDraft) (domain.Project, error) {
	args := m.Called(ctx, actor, freelancerID, draft)
	return args.Get(0).(domain.Project), args.Error(1)
}

func (m *lifecycleServiceMock) DiscardEdit(ctx context.Context, actor domain.Actor) error {
	return m.Called(ctx, actor).Error(0)
}

type phaseServiceMock struct {
	mock.Mock
}

func (m *phaseServiceMock) GetProject(ctx context.Context, id string) (domain.Project, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Project), args.Error(1)
}

func (m *phaseServiceMock) ListProjects(ctx context.Context, actor domain.Actor) ([]domain.Project, error) {
	args := m.Called(ctx, actor)
	projects, _ := args.Get(0).([]domain.Project)
	return projects, args.Error(1)
}

func (m *phaseServiceMock) LockPhases(ctx context.Context, actor domain.Actor, projectID string) (domain.Project, error) {
	args := m.Called(ctx, actor, projectID)
	return args.Get(0).(domain.Project), args.Error(1)
}

func (m *phaseServiceMock) UnlockPhases(ctx context.Context, actor domain.Actor, projectID string) (domain.Project, error) {
	args := m.Called(ctx, actor, projectID)
	return args.Get(0).(domain.Project), args.Error(1)
}

func (m *phaseServiceMock) AddPhase(ctx context.Context, actor domain.Actor, projectID string, draft domain.PhaseDraft) (domain.Phase, error) {
	args := m.Called(ctx, actor, projectID, draft)
	return args.Get(0).(domain.Phase), args.Error(1)
}

func (m *phaseServiceMock) UpdatePhase(ctx context.Context, actor domain.Actor, phaseID string, patch domain.PhasePatch) (domain.Phase, error) {
	args := m.Called(ctx, actor, phaseID, patch)
	return args.Get(0).(domain.Phase), args.Error(1)
}

func (m *phaseServiceMock) DeletePhase(ctx context.Context, actor domain.Actor, phaseID string) error {
	return m.Called(ctx, actor, phaseID).Error(0)
}

func (m *phaseServiceMock) AddTodo(ctx context.Context, actor domain.Actor, phaseID string, draft domain.TodoDraft) (domain.Phase, error) {
	args := m.Called(ctx, actor, phaseID, draft)
	return args.Get(0).(domain.Phase), args.Error(1)
}

func (m *phaseServiceMock) ToggleTodo(ctx context.Context, actor domain.Actor, todoID string) (domain.Phase, error) {
	args := m.Called(ctx, actor, todoID)
	return args.Get(0).(domain.Phase), args.Error(1)
}

func (m *phaseServiceMock) EditTodo(ctx context.Context, actor domain.Actor, todoID string, patch domain.TodoPatch) (domain.Phase, error) {
	args := m.Called(ctx, actor, todoID, patch)
	return args.Get(0).(domain.Phase), args.Error(1)
}

func (m *phaseServiceMock) DeleteTodo(ctx context.Context, actor domain.Actor, todoID string) (domain.Phase, error) {
	args := m.Called(ctx, actor, todoID)
	return args.Get(0).(domain.Phase), args.Error(1)
}
