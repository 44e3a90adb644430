//go:build integration
// +build integration

package tests

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	dbadapter "skillink/internal/adapter/db"
	httpadapter "skillink/internal/adapter/http"
	"skillink/internal/adapter/http/dto"
	"skillink/internal/adapter/http/handlers"
	"skillink/internal/adapter/memory"
	"skillink/internal/adapter/mq"
	"skillink/internal/adapter/seed"
	appservice "skillink/internal/app/service"
	"skillink/internal/core/domain"
	"skillink/pkg/apierrors"
	"skillink/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

const integrationSecret = "integration-secret"

var (
	client     = domain.Actor{ID: 1, Role: domain.RoleClient}
	rival      = domain.Actor{ID: 2, Role: domain.RoleClient}
	freelancer = domain.Actor{ID: 101, Role: domain.RoleFreelancer}
)

type LifecycleIntegrationSuite struct {
	IntegrationSuiteBase
	router *gin.Engine
}

func TestLifecycleIntegrationSuite(t *testing.T) {
	suite.Run(t, new(LifecycleIntegrationSuite))
}

func (s *LifecycleIntegrationSuite) SetupTest() {
	s.ResetDatabase()

	posts := dbadapter.NewPostRepository(s.DB)
	freelancers := memory.NewFreelancerDirectory()
	floor := decimal.NewFromInt(10)

	file, err := seed.Load(filepath.Join(projectRoot(s.T()), "data", "seed.yaml"))
	s.Require().NoError(err)
	s.Require().NoError(file.Apply(context.Background(), posts, freelancers, floor, time.Now().UTC()))

	services := appservice.New(appservice.Dependencies{
		Posts:       posts,
		Projects:    dbadapter.NewProjectRepository(s.DB),
		Phases:      dbadapter.NewPhaseRepository(s.DB),
		EditSlot:    memory.NewEditSlot(),
		Freelancers: freelancers,
		Events:      mq.NewLogPublisher(zap.NewNop()),
		PriceFloor:  floor,
	})

	router := gin.New()
	httpadapter.RegisterRoutes(router, httpadapter.Handlers{
		Health:     handlers.NewHealthHandler("mysql", s.DB, nil, nil),
		Posts:      handlers.NewPostHandler(services.Posts),
		Edit:       handlers.NewEditHandler(services.Posts, services.Lifecycle),
		Applicants: handlers.NewApplicantHandler(services.Applicants),
		Projects:   handlers.NewProjectHandler(services.Lifecycle, services.Phases),
		Phases:     handlers.NewPhaseHandler(services.Phases),
	}, integrationSecret)
	s.router = router
}

func (s *LifecycleIntegrationSuite) do(actor domain.Actor, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if actor.ID != 0 {
		token, err := auth.GenerateJWT(actor, integrationSecret, time.Now())
		s.Require().NoError(err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *LifecycleIntegrationSuite) TestGetPosts_ReturnsSeededCatalogMostRecentFirst() {
	rec := s.do(domain.Actor{}, http.MethodGet, "/api/posts", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var got []dto.PostItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Len(got, 10)
	s.Require().Equal("Build a React App", got[0].Title)

	rec = s.do(domain.Actor{}, http.MethodGet, "/api/posts?category=Design+%26+Creative", "")
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Len(got, 1)
	s.Require().Equal("Logo Design Needed", got[0].Title)
}

func (s *LifecycleIntegrationSuite) TestPostLifecycle_CreateAndDelete() {
	rec := s.do(client, http.MethodPost, "/api/posts", `{
		"title": "Landing page copy",
		"category": "Writing & Translation",
		"description": "Persuasive copy for a SaaS landing page, three sections.",
		"min_price": 80,
		"max_price": 240,
		"requirements": ["Copywriting", "SEO"]
	}`)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var created dto.PostItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &created))
	s.Require().Greater(created.ID, uint64(10))

	path := "/api/posts/" + strconv.FormatUint(created.ID, 10)
	rec = s.do(rival, http.MethodDelete, path, "")
	s.Require().Equal(http.StatusForbidden, rec.Code)

	rec = s.do(client, http.MethodDelete, path, "")
	s.Require().Equal(http.StatusNoContent, rec.Code)

	rec = s.do(client, http.MethodGet, path, "")
	s.Require().Equal(http.StatusNotFound, rec.Code)

	var count int
	s.Require().NoError(s.DB.Get(&count, "SELECT COUNT(*) FROM posts WHERE id = ?", created.ID))
	s.Require().Zero(count)
}

func (s *LifecycleIntegrationSuite) TestAcceptApplicant_ThenPlanPhases() {
	rec := s.do(client, http.MethodPost, "/api/projects", `{"post_id": 3, "applicant_id": 101}`)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var project dto.ProjectItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &project))
	s.Require().Equal("accepted_applicant", project.Origin)
	s.Require().Equal(uint64(101), project.FreelancerID)

	var applicants int
	s.Require().NoError(s.DB.Get(&applicants, "SELECT COUNT(*) FROM post_applicants WHERE post_id = 3 AND applicant_id = 101"))
	s.Require().Zero(applicants)

	rec = s.do(freelancer, http.MethodPost, "/api/phases", `{
		"project_id": "`+project.ID+`",
		"name": "Dataset review",
		"deadline": "2026-11-20",
		"price": 1500,
		"todos": [{"title": "Collect samples"}, {"title": ""}, {"title": "Label classes"}]
	}`)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var phase dto.PhaseItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &phase))
	s.Require().Len(phase.Todos, 2)
	s.Require().Equal("not_started", phase.Status)

	rec = s.do(freelancer, http.MethodPost, "/api/todos/"+phase.Todos[0].ID+"/toggle", "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &phase))
	s.Require().Equal(50, phase.Completion)
	s.Require().Equal("not_started", phase.Status)

	var completed bool
	s.Require().NoError(s.DB.Get(&completed, "SELECT completed FROM todos WHERE id = ?", phase.Todos[0].ID))
	s.Require().True(completed)

	rec = s.do(client, http.MethodPost, "/api/projects/"+project.ID+"/lock", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(freelancer, http.MethodPatch, "/api/phases/"+phase.ID, `{"status": "in_progress"}`)
	s.Require().Equal(http.StatusConflict, rec.Code)

	rec = s.do(domain.Actor{}, http.MethodGet, "/api/projects/"+project.ID, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &project))
	s.Require().True(project.PhasesLocked)
	s.Require().Len(project.Phases, 1)
	s.Require().Equal(50, project.Statistics.OverallCompletion)
	s.Require().Len(project.PendingTodos, 1)

	rec = s.do(freelancer, http.MethodGet, "/api/projects", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var mine []dto.ProjectItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &mine))
	s.Require().Len(mine, 1)
	s.Require().Equal(project.ID, mine[0].ID)

	rec = s.do(rival, http.MethodGet, "/api/projects", "")
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &mine))
	s.Require().Empty(mine)
}

func (s *LifecycleIntegrationSuite) TestGetPosts_ReturnsInternalServerErrorWhenQueryFails() {
	_, err := s.DB.Exec("DROP TABLE post_applicants")
	s.Require().NoError(err)
	_, err = s.DB.Exec("DROP TABLE posts")
	s.Require().NoError(err)

	rec := s.do(domain.Actor{}, http.MethodGet, "/api/posts", "")

	s.Require().Equal(http.StatusInternalServerError, rec.Code)
	var got apierrors.JsonErr
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Equal(http.StatusInternalServerError, got.ErrDetails.Code)
}
