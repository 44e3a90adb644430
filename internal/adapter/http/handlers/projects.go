package handlers

import (
	"context"
	"net/http"
	"skillink/internal/adapter/http/dto"
	"skillink/internal/adapter/http/mapper"
	"skillink/internal/adapter/http/middleware"
	"skillink/internal/adapter/http/validation"
	"skillink/internal/core/domain"
	"skillink/internal/core/ports"
	"skillink/pkg/apierrors"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProjectHandler struct {
	lifecycleService ports.LifecycleService
	phaseService     ports.PhaseService
	now              func() time.Time
}

func NewProjectHandler(lifecycleService ports.LifecycleService, phaseService ports.PhaseService) *ProjectHandler {
	return &ProjectHandler{
		lifecycleService: lifecycleService,
		phaseService:     phaseService,
		now:              time.Now,
	}
}

// CreateProject accepts an applicant or hires a freelancer directly,
// depending on the body shape.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	raw, ok := bindJSON(c, &req)
	if !ok {
		return
	}

	input, err := validation.BuildCreateProjectInput(req, raw)
	if err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidPayload)
		return
	}

	actor := middleware.GetActor(c)
	var project domain.Project
	switch input.Entry {
	case validation.EntryAccept:
		project, err = h.lifecycleService.AcceptApplicant(c.Request.Context(), actor, input.PostID, input.ApplicantID)
	default:
		project, err = h.lifecycleService.HireDirectly(c.Request.Context(), actor, input.FreelancerID, input.Draft)
	}
	if err != nil {
		respondError(c, err, apierrors.MsgFailCreateProject, "failed to create project",
			zap.Uint64("post_id", input.PostID),
			zap.Uint64("freelancer_id", input.FreelancerID),
		)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToProjectItem(project, h.now(), mapper.OrderSequence))
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := uuidParam(c, "id", apierrors.MsgInvalidProjectID)
	if !ok {
		return
	}

	order, err := mapper.ParsePhaseOrder(c.Query("order"))
	if err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidOrder)
		return
	}

	project, err := h.phaseService.GetProject(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, apierrors.MsgFailGetProject, "failed to get project", zap.String("project_id", id))
		return
	}

	c.JSON(http.StatusOK, mapper.ToProjectItem(project, h.now(), order))
}

// ListProjects returns the projects of the authenticated actor.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	actor := middleware.GetActor(c)
	projects, err := h.phaseService.ListProjects(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, apierrors.MsgFailListProjects, "failed to list projects", zap.Uint64("actor_id", actor.ID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToProjectItems(projects, h.now()))
}

func (h *ProjectHandler) LockPhases(c *gin.Context) {
	h.setLock(c, h.phaseService.LockPhases)
}

func (h *ProjectHandler) UnlockPhases(c *gin.Context) {
	h.setLock(c, h.phaseService.UnlockPhases)
}

type lockFunc func(ctx context.Context, actor domain.Actor, projectID string) (domain.Project, error)

func (h *ProjectHandler) setLock(c *gin.Context, apply lockFunc) {
	id, ok := uuidParam(c, "id", apierrors.MsgInvalidProjectID)
	if !ok {
		return
	}

	project, err := apply(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		respondError(c, err, apierrors.MsgFailLockPhases, "failed to change phase lock", zap.String("project_id", id))
		return
	}

	c.JSON(http.StatusOK, mapper.ToProjectItem(project, h.now(), mapper.OrderSequence))
}
