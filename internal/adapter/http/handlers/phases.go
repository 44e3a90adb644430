package handlers

import (
	"net/http"
	"skillink/internal/adapter/http/dto"
	"skillink/internal/adapter/http/mapper"
	"skillink/internal/adapter/http/middleware"
	"skillink/internal/adapter/http/validation"
	"skillink/internal/core/ports"
	"skillink/pkg/apierrors"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PhaseHandler struct {
	phaseService ports.PhaseService
	now          func() time.Time
}

func NewPhaseHandler(phaseService ports.PhaseService) *PhaseHandler {
	return &PhaseHandler{phaseService: phaseService, now: time.Now}
}

func (h *PhaseHandler) CreatePhase(c *gin.Context) {
	var req dto.CreatePhaseRequest
	if _, ok := bindJSON(c, &req); !ok {
		return
	}

	draft, err := validation.BuildPhaseDraft(req)
	if err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidPayload)
		return
	}

	phase, err := h.phaseService.AddPhase(c.Request.Context(), middleware.GetActor(c), req.ProjectID, draft)
	if err != nil {
		respondError(c, err, apierrors.MsgFailSavePhase, "failed to add phase", zap.String("project_id", req.ProjectID))
		return
	}

	c.JSON(http.StatusCreated, mapper.ToPhaseItem(phase, h.now()))
}

func (h *PhaseHandler) UpdatePhase(c *gin.Context) {
	id, ok := uuidParam(c, "id", apierrors.MsgInvalidPhaseID)
	if !ok {
		return
	}

	var req dto.UpdatePhaseRequest
	raw, ok := bindJSON(c, &req)
	if !ok {
		return
	}

	patch, err := validation.BuildPhasePatch(req, raw)
	if err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidPayload)
		return
	}

	phase, err := h.phaseService.UpdatePhase(c.Request.Context(), middleware.GetActor(c), id, patch)
	if err != nil {
		respondError(c, err, apierrors.MsgFailSavePhase, "failed to update phase", zap.String("phase_id", id))
		return
	}

	c.JSON(http.StatusOK, mapper.ToPhaseItem(phase, h.now()))
}

func (h *PhaseHandler) DeletePhase(c *gin.Context) {
	id, ok := uuidParam(c, "id", apierrors.MsgInvalidPhaseID)
	if !ok {
		return
	}

	if err := h.phaseService.DeletePhase(c.Request.Context(), middleware.GetActor(c), id); err != nil {
		respondError(c, err, apierrors.MsgFailDeletePhase, "failed to delete phase", zap.String("phase_id", id))
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *PhaseHandler) AddTodo(c *gin.Context) {
	id, ok := uuidParam(c, "id", apierrors.MsgInvalidPhaseID)
	if !ok {
		return
	}

	var req dto.TodoRequest
	if _, ok := bindJSON(c, &req); !ok {
		return
	}

	phase, err := h.phaseService.AddTodo(c.Request.Context(), middleware.GetActor(c), id, validation.BuildTodoDraft(req))
	if err != nil {
		respondError(c, err, apierrors.MsgFailSaveTodo, "failed to add todo", zap.String("phase_id", id))
		return
	}

	c.JSON(http.StatusCreated, mapper.ToPhaseItem(phase, h.now()))
}

func (h *PhaseHandler) ToggleTodo(c *gin.Context) {
	id, ok := uuidParam(c, "id", apierrors.MsgInvalidTodoID)
	if !ok {
		return
	}

	phase, err := h.phaseService.ToggleTodo(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		respondError(c, err, apierrors.MsgFailSaveTodo, "failed to toggle todo", zap.String("todo_id", id))
		return
	}

	c.JSON(http.StatusOK, mapper.ToPhaseItem(phase, h.now()))
}

func (h *PhaseHandler) EditTodo(c *gin.Context) {
	id, ok := uuidParam(c, "id", apierrors.MsgInvalidTodoID)
	if !ok {
		return
	}

	var req dto.TodoPatchRequest
	raw, ok := bindJSON(c, &req)
	if !ok {
		return
	}

	patch, err := validation.BuildTodoPatch(req, raw)
	if err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidPayload)
		return
	}

	phase, err := h.phaseService.EditTodo(c.Request.Context(), middleware.GetActor(c), id, patch)
	if err != nil {
		respondError(c, err, apierrors.MsgFailSaveTodo, "failed to edit todo", zap.String("todo_id", id))
		return
	}

	c.JSON(http.StatusOK, mapper.ToPhaseItem(phase, h.now()))
}

// DeleteTodo answers 204 when the todo was already gone.
func (h *PhaseHandler) DeleteTodo(c *gin.Context) {
	id, ok := uuidParam(c, "id", apierrors.MsgInvalidTodoID)
	if !ok {
		return
	}

	phase, err := h.phaseService.DeleteTodo(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		respondError(c, err, apierrors.MsgFailDeleteTodo, "failed to delete todo", zap.String("todo_id", id))
		return
	}
	if phase.ID == "" {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, mapper.ToPhaseItem(phase, h.now()))
}
