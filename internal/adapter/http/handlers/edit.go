package handlers

import (
	"net/http"
	"skillink/internal/adapter/http/mapper"
	"skillink/internal/adapter/http/middleware"
	"skillink/internal/core/ports"
	"skillink/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EditHandler exposes the single "currently editing" slot.
type EditHandler struct {
	postService      ports.PostService
	lifecycleService ports.LifecycleService
}

func NewEditHandler(postService ports.PostService, lifecycleService ports.LifecycleService) *EditHandler {
	return &EditHandler{postService: postService, lifecycleService: lifecycleService}
}

func (h *EditHandler) StartEdit(c *gin.Context) {
	id, ok := uintParam(c, "id", apierrors.MsgInvalidPostID)
	if !ok {
		return
	}

	session, err := h.postService.StartEdit(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		respondError(c, err, apierrors.MsgFailEditSession, "failed to start edit", zap.Uint64("post_id", id))
		return
	}

	c.JSON(http.StatusOK, mapper.ToEditSessionItem(session))
}

func (h *EditHandler) CurrentEdit(c *gin.Context) {
	session, err := h.postService.CurrentEdit(c.Request.Context())
	if err != nil {
		respondError(c, err, apierrors.MsgFailEditSession, "failed to read edit session")
		return
	}

	c.JSON(http.StatusOK, mapper.ToEditSessionItem(session))
}

func (h *EditHandler) ClearEdit(c *gin.Context) {
	if err := h.postService.ClearEdit(c.Request.Context()); err != nil {
		respondError(c, err, apierrors.MsgFailEditSession, "failed to clear edit session")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *EditHandler) DiscardEdit(c *gin.Context) {
	if err := h.lifecycleService.DiscardEdit(c.Request.Context(), middleware.GetActor(c)); err != nil {
		respondError(c, err, apierrors.MsgFailDiscardEdit, "failed to discard edit")
		return
	}

	c.Status(http.StatusNoContent)
}
