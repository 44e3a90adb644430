package handlers

import (
	"net/http"
	"skillink/internal/adapter/http/dto"
	"skillink/internal/adapter/http/mapper"
	"skillink/internal/adapter/http/middleware"
	"skillink/internal/core/domain"
	"skillink/internal/core/ports"
	"skillink/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ApplicantHandler struct {
	applicantService ports.ApplicantService
}

func NewApplicantHandler(applicantService ports.ApplicantService) *ApplicantHandler {
	return &ApplicantHandler{applicantService: applicantService}
}

func (h *ApplicantHandler) Apply(c *gin.Context) {
	postID, ok := uintParam(c, "id", apierrors.MsgInvalidPostID)
	if !ok {
		return
	}

	// The body is optional; without it the applicant has no display data.
	var req dto.ApplyRequest
	if c.Request.ContentLength != 0 {
		if _, ok := bindJSON(c, &req); !ok {
			return
		}
	}

	actor := middleware.GetActor(c)
	post, err := h.applicantService.Apply(c.Request.Context(), actor, postID, domain.Applicant{
		ID:     actor.ID,
		Name:   req.Name,
		Avatar: req.Avatar,
	})
	if err != nil {
		respondError(c, err, apierrors.MsgFailApply, "failed to apply to post", zap.Uint64("post_id", postID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToPostItem(post))
}

// Withdraw removes an applicant: a client refuses one, a freelancer cancels
// their own application.
func (h *ApplicantHandler) Withdraw(c *gin.Context) {
	postID, ok := uintParam(c, "id", apierrors.MsgInvalidPostID)
	if !ok {
		return
	}
	applicantID, ok := uintParam(c, "applicantId", apierrors.MsgInvalidApplicantID)
	if !ok {
		return
	}

	actor := middleware.GetActor(c)
	var err error
	if actor.IsClient() {
		err = h.applicantService.Refuse(c.Request.Context(), actor, postID, applicantID)
	} else {
		err = h.applicantService.Cancel(c.Request.Context(), actor, postID, applicantID)
	}
	if err != nil {
		respondError(c, err, apierrors.MsgFailWithdraw, "failed to remove applicant",
			zap.Uint64("post_id", postID),
			zap.Uint64("applicant_id", applicantID),
		)
		return
	}

	c.Status(http.StatusNoContent)
}
