package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"skillink/internal/adapter/http/middleware"
	"skillink/internal/core/domain"
	"skillink/pkg/apierrors"
)

var notFoundMessages = []struct {
	err error
	key string
}{
	{domain.ErrPostNotFound, apierrors.MsgPostNotFound},
	{domain.ErrApplicantNotFound, apierrors.MsgApplicantNotFound},
	{domain.ErrProjectNotFound, apierrors.MsgProjectNotFound},
	{domain.ErrPhaseNotFound, apierrors.MsgPhaseNotFound},
	{domain.ErrTodoNotFound, apierrors.MsgTodoNotFound},
	{domain.ErrFreelancerNotFound, apierrors.MsgFreelancerNotFound},
}

// respondError maps a service error to its HTTP answer. Unknown errors are
// logged and answered with failKey.
func respondError(c *gin.Context, err error, failKey, logMsg string, fields ...zap.Field) {
	lang := middleware.GetLang(c)

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		failing := make([]apierrors.FieldError, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			failing = append(failing, apierrors.FieldError{Field: f.Field, Code: f.Code})
		}
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateFieldsError(http.StatusBadRequest, apierrors.MsgValidationFailed, lang, failing),
		)
		return
	}

	switch {
	case errors.Is(err, domain.ErrForbidden):
		writeError(c, http.StatusForbidden, apierrors.MsgForbidden)
		return
	case errors.Is(err, domain.ErrPhasesLocked):
		writeError(c, http.StatusConflict, apierrors.MsgPhasesLocked)
		return
	case errors.Is(err, domain.ErrNotFound):
		for _, m := range notFoundMessages {
			if errors.Is(err, m.err) {
				writeError(c, http.StatusNotFound, m.key)
				return
			}
		}
	}

	zap.L().Error(logMsg, append(fields, zap.Error(err))...)
	writeError(c, http.StatusInternalServerError, failKey)
}

func writeError(c *gin.Context, status int, msgKey string) {
	c.JSON(status, apierrors.CreateError(status, msgKey, middleware.GetLang(c)))
}

// bindJSON decodes the body into req and also returns the raw keys, so
// callers can tell an absent field from a zero one.
func bindJSON(c *gin.Context, req any) (map[string]json.RawMessage, bool) {
	body, err := c.GetRawData()
	if err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidPayload)
		return nil, false
	}

	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &raw); err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidPayload)
		return nil, false
	}
	if err := binding.JSON.BindBody(body, req); err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidPayload)
		return nil, false
	}
	return raw, true
}

func uintParam(c *gin.Context, name, msgKey string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		writeError(c, http.StatusBadRequest, msgKey)
		return 0, false
	}
	return id, true
}

func uuidParam(c *gin.Context, name, msgKey string) (string, bool) {
	id := c.Param(name)
	if err := uuid.Validate(id); err != nil {
		writeError(c, http.StatusBadRequest, msgKey)
		return "", false
	}
	return id, true
}
