package validation

import (
	"encoding/json"
	"time"

	"skillink/internal/adapter/http/dto"
	"skillink/internal/core/domain"
)

const dateLayout = "2006-01-02"

// BuildPhaseDraft maps the phase form. A missing deadline stays zero and is
// reported by the domain with the other missing fields.
func BuildPhaseDraft(req dto.CreatePhaseRequest) (domain.PhaseDraft, error) {
	var deadline time.Time
	if req.Deadline != "" {
		parsed, err := time.Parse(dateLayout, req.Deadline)
		if err != nil {
			return domain.PhaseDraft{}, ErrInvalidPayload
		}
		deadline = parsed
	}

	todos := make([]domain.TodoDraft, 0, len(req.Todos))
	for _, t := range req.Todos {
		todos = append(todos, domain.TodoDraft{Title: t.Title, DueLabel: t.DueLabel})
	}

	return domain.PhaseDraft{
		Name:        req.Name,
		Description: req.Description,
		Deadline:    deadline,
		Price:       req.Price,
		Deliverable: req.Deliverable,
		Todos:       todos,
	}, nil
}

func BuildPhasePatch(req dto.UpdatePhaseRequest, raw map[string]json.RawMessage) (domain.PhasePatch, error) {
	if !hasAnyJSONField(raw, "name", "description", "deadline", "price", "deliverable", "status") {
		return domain.PhasePatch{}, ErrInvalidPayload
	}
	for _, field := range []string{"name", "description", "deadline", "price", "status"} {
		if presentButNull(raw, field) {
			return domain.PhasePatch{}, ErrInvalidPayload
		}
	}

	var deadline *time.Time
	if req.Deadline != nil {
		parsed, err := time.Parse(dateLayout, *req.Deadline)
		if err != nil {
			return domain.PhasePatch{}, ErrInvalidPayload
		}
		deadline = &parsed
	}

	var status *domain.PhaseStatus
	if req.Status != nil {
		value := domain.PhaseStatus(*req.Status)
		status = &value
	}

	return domain.PhasePatch{
		Name:           req.Name,
		Description:    req.Description,
		Deadline:       deadline,
		Price:          req.Price,
		Deliverable:    req.Deliverable,
		DeliverableSet: hasJSONField(raw, "deliverable"),
		Status:         status,
	}, nil
}

func BuildTodoDraft(req dto.TodoRequest) domain.TodoDraft {
	return domain.TodoDraft{Title: req.Title, DueLabel: req.DueLabel}
}

func BuildTodoPatch(req dto.TodoPatchRequest, raw map[string]json.RawMessage) (domain.TodoPatch, error) {
	if !hasAnyJSONField(raw, "title", "due_label") {
		return domain.TodoPatch{}, ErrInvalidPayload
	}
	if presentButNull(raw, "title") || presentButNull(raw, "due_label") {
		return domain.TodoPatch{}, ErrInvalidPayload
	}
	return domain.TodoPatch{Title: req.Title, DueLabel: req.DueLabel}, nil
}
