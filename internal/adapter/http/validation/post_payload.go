package validation

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"skillink/internal/adapter/http/dto"
	"skillink/internal/core/domain"
)

// BuildPostDraft maps the form to a draft. Field rules are left to the
// domain so every failing field is reported at once.
func BuildPostDraft(req dto.PostRequest, raw map[string]json.RawMessage) domain.PostDraft {
	draft := domain.PostDraft{
		Title:          req.Title,
		Category:       domain.Category(req.Category),
		Description:    req.Description,
		MinPrice:       req.MinPrice,
		MaxPrice:       req.MaxPrice,
		Requirements:   req.Requirements,
		Attachments:    req.Attachments,
		AttachmentsSet: hasJSONField(raw, "attachments"),
		ApplicantsSet:  hasJSONField(raw, "applicants"),
	}
	for _, a := range req.Applicants {
		draft.Applicants = append(draft.Applicants, domain.Applicant{ID: a.ID, Name: a.Name, Avatar: a.Avatar})
	}
	return draft
}

// BuildPostFilter parses the catalog query string. Prices must be decimals.
func BuildPostFilter(category, query, minPrice, maxPrice string) (domain.PostFilter, error) {
	filter := domain.PostFilter{Category: category, Query: query}

	if value := strings.TrimSpace(minPrice); value != "" {
		parsed, err := decimal.NewFromString(value)
		if err != nil {
			return domain.PostFilter{}, ErrInvalidPayload
		}
		filter.MinPrice = &parsed
	}
	if value := strings.TrimSpace(maxPrice); value != "" {
		parsed, err := decimal.NewFromString(value)
		if err != nil {
			return domain.PostFilter{}, ErrInvalidPayload
		}
		filter.MaxPrice = &parsed
	}

	return filter, nil
}
