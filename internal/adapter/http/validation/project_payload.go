package validation

import (
	"encoding/json"

	"skillink/internal/adapter/http/dto"
	"skillink/internal/core/domain"
)

type ProjectEntry int

const (
	EntryAccept ProjectEntry = iota + 1
	EntryHire
)

// CreateProjectInput is one of the two ways a project comes to exist.
type CreateProjectInput struct {
	Entry        ProjectEntry
	PostID       uint64
	ApplicantID  uint64
	FreelancerID uint64
	Draft        domain.PostDraft
}

func BuildCreateProjectInput(req dto.CreateProjectRequest, raw map[string]json.RawMessage) (CreateProjectInput, error) {
	accept := req.PostID != nil || req.ApplicantID != nil
	hire := req.FreelancerID != nil || hasJSONField(raw, "post")

	switch {
	case accept && hire:
		return CreateProjectInput{}, ErrInvalidPayload
	case accept:
		if req.PostID == nil || req.ApplicantID == nil {
			return CreateProjectInput{}, ErrInvalidPayload
		}
		return CreateProjectInput{
			Entry:       EntryAccept,
			PostID:      *req.PostID,
			ApplicantID: *req.ApplicantID,
		}, nil
	case hire:
		if req.FreelancerID == nil || req.Post == nil {
			return CreateProjectInput{}, ErrInvalidPayload
		}
		var postRaw map[string]json.RawMessage
		if err := json.Unmarshal(raw["post"], &postRaw); err != nil {
			return CreateProjectInput{}, ErrInvalidPayload
		}
		return CreateProjectInput{
			Entry:        EntryHire,
			FreelancerID: *req.FreelancerID,
			Draft:        BuildPostDraft(*req.Post, postRaw),
		}, nil
	default:
		return CreateProjectInput{}, ErrInvalidPayload
	}
}
