package mapper

import (
	"iter"
	"time"

	"skillink/internal/adapter/http/dto"
	"skillink/internal/core/domain"
)

func ToPostItems(posts iter.Seq[domain.Post]) []dto.PostItem {
	items := make([]dto.PostItem, 0)
	for post := range posts {
		items = append(items, ToPostItem(post))
	}
	return items
}

func ToPostItem(post domain.Post) dto.PostItem {
	item := dto.PostItem{
		ID:           post.ID,
		Title:        post.Title,
		Category:     string(post.Category),
		Description:  post.Description,
		MinPrice:     post.MinPrice,
		MaxPrice:     post.MaxPrice,
		Requirements: append([]string{}, post.Requirements...),
		Attachments:  append([]string{}, post.Attachments...),
		Applicants:   make([]dto.ApplicantItem, 0, len(post.Applicants)),
		OwnerID:      post.OwnerID,
		CreatedAt:    post.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    post.UpdatedAt.Format(time.RFC3339),
	}
	for _, a := range post.Applicants {
		item.Applicants = append(item.Applicants, dto.ApplicantItem{ID: a.ID, Name: a.Name, Avatar: a.Avatar})
	}
	return item
}

func ToCategories(categories []domain.Category) dto.CategoriesResponse {
	out := dto.CategoriesResponse{Categories: make([]string, 0, len(categories))}
	for _, c := range categories {
		out.Categories = append(out.Categories, string(c))
	}
	return out
}

func ToEditSessionItem(session domain.EditSession) dto.EditSessionItem {
	if session.IsEmpty() {
		return dto.EditSessionItem{}
	}

	startedAt := session.StartedAt.Format(time.RFC3339)
	draft := ToPostItem(session.Snapshot)
	return dto.EditSessionItem{
		PostID:    session.PostID,
		ActorID:   session.ActorID,
		StartedAt: &startedAt,
		Draft:     &draft,
	}
}
