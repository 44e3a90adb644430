package dto

import "github.com/shopspring/decimal"

type ApplicantItem struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

type PostItem struct {
	ID           uint64          `json:"id"`
	Title        string          `json:"title"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	MinPrice     decimal.Decimal `json:"min_price"`
	MaxPrice     decimal.Decimal `json:"max_price"`
	Requirements []string        `json:"requirements"`
	Attachments  []string        `json:"attachments"`
	Applicants   []ApplicantItem `json:"applicants"`
	OwnerID      uint64          `json:"owner_id"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

// PostRequest is the post form. Attachments and applicants are only
// replaced when their key is present in the body.
type PostRequest struct {
	Title        string             `json:"title" binding:"max=255"`
	Category     string             `json:"category" binding:"max=64"`
	Description  string             `json:"description" binding:"max=65535"`
	MinPrice     decimal.Decimal    `json:"min_price"`
	MaxPrice     decimal.Decimal    `json:"max_price"`
	Requirements []string           `json:"requirements" binding:"max=50,dive,max=100"`
	Attachments  []string           `json:"attachments" binding:"max=20,dive,max=2048"`
	Applicants   []ApplicantRequest `json:"applicants" binding:"omitempty,dive"`
}

type ApplicantRequest struct {
	ID     uint64 `json:"id" binding:"required,gt=0"`
	Name   string `json:"name" binding:"max=255"`
	Avatar string `json:"avatar" binding:"max=2048"`
}

// ApplyRequest carries the display data of the applying freelancer. The id
// always comes from the session.
type ApplyRequest struct {
	Name   string `json:"name" binding:"max=255"`
	Avatar string `json:"avatar" binding:"max=2048"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

type EditSessionItem struct {
	PostID    uint64    `json:"post_id"`
	ActorID   uint64    `json:"actor_id,omitempty"`
	StartedAt *string   `json:"started_at,omitempty"`
	Draft     *PostItem `json:"draft,omitempty"`
}
