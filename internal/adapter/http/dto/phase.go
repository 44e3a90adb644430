package dto

import "github.com/shopspring/decimal"

type TodoRequest struct {
	Title    string `json:"title" binding:"max=255"`
	DueLabel string `json:"due_label" binding:"max=64"`
}

type TodoPatchRequest struct {
	Title    *string `json:"title" binding:"omitempty,max=255"`
	DueLabel *string `json:"due_label" binding:"omitempty,max=64"`
}

type CreatePhaseRequest struct {
	ProjectID   string           `json:"project_id" binding:"required,uuid"`
	Name        string           `json:"name" binding:"max=255"`
	Description string           `json:"description" binding:"max=65535"`
	Deadline    string           `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
	Price       *decimal.Decimal `json:"price"`
	Deliverable *string          `json:"deliverable" binding:"omitempty,max=2048"`
	Todos       []TodoRequest    `json:"todos" binding:"dive"`
}

type UpdatePhaseRequest struct {
	Name        *string          `json:"name" binding:"omitempty,max=255"`
	Description *string          `json:"description" binding:"omitempty,max=65535"`
	Deadline    *string          `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
	Price       *decimal.Decimal `json:"price"`
	Deliverable *string          `json:"deliverable" binding:"omitempty,max=2048"`
	Status      *string          `json:"status"`
}
