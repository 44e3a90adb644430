package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"skillink/internal/core/domain"
	"skillink/internal/core/ports"
)

const editSlotKey = "skillink:edit_slot"

// EditSlot stores the single editing session under one key, so every API
// instance shares the same slot.
type EditSlot struct {
	client redis.Cmdable
}

var _ ports.EditSlot = (*EditSlot)(nil)

func NewEditSlot(client redis.Cmdable) *EditSlot {
	return &EditSlot{client: client}
}

type applicantRecord struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type postRecord struct {
	ID           uint64            `json:"id"`
	Title        string            `json:"title"`
	Category     string            `json:"category"`
	Description  string            `json:"description"`
	MinPrice     decimal.Decimal   `json:"min_price"`
	MaxPrice     decimal.Decimal   `json:"max_price"`
	Requirements []string          `json:"requirements"`
	Attachments  []string          `json:"attachments"`
	Applicants   []applicantRecord `json:"applicants"`
	OwnerID      uint64            `json:"owner_id"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

type sessionRecord struct {
	PostID    uint64     `json:"post_id"`
	ActorID   uint64     `json:"actor_id"`
	Snapshot  postRecord `json:"snapshot"`
	StartedAt time.Time  `json:"started_at"`
}

func (s *EditSlot) Get(ctx context.Context) (domain.EditSession, error) {
	raw, err := s.client.Get(ctx, editSlotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.EditSession{}, nil
	}
	if err != nil {
		return domain.EditSession{}, fmt.Errorf("read edit slot: %w", err)
	}

	var record sessionRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return domain.EditSession{}, fmt.Errorf("decode edit slot: %w", err)
	}
	return mapRecordToSession(record), nil
}

func (s *EditSlot) Set(ctx context.Context, session domain.EditSession) error {
	raw, err := json.Marshal(mapSessionToRecord(session))
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, editSlotKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("write edit slot: %w", err)
	}
	return nil
}

func (s *EditSlot) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, editSlotKey).Err(); err != nil {
		return fmt.Errorf("clear edit slot: %w", err)
	}
	return nil
}

func mapSessionToRecord(session domain.EditSession) sessionRecord {
	p := session.Snapshot
	applicants := make([]applicantRecord, 0, len(p.Applicants))
	for _, a := range p.Applicants {
		applicants = append(applicants, applicantRecord{ID: a.ID, Name: a.Name, Avatar: a.Avatar})
	}
	return sessionRecord{
		PostID:  session.PostID,
		ActorID: session.ActorID,
		Snapshot: postRecord{
			ID:           p.ID,
			Title:        p.Title,
			Category:     string(p.Category),
			Description:  p.Description,
			MinPrice:     p.MinPrice,
			MaxPrice:     p.MaxPrice,
			Requirements: p.Requirements,
			Attachments:  p.Attachments,
			Applicants:   applicants,
			OwnerID:      p.OwnerID,
			CreatedAt:    p.CreatedAt,
			UpdatedAt:    p.UpdatedAt,
		},
		StartedAt: session.StartedAt,
	}
}

func mapRecordToSession(record sessionRecord) domain.EditSession {
	r := record.Snapshot
	applicants := make([]domain.Applicant, 0, len(r.Applicants))
	for _, a := range r.Applicants {
		applicants = append(applicants, domain.Applicant{ID: a.ID, Name: a.Name, Avatar: a.Avatar})
	}
	return domain.EditSession{
		PostID:  record.PostID,
		ActorID: record.ActorID,
		Snapshot: domain.Post{
			ID:           r.ID,
			Title:        r.Title,
			Category:     domain.Category(r.Category),
			Description:  r.Description,
			MinPrice:     r.MinPrice,
			MaxPrice:     r.MaxPrice,
			Requirements: append([]string{}, r.Requirements...),
			Attachments:  append([]string{}, r.Attachments...),
			Applicants:   applicants,
			OwnerID:      r.OwnerID,
			CreatedAt:    r.CreatedAt,
			UpdatedAt:    r.UpdatedAt,
		},
		StartedAt: record.StartedAt,
	}
}
