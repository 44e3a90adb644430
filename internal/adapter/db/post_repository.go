package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"skillink/internal/core/domain"
	"skillink/internal/core/ports"
)

const (
	selectPostsQuery = `
SELECT id, owner_id, title, category, description, min_price, max_price,
       requirements, attachments, created_at, updated_at
FROM posts
`
	listPostsQuery = selectPostsQuery + `ORDER BY created_at DESC, id DESC;`
	getPostQuery   = selectPostsQuery + `WHERE id = ?;`

	listApplicantsQuery = `
SELECT post_id, applicant_id, position, name, avatar
FROM post_applicants
ORDER BY post_id, position;
`
	getApplicantsQuery = `
SELECT post_id, applicant_id, position, name, avatar
FROM post_applicants
WHERE post_id = ?
ORDER BY position;
`
	insertPostQuery = `
INSERT INTO posts (id, owner_id, title, category, description, min_price, max_price,
                   requirements, attachments, created_at, updated_at)
VALUES (NULLIF(?, 0), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`
	updatePostQuery = `
UPDATE posts
SET title = ?, category = ?, description = ?, min_price = ?, max_price = ?,
    requirements = ?, attachments = ?, updated_at = ?
WHERE id = ?;
`
	insertApplicantQuery = `
INSERT INTO post_applicants (post_id, applicant_id, position, name, avatar)
VALUES (?, ?, ?, ?, ?);
`
	lockPostQuery = `SELECT id FROM posts WHERE id = ? FOR UPDATE;`
)

type PostRepository struct {
	db *sqlx.DB
}

type postRow struct {
	ID           uint64          `db:"id"`
	OwnerID      uint64          `db:"owner_id"`
	Title        string          `db:"title"`
	Category     string          `db:"category"`
	Description  string          `db:"description"`
	MinPrice     decimal.Decimal `db:"min_price"`
	MaxPrice     decimal.Decimal `db:"max_price"`
	Requirements []byte          `db:"requirements"`
	Attachments  []byte          `db:"attachments"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

type applicantRow struct {
	PostID      uint64 `db:"post_id"`
	ApplicantID uint64 `db:"applicant_id"`
	Position    int    `db:"position"`
	Name        string `db:"name"`
	Avatar      string `db:"avatar"`
}

var _ ports.PostRepository = (*PostRepository)(nil)

func NewPostRepository(db *sqlx.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post domain.Post) (domain.Post, error) {
	defer observe("insert", "posts")()

	requirements, attachments, err := encodePostLists(post)
	if err != nil {
		return domain.Post{}, err
	}

	err = withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, insertPostQuery,
			post.ID, post.OwnerID, post.Title, string(post.Category), post.Description,
			post.MinPrice, post.MaxPrice, requirements, attachments, post.CreatedAt, post.UpdatedAt,
		)
		if err != nil {
			return err
		}
		if post.ID == 0 {
			id, err := res.LastInsertId()
			if err != nil {
				return err
			}
			post.ID = uint64(id)
		}
		return insertApplicants(ctx, tx, post)
	})
	if err != nil {
		return domain.Post{}, err
	}

	return post.Clone(), nil
}

func (r *PostRepository) Get(ctx context.Context, id uint64) (domain.Post, error) {
	defer observe("select", "posts")()

	var row postRow
	if err := r.db.GetContext(ctx, &row, getPostQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Post{}, domain.ErrPostNotFound
		}
		return domain.Post{}, err
	}

	var applicants []applicantRow
	if err := r.db.SelectContext(ctx, &applicants, getApplicantsQuery, id); err != nil {
		return domain.Post{}, err
	}

	return mapPostRowToDomain(row, applicants)
}

func (r *PostRepository) Update(ctx context.Context, post domain.Post) error {
	defer observe("update", "posts")()

	requirements, attachments, err := encodePostLists(post)
	if err != nil {
		return err
	}

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var id uint64
		if err := tx.GetContext(ctx, &id, lockPostQuery, post.ID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrPostNotFound
			}
			return err
		}

		if _, err := tx.ExecContext(ctx, updatePostQuery,
			post.Title, string(post.Category), post.Description, post.MinPrice, post.MaxPrice,
			requirements, attachments, post.UpdatedAt, post.ID,
		); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM post_applicants WHERE post_id = ?", post.ID); err != nil {
			return err
		}
		return insertApplicants(ctx, tx, post)
	})
}

func (r *PostRepository) Delete(ctx context.Context, id uint64) error {
	defer observe("delete", "posts")()

	_, err := r.db.ExecContext(ctx, "DELETE FROM posts WHERE id = ?", id)
	return err
}

func (r *PostRepository) List(ctx context.Context) ([]domain.Post, error) {
	defer observe("list", "posts")()

	var rows []postRow
	if err := r.db.SelectContext(ctx, &rows, listPostsQuery); err != nil {
		return nil, err
	}

	var applicantRows []applicantRow
	if err := r.db.SelectContext(ctx, &applicantRows, listApplicantsQuery); err != nil {
		return nil, err
	}
	byPost := make(map[uint64][]applicantRow, len(rows))
	for _, a := range applicantRows {
		byPost[a.PostID] = append(byPost[a.PostID], a)
	}

	posts := make([]domain.Post, 0, len(rows))
	for _, row := range rows {
		post, err := mapPostRowToDomain(row, byPost[row.ID])
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	return posts, nil
}

func insertApplicants(ctx context.Context, tx *sqlx.Tx, post domain.Post) error {
	for i, a := range post.Applicants {
		if _, err := tx.ExecContext(ctx, insertApplicantQuery, post.ID, a.ID, i, a.Name, a.Avatar); err != nil {
			return err
		}
	}
	return nil
}

func encodePostLists(post domain.Post) (requirements, attachments []byte, err error) {
	requirements, err = json.Marshal(nonNil(post.Requirements))
	if err != nil {
		return nil, nil, err
	}
	attachments, err = json.Marshal(nonNil(post.Attachments))
	if err != nil {
		return nil, nil, err
	}
	return requirements, attachments, nil
}

func mapPostRowToDomain(row postRow, applicants []applicantRow) (domain.Post, error) {
	post := domain.Post{
		ID:          row.ID,
		OwnerID:     row.OwnerID,
		Title:       row.Title,
		Category:    domain.Category(row.Category),
		Description: row.Description,
		MinPrice:    row.MinPrice,
		MaxPrice:    row.MaxPrice,
		Applicants:  make([]domain.Applicant, 0, len(applicants)),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}

	if err := json.Unmarshal(row.Requirements, &post.Requirements); err != nil {
		return domain.Post{}, err
	}
	if err := json.Unmarshal(row.Attachments, &post.Attachments); err != nil {
		return domain.Post{}, err
	}

	for _, a := range applicants {
		post.Applicants = append(post.Applicants, domain.Applicant{
			ID:     a.ApplicantID,
			Name:   a.Name,
			Avatar: a.Avatar,
		})
	}

	return post, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
