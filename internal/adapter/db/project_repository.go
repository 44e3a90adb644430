package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"skillink/internal/core/domain"
	"skillink/internal/core/ports"
)

const (
	insertProjectQuery = `
INSERT INTO projects (id, post_id, client_id, freelancer_id, applicant_id, title, origin, phases_locked, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
`
	getProjectQuery = `
SELECT id, post_id, client_id, freelancer_id, applicant_id, title, origin, phases_locked, created_at
FROM projects
WHERE id = ?;
`
	listProjectsByParticipantQuery = `
SELECT id, post_id, client_id, freelancer_id, applicant_id, title, origin, phases_locked, created_at
FROM projects
WHERE client_id = ? OR freelancer_id = ?
ORDER BY created_at DESC, id ASC;
`
	updateProjectQuery = `
UPDATE projects
SET title = ?, phases_locked = ?
WHERE id = ?;
`
)

type ProjectRepository struct {
	db *sqlx.DB
}

type projectRow struct {
	ID           string        `db:"id"`
	PostID       uint64        `db:"post_id"`
	ClientID     uint64        `db:"client_id"`
	FreelancerID uint64        `db:"freelancer_id"`
	ApplicantID  sql.NullInt64 `db:"applicant_id"`
	Title        string        `db:"title"`
	Origin       string        `db:"origin"`
	PhasesLocked bool          `db:"phases_locked"`
	CreatedAt    time.Time     `db:"created_at"`
}

var _ ports.ProjectRepository = (*ProjectRepository)(nil)

func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project domain.Project) error {
	defer observe("insert", "projects")()

	var applicantID sql.NullInt64
	if project.ApplicantID != nil {
		applicantID = sql.NullInt64{Int64: int64(*project.ApplicantID), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, insertProjectQuery,
		project.ID, project.PostID, project.ClientID, project.FreelancerID, applicantID,
		project.Title, string(project.Origin), project.PhasesLocked, project.CreatedAt,
	)
	return err
}

func (r *ProjectRepository) Get(ctx context.Context, id string) (domain.Project, error) {
	defer observe("select", "projects")()

	var row projectRow
	if err := r.db.GetContext(ctx, &row, getProjectQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Project{}, domain.ErrProjectNotFound
		}
		return domain.Project{}, err
	}

	return mapProjectRowToDomain(row), nil
}

func (r *ProjectRepository) Update(ctx context.Context, project domain.Project) error {
	defer observe("update", "projects")()

	if _, err := r.Get(ctx, project.ID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, updateProjectQuery, project.Title, project.PhasesLocked, project.ID)
	return err
}

func (r *ProjectRepository) ListByParticipant(ctx context.Context, userID uint64) ([]domain.Project, error) {
	defer observe("select", "projects")()

	var rows []projectRow
	if err := r.db.SelectContext(ctx, &rows, listProjectsByParticipantQuery, userID, userID); err != nil {
		return nil, err
	}

	projects := make([]domain.Project, 0, len(rows))
	for _, row := range rows {
		projects = append(projects, mapProjectRowToDomain(row))
	}
	return projects, nil
}

func mapProjectRowToDomain(row projectRow) domain.Project {
	project := domain.Project{
		ID:           row.ID,
		PostID:       row.PostID,
		ClientID:     row.ClientID,
		FreelancerID: row.FreelancerID,
		Title:        row.Title,
		Origin:       domain.ProjectOrigin(row.Origin),
		PhasesLocked: row.PhasesLocked,
		CreatedAt:    row.CreatedAt,
	}

	if row.ApplicantID.Valid {
		value := uint64(row.ApplicantID.Int64)
		project.ApplicantID = &value
	}

	return project
}
