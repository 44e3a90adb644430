package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"skillink/internal/core/domain"
	"skillink/internal/core/ports"
)

const (
	selectPhasesQuery = `
SELECT id, project_id, position, name, description, status, deadline, price,
       deliverable, completed_at, created_at, updated_at
FROM phases
`
	getPhaseQuery        = selectPhasesQuery + `WHERE id = ?;`
	listProjectPhasesSQL = selectPhasesQuery + `WHERE project_id = ? ORDER BY position;`

	getPhaseTodosQuery = `
SELECT id, phase_id, position, title, completed, due_label
FROM todos
WHERE phase_id = ?
ORDER BY position;
`
	listProjectTodosQuery = `
SELECT t.id, t.phase_id, t.position, t.title, t.completed, t.due_label
FROM todos t
JOIN phases p ON p.id = t.phase_id
WHERE p.project_id = ?
ORDER BY t.phase_id, t.position;
`
	insertPhaseQuery = `
INSERT INTO phases (id, project_id, position, name, description, status, deadline, price,
                    deliverable, completed_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`
	updatePhaseQuery = `
UPDATE phases
SET position = ?, name = ?, description = ?, status = ?, deadline = ?, price = ?,
    deliverable = ?, completed_at = ?, updated_at = ?
WHERE id = ?;
`
	insertTodoQuery = `
INSERT INTO todos (id, phase_id, position, title, completed, due_label)
VALUES (?, ?, ?, ?, ?, ?);
`
	lockPhaseQuery     = `SELECT id FROM phases WHERE id = ? FOR UPDATE;`
	phaseByTodoIDQuery = `SELECT phase_id FROM todos WHERE id = ?;`
)

type PhaseRepository struct {
	db *sqlx.DB
}

type phaseRow struct {
	ID          string          `db:"id"`
	ProjectID   string          `db:"project_id"`
	Position    int             `db:"position"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Status      string          `db:"status"`
	Deadline    time.Time       `db:"deadline"`
	Price       decimal.Decimal `db:"price"`
	Deliverable sql.NullString  `db:"deliverable"`
	CompletedAt sql.NullTime    `db:"completed_at"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

type todoRow struct {
	ID        string `db:"id"`
	PhaseID   string `db:"phase_id"`
	Position  int    `db:"position"`
	Title     string `db:"title"`
	Completed bool   `db:"completed"`
	DueLabel  string `db:"due_label"`
}

var _ ports.PhaseRepository = (*PhaseRepository)(nil)

func NewPhaseRepository(db *sqlx.DB) *PhaseRepository {
	return &PhaseRepository{db: db}
}

func (r *PhaseRepository) Create(ctx context.Context, phase domain.Phase) error {
	defer observe("insert", "phases")()

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		deliverable, completedAt := nullablePhaseFields(phase)
		if _, err := tx.ExecContext(ctx, insertPhaseQuery,
			phase.ID, phase.ProjectID, phase.Position, phase.Name, phase.Description, string(phase.Status),
			phase.Deadline, phase.Price, deliverable, completedAt, phase.CreatedAt, phase.UpdatedAt,
		); err != nil {
			return err
		}
		return insertTodos(ctx, tx, phase)
	})
}

func (r *PhaseRepository) Get(ctx context.Context, id string) (domain.Phase, error) {
	defer observe("select", "phases")()

	var row phaseRow
	if err := r.db.GetContext(ctx, &row, getPhaseQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Phase{}, domain.ErrPhaseNotFound
		}
		return domain.Phase{}, err
	}

	var todos []todoRow
	if err := r.db.SelectContext(ctx, &todos, getPhaseTodosQuery, id); err != nil {
		return domain.Phase{}, err
	}

	return mapPhaseRowToDomain(row, todos), nil
}

func (r *PhaseRepository) GetByTodoID(ctx context.Context, todoID string) (domain.Phase, error) {
	var phaseID string
	if err := r.db.GetContext(ctx, &phaseID, phaseByTodoIDQuery, todoID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Phase{}, domain.ErrTodoNotFound
		}
		return domain.Phase{}, err
	}
	return r.Get(ctx, phaseID)
}

// Update rewrites the phase row and replaces its todo set.
func (r *PhaseRepository) Update(ctx context.Context, phase domain.Phase) error {
	defer observe("update", "phases")()

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var id string
		if err := tx.GetContext(ctx, &id, lockPhaseQuery, phase.ID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrPhaseNotFound
			}
			return err
		}

		deliverable, completedAt := nullablePhaseFields(phase)
		if _, err := tx.ExecContext(ctx, updatePhaseQuery,
			phase.Position, phase.Name, phase.Description, string(phase.Status), phase.Deadline, phase.Price,
			deliverable, completedAt, phase.UpdatedAt, phase.ID,
		); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM todos WHERE phase_id = ?", phase.ID); err != nil {
			return err
		}
		return insertTodos(ctx, tx, phase)
	})
}

func (r *PhaseRepository) Delete(ctx context.Context, id string) error {
	defer observe("delete", "phases")()

	_, err := r.db.ExecContext(ctx, "DELETE FROM phases WHERE id = ?", id)
	return err
}

func (r *PhaseRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Phase, error) {
	defer observe("list", "phases")()

	var rows []phaseRow
	if err := r.db.SelectContext(ctx, &rows, listProjectPhasesSQL, projectID); err != nil {
		return nil, err
	}

	var todoRows []todoRow
	if err := r.db.SelectContext(ctx, &todoRows, listProjectTodosQuery, projectID); err != nil {
		return nil, err
	}
	byPhase := make(map[string][]todoRow, len(rows))
	for _, t := range todoRows {
		byPhase[t.PhaseID] = append(byPhase[t.PhaseID], t)
	}

	phases := make([]domain.Phase, 0, len(rows))
	for _, row := range rows {
		phases = append(phases, mapPhaseRowToDomain(row, byPhase[row.ID]))
	}

	return phases, nil
}

func insertTodos(ctx context.Context, tx *sqlx.Tx, phase domain.Phase) error {
	for i, t := range phase.Todos {
		if _, err := tx.ExecContext(ctx, insertTodoQuery, t.ID, phase.ID, i, t.Title, t.Completed, t.DueLabel); err != nil {
			return err
		}
	}
	return nil
}

func nullablePhaseFields(phase domain.Phase) (sql.NullString, sql.NullTime) {
	var deliverable sql.NullString
	if phase.Deliverable != nil {
		deliverable = sql.NullString{String: *phase.Deliverable, Valid: true}
	}
	var completedAt sql.NullTime
	if phase.CompletedAt != nil {
		completedAt = sql.NullTime{Time: *phase.CompletedAt, Valid: true}
	}
	return deliverable, completedAt
}

func mapPhaseRowToDomain(row phaseRow, todos []todoRow) domain.Phase {
	phase := domain.Phase{
		ID:          row.ID,
		ProjectID:   row.ProjectID,
		Position:    row.Position,
		Name:        row.Name,
		Description: row.Description,
		Status:      domain.PhaseStatus(row.Status),
		Deadline:    row.Deadline.UTC(),
		Price:       row.Price,
		Todos:       make([]domain.Todo, 0, len(todos)),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}

	if row.Deliverable.Valid {
		value := row.Deliverable.String
		phase.Deliverable = &value
	}

	if row.CompletedAt.Valid {
		value := row.CompletedAt.Time
		phase.CompletedAt = &value
	}

	for _, t := range todos {
		phase.Todos = append(phase.Todos, domain.Todo{
			ID:        t.ID,
			Title:     t.Title,
			Completed: t.Completed,
			DueLabel:  t.DueLabel,
		})
	}
	phase.Recount()

	return phase
}
