package domain_test

import (
	"fmt"
	"testing"
	"time"

	"skillink/internal/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func phaseDraft(titles ...string) domain.PhaseDraft {
	price := decimal.NewFromInt(1500)
	todos := make([]domain.TodoDraft, 0, len(titles))
	for _, title := range titles {
		todos = append(todos, domain.TodoDraft{Title: title, DueLabel: "Nov 15"})
	}
	return domain.PhaseDraft{
		Name:     "Discovery",
		Deadline: time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC),
		Price:    &price,
		Todos:    todos,
	}
}

func newPhase(t *testing.T, titles ...string) domain.Phase {
	t.Helper()
	d := phaseDraft(titles...).Normalize()
	require.NoError(t, domain.ValidatePhaseDraft(d))
	return domain.NewPhase("phase-1", "project-1", 0, d, sequentialIDs("todo"), time.Now())
}

func assertSummaryMatches(t *testing.T, p domain.Phase) {
	t.Helper()
	completed := 0
	for _, todo := range p.Todos {
		if todo.Completed {
			completed++
		}
	}
	assert.Equal(t, completed, p.Tasks.Completed)
	assert.Equal(t, len(p.Todos), p.Tasks.Total)
	assert.LessOrEqual(t, p.Tasks.Completed, p.Tasks.Total)
}

func TestValidatePhaseDraft_MissingFields(t *testing.T) {
	d := domain.PhaseDraft{Todos: []domain.TodoDraft{{Title: "  "}}}.Normalize()

	err := domain.ValidatePhaseDraft(d)

	assert.ElementsMatch(t, []string{"name", "deadline", "price", "todos"}, fieldsOf(t, err))
}

func TestValidatePhaseDraft_NegativePrice(t *testing.T) {
	d := phaseDraft("Kickoff")
	negative := decimal.NewFromInt(-1)
	d.Price = &negative

	assert.Equal(t, []string{"price"}, fieldsOf(t, domain.ValidatePhaseDraft(d.Normalize())))
}

func TestValidatePhaseDraft_SubCentPrice(t *testing.T) {
	d := phaseDraft("Kickoff")
	precise := decimal.RequireFromString("1500.005")
	d.Price = &precise

	err := domain.ValidatePhaseDraft(d.Normalize())

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []domain.FieldError{{Field: "price", Code: domain.CodeTooPrecise}}, verr.Fields)
}

func TestApplyPatch_SubCentPrice(t *testing.T) {
	p := newPhase(t, "a")
	price := decimal.RequireFromString("99.999")

	err := p.ApplyPatch(domain.PhasePatch{Price: &price}, time.Now())

	assert.Equal(t, []string{"price"}, fieldsOf(t, err))
	assert.True(t, p.Price.Equal(decimal.NewFromInt(1500)))
}

func TestNewPhase_DropsBlankTodosAndStartsNotStarted(t *testing.T) {
	p := newPhase(t, "Kickoff", " ", "Research")

	assert.Equal(t, domain.PhaseStatusNotStarted, p.Status)
	require.Len(t, p.Todos, 2)
	assert.Equal(t, domain.TaskSummary{Completed: 0, Total: 2}, p.Tasks)
	assert.Equal(t, "todo-1", p.Todos[0].ID)
}

func TestToggleTodo_TwoOfThreeIsSixtySevenPercent(t *testing.T) {
	p := newPhase(t, "a", "b", "c")
	inProgress := domain.PhaseStatusInProgress
	require.NoError(t, p.ApplyPatch(domain.PhasePatch{Status: &inProgress}, time.Now()))

	_, ok := p.ToggleTodo(p.Todos[0].ID)
	require.True(t, ok)
	_, ok = p.ToggleTodo(p.Todos[1].ID)
	require.True(t, ok)

	assert.Equal(t, 67, p.CompletionPercentage())
	assert.Equal(t, domain.PhaseStatusInProgress, p.Status)
	assertSummaryMatches(t, p)
}

func TestToggleTodo_FullCompletionDoesNotPromoteStatus(t *testing.T) {
	p := newPhase(t, "a")

	p.ToggleTodo(p.Todos[0].ID)

	assert.Equal(t, 100, p.CompletionPercentage())
	assert.Equal(t, domain.PhaseStatusNotStarted, p.Status)
}

func TestTodoMutations_SummaryNeverDrifts(t *testing.T) {
	p := newPhase(t, "a", "b")

	_, err := p.AddTodo("todo-x", domain.TodoDraft{Title: "c"})
	require.NoError(t, err)
	assertSummaryMatches(t, p)

	p.ToggleTodo("todo-x")
	assertSummaryMatches(t, p)

	title := "renamed"
	_, err = p.EditTodo("todo-x", domain.TodoPatch{Title: &title})
	require.NoError(t, err)
	assertSummaryMatches(t, p)

	assert.True(t, p.RemoveTodo("todo-x"))
	assertSummaryMatches(t, p)

	assert.True(t, p.RemoveTodo(p.Todos[0].ID))
	assert.True(t, p.RemoveTodo(p.Todos[0].ID))
	assert.Equal(t, domain.TaskSummary{}, p.Tasks)
	assert.Equal(t, 0, p.CompletionPercentage())
}

func TestTodoMutations_RejectBlankTitle(t *testing.T) {
	p := newPhase(t, "a")

	_, err := p.AddTodo("todo-x", domain.TodoDraft{Title: "   "})
	require.ErrorIs(t, err, domain.ErrValidation)

	blank := " "
	_, err = p.EditTodo(p.Todos[0].ID, domain.TodoPatch{Title: &blank})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "a", p.Todos[0].Title)

	_, err = p.EditTodo("missing", domain.TodoPatch{})
	require.ErrorIs(t, err, domain.ErrTodoNotFound)
}

func TestApplyPatch_StatusMovesForwardOnly(t *testing.T) {
	p := newPhase(t, "a")
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	completed := domain.PhaseStatusCompleted
	inProgress := domain.PhaseStatusInProgress

	require.NoError(t, p.ApplyPatch(domain.PhasePatch{Status: &completed}, now))
	require.NotNil(t, p.CompletedAt)
	assert.Equal(t, now, *p.CompletedAt)

	err := p.ApplyPatch(domain.PhasePatch{Status: &inProgress}, now)
	assert.Equal(t, []string{"status"}, fieldsOf(t, err))
	assert.Equal(t, domain.PhaseStatusCompleted, p.Status)

	name := "Wrap-up"
	require.NoError(t, p.ApplyPatch(domain.PhasePatch{Name: &name}, now))
	assert.Equal(t, "Wrap-up", p.Name)
	assert.Equal(t, domain.PhaseStatusCompleted, p.Status)
}

func TestApplyPatch_FailureLeavesPhaseUntouched(t *testing.T) {
	p := newPhase(t, "a")
	name := "Renamed"
	negative := decimal.NewFromInt(-5)
	unknown := domain.PhaseStatus("archived")

	err := p.ApplyPatch(domain.PhasePatch{Name: &name, Price: &negative, Status: &unknown}, time.Now())

	assert.ElementsMatch(t, []string{"price", "status"}, fieldsOf(t, err))
	assert.Equal(t, "Discovery", p.Name)
}

func TestDaysUntilDeadline(t *testing.T) {
	p := newPhase(t, "a")
	today := time.Date(2026, 11, 17, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, 3, p.DaysUntilDeadline(today))
	assert.False(t, p.IsOverdue(today))

	later := time.Date(2026, 11, 22, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, -2, p.DaysUntilDeadline(later))
	assert.True(t, p.IsOverdue(later))

	completed := domain.PhaseStatusCompleted
	require.NoError(t, p.ApplyPatch(domain.PhasePatch{Status: &completed}, later))
	assert.False(t, p.IsOverdue(later))
}
