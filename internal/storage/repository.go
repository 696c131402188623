package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"financas/internal/core"
	"financas/internal/services"

	_ "modernc.org/sqlite"
)

// SQLiteRepository backs every service port with a single sqlite database:
// the operation ledger, budgets and their items, goals and the monthly
// summaries.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const operationColumns = `id, user_id, nature, state, payment_method, source_account,
	destination_account, op_date, value, category, details, receipt, project,
	goal_id, pair_id, created_at, updated_at`

// ListOperations implements services.LedgerReader.
func (r *SQLiteRepository) ListOperations(ctx context.Context, filter services.OperationFilter) ([]core.Operation, error) {
	query := `SELECT ` + operationColumns + ` FROM operations WHERE 1=1`
	var args []any
	if filter.UserID != "" {
		query += ` AND user_id = ?`
		args = append(args, filter.UserID)
	}
	if filter.Nature != nil {
		query += ` AND nature = ?`
		args = append(args, string(*filter.Nature))
	}
	if filter.State != nil {
		query += ` AND state = ?`
		args = append(args, string(*filter.State))
	}
	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, filter.Category)
	}
	if filter.GoalID != "" {
		query += ` AND goal_id = ?`
		args = append(args, filter.GoalID)
	}
	if !filter.From.IsZero() {
		query += ` AND op_date >= ?`
		args = append(args, filter.From.String())
	}
	if !filter.To.IsZero() {
		query += ` AND op_date <= ?`
		args = append(args, filter.To.String())
	}
	query += ` ORDER BY op_date, created_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	defer rows.Close()

	var ops []core.Operation
	for rows.Next() {
		op, err := scanOperation(rows)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, rows.Err()
}

func (r *SQLiteRepository) GetOperation(ctx context.Context, id string) (core.Operation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+operationColumns+` FROM operations WHERE id = ?`, id)
	op, err := scanOperation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Operation{}, fmt.Errorf("%w: operation %s", core.ErrNotFound, id)
	}
	return op, err
}

func (r *SQLiteRepository) InsertOperation(ctx context.Context, op core.Operation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO operations (`+operationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		op.ID, op.UserID, string(op.Nature), string(op.State), op.PaymentMethod,
		op.SourceAccount, op.DestinationAccount, op.Date.String(), op.Value.String(),
		op.Category, op.Details, op.Receipt, op.Project, op.GoalID, op.PairID,
		timeText(op.CreatedAt), timeText(op.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert operation: %w", err)
	}
	slog.InfoContext(ctx, "Operation saved",
		"id", op.ID, "user_id", op.UserID, "nature", string(op.Nature),
		"state", string(op.State), "value", op.Value.String(), "category", op.Category)
	return nil
}

func (r *SQLiteRepository) UpdateOperation(ctx context.Context, op core.Operation) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE operations SET user_id = ?, nature = ?, state = ?, payment_method = ?,
			source_account = ?, destination_account = ?, op_date = ?, value = ?,
			category = ?, details = ?, receipt = ?, project = ?, goal_id = ?,
			pair_id = ?, updated_at = ?
		WHERE id = ?`,
		op.UserID, string(op.Nature), string(op.State), op.PaymentMethod,
		op.SourceAccount, op.DestinationAccount, op.Date.String(), op.Value.String(),
		op.Category, op.Details, op.Receipt, op.Project, op.GoalID, op.PairID,
		timeText(op.UpdatedAt), op.ID)
	if err != nil {
		return fmt.Errorf("update operation: %w", err)
	}
	return requireRow(res, "operation", op.ID)
}

func (r *SQLiteRepository) DeleteOperation(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM operations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete operation: %w", err)
	}
	return requireRow(res, "operation", id)
}

const budgetColumns = `id, user_id, name, start_date, end_date, type, base_month,
	total_planned, total_actual, created_at, updated_at`

// ActiveBudget implements services.BudgetReader. It returns (nil, nil) when
// the user has no active budget.
func (r *SQLiteRepository) ActiveBudget(ctx context.Context, userID string) (*core.Budget, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE user_id = ? AND active = 1`, userID)
	budget, err := scanBudget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &budget, nil
}

func (r *SQLiteRepository) BudgetItems(ctx context.Context, budgetID string) ([]core.BudgetItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, budget_id, category, type, planned, actual, position
		FROM budget_items WHERE budget_id = ? ORDER BY position`, budgetID)
	if err != nil {
		return nil, fmt.Errorf("list budget items: %w", err)
	}
	defer rows.Close()

	var items []core.BudgetItem
	for rows.Next() {
		var (
			item            core.BudgetItem
			typ             string
			planned, actual sql.NullString
		)
		if err := rows.Scan(&item.ID, &item.BudgetID, &item.Category, &typ,
			&planned, &actual, &item.Position); err != nil {
			return nil, fmt.Errorf("scan budget item: %w", err)
		}
		item.Type = core.Nature(typ)
		if item.Planned, err = decimalText(planned.String); err != nil {
			return nil, err
		}
		if actual.Valid {
			value, err := decimalText(actual.String)
			if err != nil {
				return nil, err
			}
			item.Actual = &value
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// InsertBudget stores a budget with its items, deactivating any budget the
// user already had. One transaction covers the whole swap.
func (r *SQLiteRepository) InsertBudget(ctx context.Context, b core.Budget, items []core.BudgetItem) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE budgets SET active = 0 WHERE user_id = ? AND active = 1`, b.UserID); err != nil {
			return fmt.Errorf("deactivate previous budget: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO budgets (`+budgetColumns+`, active)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)`,
			b.ID, b.UserID, b.Name, b.Start.String(), b.End.String(), string(b.Type),
			monthText(b.BaseMonth), b.TotalPlanned.String(), b.TotalActual.String(),
			timeText(b.CreatedAt), timeText(b.UpdatedAt)); err != nil {
			return fmt.Errorf("insert budget: %w", err)
		}
		return insertItems(ctx, tx, items)
	})
}

func (r *SQLiteRepository) UpdateBudget(ctx context.Context, b core.Budget, items []core.BudgetItem) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE budgets SET name = ?, start_date = ?, end_date = ?, type = ?,
				base_month = ?, total_planned = ?, total_actual = ?, updated_at = ?
			WHERE id = ?`,
			b.Name, b.Start.String(), b.End.String(), string(b.Type),
			monthText(b.BaseMonth), b.TotalPlanned.String(), b.TotalActual.String(),
			timeText(b.UpdatedAt), b.ID)
		if err != nil {
			return fmt.Errorf("update budget: %w", err)
		}
		if err := requireRow(res, "budget", b.ID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM budget_items WHERE budget_id = ?`, b.ID); err != nil {
			return fmt.Errorf("clear budget items: %w", err)
		}
		return insertItems(ctx, tx, items)
	})
}

func (r *SQLiteRepository) DeleteBudget(ctx context.Context, id string) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM budget_items WHERE budget_id = ?`, id); err != nil {
			return fmt.Errorf("delete budget items: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM budgets WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete budget: %w", err)
		}
		return requireRow(res, "budget", id)
	})
}

const goalColumns = `id, user_id, description, type, target_value, start_date, end_date,
	monthly_income, fixed_expenses, available_per_month, importance, priority,
	strategy, monthly_contribution, parcels, status, created_at, updated_at`

func (r *SQLiteRepository) GetGoal(ctx context.Context, id string) (core.Goal, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE id = ?`, id)
	goal, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Goal{}, fmt.Errorf("%w: goal %s", core.ErrNotFound, id)
	}
	return goal, err
}

func (r *SQLiteRepository) ListGoals(ctx context.Context, userID string) ([]core.Goal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE user_id = ? ORDER BY priority, created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var goals []core.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

func (r *SQLiteRepository) InsertGoal(ctx context.Context, g core.Goal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO goals (`+goalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.UserID, g.Description, string(g.Type), g.TargetValue.String(),
		g.Start.String(), g.End.String(), g.MonthlyIncome.String(),
		g.FixedExpenses.String(), g.AvailablePerMonth.String(), g.Importance,
		g.Priority, g.Strategy, g.MonthlyContribution.String(), g.Parcels,
		string(g.Status), timeText(g.CreatedAt), timeText(g.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert goal: %w", err)
	}
	slog.InfoContext(ctx, "Goal saved",
		"id", g.ID, "user_id", g.UserID, "type", string(g.Type),
		"target", g.TargetValue.String(), "parcels", g.Parcels)
	return nil
}

func (r *SQLiteRepository) UpdateGoal(ctx context.Context, g core.Goal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE goals SET description = ?, type = ?, target_value = ?, start_date = ?,
			end_date = ?, monthly_income = ?, fixed_expenses = ?, available_per_month = ?,
			importance = ?, priority = ?, strategy = ?, monthly_contribution = ?,
			parcels = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		g.Description, string(g.Type), g.TargetValue.String(), g.Start.String(),
		g.End.String(), g.MonthlyIncome.String(), g.FixedExpenses.String(),
		g.AvailablePerMonth.String(), g.Importance, g.Priority, g.Strategy,
		g.MonthlyContribution.String(), g.Parcels, string(g.Status),
		timeText(g.UpdatedAt), g.ID)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	return requireRow(res, "goal", g.ID)
}

func (r *SQLiteRepository) DeleteGoal(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return requireRow(res, "goal", id)
}

const summaryColumns = `id, user_id, month_start, month_end, total_income, total_expense,
	variable_ceiling, variable_used, total_available, goal_contributions,
	include_variable_income, created_at, updated_at`

// SummaryByMonth implements services.SummaryStore. It returns (nil, nil)
// when the month has no summary yet.
func (r *SQLiteRepository) SummaryByMonth(ctx context.Context, userID string, monthStart core.Date) (*core.MonthlyFinanceSummary, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+summaryColumns+` FROM monthly_summaries WHERE user_id = ? AND month_start = ?`,
		userID, monthStart.String())
	summary, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *SQLiteRepository) InsertSummary(ctx context.Context, s core.MonthlyFinanceSummary) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO monthly_summaries (`+summaryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.MonthStart.String(), s.MonthEnd.String(),
		s.TotalIncome.String(), s.TotalExpense.String(), s.VariableCeiling.String(),
		s.VariableUsed.String(), s.TotalAvailable.String(), s.GoalContributions.String(),
		s.IncludeVariableIncome, timeText(s.CreatedAt), timeText(s.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert summary: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateSummary(ctx context.Context, s core.MonthlyFinanceSummary) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE monthly_summaries SET total_income = ?, total_expense = ?,
			variable_ceiling = ?, variable_used = ?, total_available = ?,
			goal_contributions = ?, include_variable_income = ?, updated_at = ?
		WHERE id = ?`,
		s.TotalIncome.String(), s.TotalExpense.String(), s.VariableCeiling.String(),
		s.VariableUsed.String(), s.TotalAvailable.String(), s.GoalContributions.String(),
		s.IncludeVariableIncome, timeText(s.UpdatedAt), s.ID)
	if err != nil {
		return fmt.Errorf("update summary: %w", err)
	}
	return requireRow(res, "summary", s.ID)
}

// ActiveUsers implements worker.UserLister: everyone with at least one
// operation or summary on record.
func (r *SQLiteRepository) ActiveUsers(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id FROM operations
		UNION
		SELECT user_id FROM monthly_summaries
		ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("list active users: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, id)
	}
	return users, rows.Err()
}

func (r *SQLiteRepository) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func insertItems(ctx context.Context, tx *sql.Tx, items []core.BudgetItem) error {
	for _, item := range items {
		var actual any
		if item.Actual != nil {
			actual = item.Actual.String()
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO budget_items (id, budget_id, category, type, planned, actual, position)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			item.ID, item.BudgetID, item.Category, string(item.Type),
			item.Planned.String(), actual, item.Position); err != nil {
			return fmt.Errorf("insert budget item %q: %w", item.Category, err)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOperation(row rowScanner) (core.Operation, error) {
	var (
		op                          core.Operation
		nature, state, date, value  string
		createdAt, updatedAt        string
		paymentMethod, destination  sql.NullString
		details, project            sql.NullString
		goalID, pairID              sql.NullString
	)
	err := row.Scan(&op.ID, &op.UserID, &nature, &state, &paymentMethod,
		&op.SourceAccount, &destination, &date, &value, &op.Category, &details,
		&op.Receipt, &project, &goalID, &pairID, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Operation{}, err
		}
		return core.Operation{}, fmt.Errorf("scan operation: %w", err)
	}
	op.Nature = core.Nature(nature)
	op.State = core.State(state)
	op.PaymentMethod = paymentMethod.String
	op.DestinationAccount = destination.String
	op.Details = details.String
	op.Project = project.String
	op.GoalID = goalID.String
	op.PairID = pairID.String
	if op.Date, err = core.ParseDate(date); err != nil {
		return core.Operation{}, err
	}
	if op.Value, err = decimalText(value); err != nil {
		return core.Operation{}, err
	}
	if op.CreatedAt, err = parseTimeText(createdAt); err != nil {
		return core.Operation{}, err
	}
	if op.UpdatedAt, err = parseTimeText(updatedAt); err != nil {
		return core.Operation{}, err
	}
	return op, nil
}

func scanBudget(row rowScanner) (core.Budget, error) {
	var (
		b                              core.Budget
		start, end, typ                string
		planned, actual                string
		createdAt, updatedAt           string
		baseMonth                      sql.NullString
	)
	err := row.Scan(&b.ID, &b.UserID, &b.Name, &start, &end, &typ, &baseMonth,
		&planned, &actual, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Budget{}, err
		}
		return core.Budget{}, fmt.Errorf("scan budget: %w", err)
	}
	b.Type = core.BudgetType(typ)
	if b.Start, err = core.ParseDate(start); err != nil {
		return core.Budget{}, err
	}
	if b.End, err = core.ParseDate(end); err != nil {
		return core.Budget{}, err
	}
	if baseMonth.Valid {
		month, err := core.ParseMonth(baseMonth.String)
		if err != nil {
			return core.Budget{}, err
		}
		b.BaseMonth = &month
	}
	if b.TotalPlanned, err = decimalText(planned); err != nil {
		return core.Budget{}, err
	}
	if b.TotalActual, err = decimalText(actual); err != nil {
		return core.Budget{}, err
	}
	if b.CreatedAt, err = parseTimeText(createdAt); err != nil {
		return core.Budget{}, err
	}
	if b.UpdatedAt, err = parseTimeText(updatedAt); err != nil {
		return core.Budget{}, err
	}
	return b, nil
}

func scanGoal(row rowScanner) (core.Goal, error) {
	var (
		g                                  core.Goal
		typ, status, start, end            string
		target, income, fixed, available   string
		contribution                       string
		importance, strategy               sql.NullString
		createdAt, updatedAt               string
	)
	err := row.Scan(&g.ID, &g.UserID, &g.Description, &typ, &target, &start, &end,
		&income, &fixed, &available, &importance, &g.Priority, &strategy,
		&contribution, &g.Parcels, &status, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Goal{}, err
		}
		return core.Goal{}, fmt.Errorf("scan goal: %w", err)
	}
	g.Type = core.GoalType(typ)
	g.Status = core.GoalStatus(status)
	g.Importance = importance.String
	g.Strategy = strategy.String
	if g.Start, err = core.ParseDate(start); err != nil {
		return core.Goal{}, err
	}
	if g.End, err = core.ParseDate(end); err != nil {
		return core.Goal{}, err
	}
	if g.TargetValue, err = decimalText(target); err != nil {
		return core.Goal{}, err
	}
	if g.MonthlyIncome, err = decimalText(income); err != nil {
		return core.Goal{}, err
	}
	if g.FixedExpenses, err = decimalText(fixed); err != nil {
		return core.Goal{}, err
	}
	if g.AvailablePerMonth, err = decimalText(available); err != nil {
		return core.Goal{}, err
	}
	if g.MonthlyContribution, err = decimalText(contribution); err != nil {
		return core.Goal{}, err
	}
	if g.CreatedAt, err = parseTimeText(createdAt); err != nil {
		return core.Goal{}, err
	}
	if g.UpdatedAt, err = parseTimeText(updatedAt); err != nil {
		return core.Goal{}, err
	}
	return g, nil
}

func scanSummary(row rowScanner) (core.MonthlyFinanceSummary, error) {
	var (
		s                                      core.MonthlyFinanceSummary
		monthStart, monthEnd                   string
		income, expense, ceiling, used         string
		available, contributions               string
		createdAt, updatedAt                   string
	)
	err := row.Scan(&s.ID, &s.UserID, &monthStart, &monthEnd, &income, &expense,
		&ceiling, &used, &available, &contributions, &s.IncludeVariableIncome,
		&createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.MonthlyFinanceSummary{}, err
		}
		return core.MonthlyFinanceSummary{}, fmt.Errorf("scan summary: %w", err)
	}
	if s.MonthStart, err = core.ParseDate(monthStart); err != nil {
		return core.MonthlyFinanceSummary{}, err
	}
	if s.MonthEnd, err = core.ParseDate(monthEnd); err != nil {
		return core.MonthlyFinanceSummary{}, err
	}
	for _, field := range []struct {
		dst *decimal.Decimal
		src string
	}{
		{&s.TotalIncome, income},
		{&s.TotalExpense, expense},
		{&s.VariableCeiling, ceiling},
		{&s.VariableUsed, used},
		{&s.TotalAvailable, available},
		{&s.GoalContributions, contributions},
	} {
		if *field.dst, err = decimalText(field.src); err != nil {
			return core.MonthlyFinanceSummary{}, err
		}
	}
	if s.CreatedAt, err = parseTimeText(createdAt); err != nil {
		return core.MonthlyFinanceSummary{}, err
	}
	if s.UpdatedAt, err = parseTimeText(updatedAt); err != nil {
		return core.MonthlyFinanceSummary{}, err
	}
	return s, nil
}

func requireRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %s", core.ErrNotFound, kind, id)
	}
	return nil
}

func decimalText(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse stored decimal %q: %w", s, err)
	}
	return d, nil
}

func monthText(m *core.Month) any {
	if m == nil {
		return nil
	}
	return m.String()
}

func timeText(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTimeText(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored time %q: %w", s, err)
	}
	return t, nil
}
