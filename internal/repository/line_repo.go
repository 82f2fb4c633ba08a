package repository

import (
	"context"
	"errors"
	"fmt"

	"telecom_assets/internal/model"

	"github.com/jackc/pgx/v5"
)

// LineRepository defines operations for telecom line data
type LineRepository interface {
	List(ctx context.Context, search string, limit, offset int) ([]model.Line, int64, error)
	FindByID(ctx context.Context, id int64) (*model.Line, error)
	FindAll(ctx context.Context) ([]model.Line, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, line *model.Line) error
	Update(ctx context.Context, line *model.Line) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*model.DashboardStats, error)
}

type lineRepository struct {
	db DB
}

// NewLineRepository creates a new LineRepository
func NewLineRepository(db DB) LineRepository {
	return &lineRepository{db: db}
}

const lineColumns = `id, account, phone, plan, monthly_fee_cents, responsible, department,
       has_chip, activation_date, end_date, status, in_use, phase`

const lineSearchClause = ` WHERE account LIKE $1 OR phone LIKE $1 OR plan LIKE $1
       OR responsible LIKE $1 OR department LIKE $1 OR status LIKE $1 OR phase LIKE $1`

func scanLine(row rowScanner, l *model.Line) error {
	return row.Scan(
		&l.ID, &l.Account, &l.Phone, &l.Plan, &l.MonthlyFeeCents, &l.Responsible, &l.Department,
		&l.HasChip, &l.ActivationDate, &l.EndDate, &l.Status, &l.InUse, &l.Phase,
	)
}

func collectLines(rows pgx.Rows) ([]model.Line, error) {
	defer rows.Close()
	lines := []model.Line{}
	for rows.Next() {
		var l model.Line
		if err := scanLine(rows, &l); err != nil {
			return nil, fmt.Errorf("failed to scan line row: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows: %w", err)
	}
	return lines, nil
}

// List returns one page of lines, newest first, with the total matching count.
// An empty search matches every line.
func (r *lineRepository) List(ctx context.Context, search string, limit, offset int) ([]model.Line, int64, error) {
	countSQL := `SELECT COUNT(*) FROM lines`
	listSQL := `SELECT ` + lineColumns + ` FROM lines`
	var args []any
	if search != "" {
		countSQL += lineSearchClause
		listSQL += lineSearchClause
		args = append(args, "%"+search+"%")
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count lines: %w", err)
	}

	listSQL += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	rows, err := r.db.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list lines: %w", err)
	}
	lines, err := collectLines(rows)
	if err != nil {
		return nil, 0, err
	}
	return lines, total, nil
}

// FindByID retrieves a line by its ID
func (r *lineRepository) FindByID(ctx context.Context, id int64) (*model.Line, error) {
	l := &model.Line{}
	sql := `SELECT ` + lineColumns + ` FROM lines WHERE id = $1`
	if err := scanLine(r.db.QueryRow(ctx, sql, id), l); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find line by ID: %w", err)
	}
	return l, nil
}

// FindAll returns every line in ascending id order, as exported.
func (r *lineRepository) FindAll(ctx context.Context) ([]model.Line, error) {
	rows, err := r.db.Query(ctx, `SELECT `+lineColumns+` FROM lines ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch all lines: %w", err)
	}
	return collectLines(rows)
}

// Count returns the number of stored lines.
func (r *lineRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM lines`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count lines: %w", err)
	}
	return n, nil
}

// Create inserts a new line and sets its ID
func (r *lineRepository) Create(ctx context.Context, l *model.Line) error {
	sql := `INSERT INTO lines (account, phone, plan, monthly_fee_cents, responsible, department,
                               has_chip, activation_date, end_date, status, in_use, phase)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	return withTx(ctx, r.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, sql,
			l.Account, l.Phone, l.Plan, l.MonthlyFeeCents, l.Responsible, l.Department,
			l.HasChip, l.ActivationDate, l.EndDate, l.Status, l.InUse, l.Phase,
		).Scan(&l.ID)
		if err != nil {
			return fmt.Errorf("failed to create line: %w", err)
		}
		return nil
	})
}

// Update overwrites every attribute of an existing line
func (r *lineRepository) Update(ctx context.Context, l *model.Line) error {
	sql := `UPDATE lines SET account = $1, phone = $2, plan = $3, monthly_fee_cents = $4,
                   responsible = $5, department = $6, has_chip = $7, activation_date = $8,
                   end_date = $9, status = $10, in_use = $11, phase = $12
            WHERE id = $13`
	return withTx(ctx, r.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, sql,
			l.Account, l.Phone, l.Plan, l.MonthlyFeeCents, l.Responsible, l.Department,
			l.HasChip, l.ActivationDate, l.EndDate, l.Status, l.InUse, l.Phase, l.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update line: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// Delete removes a line by its ID
func (r *lineRepository) Delete(ctx context.Context, id int64) error {
	return withTx(ctx, r.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM lines WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete line: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// Stats computes the dashboard aggregates from a single snapshot.
func (r *lineRepository) Stats(ctx context.Context) (*model.DashboardStats, error) {
	stats := &model.DashboardStats{
		ByDepartment: []model.DepartmentStat{},
		ByStatus:     []model.StatusStat{},
	}
	opts := pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}

	err := withTx(ctx, r.db, opts, func(tx pgx.Tx) error {
		totalsSQL := `SELECT COUNT(*),
                             COUNT(*) FILTER (WHERE status = $1),
                             COUNT(*) FILTER (WHERE status = $2),
                             COUNT(*) FILTER (WHERE status = $3),
                             COALESCE(SUM(monthly_fee_cents), 0)::bigint,
                             COALESCE(AVG(monthly_fee_cents), 0)::float8
                      FROM lines`
		var sumCents int64
		var avgCents float64
		err := tx.QueryRow(ctx, totalsSQL,
			model.LineStatusActive, model.LineStatusToCancel, model.LineStatusCancelled,
		).Scan(&stats.TotalLines, &stats.ActiveLines, &stats.ToCancelLines, &stats.CancelledLines, &sumCents, &avgCents)
		if err != nil {
			return fmt.Errorf("failed to compute line totals: %w", err)
		}
		stats.MonthlyCostTotal = float64(sumCents) / 100
		stats.AverageFee = avgCents / 100

		deptSQL := `SELECT department, COUNT(*), COALESCE(SUM(monthly_fee_cents), 0)::bigint
                    FROM lines GROUP BY department ORDER BY COUNT(*) DESC, department ASC`
		rows, err := tx.Query(ctx, deptSQL)
		if err != nil {
			return fmt.Errorf("failed to group lines by department: %w", err)
		}
		for rows.Next() {
			var ds model.DepartmentStat
			var cents int64
			if err := rows.Scan(&ds.Department, &ds.Count, &cents); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan department row: %w", err)
			}
			ds.CostTotal = float64(cents) / 100
			stats.ByDepartment = append(stats.ByDepartment, ds)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("error iterating department rows: %w", err)
		}

		rows, err = tx.Query(ctx, `SELECT status, COUNT(*) FROM lines GROUP BY status ORDER BY status ASC`)
		if err != nil {
			return fmt.Errorf("failed to group lines by status: %w", err)
		}
		for rows.Next() {
			var ss model.StatusStat
			if err := rows.Scan(&ss.Status, &ss.Count); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan status row: %w", err)
			}
			stats.ByStatus = append(stats.ByStatus, ss)
		}
		rows.Close()
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}
