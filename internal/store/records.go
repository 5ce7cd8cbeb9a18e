package store

import (
	"context"
	"fmt"
)

// ── Revenues ──────────────────────────────────────────────────────────────────

// CreateRevenue inserts one monthly revenue record.
func (s *Store) CreateRevenue(ctx context.Context, r *Revenue) (*Revenue, error) {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO revenues (property_id, fiscal_year, month, amount, kind, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		r.PropertyID, r.FiscalYear, r.Month, r.Amount, r.Kind, r.Notes,
	).Scan(&r.ID)
	if err != nil {
		return nil, fmt.Errorf("insert revenue: %w", err)
	}
	return r, nil
}

// ListRevenues returns the revenue records for (property, year), ordered by month.
func (s *Store) ListRevenues(ctx context.Context, propertyID, year int) ([]Revenue, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, property_id, fiscal_year, month, amount, kind, COALESCE(notes, '')
		FROM revenues
		WHERE property_id = $1 AND fiscal_year = $2
		ORDER BY month, id`,
		propertyID, year,
	)
	if err != nil {
		return nil, fmt.Errorf("query revenues: %w", err)
	}
	defer rows.Close()

	var out []Revenue
	for rows.Next() {
		var r Revenue
		if err := rows.Scan(&r.ID, &r.PropertyID, &r.FiscalYear, &r.Month, &r.Amount, &r.Kind, &r.Notes); err != nil {
			return nil, fmt.Errorf("scan revenue: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DeleteRevenue removes one revenue record.
func (s *Store) DeleteRevenue(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM revenues WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete revenue %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ── Expenses ──────────────────────────────────────────────────────────────────

// CreateExpense inserts one expense record.
func (s *Store) CreateExpense(ctx context.Context, e *Expense) (*Expense, error) {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO expenses (property_id, fiscal_year, date, amount, category, description, deductible_pct)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		e.PropertyID, e.FiscalYear, e.Date, e.Amount, e.Category, e.Description, e.DeductiblePct,
	).Scan(&e.ID)
	if err != nil {
		return nil, fmt.Errorf("insert expense: %w", err)
	}
	return e, nil
}

// ListExpenses returns the expense records for (property, year), ordered by date.
func (s *Store) ListExpenses(ctx context.Context, propertyID, year int) ([]Expense, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, property_id, fiscal_year, date, amount, category, COALESCE(description, ''), deductible_pct
		FROM expenses
		WHERE property_id = $1 AND fiscal_year = $2
		ORDER BY date, id`,
		propertyID, year,
	)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var out []Expense
	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.ID, &e.PropertyID, &e.FiscalYear, &e.Date, &e.Amount, &e.Category, &e.Description, &e.DeductiblePct); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// DeleteExpense removes one expense record.
func (s *Store) DeleteExpense(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
