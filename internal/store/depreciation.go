package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"lmnp-ledger/internal/fiscal"
)

// CreatePlan inserts one depreciation component plan.
func (s *Store) CreatePlan(ctx context.Context, p *DepreciationPlan) (*DepreciationPlan, error) {
	if p.Method == "" {
		p.Method = "linear"
	}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO depreciation_plans (property_id, component, component_label, value,
			duration_years, start_date, method, fiscal_year,
			annual_amount, deductible_amount, carried_over)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		p.PropertyID, p.Component, p.ComponentLabel, p.Value,
		p.DurationYears, p.StartDate, p.Method, p.FiscalYear,
		p.AnnualAmount, p.DeductibleAmount, p.CarriedOver,
	).Scan(&p.ID)
	if err != nil {
		return nil, fmt.Errorf("insert depreciation plan: %w", err)
	}
	return p, nil
}

// ListPlans returns the component plans for (property, year) in insertion
// order. The cap distribution is order-dependent, so this ordering is part of
// the contract with the engine.
func (s *Store) ListPlans(ctx context.Context, propertyID, year int) ([]DepreciationPlan, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, property_id, component, component_label, value,
			duration_years, start_date, method, fiscal_year,
			annual_amount, deductible_amount, carried_over
		FROM depreciation_plans
		WHERE property_id = $1 AND fiscal_year = $2
		ORDER BY id`,
		propertyID, year,
	)
	if err != nil {
		return nil, fmt.Errorf("query depreciation plans: %w", err)
	}
	defer rows.Close()

	var out []DepreciationPlan
	for rows.Next() {
		var p DepreciationPlan
		if err := rows.Scan(&p.ID, &p.PropertyID, &p.Component, &p.ComponentLabel, &p.Value,
			&p.DurationYears, &p.StartDate, &p.Method, &p.FiscalYear,
			&p.AnnualAmount, &p.DeductibleAmount, &p.CarriedOver); err != nil {
			return nil, fmt.Errorf("scan depreciation plan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeletePlan removes one component plan.
func (s *Store) DeletePlan(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM depreciation_plans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete depreciation plan %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// saveAllocationTx persists the allocator's per-component figures for the
// plans of (property, year), matched by position against the plans in id
// order. Runs inside the caller's transaction; see Store.SaveComputation.
func saveAllocationTx(ctx context.Context, tx pgx.Tx, propertyID, year int, details []fiscal.AllocationDetail) error {
	rows, err := tx.Query(ctx, `
		SELECT id FROM depreciation_plans
		WHERE property_id = $1 AND fiscal_year = $2
		ORDER BY id`,
		propertyID, year,
	)
	if err != nil {
		return fmt.Errorf("query plan ids: %w", err)
	}
	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scan plan id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate plan ids: %w", err)
	}

	if len(ids) != len(details) {
		return fmt.Errorf("allocation details count %d does not match stored plans %d for property %d year %d",
			len(details), len(ids), propertyID, year)
	}

	for i, d := range details {
		if _, err := tx.Exec(ctx, `
			UPDATE depreciation_plans
			SET annual_amount = $2, deductible_amount = $3, carried_over = $4
			WHERE id = $1`,
			ids[i], d.AnnualAmount, d.DeductibleAmount, d.CarriedOver,
		); err != nil {
			return fmt.Errorf("update plan %d: %w", ids[i], err)
		}
	}
	return nil
}
