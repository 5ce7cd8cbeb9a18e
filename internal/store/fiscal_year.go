package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"lmnp-ledger/internal/fiscal"
)

// ErrYearLocked is returned when writing a snapshot for a locked fiscal year.
var ErrYearLocked = errors.New("fiscal year is locked")

// SaveComputation persists one computation's outputs — the per-component
// allocation figures and the year snapshot — in a single transaction holding
// a per-(property, year) advisory lock, so two overlapping compute-and-store
// calls for the same key serialize instead of interleaving partial writes.
// A locked year rejects the whole write with ErrYearLocked before any row
// is touched.
func (s *Store) SaveComputation(ctx context.Context, summary fiscal.FiscalSummary, details []fiscal.AllocationDetail) (*FiscalYearSnapshot, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin computation save: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtext('fiscal_year'), hashtext($1 || ':' || $2))`,
		fmt.Sprint(summary.PropertyID), fmt.Sprint(summary.Year),
	); err != nil {
		return nil, fmt.Errorf("acquire computation lock: %w", err)
	}

	var locked bool
	err = tx.QueryRow(ctx,
		`SELECT locked FROM fiscal_years WHERE property_id = $1 AND year = $2`,
		summary.PropertyID, summary.Year,
	).Scan(&locked)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("check lock: %w", err)
	}
	if locked {
		return nil, fmt.Errorf("property %d year %d: %w", summary.PropertyID, summary.Year, ErrYearLocked)
	}

	if err := saveAllocationTx(ctx, tx, summary.PropertyID, summary.Year, details); err != nil {
		return nil, err
	}

	var snap FiscalYearSnapshot
	err = tx.QueryRow(ctx, `
		INSERT INTO fiscal_years (property_id, year, total_revenue, total_expenses,
			total_depreciation_annual, total_depreciation_deductible, total_depreciation_carried,
			fiscal_result)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (property_id, year) DO UPDATE SET
			total_revenue = EXCLUDED.total_revenue,
			total_expenses = EXCLUDED.total_expenses,
			total_depreciation_annual = EXCLUDED.total_depreciation_annual,
			total_depreciation_deductible = EXCLUDED.total_depreciation_deductible,
			total_depreciation_carried = EXCLUDED.total_depreciation_carried,
			fiscal_result = EXCLUDED.fiscal_result
		RETURNING id, property_id, year, total_revenue, total_expenses,
			total_depreciation_annual, total_depreciation_deductible, total_depreciation_carried,
			fiscal_result, locked`,
		summary.PropertyID, summary.Year, summary.TotalRevenue, summary.TotalExpenses,
		summary.TotalDepreciationAnnual, summary.TotalDepreciationDeductible, summary.TotalDepreciationCarried,
		summary.FiscalResult,
	).Scan(&snap.ID, &snap.PropertyID, &snap.Year, &snap.TotalRevenue, &snap.TotalExpenses,
		&snap.TotalDepreciationAnnual, &snap.TotalDepreciationDeductible, &snap.TotalDepreciationCarried,
		&snap.FiscalResult, &snap.Locked)
	if err != nil {
		return nil, fmt.Errorf("upsert fiscal year snapshot: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit computation save: %w", err)
	}
	return &snap, nil
}

// GetSnapshot returns the stored snapshot for (property, year).
func (s *Store) GetSnapshot(ctx context.Context, propertyID, year int) (*FiscalYearSnapshot, error) {
	var snap FiscalYearSnapshot
	err := s.pool.QueryRow(ctx, `
		SELECT id, property_id, year, total_revenue, total_expenses,
			total_depreciation_annual, total_depreciation_deductible, total_depreciation_carried,
			fiscal_result, locked
		FROM fiscal_years WHERE property_id = $1 AND year = $2`,
		propertyID, year,
	).Scan(&snap.ID, &snap.PropertyID, &snap.Year, &snap.TotalRevenue, &snap.TotalExpenses,
		&snap.TotalDepreciationAnnual, &snap.TotalDepreciationDeductible, &snap.TotalDepreciationCarried,
		&snap.FiscalResult, &snap.Locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query fiscal year snapshot: %w", err)
	}
	return &snap, nil
}

// SetYearLocked flags a fiscal year as filed: further recomputations are rejected.
func (s *Store) SetYearLocked(ctx context.Context, propertyID, year int, locked bool) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE fiscal_years SET locked = $3 WHERE property_id = $1 AND year = $2`,
		propertyID, year, locked,
	)
	if err != nil {
		return fmt.Errorf("set year locked: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
