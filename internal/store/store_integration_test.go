package store_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"lmnp-ledger/internal/fiscal"
	"lmnp-ledger/internal/store"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database to avoid wiping the live app database.
	// Set TEST_DATABASE_URL in your .env or environment to run integration tests.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set — skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	schema, err := os.ReadFile("../../migrations/001_schema.sql")
	if err != nil {
		t.Fatalf("Failed to read schema: %v", err)
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		t.Fatalf("Failed to apply schema: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE TABLE fiscal_years, depreciation_plans, expenses, revenues, properties RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("Failed to clean test database: %v", err)
	}

	return pool
}

func seedProperty(t *testing.T, s *store.Store) *store.Property {
	t.Helper()
	p, err := s.CreateProperty(context.Background(), &store.Property{
		Name:             "T2 Bordeaux",
		Address:          "12 rue Sainte-Catherine, 33000 Bordeaux",
		AcquisitionDate:  time.Date(2022, 6, 15, 0, 0, 0, 0, time.UTC),
		TotalPrice:       decimal.NewFromInt(225000),
		LandValue:        decimal.NewFromInt(45000),
		BuildingValue:    decimal.NewFromInt(153000),
		FurnitureValue:   decimal.NewFromInt(18000),
		AcquisitionCosts: decimal.NewFromInt(9000),
	})
	if err != nil {
		t.Fatalf("CreateProperty: %v", err)
	}
	return p
}

func TestPropertyRoundTrip(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	s := store.New(pool)
	ctx := context.Background()

	p := seedProperty(t, s)
	got, err := s.GetProperty(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProperty: %v", err)
	}
	if got.Name != "T2 Bordeaux" || !got.TotalPrice.Equal(decimal.NewFromInt(225000)) {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if !got.IsActive {
		t.Error("new property should be active")
	}

	if err := s.DeactivateProperty(ctx, p.ID); err != nil {
		t.Fatalf("DeactivateProperty: %v", err)
	}
	list, err := s.ListProperties(ctx)
	if err != nil {
		t.Fatalf("ListProperties: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("deactivated property still listed: %+v", list)
	}

	if _, err := s.GetProperty(ctx, 9999); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetProperty(9999) err = %v, want ErrNotFound", err)
	}
}

func TestRecordsRoundTrip(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	s := store.New(pool)
	ctx := context.Background()
	p := seedProperty(t, s)

	for m := 1; m <= 3; m++ {
		if _, err := s.CreateRevenue(ctx, &store.Revenue{
			PropertyID: p.ID, FiscalYear: 2025, Month: m,
			Amount: decimal.NewFromInt(750), Kind: "loyer",
		}); err != nil {
			t.Fatalf("CreateRevenue: %v", err)
		}
	}
	revs, err := s.ListRevenues(ctx, p.ID, 2025)
	if err != nil {
		t.Fatalf("ListRevenues: %v", err)
	}
	if len(revs) != 3 {
		t.Fatalf("len(revenues) = %d, want 3", len(revs))
	}

	if _, err := s.CreateExpense(ctx, &store.Expense{
		PropertyID: p.ID, FiscalYear: 2025,
		Date:   time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
		Amount: decimal.NewFromInt(1200), Category: "copropriete",
		DeductiblePct: decimal.NewFromInt(100),
	}); err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	exps, err := s.ListExpenses(ctx, p.ID, 2025)
	if err != nil {
		t.Fatalf("ListExpenses: %v", err)
	}
	if len(exps) != 1 || !exps[0].Amount.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("expenses = %+v", exps)
	}
}

func TestSaveComputation(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	s := store.New(pool)
	ctx := context.Background()
	p := seedProperty(t, s)

	start := time.Date(2022, 6, 15, 0, 0, 0, 0, time.UTC)
	plans := []store.DepreciationPlan{
		{PropertyID: p.ID, Component: "structure", ComponentLabel: "Structure", Value: decimal.NewFromInt(126000), DurationYears: 50, StartDate: start, FiscalYear: 2025},
		{PropertyID: p.ID, Component: "furniture", ComponentLabel: "Mobilier", Value: decimal.NewFromInt(18000), DurationYears: 10, StartDate: start, FiscalYear: 2025},
	}
	for i := range plans {
		if _, err := s.CreatePlan(ctx, &plans[i]); err != nil {
			t.Fatalf("CreatePlan: %v", err)
		}
	}

	stored, err := s.ListPlans(ctx, p.ID, 2025)
	if err != nil {
		t.Fatalf("ListPlans: %v", err)
	}
	alloc := fiscal.Allocate(store.ComponentsFor(stored, 2025), decimal.NewFromInt(3000), decimal.Zero)
	summary := fiscal.FiscalSummary{
		PropertyID:                  p.ID,
		Year:                        2025,
		TotalRevenue:                decimal.NewFromInt(9000),
		TotalExpenses:               decimal.NewFromInt(6000),
		TotalDepreciationAnnual:     alloc.TotalAnnual,
		TotalDepreciationDeductible: alloc.TotalDeductible,
		TotalDepreciationCarried:    alloc.TotalCarriedOver,
		FiscalResult:                decimal.Zero,
	}
	if _, err := s.SaveComputation(ctx, summary, alloc.Details); err != nil {
		t.Fatalf("SaveComputation: %v", err)
	}

	stored, err = s.ListPlans(ctx, p.ID, 2025)
	if err != nil {
		t.Fatalf("ListPlans after save: %v", err)
	}
	if !stored[0].DeductibleAmount.Equal(decimal.NewFromInt(2520)) {
		t.Errorf("structure deductible = %s, want 2520", stored[0].DeductibleAmount)
	}
	if !stored[1].DeductibleAmount.Equal(decimal.NewFromInt(480)) {
		t.Errorf("furniture deductible = %s, want 480", stored[1].DeductibleAmount)
	}

	// Re-saving replaces wholesale, no duplicate-key error.
	if _, err := s.SaveComputation(ctx, summary, alloc.Details); err != nil {
		t.Fatalf("SaveComputation (second): %v", err)
	}

	snap, err := s.GetSnapshot(ctx, p.ID, 2025)
	if err != nil {
		t.Fatalf("GetSnapshot: %v", err)
	}
	if !snap.TotalDepreciationDeductible.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("snapshot deductible = %s, want 3000", snap.TotalDepreciationDeductible)
	}
}

func TestSaveComputationLockedYearTouchesNothing(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	s := store.New(pool)
	ctx := context.Background()
	p := seedProperty(t, s)

	start := time.Date(2022, 6, 15, 0, 0, 0, 0, time.UTC)
	plan := store.DepreciationPlan{
		PropertyID: p.ID, Component: "structure", ComponentLabel: "Structure",
		Value: decimal.NewFromInt(126000), DurationYears: 50, StartDate: start, FiscalYear: 2025,
	}
	if _, err := s.CreatePlan(ctx, &plan); err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}

	stored, err := s.ListPlans(ctx, p.ID, 2025)
	if err != nil {
		t.Fatalf("ListPlans: %v", err)
	}
	alloc := fiscal.Allocate(store.ComponentsFor(stored, 2025), decimal.NewFromInt(10000), decimal.Zero)
	summary := fiscal.FiscalSummary{
		PropertyID:                  p.ID,
		Year:                        2025,
		TotalRevenue:                decimal.NewFromInt(9000),
		TotalDepreciationAnnual:     alloc.TotalAnnual,
		TotalDepreciationDeductible: alloc.TotalDeductible,
		TotalDepreciationCarried:    alloc.TotalCarriedOver,
	}
	if _, err := s.SaveComputation(ctx, summary, alloc.Details); err != nil {
		t.Fatalf("SaveComputation: %v", err)
	}
	if err := s.SetYearLocked(ctx, p.ID, 2025, true); err != nil {
		t.Fatalf("SetYearLocked: %v", err)
	}

	// A recomputation with different figures must be rejected whole: no
	// plan row may change even though the plan updates come first in the
	// write path.
	altered := alloc
	altered.Details = []fiscal.AllocationDetail{{
		Component: "structure", ComponentLabel: "Structure",
		AnnualAmount:     decimal.NewFromInt(9999),
		DeductibleAmount: decimal.NewFromInt(9999),
		CarriedOver:      decimal.Zero,
	}}
	if _, err := s.SaveComputation(ctx, summary, altered.Details); !errors.Is(err, store.ErrYearLocked) {
		t.Fatalf("SaveComputation on locked year err = %v, want ErrYearLocked", err)
	}

	after, err := s.ListPlans(ctx, p.ID, 2025)
	if err != nil {
		t.Fatalf("ListPlans after rejected save: %v", err)
	}
	if !after[0].AnnualAmount.Equal(decimal.NewFromInt(2520)) {
		t.Errorf("plan annual after rejected save = %s, want 2520 untouched", after[0].AnnualAmount)
	}
	if after[0].DeductibleAmount.Equal(decimal.NewFromInt(9999)) {
		t.Errorf("plan deductible overwritten on locked year: %s", after[0].DeductibleAmount)
	}
}
