package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"lmnp-ledger/internal/db"
	"lmnp-ledger/internal/store"
)

// Seeds a sample property with a full 2025 fiscal year: twelve months of
// rent, three expenses and three depreciation components.
func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	s := store.New(pool)
	acquired := time.Date(2022, 6, 15, 0, 0, 0, 0, time.UTC)

	prop, err := s.CreateProperty(ctx, &store.Property{
		Name:             "T2 Bordeaux",
		Address:          "12 rue Sainte-Catherine, 33000 Bordeaux",
		AcquisitionDate:  acquired,
		TotalPrice:       decimal.NewFromInt(225000),
		LandValue:        decimal.NewFromInt(45000),
		BuildingValue:    decimal.NewFromInt(153000),
		FurnitureValue:   decimal.NewFromInt(18000),
		AcquisitionCosts: decimal.NewFromInt(9000),
	})
	if err != nil {
		log.Fatalf("property: %v", err)
	}

	for month := 1; month <= 12; month++ {
		if _, err := s.CreateRevenue(ctx, &store.Revenue{
			PropertyID: prop.ID,
			FiscalYear: 2025,
			Month:      month,
			Amount:     decimal.NewFromInt(750),
			Kind:       "loyer",
		}); err != nil {
			log.Fatalf("revenue month %d: %v", month, err)
		}
	}

	expenses := []store.Expense{
		{Date: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(1200), Category: "copropriete", Description: "Charges de copropriété"},
		{Date: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(450), Category: "assurance", Description: "Assurance PNO"},
		{Date: time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(2800), Category: "travaux_entretien", Description: "Remplacement chaudière"},
	}
	for _, e := range expenses {
		e.PropertyID = prop.ID
		e.FiscalYear = 2025
		e.DeductiblePct = decimal.NewFromInt(100)
		if _, err := s.CreateExpense(ctx, &e); err != nil {
			log.Fatalf("expense %s: %v", e.Category, err)
		}
	}

	plans := []store.DepreciationPlan{
		{Component: "structure", ComponentLabel: "Structure / gros œuvre", Value: decimal.NewFromInt(126000), DurationYears: 50},
		{Component: "furniture", ComponentLabel: "Mobilier", Value: decimal.NewFromInt(18000), DurationYears: 10},
		{Component: "acquisition_costs", ComponentLabel: "Frais d'acquisition", Value: decimal.NewFromInt(9000), DurationYears: 5},
	}
	for _, p := range plans {
		p.PropertyID = prop.ID
		p.FiscalYear = 2025
		p.StartDate = acquired
		if _, err := s.CreatePlan(ctx, &p); err != nil {
			log.Fatalf("plan %s: %v", p.Component, err)
		}
	}

	log.Printf("seeded property %d with 2025 revenues, expenses and depreciation plans", prop.ID)
}
