package constants_test

import (
	"errors"
	"testing"

	"lmnp-ledger/internal/constants"
	"lmnp-ledger/internal/fiscal"

	"github.com/shopspring/decimal"
)

func TestLoad_ExactYear(t *testing.T) {
	lib := constants.NewLibrary("testdata")
	c, err := lib.Load(2025)
	if err != nil {
		t.Fatalf("Load(2025): %v", err)
	}
	if c.Year != 2025 {
		t.Errorf("Year = %d, want 2025", c.Year)
	}
	rc := c.MicroBICFor(fiscal.RegimeStandard)
	if !rc.Threshold.Equal(decimal.NewFromInt(77700)) {
		t.Errorf("standard threshold = %s, want 77700", rc.Threshold)
	}
	if !rc.Abatement.Equal(decimal.NewFromFloat(0.5)) {
		t.Errorf("standard abatement = %s, want 0.5", rc.Abatement)
	}
}

func TestLoad_FallsBackToLatestEarlierYear(t *testing.T) {
	lib := constants.NewLibrary("testdata")
	c, err := lib.Load(2024)
	if err != nil {
		t.Fatalf("Load(2024): %v", err)
	}
	// No 2024 file: the 2023 version applies.
	if c.Year != 2023 {
		t.Errorf("Year = %d, want fallback to 2023", c.Year)
	}

	c, err = lib.Load(2030)
	if err != nil {
		t.Fatalf("Load(2030): %v", err)
	}
	if c.Year != 2025 {
		t.Errorf("Year = %d, want fallback to 2025", c.Year)
	}
}

func TestLoad_NotFound(t *testing.T) {
	lib := constants.NewLibrary("testdata")
	_, err := lib.Load(2000)
	if !errors.Is(err, constants.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLoad_CachesPerYear(t *testing.T) {
	lib := constants.NewLibrary("testdata")
	a, err := lib.Load(2025)
	if err != nil {
		t.Fatal(err)
	}
	b, err := lib.Load(2025)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("second Load returned a different instance; cache miss")
	}
}

func TestMicroBICFor_RegimeKinds(t *testing.T) {
	lib := constants.NewLibrary("testdata")
	c, err := lib.Load(2025)
	if err != nil {
		t.Fatal(err)
	}

	unclassified := c.MicroBICFor(fiscal.RegimeTourismUnclassified)
	if !unclassified.Threshold.Equal(decimal.NewFromInt(15000)) {
		t.Errorf("unclassified threshold = %s, want 15000", unclassified.Threshold)
	}
	if !unclassified.Abatement.Equal(decimal.NewFromFloat(0.3)) {
		t.Errorf("unclassified abatement = %s, want 0.3", unclassified.Abatement)
	}

	classified := c.MicroBICFor(fiscal.RegimeTourismClassified)
	if !classified.Threshold.Equal(decimal.NewFromInt(77700)) {
		t.Errorf("classified threshold = %s, want 77700", classified.Threshold)
	}
}

func TestComponentCatalog(t *testing.T) {
	lib := constants.NewLibrary("testdata")
	c, err := lib.Load(2025)
	if err != nil {
		t.Fatal(err)
	}
	comp, ok := c.Depreciation.Components["acquisition_costs"]
	if !ok {
		t.Fatal("missing acquisition_costs in component catalog")
	}
	if comp.DefaultDuration != 5 {
		t.Errorf("acquisition_costs default duration = %d, want 5", comp.DefaultDuration)
	}
}
