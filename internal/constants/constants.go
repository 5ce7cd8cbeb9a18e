// Package constants loads the year-versioned fiscal parameters (micro-BIC
// thresholds and abatements, depreciable component catalog, expense
// categories) from YAML files named <dir>/<year>.yaml.
package constants

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"lmnp-ledger/internal/fiscal"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no constants version ≤ the requested year
// exists. This is a hard failure for the caller, never recovered internally.
var ErrNotFound = errors.New("fiscal constants not found")

// Component is one catalog entry of the depreciable component list.
type Component struct {
	Label           string `yaml:"label" json:"label"`
	DefaultDuration int    `yaml:"default_duration_years" json:"default_duration_years"`
}

// Decimal fields are declared float64 because yaml.v3 has no hook for
// decimal.Decimal; they are converted on access, never used in arithmetic.
type microBIC struct {
	StandardThreshold            float64 `yaml:"standard_threshold"`
	StandardAbatement            float64 `yaml:"standard_abatement"`
	TourismClassifiedThreshold   float64 `yaml:"tourism_classified_threshold"`
	TourismClassifiedAbatement   float64 `yaml:"tourism_classified_abatement"`
	TourismUnclassifiedThreshold float64 `yaml:"tourism_unclassified_threshold"`
	TourismUnclassifiedAbatement float64 `yaml:"tourism_unclassified_abatement"`
}

type depreciation struct {
	Components map[string]Component `yaml:"components"`
}

// Constants is one loaded constants version.
type Constants struct {
	Year              int               `yaml:"year"`
	MicroBIC          microBIC          `yaml:"micro_bic"`
	Depreciation      depreciation      `yaml:"depreciation"`
	ExpenseCategories map[string]string `yaml:"expense_categories"`
}

// MicroBICFor returns the threshold and abatement for the given regime kind,
// falling back to the standard values when the kind has no entry of its own.
func (c *Constants) MicroBICFor(kind fiscal.RegimeKind) fiscal.RegimeConstants {
	threshold, abatement := c.MicroBIC.StandardThreshold, c.MicroBIC.StandardAbatement
	switch kind {
	case fiscal.RegimeTourismClassified:
		if c.MicroBIC.TourismClassifiedThreshold > 0 {
			threshold, abatement = c.MicroBIC.TourismClassifiedThreshold, c.MicroBIC.TourismClassifiedAbatement
		}
	case fiscal.RegimeTourismUnclassified:
		if c.MicroBIC.TourismUnclassifiedThreshold > 0 {
			threshold, abatement = c.MicroBIC.TourismUnclassifiedThreshold, c.MicroBIC.TourismUnclassifiedAbatement
		}
	}
	return fiscal.RegimeConstants{
		Threshold: decimal.NewFromFloat(threshold),
		Abatement: decimal.NewFromFloat(abatement),
	}
}

// Library is a read-through cache over the constants directory, keyed by
// (year, dir). It is injected wherever constants are needed so tests can
// point it at fixtures instead of mutating process-global state.
type Library struct {
	dir string

	mu    sync.RWMutex
	cache map[int]*Constants
}

// NewLibrary creates a Library reading from dir.
func NewLibrary(dir string) *Library {
	return &Library{dir: dir, cache: make(map[int]*Constants)}
}

// Load returns the constants applicable to year: the file for that exact year
// if present, otherwise the most recent version ≤ year. Results are cached.
func (l *Library) Load(year int) (*Constants, error) {
	l.mu.RLock()
	if c, ok := l.cache[year]; ok {
		l.mu.RUnlock()
		return c, nil
	}
	l.mu.RUnlock()

	c, err := l.read(year)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.cache[year] = c
	l.mu.Unlock()
	return c, nil
}

func (l *Library) read(year int) (*Constants, error) {
	target := filepath.Join(l.dir, strconv.Itoa(year)+".yaml")
	if data, err := os.ReadFile(target); err == nil {
		return parse(data, target)
	}

	// Fallback: most recent available year ≤ requested.
	entries, err := filepath.Glob(filepath.Join(l.dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("scan constants dir %s: %w", l.dir, err)
	}
	var years []int
	for _, e := range entries {
		stem := filepath.Base(e)
		stem = stem[:len(stem)-len(filepath.Ext(stem))]
		if y, err := strconv.Atoi(stem); err == nil {
			years = append(years, y)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	for _, y := range years {
		if y <= year {
			path := filepath.Join(l.dir, strconv.Itoa(y)+".yaml")
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read constants %s: %w", path, err)
			}
			return parse(data, path)
		}
	}

	return nil, fmt.Errorf("%w: year %d in %s", ErrNotFound, year, l.dir)
}

func parse(data []byte, path string) (*Constants, error) {
	var c Constants
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse constants %s: %w", path, err)
	}
	return &c, nil
}
