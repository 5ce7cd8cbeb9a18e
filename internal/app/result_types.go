package app

import (
	"lmnp-ledger/internal/fiscal"
	"lmnp-ledger/internal/liasse"
)

// SummaryResult is returned by ComputeSummary.
type SummaryResult struct {
	Summary fiscal.FiscalSummary
	Details []fiscal.AllocationDetail
}

// LiasseResult is returned by BuildLiasse.
type LiasseResult struct {
	Liasse liasse.Liasse
}
