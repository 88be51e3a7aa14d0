package model

// PriceListTarget names one remote price list a product can be pushed to.
// The full set is fixed at process start and processed in configuration order.
type PriceListTarget struct {
	Name           string
	ExternalListID int64
	MarkupFraction float64
}

// PriceListEntry is the computed per-list pricing descriptor. It is never
// persisted; every sync recomputes it from the canonical record.
type PriceListEntry struct {
	TargetListID       int64
	AdjustmentValue    float64 // percentage points
	CalculatedPrice    float64
	OnSale             bool
	StrikethroughPrice *float64
}

// SyncStatus classifies the outcome of pushing one product to one price list.
type SyncStatus string

const (
	SyncUpdated   SyncStatus = "updated"
	SyncNotLinked SyncStatus = "not_linked"
	SyncNoPackage SyncStatus = "no_package"
	SyncFailed    SyncStatus = "failed"
)

// SyncResult records what happened for a single target list. A failed target
// never blocks its siblings, so a per-product sync always yields one result
// per configured target.
type SyncResult struct {
	Target          PriceListTarget
	Status          SyncStatus
	CalculatedPrice float64
	Message         string
	Err             error
}

// AllFailed reports whether every result in the set is a remote failure.
func AllFailed(results []SyncResult) bool {
	if len(results) == 0 {
		return false
	}
	for _, r := range results {
		if r.Status != SyncFailed {
			return false
		}
	}
	return true
}
