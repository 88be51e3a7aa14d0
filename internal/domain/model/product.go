package model

// UnitOfMeasure is the pricing unit tag carried on every price list row.
// Anything outside the two known tags is a configuration error for that row.
type UnitOfMeasure string

const (
	UnitEach UnitOfMeasure = "each"
	UnitLbs  UnitOfMeasure = "lbs"
)

// Product is one row of the canonical price list. The store owns it; the
// synchronizers only hold a copy for the duration of one operation.
type Product struct {
	ID            int64
	MarketplaceID int64 // 0 means not yet linked to the marketplace
	Name          string
	PackageName   string
	Description   string
	Category      string

	RetailSalesPrice float64
	UnitOfMeasure    UnitOfMeasure
	LowestWeight     float64
	HighestWeight    float64

	Visible          bool
	TrackInventory   bool
	StockQuantity    int
	MarketplaceAvail bool
}

// Linked reports whether the product has a known marketplace counterpart.
func (p Product) Linked() bool {
	return p.MarketplaceID > 0
}

// InventoryUpdate is the transient command applied by the inventory
// synchronizer. It is validated before any mutation happens.
type InventoryUpdate struct {
	Visible        bool
	TrackInventory bool
	StockQuantity  int
}

// UpdateStatus reports the two halves of an inventory update separately so a
// caller can see partial success: the local write may land while the
// marketplace mirror fails.
type UpdateStatus struct {
	ID                int64
	Name              string
	DatabaseUpdate    bool
	MarketplaceUpdate bool
}
