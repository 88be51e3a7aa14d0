package dto

// Product is the marketplace's representation of a listing: the sellable
// packages plus the price list linkages the product currently has.
type Product struct {
	ID                    int64           `json:"id"`
	Name                  string          `json:"name"`
	Packages              []Package       `json:"packages"`
	ProductPriceListLinks []PriceListLink `json:"product_price_list_entries"`
}

type Package struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// PriceListLink is one existing product-to-price-list association. Absence of
// a link for a target list is a normal state, not an error.
type PriceListLink struct {
	ID        int64 `json:"id"`
	PriceList int64 `json:"price_list"`
}

// PriceListEntryUpdate mirrors the marketplace's entry update shape. The
// bookkeeping booleans are required verbatim by the remote API.
type PriceListEntryUpdate struct {
	Adjustment                bool     `json:"adjustment"`
	AdjustmentType            int      `json:"adjustment_type"`
	AdjustmentValue           float64  `json:"adjustment_value"`
	PriceList                 int64    `json:"price_list"`
	Checked                   bool     `json:"checked"`
	NotSubmitted              bool     `json:"notSubmitted"`
	Edited                    bool     `json:"edited"`
	Dirty                     bool     `json:"dirty"`
	ProductPriceListEntry     int64    `json:"product_price_list_entry"`
	CalculatedValue           float64  `json:"calculated_value"`
	OnSale                    bool     `json:"on_sale"`
	OnSaleToggle              bool     `json:"on_sale_toggle"`
	MaxUnitsPerOrder          *int     `json:"max_units_per_order"`
	StrikethroughDisplayValue *float64 `json:"strikethrough_display_value"`
}

type PackageUpdate struct {
	ID               int64                  `json:"id"`
	Name             string                 `json:"name"`
	UnitPrice        string                 `json:"unit_price"`
	PackagePrice     string                 `json:"package_price"`
	PackageUnitPrice string                 `json:"package_unit_price"`
	InventoryPerUnit int                    `json:"inventory_per_unit"`
	PriceListEntries []PriceListEntryUpdate `json:"price_list_entries"`
}

type ProductUpdate struct {
	Packages []PackageUpdate `json:"packages"`
}

// InventoryPatch mirrors visibility and stock to the marketplace. SetInventory
// is omitted entirely when inventory is not tracked.
type InventoryPatch struct {
	Visible        bool `json:"visible"`
	TrackInventory bool `json:"track_inventory"`
	SetInventory   *int `json:"set_inventory,omitempty"`
}

type AddToPriceListRequest struct {
	PriceListID int64 `json:"pricelist_id"`
	ProductID   int64 `json:"product_id"`
}

type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Access string `json:"access"`
}
