package dto

// Catalog and order shapes for the POS platform. Only the fields the sales
// report reads are mapped.

type CatalogObject struct {
	Type              string             `json:"type"`
	ID                string             `json:"id"`
	CategoryData      *CategoryData      `json:"category_data,omitempty"`
	ItemData          *ItemData          `json:"item_data,omitempty"`
	ItemVariationData *ItemVariationData `json:"item_variation_data,omitempty"`
}

type CategoryData struct {
	Name string `json:"name"`
}

type ItemData struct {
	Name       string            `json:"name"`
	CategoryID string            `json:"category_id"`
	Categories []CategoryPointer `json:"categories,omitempty"`
}

type CategoryPointer struct {
	ID string `json:"id"`
}

type ItemVariationData struct {
	ItemID string `json:"item_id"`
}

type CatalogListResponse struct {
	Objects []CatalogObject `json:"objects"`
	Cursor  string          `json:"cursor"`
}

type Location struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type LocationsResponse struct {
	Locations []Location `json:"locations"`
}

type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type OrderLineItem struct {
	CatalogObjectID string `json:"catalog_object_id"`
	Name            string `json:"name"`
	Quantity        string `json:"quantity"`
	GrossSalesMoney Money  `json:"gross_sales_money"`
	TotalMoney      Money  `json:"total_money"`
	TotalTaxMoney   Money  `json:"total_tax_money"`
}

type Order struct {
	ID        string          `json:"id"`
	LineItems []OrderLineItem `json:"line_items"`
}

type SearchOrdersRequest struct {
	LocationIDs []string    `json:"location_ids"`
	Query       OrdersQuery `json:"query"`
	Limit       int         `json:"limit"`
	Cursor      string      `json:"cursor,omitempty"`
}

type OrdersQuery struct {
	Filter OrdersFilter `json:"filter"`
}

type OrdersFilter struct {
	DateTimeFilter DateTimeFilter `json:"date_time_filter"`
	StateFilter    StateFilter    `json:"state_filter"`
}

type DateTimeFilter struct {
	CreatedAt TimeRange `json:"created_at"`
}

type TimeRange struct {
	StartAt string `json:"start_at"`
	EndAt   string `json:"end_at"`
}

type StateFilter struct {
	States []string `json:"states"`
}

type SearchOrdersResponse struct {
	Orders []Order `json:"orders"`
	Cursor string  `json:"cursor"`
}
