package usecases

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"farmsync/internal/adapters/pos"
	"farmsync/internal/adapters/pos/dto"
)

type SalesReportService interface {
	Generate(ctx context.Context, start, end time.Time) (Report, error)
}

// Report is the aggregated POS sales for one window, per location, broken
// down by catalog category. Amounts are cents.
type Report struct {
	Start     time.Time
	End       time.Time
	Locations []LocationSales
}

type LocationSales struct {
	Location      string
	CategorySales map[string]int64
	Total         int64
}

type SalesReport struct {
	pos    pos.ReportService
	logger *zap.SugaredLogger
}

func NewSalesReport(posClient pos.ReportService, logger *zap.SugaredLogger) *SalesReport {
	return &SalesReport{
		pos:    posClient,
		logger: logger,
	}
}

// catalogIndex resolves a sold variation back to its category name in two
// hops: variation -> item -> category.
type catalogIndex struct {
	variationToItem map[string]string
	itemToCategory  map[string]string
	categoryName    map[string]string
}

func (s *SalesReport) Generate(ctx context.Context, start, end time.Time) (Report, error) {
	report := Report{Start: start, End: end}

	objects, err := s.pos.FullCatalog(ctx)
	if err != nil {
		return report, fmt.Errorf("fetch catalog: %w", err)
	}
	index := buildCatalogIndex(objects)

	locations, err := s.pos.ActiveLocations(ctx)
	if err != nil {
		return report, fmt.Errorf("fetch locations: %w", err)
	}

	for _, location := range locations {
		orders, err := s.pos.CompletedOrders(ctx, location.ID, start, end)
		if err != nil {
			return report, fmt.Errorf("fetch orders for %s: %w", location.Name, err)
		}

		sales := LocationSales{
			Location:      location.Name,
			CategorySales: make(map[string]int64),
		}
		for _, order := range orders {
			for _, line := range order.LineItems {
				category := index.categoryFor(line.CatalogObjectID)
				sales.CategorySales[category] += line.GrossSalesMoney.Amount
				sales.Total += line.GrossSalesMoney.Amount
			}
		}
		report.Locations = append(report.Locations, sales)

		s.logger.Infow("location aggregated",
			"location", location.Name, "orders", len(orders), "gross_cents", sales.Total)
	}

	return report, nil
}

func buildCatalogIndex(objects []dto.CatalogObject) catalogIndex {
	index := catalogIndex{
		variationToItem: make(map[string]string),
		itemToCategory:  make(map[string]string),
		categoryName:    make(map[string]string),
	}
	for _, obj := range objects {
		switch obj.Type {
		case "CATEGORY":
			name := "Unnamed Category"
			if obj.CategoryData != nil && obj.CategoryData.Name != "" {
				name = obj.CategoryData.Name
			}
			index.categoryName[obj.ID] = name
		case "ITEM":
			if obj.ItemData == nil {
				continue
			}
			categoryID := obj.ItemData.CategoryID
			if categoryID == "" && len(obj.ItemData.Categories) > 0 {
				categoryID = obj.ItemData.Categories[0].ID
			}
			index.itemToCategory[obj.ID] = categoryID
		case "ITEM_VARIATION":
			if obj.ItemVariationData != nil && obj.ItemVariationData.ItemID != "" {
				index.variationToItem[obj.ID] = obj.ItemVariationData.ItemID
			}
		}
	}
	return index
}

func (i catalogIndex) categoryFor(variationID string) string {
	itemID, ok := i.variationToItem[variationID]
	if !ok {
		return "Uncategorized"
	}
	categoryID, ok := i.itemToCategory[itemID]
	if !ok || categoryID == "" {
		return "Uncategorized"
	}
	if name, ok := i.categoryName[categoryID]; ok {
		return name
	}
	return "Uncategorized"
}

// Render formats the report the way it is mailed out: one block per location,
// categories sorted, amounts in dollars.
func (r Report) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sales report %s to %s\n", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
	for _, location := range r.Locations {
		fmt.Fprintf(&b, "\n%s\n", location.Location)

		categories := make([]string, 0, len(location.CategorySales))
		for category := range location.CategorySales {
			categories = append(categories, category)
		}
		sort.Strings(categories)

		for _, category := range categories {
			fmt.Fprintf(&b, "  • %-28s$%9.2f\n", category, float64(location.CategorySales[category])/100)
		}
		fmt.Fprintf(&b, "  %-30s$%9.2f\n", "Total", float64(location.Total)/100)
	}
	return b.String()
}
