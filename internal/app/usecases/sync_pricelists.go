package usecases

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"farmsync/internal/adapters/marketplace"
	"farmsync/internal/adapters/marketplace/dto"
	"farmsync/internal/config"
	"farmsync/internal/domain/model"
	"farmsync/internal/domain/pricing"
	"farmsync/internal/logging"
	"farmsync/internal/observability"
	"farmsync/internal/store"
)

type PriceListSyncService interface {
	SyncProduct(ctx context.Context, productID int64) ([]model.SyncResult, error)
	SyncAllProducts(ctx context.Context) error
	LinkProduct(ctx context.Context, productID, priceListID int64) error
}

type PriceListSync struct {
	store    store.ProductStore
	market   marketplace.ProductService
	pricing  config.PricingConfig
	logger   *zap.SugaredLogger
	notifier logging.NotifierService
}

const productConcurrency = 4

func NewPriceListSync(
	productStore store.ProductStore,
	market marketplace.ProductService,
	pricingCfg config.PricingConfig,
	logger *zap.SugaredLogger,
	notifier logging.NotifierService,
) *PriceListSync {
	return &PriceListSync{
		store:    productStore,
		market:   market,
		pricing:  pricingCfg,
		logger:   logger,
		notifier: notifier,
	}
}

// SyncProduct pushes one product to every configured price list, in
// configuration order. One result per target, always: a failed or unlinked
// target never blocks its siblings. Errors returned here are pre-flight only
// (unknown product, bad unit of measure, missing marketplace linkage).
func (s *PriceListSync) SyncProduct(ctx context.Context, productID int64) ([]model.SyncResult, error) {
	product, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	basePrice, err := pricing.ComputeBasePrice(product, s.pricing.DiscountFactor)
	if err != nil {
		return nil, err
	}

	if !product.Linked() {
		s.notifier.NotifyWarning(fmt.Sprintf("product %d (%s) has no marketplace linkage", product.ID, product.Name))
		return nil, fmt.Errorf("product %d has no marketplace linkage", product.ID)
	}

	results := make([]model.SyncResult, 0, len(s.pricing.Targets))
	for _, target := range s.pricing.Targets {
		result := s.syncTarget(ctx, product, basePrice, target)
		results = append(results, result)
		observability.PriceListSyncTotal.WithLabelValues(string(result.Status)).Inc()
		s.logResult(product, basePrice, result)
	}

	if model.AllFailed(results) {
		s.onAllFailed(product, results)
	}
	return results, nil
}

func (s *PriceListSync) syncTarget(ctx context.Context, product model.Product, basePrice float64, target model.PriceListTarget) model.SyncResult {
	result := model.SyncResult{Target: target}

	remote, err := s.market.GetProduct(ctx, product.MarketplaceID)
	if err != nil {
		result.Status = model.SyncFailed
		result.Err = err
		return result
	}

	if len(remote.Packages) == 0 {
		result.Status = model.SyncNoPackage
		result.Message = fmt.Sprintf("no package found for marketplace product %d", product.MarketplaceID)
		return result
	}
	firstPackage := remote.Packages[0]

	var link *dto.PriceListLink
	for i := range remote.ProductPriceListLinks {
		if remote.ProductPriceListLinks[i].PriceList == target.ExternalListID {
			link = &remote.ProductPriceListLinks[i]
			break
		}
	}
	if link == nil {
		result.Status = model.SyncNotLinked
		result.Message = fmt.Sprintf("product %s is not on price list %q (%d)", product.Name, target.Name, target.ExternalListID)
		return result
	}

	entry := pricing.ComputeEntry(target.ExternalListID, basePrice, target.MarkupFraction, s.pricing.SaleActive, s.pricing.SaleDeduction)

	update := dto.ProductUpdate{
		Packages: []dto.PackageUpdate{{
			ID:               firstPackage.ID,
			Name:             firstPackage.Name,
			UnitPrice:        formatPrice(basePrice),
			PackagePrice:     formatPrice(basePrice),
			PackageUnitPrice: formatPrice(basePrice),
			InventoryPerUnit: 1,
			PriceListEntries: []dto.PriceListEntryUpdate{{
				Adjustment:                true,
				AdjustmentType:            2,
				AdjustmentValue:           entry.AdjustmentValue,
				PriceList:                 entry.TargetListID,
				Checked:                   true,
				Dirty:                     true,
				ProductPriceListEntry:     link.ID,
				CalculatedValue:           entry.CalculatedPrice,
				OnSale:                    entry.OnSale,
				OnSaleToggle:              entry.OnSale,
				StrikethroughDisplayValue: entry.StrikethroughPrice,
			}},
		}},
	}

	if err := s.market.UpdateProductPrices(ctx, product.MarketplaceID, update); err != nil {
		result.Status = model.SyncFailed
		result.Err = err
		return result
	}

	result.Status = model.SyncUpdated
	result.CalculatedPrice = entry.CalculatedPrice
	return result
}

// SyncAllProducts runs the whole marketplace-flagged catalog with bounded
// concurrency across products. Per-product failures are logged and the batch
// keeps going; re-running the batch is always safe since every push is a
// recomputation of the same state.
func (s *PriceListSync) SyncAllProducts(ctx context.Context) error {
	runID := uuid.NewString()
	log := s.logger.With("run_id", runID)

	ids, err := s.store.ListAvailableProductIDs(ctx)
	if err != nil {
		return err
	}
	log.Infow("price list sync started", "products", len(ids))

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed int
	)
	sem := make(chan struct{}, productConcurrency)

	for _, id := range ids {
		wg.Add(1)
		sem <- struct{}{}
		go func(id int64) {
			defer wg.Done()
			defer func() { <-sem }()
			if ctx.Err() != nil {
				return
			}
			if _, err := s.SyncProduct(ctx, id); err != nil {
				log.Errorw("product sync skipped", "product_id", id, "error", err)
				mu.Lock()
				failed++
				mu.Unlock()
			}
		}(id)
	}
	wg.Wait()

	log.Infow("price list sync finished", "products", len(ids), "skipped", failed)
	s.notifier.NotifySuccess(fmt.Sprintf("price list sync finished: %d products, %d skipped (run %s)", len(ids), failed, runID))
	return ctx.Err()
}

// LinkProduct associates a product with a price list it is missing from, the
// repair for a not_linked sync result.
func (s *PriceListSync) LinkProduct(ctx context.Context, productID, priceListID int64) error {
	product, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	if !product.Linked() {
		return fmt.Errorf("product %d has no marketplace linkage", product.ID)
	}
	if err := s.market.AddToPriceList(ctx, priceListID, product.MarketplaceID); err != nil {
		return err
	}
	s.logger.Infow("product linked to price list", "product_id", productID, "price_list_id", priceListID)
	return nil
}

func (s *PriceListSync) onAllFailed(product model.Product, results []model.SyncResult) {
	s.notifier.NotifyError(fmt.Sprintf("all %d price list updates failed for product %d (%s)", len(results), product.ID, product.Name), results[0].Err)
}

func (s *PriceListSync) logResult(product model.Product, basePrice float64, result model.SyncResult) {
	fields := []any{
		"product_id", product.ID,
		"marketplace_id", product.MarketplaceID,
		"price_list_id", result.Target.ExternalListID,
		"price_list", result.Target.Name,
		"status", string(result.Status),
	}
	switch result.Status {
	case model.SyncUpdated:
		s.logger.Infow("price list updated", append(fields, "base_price", basePrice, "calculated_price", result.CalculatedPrice)...)
	case model.SyncFailed:
		s.logger.Errorw("price list update failed", append(fields, "error", result.Err)...)
	default:
		s.logger.Warnw(result.Message, fields...)
	}
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
