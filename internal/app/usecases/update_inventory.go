package usecases

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"farmsync/internal/adapters/marketplace"
	"farmsync/internal/adapters/marketplace/dto"
	"farmsync/internal/audit"
	"farmsync/internal/domain/model"
	"farmsync/internal/logging"
	"farmsync/internal/observability"
	"farmsync/internal/store"
)

type InventorySyncService interface {
	ApplyUpdate(ctx context.Context, productID int64, update model.InventoryUpdate) (model.UpdateStatus, error)
}

type InventorySync struct {
	store    store.ProductStore
	market   marketplace.ProductService
	auditLog audit.Log
	logger   *zap.SugaredLogger
	notifier logging.NotifierService
	now      func() time.Time
}

func NewInventorySync(
	productStore store.ProductStore,
	market marketplace.ProductService,
	auditLog audit.Log,
	logger *zap.SugaredLogger,
	notifier logging.NotifierService,
) *InventorySync {
	return &InventorySync{
		store:    productStore,
		market:   market,
		auditLog: auditLog,
		logger:   logger,
		notifier: notifier,
		now:      time.Now,
	}
}

// ApplyUpdate validates and applies one inventory change. The local write and
// the marketplace mirror succeed or fail independently; the returned status
// carries both halves. A marketplace failure never rolls back the local write.
func (s *InventorySync) ApplyUpdate(ctx context.Context, productID int64, update model.InventoryUpdate) (model.UpdateStatus, error) {
	// A visible, inventory-tracked item with zero stock would show as
	// purchasable while empty. Reject before touching anything.
	if update.TrackInventory && update.Visible && update.StockQuantity == 0 {
		observability.InventoryUpdateTotal.WithLabelValues("rejected").Inc()
		return model.UpdateStatus{ID: productID}, &model.ValidationError{
			Reason: "a visible, inventory-tracked product cannot have zero stock; set visible=false first",
		}
	}

	product, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		return model.UpdateStatus{ID: productID}, err
	}

	status := model.UpdateStatus{ID: product.ID, Name: product.Name}

	if err := s.store.UpdateInventoryFields(ctx, product.ID, update); err != nil {
		observability.InventoryUpdateTotal.WithLabelValues("db_failed").Inc()
		return status, err
	}
	status.DatabaseUpdate = true

	if err := s.auditLog.Append(audit.Record{
		ProductID:      product.ID,
		Name:           product.Name,
		PackageName:    product.PackageName,
		Visible:        update.Visible,
		TrackInventory: update.TrackInventory,
		StockQuantity:  update.StockQuantity,
		Timestamp:      s.now(),
	}); err != nil {
		// the change is already committed; losing the audit row is worth a
		// loud log line but not a failed update
		s.logger.Errorw("audit log append failed", "product_id", product.ID, "error", err)
	}

	if !product.Linked() {
		s.notifier.NotifyWarning(fmt.Sprintf("no marketplace record for product %d (%s); inventory mirrored locally only", product.ID, product.Name))
		observability.InventoryUpdateTotal.WithLabelValues("local_only").Inc()
		return status, nil
	}

	patch := dto.InventoryPatch{
		Visible:        update.Visible,
		TrackInventory: update.TrackInventory,
	}
	if update.TrackInventory || update.StockQuantity == 0 {
		qty := update.StockQuantity
		patch.SetInventory = &qty
	}

	if err := s.market.PatchInventory(ctx, product.MarketplaceID, patch); err != nil {
		s.logger.Errorw("marketplace inventory update failed",
			"product_id", product.ID, "marketplace_id", product.MarketplaceID, "error", err)
		s.notifier.NotifyError(fmt.Sprintf("marketplace inventory update failed for product %d (%s)", product.ID, product.Name), err)
		observability.InventoryUpdateTotal.WithLabelValues("marketplace_failed").Inc()
		return status, nil
	}

	status.MarketplaceUpdate = true
	observability.InventoryUpdateTotal.WithLabelValues("ok").Inc()
	return status, nil
}
