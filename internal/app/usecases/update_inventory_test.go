package usecases

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"farmsync/internal/domain/model"
)

func newTestInventorySync(store *fakeStore, market *fakeMarket, auditLog *fakeAuditLog, notifier *fakeNotifier) *InventorySync {
	return NewInventorySync(store, market, auditLog, zap.NewNop().Sugar(), notifier)
}

func TestApplyUpdateRejectsVisibleTrackedZeroStock(t *testing.T) {
	store := &fakeStore{products: map[int64]model.Product{7: linkedProduct()}}
	auditLog := &fakeAuditLog{}
	sync := newTestInventorySync(store, &fakeMarket{}, auditLog, &fakeNotifier{})

	_, err := sync.ApplyUpdate(context.Background(), 7, model.InventoryUpdate{
		Visible:        true,
		TrackInventory: true,
		StockQuantity:  0,
	})
	var valErr *model.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("error = %v, want *model.ValidationError", err)
	}
	if len(store.updates) != 0 {
		t.Error("store must not be touched on rejection")
	}
	if len(auditLog.records) != 0 {
		t.Error("audit log must not be touched on rejection")
	}
}

func TestApplyUpdateAcceptsHiddenZeroStock(t *testing.T) {
	store := &fakeStore{products: map[int64]model.Product{7: linkedProduct()}}
	market := &fakeMarket{}
	auditLog := &fakeAuditLog{}
	sync := newTestInventorySync(store, market, auditLog, &fakeNotifier{})

	status, err := sync.ApplyUpdate(context.Background(), 7, model.InventoryUpdate{
		Visible:        false,
		TrackInventory: true,
		StockQuantity:  0,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !status.DatabaseUpdate || !status.MarketplaceUpdate {
		t.Errorf("status = %+v, want both halves true", status)
	}
	if len(store.updates) != 1 {
		t.Fatalf("store updates = %d, want 1", len(store.updates))
	}
	if len(auditLog.records) != 1 {
		t.Fatalf("audit records = %d, want 1", len(auditLog.records))
	}
	rec := auditLog.records[0]
	if rec.ProductID != 7 || rec.Visible || rec.StockQuantity != 0 {
		t.Errorf("audit record = %+v", rec)
	}
	if len(market.patches) != 1 {
		t.Fatalf("marketplace patches = %d, want 1", len(market.patches))
	}
	patch := market.patches[0]
	if patch.SetInventory == nil || *patch.SetInventory != 0 {
		t.Errorf("patch set_inventory = %v, want 0", patch.SetInventory)
	}
}

func TestApplyUpdateMarketplaceFailureIsPartialSuccess(t *testing.T) {
	store := &fakeStore{products: map[int64]model.Product{7: linkedProduct()}}
	market := &fakeMarket{patchErr: errors.New("service unavailable")}
	notifier := &fakeNotifier{}
	sync := newTestInventorySync(store, market, &fakeAuditLog{}, notifier)

	status, err := sync.ApplyUpdate(context.Background(), 7, model.InventoryUpdate{
		Visible:        true,
		TrackInventory: true,
		StockQuantity:  5,
	})
	if err != nil {
		t.Fatalf("marketplace failure must not fail the local write: %v", err)
	}
	if !status.DatabaseUpdate {
		t.Error("database half should be true")
	}
	if status.MarketplaceUpdate {
		t.Error("marketplace half should be false")
	}
	if len(notifier.errors) != 1 {
		t.Errorf("operator notifications = %d, want 1", len(notifier.errors))
	}
}

func TestApplyUpdateUnlinkedSkipsMarketplace(t *testing.T) {
	unlinked := linkedProduct()
	unlinked.MarketplaceID = 0
	store := &fakeStore{products: map[int64]model.Product{7: unlinked}}
	market := &fakeMarket{}
	notifier := &fakeNotifier{}
	sync := newTestInventorySync(store, market, &fakeAuditLog{}, notifier)

	status, err := sync.ApplyUpdate(context.Background(), 7, model.InventoryUpdate{
		Visible:        true,
		TrackInventory: false,
		StockQuantity:  3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !status.DatabaseUpdate || status.MarketplaceUpdate {
		t.Errorf("status = %+v, want local-only success", status)
	}
	if len(market.patches) != 0 {
		t.Error("no marketplace call may happen without a linkage")
	}
	if len(notifier.warnings) != 1 {
		t.Errorf("warnings = %d, want 1 about the missing linkage", len(notifier.warnings))
	}
}

func TestApplyUpdateUntrackedNonzeroStockOmitsSetInventory(t *testing.T) {
	store := &fakeStore{products: map[int64]model.Product{7: linkedProduct()}}
	market := &fakeMarket{}
	sync := newTestInventorySync(store, market, &fakeAuditLog{}, &fakeNotifier{})

	_, err := sync.ApplyUpdate(context.Background(), 7, model.InventoryUpdate{
		Visible:        true,
		TrackInventory: false,
		StockQuantity:  9,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if market.patches[0].SetInventory != nil {
		t.Error("set_inventory should be omitted when inventory is not tracked")
	}
}

func TestApplyUpdateUnknownProduct(t *testing.T) {
	store := &fakeStore{products: map[int64]model.Product{}}
	sync := newTestInventorySync(store, &fakeMarket{}, &fakeAuditLog{}, &fakeNotifier{})

	_, err := sync.ApplyUpdate(context.Background(), 42, model.InventoryUpdate{Visible: true})
	var notFound *model.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want *model.NotFoundError", err)
	}
}

func TestApplyUpdateAuditFailureDoesNotFail(t *testing.T) {
	store := &fakeStore{products: map[int64]model.Product{7: linkedProduct()}}
	auditLog := &fakeAuditLog{err: errors.New("disk full")}
	sync := newTestInventorySync(store, &fakeMarket{}, auditLog, &fakeNotifier{})

	status, err := sync.ApplyUpdate(context.Background(), 7, model.InventoryUpdate{Visible: true, StockQuantity: 2})
	if err != nil {
		t.Fatalf("audit failure must not fail the update: %v", err)
	}
	if !status.DatabaseUpdate {
		t.Error("database half should be true")
	}
}
