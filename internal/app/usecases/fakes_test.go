package usecases

import (
	"context"
	"sync"

	"farmsync/internal/adapters/marketplace/dto"
	"farmsync/internal/audit"
	"farmsync/internal/domain/model"
)

type fakeStore struct {
	products map[int64]model.Product
	updates  []model.InventoryUpdate
	listIDs  []int64
}

func (f *fakeStore) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return model.Product{}, &model.NotFoundError{ProductID: id}
	}
	return p, nil
}

func (f *fakeStore) ListAvailableProductIDs(ctx context.Context) ([]int64, error) {
	return f.listIDs, nil
}

func (f *fakeStore) UpdateInventoryFields(ctx context.Context, id int64, update model.InventoryUpdate) error {
	if _, ok := f.products[id]; !ok {
		return &model.NotFoundError{ProductID: id}
	}
	f.updates = append(f.updates, update)
	return nil
}

type fakeMarket struct {
	mu sync.Mutex

	product    dto.Product
	getErr     error
	updateErr  func(marketplaceID int64, update dto.ProductUpdate) error
	patchErr   error
	linkErr    error
	updates    []dto.ProductUpdate
	patches    []dto.InventoryPatch
	linkCalls  int
	getCalls   int
}

func (f *fakeMarket) GetProduct(ctx context.Context, marketplaceID int64) (dto.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.getErr != nil {
		return dto.Product{}, f.getErr
	}
	return f.product, nil
}

func (f *fakeMarket) UpdateProductPrices(ctx context.Context, marketplaceID int64, update dto.ProductUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		if err := f.updateErr(marketplaceID, update); err != nil {
			return err
		}
	}
	f.updates = append(f.updates, update)
	return nil
}

func (f *fakeMarket) PatchInventory(ctx context.Context, marketplaceID int64, patch dto.InventoryPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.patchErr != nil {
		return f.patchErr
	}
	f.patches = append(f.patches, patch)
	return nil
}

func (f *fakeMarket) AddToPriceList(ctx context.Context, priceListID, marketplaceID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.linkCalls++
	return f.linkErr
}

type fakeNotifier struct {
	mu       sync.Mutex
	infos    []string
	errors   []string
	warnings []string
}

func (f *fakeNotifier) Notify(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.infos = append(f.infos, value)
}

func (f *fakeNotifier) NotifyError(value string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors = append(f.errors, value)
}

func (f *fakeNotifier) NotifyWarning(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.warnings = append(f.warnings, value)
}

func (f *fakeNotifier) NotifySuccess(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.infos = append(f.infos, value)
}

type fakeAuditLog struct {
	records []audit.Record
	err     error
}

func (f *fakeAuditLog) Append(rec audit.Record) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, rec)
	return nil
}
