package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"farmsync/internal/domain/model"
)

// ProductStore is the canonical price list: point reads by id and a single
// atomic update of the inventory fields. Current state only, history lives in
// the audit log.
type ProductStore interface {
	GetProduct(ctx context.Context, id int64) (model.Product, error)
	ListAvailableProductIDs(ctx context.Context) ([]int64, error)
	UpdateInventoryFields(ctx context.Context, id int64, update model.InventoryUpdate) error
}

type MysqlStore struct {
	db *sql.DB
}

func NewMysqlStore(db *sql.DB) *MysqlStore {
	return &MysqlStore{db: db}
}

const productColumns = `
	p.id,
	COALESCE(p.marketplace_product_id, 0),
	p.product_name,
	p.package_name,
	COALESCE(p.description, ''),
	COALESCE(c.name, ''),
	p.retail_sales_price,
	p.unit_of_measure,
	COALESCE(p.lowest_weight, 0),
	COALESCE(p.highest_weight, 0),
	p.visible,
	p.track_inventory,
	p.stock_inventory,
	p.available_on_marketplace`

func (s *MysqlStore) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	query := fmt.Sprintf(`SELECT %s
		FROM pricelist p
		LEFT JOIN category c ON p.category_id = c.id
		WHERE p.id = ?`, productColumns)

	var p model.Product
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.MarketplaceID,
		&p.Name,
		&p.PackageName,
		&p.Description,
		&p.Category,
		&p.RetailSalesPrice,
		&p.UnitOfMeasure,
		&p.LowestWeight,
		&p.HighestWeight,
		&p.Visible,
		&p.TrackInventory,
		&p.StockQuantity,
		&p.MarketplaceAvail,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Product{}, &model.NotFoundError{ProductID: id}
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

// ListAvailableProductIDs returns ids of products flagged for the marketplace,
// ordered by category then name so batch logs read the same way every run.
func (s *MysqlStore) ListAvailableProductIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT p.id
		FROM pricelist p
		LEFT JOIN category c ON p.category_id = c.id
		WHERE p.available_on_marketplace IS TRUE
		ORDER BY c.name, p.product_name`)
	if err != nil {
		return nil, fmt.Errorf("list available products: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list available products: %w", err)
	}
	return ids, nil
}

func (s *MysqlStore) UpdateInventoryFields(ctx context.Context, id int64, update model.InventoryUpdate) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE pricelist SET visible = ?, track_inventory = ?, stock_inventory = ? WHERE id = ?`,
		update.Visible, update.TrackInventory, update.StockQuantity, id)
	if err != nil {
		return fmt.Errorf("update inventory for product %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		// MySQL reports 0 for a no-change update too, so double check existence.
		var exists int
		if scanErr := s.db.QueryRowContext(ctx, `SELECT 1 FROM pricelist WHERE id = ?`, id).Scan(&exists); errors.Is(scanErr, sql.ErrNoRows) {
			return &model.NotFoundError{ProductID: id}
		}
	}
	return nil
}
