package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/cantacomigo/zapmenu/model"
)

// OrderStore is the GORM-backed persistence used by the checkout gate.
type OrderStore struct {
	db *gorm.DB
}

func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

func (s *OrderStore) CreateOrder(ctx context.Context, order *model.Order) error {
	return s.db.WithContext(ctx).Create(order).Error
}

// DecrementStock lowers an item's stock by qty, floored at zero, flipping
// availability off when the stock runs out. Items without stock tracking
// are a no-op. This read-then-write is not atomic: two concurrent orders
// can both see the last unit and both succeed, which is accepted at this
// system's scale.
func (s *OrderStore) DecrementStock(ctx context.Context, itemID uint, qty int) error {
	var item model.MenuItem
	if err := s.db.WithContext(ctx).First(&item, itemID).Error; err != nil {
		return err
	}
	if !item.ApplyStockDecrement(qty) {
		return nil
	}
	return s.db.WithContext(ctx).Model(&model.MenuItem{}).
		Where("id = ?", itemID).
		Updates(map[string]interface{}{
			"stock":     *item.Stock,
			"available": item.Available,
		}).Error
}
