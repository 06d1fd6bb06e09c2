package repository

import (
	"context"

	"github.com/sangkips/billbuddy-api/internal/domain/entity"
)

// CatalogRepository is the read side of the co-resident tables/items catalog,
// plus the upserts used to seed and mirror it.
type CatalogRepository interface {
	ListTables(ctx context.Context) ([]entity.DiningTable, error)
	ListItems(ctx context.Context) ([]entity.Item, error)
	// GetItem returns nil, nil when the item does not exist
	GetItem(ctx context.Context, id string) (*entity.Item, error)
	UpsertItem(ctx context.Context, item *entity.Item) error
	UpsertTable(ctx context.Context, table *entity.DiningTable) error
}
