package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sangkips/billbuddy-api/internal/domain/entity"
	"github.com/sangkips/billbuddy-api/internal/domain/repository"
	"github.com/sangkips/billbuddy-api/pkg/apperror"
	"github.com/sangkips/billbuddy-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// TableInfo is the catalog view of a physical table
type TableInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CatalogService keeps a read mirror of the co-resident tables/items catalog.
// Writes update the mirror first and persist after, so the menu reflects an
// edit even when the store write fails.
type CatalogService struct {
	repo repository.CatalogRepository
	log  *logrus.Logger

	mu     sync.RWMutex
	tables map[string]TableInfo
	items  map[string]MenuItem
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo repository.CatalogRepository, log *logrus.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		log:    log,
		tables: make(map[string]TableInfo),
		items:  make(map[string]MenuItem),
	}
}

func menuItemFromEntity(item entity.Item) MenuItem {
	m := MenuItem{
		ID:        item.ID,
		Name:      item.Name,
		Price:     item.Price,
		HalfPrice: item.HalfPrice,
	}
	if item.Category != nil {
		m.Category = *item.Category
	}
	return m
}

// Load replaces the mirror with the stored catalog
func (s *CatalogService) Load(ctx context.Context) error {
	tables, err := s.repo.ListTables(ctx)
	if err != nil {
		return fmt.Errorf("load tables: %w", err)
	}
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables = make(map[string]TableInfo, len(tables))
	for _, t := range tables {
		s.tables[t.ID] = TableInfo{ID: t.ID, Name: t.Name}
	}
	s.items = make(map[string]MenuItem, len(items))
	for _, item := range items {
		s.items[item.ID] = menuItemFromEntity(item)
	}
	return nil
}

// Tables returns the mirrored tables sorted by id
func (s *CatalogService) Tables() []TableInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]TableInfo, 0, len(s.tables))
	for _, t := range s.tables {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Items returns the mirrored menu sorted by name
func (s *CatalogService) Items() []MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]MenuItem, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Item looks up a menu item, returning a not found error when unknown
func (s *CatalogService) Item(id string) (MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return MenuItem{}, apperror.NewNotFoundError("Item")
	}
	return item, nil
}

// SaveItem adds or replaces a menu item. An empty id is derived from the name.
func (s *CatalogService) SaveItem(ctx context.Context, item MenuItem) (MenuItem, error) {
	var fieldErrors []apperror.FieldError
	if item.Name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	if item.Price.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "price", Message: "price must not be negative"})
	}
	if len(fieldErrors) > 0 {
		return MenuItem{}, apperror.NewValidationError(fieldErrors)
	}
	if item.ID == "" {
		item.ID = utils.Slugify(item.Name)
		if item.ID == "" {
			return MenuItem{}, apperror.NewValidationError([]apperror.FieldError{
				{Field: "id", Message: "id is required when the name has no ASCII letters or digits"},
			})
		}
	}

	s.mu.Lock()
	s.items[item.ID] = item
	s.mu.Unlock()

	row := &entity.Item{
		ID:        item.ID,
		Name:      item.Name,
		Price:     item.Price,
		HalfPrice: item.HalfPrice,
	}
	if item.Category != "" {
		category := item.Category
		row.Category = &category
	}
	if err := s.repo.UpsertItem(ctx, row); err != nil {
		s.log.WithField("item_id", item.ID).WithError(err).Error("Failed to persist catalog item")
		return item, fmt.Errorf("failed to save item: %w", err)
	}
	return item, nil
}

// SaveTable adds or renames a table
func (s *CatalogService) SaveTable(ctx context.Context, table TableInfo) (TableInfo, error) {
	if table.Name == "" {
		return TableInfo{}, apperror.NewValidationError([]apperror.FieldError{{Field: "name", Message: "name is required"}})
	}
	if table.ID == "" {
		table.ID = table.Name
	}

	s.mu.Lock()
	s.tables[table.ID] = table
	s.mu.Unlock()

	if err := s.repo.UpsertTable(ctx, &entity.DiningTable{ID: table.ID, Name: table.Name, Status: "empty"}); err != nil {
		s.log.WithField("table_id", table.ID).WithError(err).Error("Failed to persist catalog table")
		return table, fmt.Errorf("failed to save table: %w", err)
	}
	return table, nil
}
