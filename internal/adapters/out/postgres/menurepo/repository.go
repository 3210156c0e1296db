package menurepo

import (
	"context"
	"errors"

	"cafeteria/internal/adapters/out/postgres/pgerrs"
	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/menu"
	"cafeteria/internal/core/ports"
	"cafeteria/internal/pkg/errs"

	"gorm.io/gorm"
)

const nameConstraint = "menu_items_name_key"

var _ ports.MenuRepository = (*GormMenuRepository)(nil)

// GormMenuRepository implements MenuRepository using GORM.
type GormMenuRepository struct {
	db *gorm.DB
}

func NewGormMenuRepository(db *gorm.DB) *GormMenuRepository {
	return &GormMenuRepository{db: db}
}

func (r *GormMenuRepository) Add(ctx context.Context, item *menu.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := fromDomain(item)
	err := r.db.WithContext(ctx).Create(&dto).Error
	if pgerrs.IsUniqueViolation(err, nameConstraint) {
		return errs.NewConflictErrorWithCause("menu item", item.Name(), err)
	}
	return err
}

func (r *GormMenuRepository) Update(ctx context.Context, item *menu.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := fromDomain(item)
	result := r.db.WithContext(ctx).Model(&MenuItemDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"name":     dto.Name,
		"name_key": dto.NameKey,
		"price":    dto.Price,
	})
	if pgerrs.IsUniqueViolation(result.Error, nameConstraint) {
		return errs.NewConflictErrorWithCause("menu item", item.Name(), result.Error)
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("menu item", item.ID().String())
	}
	return nil
}

func (r *GormMenuRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&MenuItemDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("menu item", id.String())
	}
	return nil
}

func (r *GormMenuRepository) Get(ctx context.Context, id kernel.UUID) (*menu.Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MenuItemDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("menu item", id.String())
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// GetByNames matches on the case-folded key, so "TEA" finds "Tea".
func (r *GormMenuRepository) GetByNames(ctx context.Context, names []string) ([]*menu.Item, error) {
	if len(names) == 0 {
		return []*menu.Item{}, nil
	}

	keys := make([]string, 0, len(names))
	for _, name := range names {
		keys = append(keys, menu.NameKey(name))
	}

	var dtos []MenuItemDTO
	if err := r.db.WithContext(ctx).Where("name_key IN ?", keys).Find(&dtos).Error; err != nil {
		return nil, err
	}

	items := make([]*menu.Item, 0, len(dtos))
	for _, dto := range dtos {
		item, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *GormMenuRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&MenuItemDTO{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
