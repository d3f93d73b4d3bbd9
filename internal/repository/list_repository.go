package repository

import (
	"context"
	"errors"

	"doit/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeletePolicy controls what happens to a list's tasks when the list is
// deleted: cascade removes them in the same transaction, protect refuses
// deletion while any task remains.
type DeletePolicy string

const (
	DeleteCascade DeletePolicy = "cascade"
	DeleteProtect DeletePolicy = "protect"
)

type ListRepository struct {
	db     *gorm.DB
	policy DeletePolicy
}

type ListRepositoryInterface interface {
	Create(ctx context.Context, list *model.List) error
	GetOwned(ctx context.Context, ownerID uuid.UUID) ([]model.List, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.List, error)
	Update(ctx context.Context, list *model.List) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ ListRepositoryInterface = (*ListRepository)(nil)

func NewListRepository(db *gorm.DB, policy DeletePolicy) *ListRepository {
	if policy != DeleteProtect {
		policy = DeleteCascade
	}
	return &ListRepository{db: db, policy: policy}
}

func (r *ListRepository) Create(ctx context.Context, list *model.List) error {
	return r.db.WithContext(ctx).Create(list).Error
}

// GetOwned returns the lists of one user in creation order.
func (r *ListRepository) GetOwned(ctx context.Context, ownerID uuid.UUID) ([]model.List, error) {
	var lists []model.List
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at, id").
		Find(&lists).Error
	return lists, err
}

func (r *ListRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.List, error) {
	var list model.List
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&list).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &list, nil
}

func (r *ListRepository) Update(ctx context.Context, list *model.List) error {
	return r.db.WithContext(ctx).Save(list).Error
}

// Delete removes a list according to the configured policy.
func (r *ListRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if r.policy == DeleteProtect {
			var count int64
			if err := tx.Model(&model.Task{}).Where("list_id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrListHasTasks
			}
		} else {
			if err := tx.Where("list_id = ?", id).Delete(&model.Task{}).Error; err != nil {
				return err
			}
		}

		result := tx.Delete(&model.List{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrListNotFound
		}
		return nil
	})
}
