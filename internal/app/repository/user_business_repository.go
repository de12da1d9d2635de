package repository

import (
	"gorm.io/gorm"

	"github.com/localconnect/localconnect-backend/internal/app/model"
	"github.com/localconnect/localconnect-backend/pkg/logger"
)

// UserBusinessRepository is the CRUD surface over user-submitted listings.
type UserBusinessRepository interface {
	Create(business *model.UserBusiness) error
	FindByID(id uint) (*model.UserBusiness, error)
	FindAll() ([]model.UserBusiness, error)
	FindByCategory(category model.Category) ([]model.UserBusiness, error)
	FindByOwner(ownerID string) ([]model.UserBusiness, error)
	Update(business *model.UserBusiness) error
	Delete(id uint) error
}

type userBusinessRepository struct {
	db *gorm.DB
}

func NewUserBusinessRepository(db *gorm.DB) UserBusinessRepository {
	return &userBusinessRepository{db: db}
}

func (r *userBusinessRepository) Create(business *model.UserBusiness) error {
	if err := r.db.Create(business).Error; err != nil {
		logger.Error("Failed to create user business", err, map[string]interface{}{
			"owner_id": business.OwnerID,
			"name":     business.Name,
		})
		return err
	}

	logger.Debug("User business created", map[string]interface{}{
		"business_id": business.ID,
		"owner_id":    business.OwnerID,
	})
	return nil
}

func (r *userBusinessRepository) FindByID(id uint) (*model.UserBusiness, error) {
	var business model.UserBusiness
	if err := r.db.First(&business, id).Error; err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *userBusinessRepository) FindAll() ([]model.UserBusiness, error) {
	var businesses []model.UserBusiness
	err := r.db.Order("created_at DESC").Find(&businesses).Error
	if err != nil {
		logger.Error("Failed to list user businesses", err, nil)
		return nil, err
	}
	return businesses, nil
}

func (r *userBusinessRepository) FindByCategory(category model.Category) ([]model.UserBusiness, error) {
	var businesses []model.UserBusiness
	err := r.db.Where("category = ?", category).Order("created_at DESC").Find(&businesses).Error
	if err != nil {
		logger.Error("Failed to list user businesses by category", err, map[string]interface{}{
			"category": string(category),
		})
		return nil, err
	}
	return businesses, nil
}

func (r *userBusinessRepository) FindByOwner(ownerID string) ([]model.UserBusiness, error) {
	var businesses []model.UserBusiness
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&businesses).Error
	if err != nil {
		logger.Error("Failed to list user businesses by owner", err, map[string]interface{}{
			"owner_id": ownerID,
		})
		return nil, err
	}
	return businesses, nil
}

func (r *userBusinessRepository) Update(business *model.UserBusiness) error {
	return r.db.Save(business).Error
}

func (r *userBusinessRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.UserBusiness{}, id).Error; err != nil {
		logger.Error("Failed to delete user business", err, map[string]interface{}{
			"business_id": id,
		})
		return err
	}

	logger.Debug("User business deleted", map[string]interface{}{
		"business_id": id,
	})
	return nil
}
