package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/localconnect/localconnect-backend/internal/app/model"
	"github.com/localconnect/localconnect-backend/internal/app/repository"
	"github.com/localconnect/localconnect-backend/pkg/logger"
)

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrNotListingOwner = errors.New("only the listing owner may modify it")
	ErrMissingField    = errors.New("name, category, description, address and phone are required")
)

// CreateListingInput is a user-submitted listing.
type CreateListingInput struct {
	Name        string   `json:"name" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Address     string   `json:"address" binding:"required"`
	Phone       string   `json:"phone" binding:"required"`
	ImageURL    string   `json:"image_url"`
	Website     string   `json:"website"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Deal        string   `json:"deal"`
}

// ListingService manages user-submitted business listings. Unlike the
// session-scoped collections, listings persist in the database and are
// visible to every session.
type ListingService interface {
	Create(ctx context.Context, ownerID string, input CreateListingInput) (*model.UserBusiness, error)
	All(ctx context.Context) ([]model.UserBusiness, error)
	Mine(ctx context.Context, ownerID string) ([]model.UserBusiness, error)
	Delete(ctx context.Context, ownerID, businessID string) error
	ExportReviews(ctx context.Context, sessionID, ownerID string, reviews ReviewService) (*excelize.File, error)
}

type listingService struct {
	repo repository.UserBusinessRepository
}

func NewListingService(repo repository.UserBusinessRepository) ListingService {
	return &listingService{repo: repo}
}

func (s *listingService) Create(ctx context.Context, ownerID string, input CreateListingInput) (*model.UserBusiness, error) {
	for _, field := range []string{input.Name, input.Category, input.Description, input.Address, input.Phone} {
		if strings.TrimSpace(field) == "" {
			return nil, ErrMissingField
		}
	}

	category := model.Category(input.Category)
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}

	if input.Latitude != nil || input.Longitude != nil {
		if input.Latitude == nil || input.Longitude == nil ||
			!model.ValidCoordinate(*input.Latitude, *input.Longitude) {
			return nil, ErrMalformedCoordinate
		}
	}

	listing := &model.UserBusiness{
		OwnerID:     ownerID,
		Name:        input.Name,
		Category:    category,
		Description: input.Description,
		Address:     input.Address,
		Phone:       input.Phone,
		ImageURL:    input.ImageURL,
		Website:     input.Website,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Deal:        input.Deal,
	}
	if err := s.repo.Create(listing); err != nil {
		return nil, err
	}

	logger.Info("Listing created", map[string]interface{}{
		"business_id": listing.PublicID(),
		"owner_id":    ownerID,
	})
	return listing, nil
}

func (s *listingService) All(ctx context.Context) ([]model.UserBusiness, error) {
	return s.repo.FindAll()
}

func (s *listingService) Mine(ctx context.Context, ownerID string) ([]model.UserBusiness, error) {
	return s.repo.FindByOwner(ownerID)
}

// Delete removes a listing after an ownership check. Accepts either the
// public "user-<id>" form or the raw numeric ID.
func (s *listingService) Delete(ctx context.Context, ownerID, businessID string) error {
	id, ok := parseUserBusinessID(businessID)
	if !ok {
		if _, err := fmt.Sscanf(businessID, "%d", &id); err != nil {
			return ErrListingNotFound
		}
	}

	listing, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrListingNotFound
		}
		return err
	}
	if listing.OwnerID != ownerID {
		return ErrNotListingOwner
	}

	return s.repo.Delete(id)
}

// ExportReviews builds an xlsx workbook of the reviews left on the
// owner's listings in this session, one row per review.
func (s *listingService) ExportReviews(ctx context.Context, sessionID, ownerID string, reviews ReviewService) (*excelize.File, error) {
	listings, err := s.repo.FindByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Reviews"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Business", "Reviewer", "Rating", "Comment", "Date", "Verified"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for i := range listings {
		for _, r := range reviews.BusinessReviews(ctx, sessionID, listings[i].PublicID()) {
			values := []interface{}{
				listings[i].Name, r.UserName, r.Rating, r.Comment, r.Date, r.Verified,
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row)
				f.SetCellValue(sheet, cell, v)
			}
			row++
		}
	}

	return f, nil
}
