package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/config"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/dto"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/models"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/ownership"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/validation"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrBuyerNotFound = errors.New("buyer not found")

type BuyerService struct {
	db          *gorm.DB
	pageSize    int
	maxPageSize int
}

func NewBuyerService(db *gorm.DB, cfg *config.Config) *BuyerService {
	return &BuyerService{
		db:          db,
		pageSize:    cfg.PageSize,
		maxPageSize: cfg.MaxPageSize,
	}
}

// List returns one page of the owner's buyers, newest change first.
func (s *BuyerService) List(ownerID string, filter dto.BuyerFilter) (*dto.BuyerListResponse, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = s.pageSize
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}

	var total int64
	if err := s.filtered(ownerID, filter).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count buyers: %w", err)
	}

	buyers := []models.Buyer{}
	err := s.filtered(ownerID, filter).
		Order("updated_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&buyers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch buyers: %w", err)
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		pages = 1
	}

	return &dto.BuyerListResponse{
		Buyers: buyers,
		Pagination: dto.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	}, nil
}

// filtered builds the owner-scoped query shared by list and export.
func (s *BuyerService) filtered(ownerID string, filter dto.BuyerFilter) *gorm.DB {
	q := s.db.Model(&models.Buyer{}).Scopes(ownership.ForOwner(ownerID))

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where("(LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?)", pattern, pattern, pattern)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.City != "" {
		q = q.Where("city = ?", filter.City)
	}
	if filter.PropertyType != "" {
		q = q.Where("property_type = ?", filter.PropertyType)
	}
	return q
}

func (s *BuyerService) Get(ownerID string, buyerID uuid.UUID) (*models.Buyer, error) {
	return findOwned(s.db, ownerID, buyerID)
}

func (s *BuyerService) Create(ownerID string, in validation.BuyerInput) (*models.Buyer, error) {
	var buyer *models.Buyer
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		buyer, err = createBuyer(tx, ownerID, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return buyer, nil
}

// Update applies a validated partial payload to a buyer the caller owns.
func (s *BuyerService) Update(ownerID string, buyerID uuid.UUID, in validation.BuyerUpdateInput) (*models.Buyer, error) {
	var after models.Buyer
	err := s.db.Transaction(func(tx *gorm.DB) error {
		before, err := findOwned(tx, ownerID, buyerID)
		if err != nil {
			return err
		}

		result := tx.Model(&models.Buyer{}).
			Scopes(ownership.ForOwnedRecord(buyerID, ownerID)).
			Updates(updateColumns(in))
		if result.Error != nil {
			return fmt.Errorf("failed to update buyer: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrBuyerNotFound
		}

		if err := tx.Scopes(ownership.ForOwnedRecord(buyerID, ownerID)).First(&after).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBuyerNotFound
			}
			return err
		}

		return recordHistory(tx, buyerID, ownerID, before.Snapshot(), after.Snapshot())
	})
	if err != nil {
		return nil, err
	}
	return &after, nil
}

func (s *BuyerService) Delete(ownerID string, buyerID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		before, err := findOwned(tx, ownerID, buyerID)
		if err != nil {
			return err
		}

		result := tx.Scopes(ownership.ForOwnedRecord(buyerID, ownerID)).Delete(&models.Buyer{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete buyer: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrBuyerNotFound
		}

		return recordHistory(tx, buyerID, ownerID, before.Snapshot(), nil)
	})
}

// History lists the audit rows of a buyer the caller owns, newest first.
func (s *BuyerService) History(ownerID string, buyerID uuid.UUID) ([]models.BuyerHistory, error) {
	if _, err := findOwned(s.db, ownerID, buyerID); err != nil {
		return nil, err
	}

	entries := []models.BuyerHistory{}
	err := s.db.Where("buyer_id = ?", buyerID).
		Order("changed_at DESC").
		Find(&entries).Error
	return entries, err
}

func findOwned(db *gorm.DB, ownerID string, buyerID uuid.UUID) (*models.Buyer, error) {
	var buyer models.Buyer
	if err := db.Scopes(ownership.ForOwnedRecord(buyerID, ownerID)).First(&buyer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBuyerNotFound
		}
		return nil, err
	}
	return &buyer, nil
}

func createBuyer(tx *gorm.DB, ownerID string, in validation.BuyerInput) (*models.Buyer, error) {
	buyer := models.Buyer{
		FullName:     in.FullName,
		Phone:        in.Phone,
		City:         in.City,
		PropertyType: in.PropertyType,
		BHK:          in.BHK,
		Purpose:      in.Purpose,
		BudgetMin:    in.BudgetMin,
		BudgetMax:    in.BudgetMax,
		Timeline:     in.Timeline,
		Source:       in.Source,
		Status:       models.StatusNew,
		Notes:        in.Notes,
		Tags:         models.Tags(in.Tags).Normalize(),
		OwnerID:      ownerID,
	}
	if in.Email != "" {
		email := in.Email
		buyer.Email = &email
	}
	if in.Status != nil {
		buyer.Status = *in.Status
	}

	if err := tx.Create(&buyer).Error; err != nil {
		return nil, fmt.Errorf("failed to create buyer: %w", err)
	}
	if err := recordHistory(tx, buyer.ID, ownerID, nil, buyer.Snapshot()); err != nil {
		return nil, err
	}
	return &buyer, nil
}

// updateColumns maps the supplied fields of a partial payload to columns.
func updateColumns(in validation.BuyerUpdateInput) map[string]interface{} {
	cols := map[string]interface{}{"updated_at": time.Now()}

	setString := func(col string, v *string) {
		if v != nil {
			cols[col] = *v
		}
	}
	setInt := func(col string, v *int) {
		if v != nil {
			cols[col] = *v
		}
	}

	setString("full_name", in.FullName)
	setString("email", in.Email)
	setString("phone", in.Phone)
	setString("city", in.City)
	setString("property_type", in.PropertyType)
	setString("bhk", in.BHK)
	setString("purpose", in.Purpose)
	setInt("budget_min", in.BudgetMin)
	setInt("budget_max", in.BudgetMax)
	setString("timeline", in.Timeline)
	setString("source", in.Source)
	setString("status", in.Status)
	setString("notes", in.Notes)
	if in.Tags != nil {
		cols["tags"] = models.Tags(*in.Tags).String()
	}
	return cols
}

func recordHistory(tx *gorm.DB, buyerID uuid.UUID, actorID string, before, after map[string]interface{}) error {
	diff, err := json.Marshal(diffSnapshots(before, after))
	if err != nil {
		return fmt.Errorf("failed to encode history diff: %w", err)
	}

	entry := models.BuyerHistory{
		BuyerID:   buyerID,
		ChangedBy: actorID,
		ChangedAt: time.Now().UTC(),
		Diff:      datatypes.JSON(diff),
	}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to record buyer history: %w", err)
	}
	return nil
}

// diffSnapshots returns the fields whose value differs; a nil snapshot stands
// for a record that does not exist.
func diffSnapshots(before, after map[string]interface{}) map[string]models.FieldChange {
	diff := make(map[string]models.FieldChange)
	keys := make(map[string]struct{}, len(before)+len(after))
	for k := range before {
		keys[k] = struct{}{}
	}
	for k := range after {
		keys[k] = struct{}{}
	}

	for k := range keys {
		oldVal, newVal := before[k], after[k]
		if reflect.DeepEqual(oldVal, newVal) {
			continue
		}
		diff[k] = models.FieldChange{Old: oldVal, New: newVal}
	}
	return diff
}
