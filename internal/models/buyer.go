package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Buyer is a lead record owned by a single user.
type Buyer struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName     string    `gorm:"size:255;not null" json:"fullName"`
	Email        *string   `gorm:"size:255;index" json:"email,omitempty"`
	Phone        string    `gorm:"size:15;not null;index" json:"phone"`
	City         string    `gorm:"size:20;not null;index" json:"city"`
	PropertyType string    `gorm:"size:20;not null;index" json:"propertyType"`
	BHK          *string   `gorm:"column:bhk;size:10" json:"bhk,omitempty"`
	Purpose      string    `gorm:"size:10;not null" json:"purpose"`
	BudgetMin    *int      `json:"budgetMin,omitempty"`
	BudgetMax    *int      `json:"budgetMax,omitempty"`
	Timeline     string    `gorm:"size:20;not null" json:"timeline"`
	Source       string    `gorm:"size:20;not null" json:"source"`
	Status       string    `gorm:"size:20;not null;default:'New';index" json:"status"`
	Notes        *string   `gorm:"type:text" json:"notes,omitempty"`
	Tags         Tags      `gorm:"type:text" json:"tags"`
	OwnerID      string    `gorm:"size:64;not null;index" json:"ownerId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `gorm:"index" json:"updatedAt"`
}

func (b *Buyer) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Tags == nil {
		b.Tags = Tags{}
	}
	return nil
}

// Snapshot returns the user-visible fields of the buyer keyed by their JSON name.
func (b *Buyer) Snapshot() map[string]interface{} {
	return map[string]interface{}{
		"fullName":     b.FullName,
		"email":        derefString(b.Email),
		"phone":        b.Phone,
		"city":         b.City,
		"propertyType": b.PropertyType,
		"bhk":          derefString(b.BHK),
		"purpose":      b.Purpose,
		"budgetMin":    derefInt(b.BudgetMin),
		"budgetMax":    derefInt(b.BudgetMax),
		"timeline":     b.Timeline,
		"source":       b.Source,
		"status":       b.Status,
		"notes":        derefString(b.Notes),
		"tags":         []string(b.Tags.Normalize()),
	}
}

func derefString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func derefInt(n *int) interface{} {
	if n == nil {
		return nil
	}
	return *n
}

// Enumerations. Values are matched case-sensitively.
const (
	PropertyTypeApartment = "Apartment"
	PropertyTypeVilla     = "Villa"

	StatusNew = "New"
)

var (
	Cities        = []string{"Chandigarh", "Mohali", "Zirakpur", "Panchkula", "Other"}
	PropertyTypes = []string{PropertyTypeApartment, PropertyTypeVilla, "Plot", "Office", "Retail"}
	BHKs          = []string{"One", "Two", "Three", "Four", "Studio"}
	Purposes      = []string{"Buy", "Rent"}
	Timelines     = []string{"ZeroToThreeMonths", "ThreeToSixMonths", "MoreThanSixMonths", "Exploring"}
	Sources       = []string{"Website", "Referral", "WalkIn", "Call", "Other"}
	Statuses      = []string{StatusNew, "Qualified", "Contacted", "Visited", "Negotiation", "Converted", "Dropped"}
)

// RequiresBHK reports whether a property type needs a BHK value.
func RequiresBHK(propertyType string) bool {
	return propertyType == PropertyTypeApartment || propertyType == PropertyTypeVilla
}
