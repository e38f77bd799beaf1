package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BuyerHistory is an append-only audit row describing one change to a buyer.
type BuyerHistory struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	BuyerID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"buyerId"`
	ChangedBy string         `gorm:"size:64;not null" json:"changedBy"`
	ChangedAt time.Time      `gorm:"not null;index" json:"changedAt"`
	Diff      datatypes.JSON `json:"diff"`
}

func (BuyerHistory) TableName() string { return "buyer_history" }

func (h *BuyerHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// FieldChange is one entry of a history diff.
type FieldChange struct {
	Old interface{} `json:"old"`
	New interface{} `json:"new"`
}
