package dto

import (
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/models"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/validation"
)

// BuyerFilter holds the list and export query parameters.
type BuyerFilter struct {
	Page         int
	Limit        int
	Search       string
	Status       string
	City         string
	PropertyType string
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type BuyerListResponse struct {
	Buyers     []models.Buyer `json:"buyers"`
	Pagination Pagination     `json:"pagination"`
}

type BuyerHistoryResponse struct {
	History []models.BuyerHistory `json:"history"`
}

type ImportRowError struct {
	Row     int                     `json:"row"`
	Details []validation.FieldIssue `json:"details"`
}

type ImportResult struct {
	Imported int              `json:"imported"`
	Errors   []ImportRowError `json:"errors"`
}
