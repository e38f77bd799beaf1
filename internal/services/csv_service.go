package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/config"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/dto"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/models"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/validation"
	"gorm.io/gorm"
)

var (
	ErrEmptyCSV     = errors.New("CSV file is empty")
	ErrTooManyRows  = errors.New("CSV file has too many rows")
	ErrMalformedCSV = errors.New("CSV file could not be parsed")
)

type CSVService struct {
	db      *gorm.DB
	buyers  *BuyerService
	maxRows int
}

func NewCSVService(db *gorm.DB, buyers *BuyerService, cfg *config.Config) *CSVService {
	return &CSVService{db: db, buyers: buyers, maxRows: cfg.ImportMaxRows}
}

// MaxRows is the largest number of data rows a single import accepts.
func (s *CSVService) MaxRows() int {
	return s.maxRows
}

// Import validates every data row and inserts the valid ones in a single
// transaction. Row numbers in the result count the header as row 1.
func (s *CSVService) Import(ownerID string, r io.Reader) (*dto.ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyCSV
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	if err := validation.ValidateCSVHeader(header); err != nil {
		return nil, err
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
	}
	if len(records) > s.maxRows {
		return nil, fmt.Errorf("%w: %d rows, limit is %d", ErrTooManyRows, len(records), s.maxRows)
	}

	result := &dto.ImportResult{Errors: []dto.ImportRowError{}}
	valid := make([]validation.BuyerInput, 0, len(records))
	for i, record := range records {
		rowNum := i + 2
		if len(record) != len(header) {
			result.Errors = append(result.Errors, dto.ImportRowError{
				Row: rowNum,
				Details: []validation.FieldIssue{{
					Path:    "row",
					Message: "Expected " + strconv.Itoa(len(header)) + " columns, got " + strconv.Itoa(len(record)),
				}},
			})
			continue
		}

		row := make(map[string]string, len(header))
		for j, col := range header {
			row[col] = record[j]
		}

		in, err := validation.ValidateCSVRow(row)
		if err != nil {
			var verr *validation.ValidationError
			if !errors.As(err, &verr) {
				return nil, err
			}
			result.Errors = append(result.Errors, dto.ImportRowError{Row: rowNum, Details: verr.Issues})
			continue
		}
		valid = append(valid, in)
	}

	if len(valid) == 0 {
		return result, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, in := range valid {
			if _, err := createBuyer(tx, ownerID, in); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Imported = len(valid)
	return result, nil
}

// Export writes every owned buyer matching the filter as CSV.
func (s *CSVService) Export(ownerID string, filter dto.BuyerFilter, w io.Writer) error {
	var buyers []models.Buyer
	if err := s.buyers.filtered(ownerID, filter).Order("updated_at DESC").Find(&buyers).Error; err != nil {
		return fmt.Errorf("failed to fetch buyers: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(validation.CSVColumns); err != nil {
		return err
	}
	for i := range buyers {
		if err := writer.Write(csvRecord(&buyers[i])); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func csvRecord(b *models.Buyer) []string {
	str := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	num := func(n *int) string {
		if n == nil {
			return ""
		}
		return strconv.Itoa(*n)
	}

	return []string{
		b.FullName,
		str(b.Email),
		b.Phone,
		b.City,
		b.PropertyType,
		str(b.BHK),
		b.Purpose,
		num(b.BudgetMin),
		num(b.BudgetMax),
		b.Timeline,
		b.Source,
		str(b.Notes),
		b.Tags.String(),
		b.Status,
	}
}
