package validation

import (
	"strconv"
	"strings"

	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/models"
)

// CSVColumns is the column order used by export and accepted by import.
var CSVColumns = []string{
	"fullName", "email", "phone", "city", "propertyType", "bhk", "purpose",
	"budgetMin", "budgetMax", "timeline", "source", "notes", "tags", "status",
}

// ValidateCSVHeader checks that a header row names only known columns,
// each at most once, and every required one.
func ValidateCSVHeader(header []string) error {
	seen := make(map[string]bool, len(header))
	verr := &ValidationError{}
	for _, col := range header {
		col = strings.TrimSpace(col)
		switch {
		case !contains(CSVColumns, col):
			verr.Issues = append(verr.Issues, FieldIssue{Path: col, Message: "Unknown column"})
		case seen[col]:
			verr.Issues = append(verr.Issues, FieldIssue{Path: col, Message: "Duplicate column"})
		}
		seen[col] = true
	}
	for _, col := range CSVColumns {
		if col != "status" && !seen[col] {
			verr.Issues = append(verr.Issues, FieldIssue{Path: col, Message: "Missing column"})
		}
	}
	if len(verr.Issues) > 0 {
		return verr
	}
	return nil
}

// ValidateCSVRow converts one CSV record keyed by column name and applies the
// create rules. Tags are a comma-separated cell.
func ValidateCSVRow(row map[string]string) (BuyerInput, error) {
	cell := func(col string) string { return strings.TrimSpace(row[col]) }
	optional := func(col string) *string {
		if v := cell(col); v != "" {
			return &v
		}
		return nil
	}

	in := BuyerInput{
		FullName:     cell("fullName"),
		Email:        cell("email"),
		Phone:        cell("phone"),
		City:         cell("city"),
		PropertyType: cell("propertyType"),
		BHK:          optional("bhk"),
		Purpose:      cell("purpose"),
		Timeline:     cell("timeline"),
		Source:       cell("source"),
		Status:       optional("status"),
		Notes:        optional("notes"),
		Tags:         []string(models.ParseTags(row["tags"])),
	}

	verr := &ValidationError{}
	in.BudgetMin = parseBudget(cell("budgetMin"), "budgetMin", verr)
	in.BudgetMax = parseBudget(cell("budgetMax"), "budgetMax", verr)
	if len(verr.Issues) > 0 {
		return BuyerInput{}, verr
	}

	return ValidateCreate(in)
}

func parseBudget(s, path string, verr *ValidationError) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		verr.Issues = append(verr.Issues, FieldIssue{Path: path, Message: labels[path] + " must be an integer"})
		return nil
	}
	return &n
}
