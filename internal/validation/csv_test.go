package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRow() map[string]string {
	return map[string]string{
		"fullName":     "Ravi Kumar",
		"email":        "",
		"phone":        "9876501234",
		"city":         "Chandigarh",
		"propertyType": "Villa",
		"bhk":          "Three",
		"purpose":      "Rent",
		"budgetMin":    "10000",
		"budgetMax":    "25000",
		"timeline":     "ThreeToSixMonths",
		"source":       "Referral",
		"notes":        "prefers corner plot",
		"tags":         "vip,follow-up",
	}
}

func TestValidateCSVRow(t *testing.T) {
	in, err := ValidateCSVRow(validRow())
	require.NoError(t, err)

	assert.Equal(t, "Ravi Kumar", in.FullName)
	assert.Equal(t, 10000, *in.BudgetMin)
	assert.Equal(t, 25000, *in.BudgetMax)
	assert.Equal(t, "Three", *in.BHK)
	assert.Equal(t, "New", *in.Status)
	assert.Equal(t, []string{"vip", "follow-up"}, in.Tags)
}

func TestValidateCSVRow_Errors(t *testing.T) {
	row := validRow()
	row["budgetMin"] = "ten"
	_, err := ValidateCSVRow(row)
	requireIssue(t, err, "budgetMin")

	row = validRow()
	row["bhk"] = ""
	_, err = ValidateCSVRow(row)
	requireIssue(t, err, "bhk")

	row = validRow()
	row["budgetMin"], row["budgetMax"] = "500", "100"
	_, err = ValidateCSVRow(row)
	requireIssue(t, err, "budgetMax")
}

func TestValidateCSVHeader(t *testing.T) {
	assert.NoError(t, ValidateCSVHeader(CSVColumns))
	assert.NoError(t, ValidateCSVHeader(CSVColumns[:len(CSVColumns)-1]), "status column is optional")

	err := ValidateCSVHeader([]string{"fullName", "phone", "phone", "colour"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.HasPath("colour"))
	assert.True(t, verr.HasPath("city"))
	assert.Contains(t, verr.Error(), "Duplicate column")
}
