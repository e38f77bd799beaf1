package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/models"
	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^\d{10,15}$`)

var enums = map[string][]string{
	"city":         models.Cities,
	"propertyType": models.PropertyTypes,
	"bhk":          models.BHKs,
	"purpose":      models.Purposes,
	"timeline":     models.Timelines,
	"source":       models.Sources,
	"status":       models.Statuses,
}

var labels = map[string]string{
	"fullName":     "Full name",
	"email":        "Email",
	"phone":        "Phone",
	"city":         "City",
	"propertyType": "Property type",
	"bhk":          "BHK",
	"purpose":      "Purpose",
	"budgetMin":    "Budget min",
	"budgetMax":    "Budget max",
	"timeline":     "Timeline",
	"source":       "Source",
	"status":       "Status",
	"notes":        "Notes",
	"tags":         "Tags",
}

// BuyerInput is a full buyer payload, as accepted by create and CSV import.
type BuyerInput struct {
	FullName     string   `json:"fullName" validate:"required,min=2"`
	Email        string   `json:"email" validate:"omitempty,email"`
	Phone        string   `json:"phone" validate:"required,phone"`
	City         string   `json:"city" validate:"required,enum=city"`
	PropertyType string   `json:"propertyType" validate:"required,enum=propertyType"`
	BHK          *string  `json:"bhk" validate:"omitempty,enum=bhk"`
	Purpose      string   `json:"purpose" validate:"required,enum=purpose"`
	BudgetMin    *int     `json:"budgetMin" validate:"omitempty,min=0"`
	BudgetMax    *int     `json:"budgetMax" validate:"omitempty,min=0"`
	Timeline     string   `json:"timeline" validate:"required,enum=timeline"`
	Source       string   `json:"source" validate:"required,enum=source"`
	Status       *string  `json:"status" validate:"omitempty,enum=status"`
	Notes        *string  `json:"notes"`
	Tags         []string `json:"tags"`
}

// BuyerUpdateInput is a partial buyer payload; nil means "not supplied".
type BuyerUpdateInput struct {
	FullName     *string   `json:"fullName" validate:"omitempty,min=2"`
	Email        *string   `json:"email" validate:"omitempty,emailorblank"`
	Phone        *string   `json:"phone" validate:"omitempty,phone"`
	City         *string   `json:"city" validate:"omitempty,enum=city"`
	PropertyType *string   `json:"propertyType" validate:"omitempty,enum=propertyType"`
	BHK          *string   `json:"bhk" validate:"omitempty,enum=bhk"`
	Purpose      *string   `json:"purpose" validate:"omitempty,enum=purpose"`
	BudgetMin    *int      `json:"budgetMin" validate:"omitempty,min=0"`
	BudgetMax    *int      `json:"budgetMax" validate:"omitempty,min=0"`
	Timeline     *string   `json:"timeline" validate:"omitempty,enum=timeline"`
	Source       *string   `json:"source" validate:"omitempty,enum=source"`
	Status       *string   `json:"status" validate:"omitempty,enum=status"`
	Notes        *string   `json:"notes"`
	Tags         *[]string `json:"tags"`
}

// Empty reports whether no field was supplied.
func (in BuyerUpdateInput) Empty() bool {
	return reflect.ValueOf(in).IsZero()
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "enum", func(fl validator.FieldLevel) bool {
		return contains(enums[fl.Param()], fl.Field().String())
	})
	mustRegister(v, "emailorblank", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || v.Var(s, "email") == nil
	})

	v.RegisterStructValidation(createRules, BuyerInput{})
	v.RegisterStructValidation(updateRules, BuyerUpdateInput{})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

func createRules(sl validator.StructLevel) {
	in := sl.Current().Interface().(BuyerInput)
	checkBudgetOrder(sl, in.BudgetMin, in.BudgetMax)
	if models.RequiresBHK(in.PropertyType) && in.BHK == nil {
		sl.ReportError(in.BHK, "bhk", "BHK", "bhkrequired", "")
	}
}

// updateRules only relates fields supplied in the same payload; the stored
// record is not consulted.
func updateRules(sl validator.StructLevel) {
	in := sl.Current().Interface().(BuyerUpdateInput)
	checkBudgetOrder(sl, in.BudgetMin, in.BudgetMax)
}

func checkBudgetOrder(sl validator.StructLevel, min, max *int) {
	if min != nil && max != nil && *max < *min {
		sl.ReportError(*max, "budgetMax", "BudgetMax", "budgetorder", "")
	}
}

// ValidateCreate checks a full payload and fills in defaults.
func ValidateCreate(in BuyerInput) (BuyerInput, error) {
	if err := check(in); err != nil {
		return BuyerInput{}, err
	}
	if in.Status == nil {
		status := models.StatusNew
		in.Status = &status
	}
	if in.Tags == nil {
		in.Tags = []string{}
	}
	return in, nil
}

// ValidateUpdate checks every supplied field of a partial payload.
func ValidateUpdate(in BuyerUpdateInput) error {
	return check(in)
}

func check(in interface{}) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		verr.Issues = append(verr.Issues, FieldIssue{Path: fe.Field(), Message: message(fe)})
	}
	return verr
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	label := labels[field]
	if label == "" {
		label = field
	}

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "min":
		if field == "fullName" {
			return "Full name must be at least 2 characters"
		}
		return label + " must be a non-negative integer"
	case "email", "emailorblank":
		return "Invalid email"
	case "phone":
		return "Phone must be 10-15 digits"
	case "enum":
		return label + " must be one of: " + strings.Join(enums[fe.Param()], ", ")
	case "budgetorder":
		return "Budget max must be greater than or equal to budget min"
	case "bhkrequired":
		return "BHK is required for Apartment or Villa"
	default:
		return "Invalid value"
	}
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
