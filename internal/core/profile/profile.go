package profile

import (
	"errors"
	"fmt"
)

// ErrUnknownField is returned when a field name does not match any profile field.
var ErrUnknownField = errors.New("unknown profile field")

// Field identifies one input of the business profile form.
type Field int

const (
	BusinessType Field = iota
	EmployeeCount
	AnnualRevenue
	BudgetForAI
	TimeConsumingTasks
	CurrentSoftware
)

// Fields lists every field in form order.
var Fields = []Field{
	BusinessType,
	EmployeeCount,
	AnnualRevenue,
	BudgetForAI,
	TimeConsumingTasks,
	CurrentSoftware,
}

var fieldKeys = []string{
	"businessType",
	"employeeCount",
	"annualRevenue",
	"budgetForAI",
	"timeConsumingTasks",
	"currentSoftware",
}

var fieldLabels = []string{
	"Business Type",
	"Number of Employees",
	"Annual Revenue",
	"Budget for AI Solutions",
	"Most Time-Consuming Tasks",
	"Current Software/Tools",
}

// Key returns the record key of the field (e.g. "businessType").
func (f Field) Key() string {
	if f < 0 || int(f) >= len(fieldKeys) {
		return ""
	}
	return fieldKeys[f]
}

// Label returns the human-readable label shown next to the input.
func (f Field) Label() string {
	if f < 0 || int(f) >= len(fieldLabels) {
		return ""
	}
	return fieldLabels[f]
}

func (f Field) String() string {
	return f.Key()
}

// Required reports whether an empty value blocks submission.
func (f Field) Required() bool {
	return f != CurrentSoftware
}

// FreeText reports whether the field is a text area rather than a dropdown.
func (f Field) FreeText() bool {
	return f == TimeConsumingTasks || f == CurrentSoftware
}

// Options returns the fixed bands for a dropdown field, nil for free-text fields.
func (f Field) Options() []string {
	switch f {
	case BusinessType:
		return BusinessTypes
	case EmployeeCount:
		return EmployeeRanges
	case AnnualRevenue:
		return RevenueRanges
	case BudgetForAI:
		return BudgetRanges
	}
	return nil
}

// Placeholder returns the text shown while the field is empty.
func (f Field) Placeholder() string {
	switch f {
	case BusinessType:
		return "Select business type"
	case BudgetForAI:
		return "Select budget range"
	case TimeConsumingTasks:
		return "Describe your 3 most time-consuming business tasks"
	case CurrentSoftware:
		return "List software you currently use"
	}
	return "Select range"
}

// ParseField resolves a record key such as "annualRevenue" to its Field.
func ParseField(name string) (Field, error) {
	for i, k := range fieldKeys {
		if k == name {
			return Field(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// BusinessTypes are the businessType options, in display order.
var BusinessTypes = []string{
	"Retail",
	"Restaurant",
	"Professional Services",
	"Healthcare",
	"Construction",
	"Manufacturing",
	"E-commerce",
	"Salon/Spa",
	"Other",
}

// EmployeeRanges are the employeeCount bands.
var EmployeeRanges = []string{"1-5", "6-10", "11-25", "26-50", "51-100", "100+"}

// RevenueRanges are the annualRevenue bands.
var RevenueRanges = []string{
	"Under $100k",
	"$100k-$500k",
	"$500k-$1M",
	"$1M-$5M",
	"$5M+",
}

// BudgetRanges are the budgetForAI bands.
var BudgetRanges = []string{
	"Under $1k",
	"$1k-$5k",
	"$5k-$10k",
	"$10k-$25k",
	"$25k+",
}

// FormState holds the values currently entered in the form.
// The zero value is an empty form.
type FormState struct {
	values [6]string
}

// Get returns the current value of a field.
func (s FormState) Get(f Field) string {
	if f < 0 || int(f) >= len(s.values) {
		return ""
	}
	return s.values[f]
}

// Set stores a value without validating it.
func (s *FormState) Set(f Field, value string) {
	if f < 0 || int(f) >= len(s.values) {
		return
	}
	s.values[f] = value
}

// SetByName sets the field identified by its record key.
func (s *FormState) SetByName(name, value string) error {
	f, err := ParseField(name)
	if err != nil {
		return err
	}
	s.Set(f, value)
	return nil
}

// IsSubmittable reports whether every required field is non-empty.
func (s FormState) IsSubmittable() bool {
	for _, f := range Fields {
		if f.Required() && s.values[f] == "" {
			return false
		}
	}
	return true
}

// Missing returns the required fields that are still empty.
func (s FormState) Missing() []Field {
	var out []Field
	for _, f := range Fields {
		if f.Required() && s.values[f] == "" {
			out = append(out, f)
		}
	}
	return out
}

// Heading is the page title, specialised once a business type is chosen.
func (s FormState) Heading() string {
	if bt := s.values[BusinessType]; bt != "" {
		return "AI Advisor for " + bt
	}
	return "Small Business AI Advisor"
}

// Subheading is the line under the title.
func (s FormState) Subheading() string {
	if bt := s.values[BusinessType]; bt != "" {
		return "Get tailored AI recommendations for your " + bt + " business"
	}
	return "Get tailored AI recommendations for your small business"
}

// Record packages all six values for the submission handler.
func (s FormState) Record() Record {
	return Record{
		BusinessType:       s.values[BusinessType],
		EmployeeCount:      s.values[EmployeeCount],
		AnnualRevenue:      s.values[AnnualRevenue],
		BudgetForAI:        s.values[BudgetForAI],
		TimeConsumingTasks: s.values[TimeConsumingTasks],
		CurrentSoftware:    s.values[CurrentSoftware],
	}
}

// FromRecord builds a FormState holding the record's values.
func FromRecord(r Record) FormState {
	var s FormState
	s.Set(BusinessType, r.BusinessType)
	s.Set(EmployeeCount, r.EmployeeCount)
	s.Set(AnnualRevenue, r.AnnualRevenue)
	s.Set(BudgetForAI, r.BudgetForAI)
	s.Set(TimeConsumingTasks, r.TimeConsumingTasks)
	s.Set(CurrentSoftware, r.CurrentSoftware)
	return s
}

// Record is the payload handed to the submission handler. Every key is always
// present; currentSoftware is an empty string when left blank.
type Record struct {
	BusinessType       string `json:"businessType" yaml:"businessType"`
	EmployeeCount      string `json:"employeeCount" yaml:"employeeCount"`
	AnnualRevenue      string `json:"annualRevenue" yaml:"annualRevenue"`
	BudgetForAI        string `json:"budgetForAI" yaml:"budgetForAI"`
	TimeConsumingTasks string `json:"timeConsumingTasks" yaml:"timeConsumingTasks"`
	CurrentSoftware    string `json:"currentSoftware" yaml:"currentSoftware"`
}
