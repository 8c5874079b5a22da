// Package profile holds the company details collected before an
// assessment. Only CloudStatus drives the assessment; every other field is
// carried through to report headers unchanged.
package profile

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jbonatakis/attest/internal/catalog"
)

type Profile struct {
	CompanyName              string   `yaml:"companyName" json:"companyName"`
	Industry                 string   `yaml:"industry" json:"industry"`
	CompanySize              string   `yaml:"companySize" json:"companySize"`
	Location                 string   `yaml:"location" json:"location"`
	ContactEmail             string   `yaml:"contactEmail" json:"contactEmail"`
	ComplianceOfficer        string   `yaml:"complianceOfficer" json:"complianceOfficer"`
	HasDataProtectionOfficer bool     `yaml:"hasDataProtectionOfficer" json:"hasDataProtectionOfficer"`
	PrimaryDataTypes         []string `yaml:"primaryDataTypes" json:"primaryDataTypes"`
	CloudStatus              string   `yaml:"cloudStatus" json:"cloudStatus"`
}

// Variant resolves the catalog variant from the cloud status.
func (p Profile) Variant() (catalog.Variant, bool) {
	return catalog.ParseVariant(p.CloudStatus)
}

var Industries = []string{
	"Banking & Financial Services",
	"Fintech",
	"Insurance",
	"Healthcare",
	"E-commerce",
	"Telecommunications",
	"Education",
	"Government",
	"Technology",
	"Manufacturing",
	"Oil & Gas",
	"Other",
}

var CompanySizes = []string{
	"1-10 employees",
	"11-50 employees",
	"51-200 employees",
	"201-500 employees",
	"501-1000 employees",
	"1000+ employees",
}

var DataTypes = []string{
	"Personal Customer Data",
	"Financial Transaction Data",
	"Health Records",
	"Educational Records",
	"Employee Data",
	"Marketing Data",
	"Biometric Data",
	"Location Data",
}

type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// Validate applies the company-info form rules. Errors are returned in
// form order.
func Validate(p Profile) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(p.CompanyName) == "" {
		errs = append(errs, FieldError{Field: "companyName", Message: "Company name is required"})
	}
	if p.Industry == "" {
		errs = append(errs, FieldError{Field: "industry", Message: "Industry selection is required"})
	}
	if p.CompanySize == "" {
		errs = append(errs, FieldError{Field: "companySize", Message: "Company size is required"})
	}
	if strings.TrimSpace(p.Location) == "" {
		errs = append(errs, FieldError{Field: "location", Message: "Location is required"})
	}
	if strings.TrimSpace(p.ContactEmail) == "" {
		errs = append(errs, FieldError{Field: "contactEmail", Message: "Contact email is required"})
	} else if !emailPattern.MatchString(p.ContactEmail) {
		errs = append(errs, FieldError{Field: "contactEmail", Message: "Valid email address is required"})
	}
	if strings.TrimSpace(p.ComplianceOfficer) == "" {
		errs = append(errs, FieldError{Field: "complianceOfficer", Message: "Compliance officer name is required"})
	}
	if _, ok := p.Variant(); !ok {
		errs = append(errs, FieldError{Field: "cloudStatus", Message: "Cloud status must be pre-cloud or post-cloud"})
	}
	return errs
}

// ToggleDataType adds or removes a data type, keeping DataTypes order.
func (p Profile) ToggleDataType(dataType string) Profile {
	selected := map[string]bool{}
	for _, d := range p.PrimaryDataTypes {
		selected[d] = true
	}
	selected[dataType] = !selected[dataType]

	out := make([]string, 0, len(selected))
	for _, d := range DataTypes {
		if selected[d] {
			out = append(out, d)
			delete(selected, d)
		}
	}
	// Types outside the known list keep their original order.
	for _, d := range p.PrimaryDataTypes {
		if selected[d] {
			out = append(out, d)
			delete(selected, d)
		}
	}
	if selected[dataType] {
		out = append(out, dataType)
	}
	p.PrimaryDataTypes = out
	return p
}
