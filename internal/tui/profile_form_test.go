package tui

import (
	"reflect"
	"testing"

	"github.com/jbonatakis/attest/internal/profile"
)

func TestProfileFormRequiresFields(t *testing.T) {
	f := NewProfileForm(profile.Profile{})
	f, _ = f.Update(keySave)

	if f.Submitted() {
		t.Fatalf("empty form submitted")
	}
	errs := f.Errors()
	for _, field := range []string{"companyName", "industry", "companySize", "location", "contactEmail", "complianceOfficer", "cloudStatus"} {
		if errs[field] == "" {
			t.Errorf("missing error for %s", field)
		}
	}
	if f.focus != fieldCompanyName {
		t.Fatalf("focus = %v, want first invalid field", f.focus)
	}
}

func TestProfileFormKeyboardEntry(t *testing.T) {
	f := NewProfileForm(profile.Profile{})
	f, _ = f.Update(runes("Acme"))
	f, _ = f.Update(keyTab)
	f, _ = f.Update(keyRight) // industry
	f, _ = f.Update(keyTab)
	f, _ = f.Update(keyLeft) // size wraps to the last option
	f, _ = f.Update(keyTab)
	f, _ = f.Update(runes("Lagos"))
	f, _ = f.Update(keyTab)
	f, _ = f.Update(runes("bad"))
	f, _ = f.Update(keyTab)
	f, _ = f.Update(runes("Ada"))
	f, _ = f.Update(keyTab)
	f, _ = f.Update(keySpace) // dpo
	f, _ = f.Update(keyTab)
	f, _ = f.Update(keyRight)
	f, _ = f.Update(keySpace) // toggles DataTypes[1]
	f, _ = f.Update(keyTab)
	f, _ = f.Update(keyRight) // pre-cloud

	f, _ = f.Update(keySave)
	if f.Submitted() {
		t.Fatalf("invalid email accepted")
	}
	if got := f.Errors()["contactEmail"]; got != "Valid email address is required" {
		t.Fatalf("email error = %q", got)
	}
	if f.focus != fieldContactEmail {
		t.Fatalf("focus = %v, want contact email", f.focus)
	}

	f, _ = f.Update(runes("@acme.ng"))
	f, _ = f.Update(keySave)
	if !f.Submitted() {
		t.Fatalf("valid form not submitted: %v", f.Errors())
	}

	p := f.Profile()
	want := profile.Profile{
		CompanyName:              "Acme",
		Industry:                 profile.Industries[0],
		CompanySize:              profile.CompanySizes[len(profile.CompanySizes)-1],
		Location:                 "Lagos",
		ContactEmail:             "bad@acme.ng",
		ComplianceOfficer:        "Ada",
		HasDataProtectionOfficer: true,
		CloudStatus:              "pre-cloud",
	}
	if len(p.PrimaryDataTypes) != 1 || p.PrimaryDataTypes[0] != profile.DataTypes[1] {
		t.Fatalf("data types = %v", p.PrimaryDataTypes)
	}
	p.PrimaryDataTypes = nil
	if !reflect.DeepEqual(p, want) {
		t.Fatalf("profile = %+v\nwant %+v", p, want)
	}
}

func TestProfileFormEnterAdvancesThenSubmits(t *testing.T) {
	f := NewProfileForm(validProfile("post-cloud"))
	for i := fieldCompanyName; i < fieldSubmit; i++ {
		f, _ = f.Update(keyEnter)
	}
	if f.focus != fieldSubmit || f.Submitted() {
		t.Fatalf("focus = %v submitted = %v", f.focus, f.Submitted())
	}
	f, _ = f.Update(keyEnter)
	if !f.Submitted() {
		t.Fatalf("enter on submit did not submit: %v", f.Errors())
	}
}

func TestProfileFormTypingLettersInTextFields(t *testing.T) {
	f := NewProfileForm(profile.Profile{})
	f, _ = f.Update(runes("hl"))
	if got := f.Profile().CompanyName; got != "hl" {
		t.Fatalf("company = %q; navigation keys leaked into text entry", got)
	}
}
