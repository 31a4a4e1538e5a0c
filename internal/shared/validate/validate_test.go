package validate

import (
	"errors"
	"strings"
	"testing"

	"resume-builder/internal/shared/apperr"
)

type signup struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
	Start    string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	err := Struct(signup{Email: "not-an-email", Start: "03/2020"})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	_, _, msg := apperr.Describe(err)
	for _, want := range []string{"email must be a valid email address", "password is required", "start_date must be a date"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message %q missing %q", msg, want)
		}
	}
}

func TestStructAcceptsValid(t *testing.T) {
	if err := Struct(signup{Email: "a@x.com", Password: "pw", Start: "2020-03-01"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
