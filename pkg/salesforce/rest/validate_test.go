package sfrest

import (
	"errors"
	"testing"
)

func TestValidatePayload(t *testing.T) {
	allowed := []string{"Name", "Email"}

	tt := []struct {
		name      string
		payload   map[string]string
		wantField string
	}{
		{name: "nil payload is valid"},
		{name: "empty payload is valid", payload: map[string]string{}},
		{name: "known fields are valid", payload: map[string]string{"Name": "Acme", "Email": "a@example.com"}},
		{name: "unknown field is rejected", payload: map[string]string{"Name": "Acme", "Bogus": "x"}, wantField: "Bogus"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			err := validatePayload(tc.payload, allowed)

			if tc.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var fieldErr *InvalidFieldError
			if !errors.As(err, &fieldErr) {
				t.Fatalf("expected InvalidFieldError, got %v", err)
			}
			if fieldErr.Field != tc.wantField {
				t.Errorf("expected field %s, got %q", tc.wantField, fieldErr.Field)
			}
		})
	}
}
