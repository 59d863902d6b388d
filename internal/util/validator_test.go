package util

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"jane@acme.com", true},
		{"jane.doe+rfp@sub.acme.io", true},
		{"jane@acme", false},
		{"jane acme.com", false},
		{"@acme.com", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidEmail(tt.email); got != tt.want {
			t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestCustomValidators(t *testing.T) {
	v := validator.New()
	if err := RegisterCustomValidations(v); err != nil {
		t.Fatal(err)
	}

	type input struct {
		Name string `validate:"strNotEmpty,cmin=2,cmax=5"`
	}

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid", "abc", false},
		{"whitespace only", "   ", true},
		{"too short after trim", " a ", true},
		{"too long after trim", "abcdef", true},
		{"padded but ok", "  abcde  ", false},
		{"counts characters not bytes", "Zürch", false},
		{"multibyte too long", "Zürich", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(input{Name: tt.value})
			if (err != nil) != tt.wantErr {
				t.Errorf("validate(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil {
				msgs := GenerateErrorMessages(err)
				if len(msgs) == 0 || msgs[0].Field != "Name" {
					t.Errorf("GenerateErrorMessages() = %v", msgs)
				}
			}
		})
	}
}
