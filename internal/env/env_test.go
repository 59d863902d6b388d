package env

import (
	"testing"
)

func TestGetInt(t *testing.T) {
	t.Setenv("AUTORFP_TEST_INT", "42")
	t.Setenv("AUTORFP_TEST_BAD_INT", "forty-two")

	if got := GetInt("AUTORFP_TEST_INT", 1); got != 42 {
		t.Errorf("GetInt() = %d, want 42", got)
	}
	if got := GetInt("AUTORFP_TEST_BAD_INT", 7); got != 7 {
		t.Errorf("GetInt() with invalid value = %d, want fallback 7", got)
	}
	if got := GetInt("AUTORFP_TEST_MISSING_INT", 9); got != 9 {
		t.Errorf("GetInt() with missing key = %d, want fallback 9", got)
	}
}

func TestGetBool(t *testing.T) {
	t.Setenv("AUTORFP_TEST_BOOL", "true")

	if got := GetBool("AUTORFP_TEST_BOOL", false); !got {
		t.Errorf("GetBool() = %v, want true", got)
	}
	if got := GetBool("AUTORFP_TEST_MISSING_BOOL", true); !got {
		t.Errorf("GetBool() with missing key = %v, want fallback true", got)
	}
}

func TestGetString(t *testing.T) {
	t.Setenv("AUTORFP_TEST_STRING", "gemini-1.5-flash")

	if got := GetString("AUTORFP_TEST_STRING", ""); got != "gemini-1.5-flash" {
		t.Errorf("GetString() = %q", got)
	}
}
