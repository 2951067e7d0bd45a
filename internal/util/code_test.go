package util

import (
	"encoding/hex"
	"testing"
)

func TestGenerateResetCode(t *testing.T) {
	code, err := GenerateResetCode(6)
	if err != nil {
		t.Fatalf("GenerateResetCode returned error: %v", err)
	}
	if len(code) != 12 {
		t.Fatalf("expected 12 hex characters, got %d", len(code))
	}
	if _, err := hex.DecodeString(code); err != nil {
		t.Fatalf("expected hex output, got %q", code)
	}

	other, err := GenerateResetCode(6)
	if err != nil {
		t.Fatalf("GenerateResetCode returned error: %v", err)
	}
	if code == other {
		t.Fatalf("expected two generated codes to differ")
	}
}

func TestGenerateResetCodeDefaultLength(t *testing.T) {
	code, err := GenerateResetCode(0)
	if err != nil {
		t.Fatalf("GenerateResetCode returned error: %v", err)
	}
	if len(code) != 12 {
		t.Fatalf("expected default length of 12 hex characters, got %d", len(code))
	}
}
