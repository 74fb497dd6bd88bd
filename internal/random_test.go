package internal

import (
	"encoding/hex"
	"testing"
)

func TestNewRefreshValueLengthAndEncoding(t *testing.T) {
	for _, n := range []int{16, 24, 32} {
		value, err := NewRefreshValue(n)
		if err != nil {
			t.Fatalf("NewRefreshValue(%d) failed: %v", n, err)
		}
		if len(value) != 2*n {
			t.Fatalf("expected %d hex chars, got %d", 2*n, len(value))
		}
		if _, err := hex.DecodeString(value); err != nil {
			t.Fatalf("expected hex output, got %q: %v", value, err)
		}
	}
}

func TestNewRefreshValueRejectsShortLength(t *testing.T) {
	for _, n := range []int{0, 8, 15, -1} {
		if _, err := NewRefreshValue(n); err == nil {
			t.Fatalf("expected NewRefreshValue(%d) to fail", n)
		}
	}
}

func TestNewRefreshValueUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		value, err := NewRefreshValue(MinRefreshValueBytes)
		if err != nil {
			t.Fatalf("NewRefreshValue failed: %v", err)
		}
		if seen[value] {
			t.Fatal("generated a duplicate refresh value")
		}
		seen[value] = true
	}
}

func TestConstantTimeEquals(t *testing.T) {
	if !ConstantTimeEquals("abc", "abc") {
		t.Fatal("expected equal strings to match")
	}
	if ConstantTimeEquals("abc", "abd") {
		t.Fatal("expected different strings to mismatch")
	}
	if ConstantTimeEquals("abc", "abcd") {
		t.Fatal("expected different lengths to mismatch")
	}
	if !ConstantTimeEquals("", "") {
		t.Fatal("expected empty strings to match")
	}
}
