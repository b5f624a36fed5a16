package secret

import (
	"os"
	"strings"
	"testing"
)

func TestExpandPath(t *testing.T) {
	t.Setenv("CLAWSTRAP_TEST_BASE", "/data/secrets")

	got, err := ExpandPath("${CLAWSTRAP_TEST_BASE}/token.json")
	if err != nil {
		t.Fatalf("ExpandPath() error = %v", err)
	}
	if got != "/data/secrets/token.json" {
		t.Fatalf("ExpandPath() = %q, want %q", got, "/data/secrets/token.json")
	}
}

func TestExpandPath_MissingVariableErrors(t *testing.T) {
	_, err := ExpandPath("${CLAWSTRAP_TEST_DEFINITELY_MISSING}/token.json")
	if err == nil {
		t.Fatalf("expected error for missing variable")
	}
	if !strings.Contains(err.Error(), "CLAWSTRAP_TEST_DEFINITELY_MISSING") {
		t.Fatalf("error should name the missing variable, got %v", err)
	}
}

func TestExpandPath_DollarEscape(t *testing.T) {
	got, err := ExpandPath("/costs/$$5/token.json")
	if err != nil {
		t.Fatalf("ExpandPath() error = %v", err)
	}
	if got != "/costs/$5/token.json" {
		t.Fatalf("ExpandPath() = %q, want %q", got, "/costs/$5/token.json")
	}
}

func TestExpandPath_HomeDirectory(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	got, err := ExpandPath("~/.config/gog/token.json")
	if err != nil {
		t.Fatalf("ExpandPath() error = %v", err)
	}
	if want := home + "/.config/gog/token.json"; got != want {
		t.Fatalf("ExpandPath() = %q, want %q", got, want)
	}
}

func TestExpandPath_BareVariable(t *testing.T) {
	t.Setenv("CLAWSTRAP_TEST_BASE", "/data/secrets")

	got, err := ExpandPath("$CLAWSTRAP_TEST_BASE/token.json")
	if err != nil {
		t.Fatalf("ExpandPath() error = %v", err)
	}
	if got != "/data/secrets/token.json" {
		t.Fatalf("ExpandPath() = %q, want %q", got, "/data/secrets/token.json")
	}
}

func TestExpandPath_StrayDollarPassesThrough(t *testing.T) {
	got, err := ExpandPath("/costs/$/token.json")
	if err != nil {
		t.Fatalf("ExpandPath() error = %v", err)
	}
	if got != "/costs/$/token.json" {
		t.Fatalf("ExpandPath() = %q, want %q", got, "/costs/$/token.json")
	}
}
