package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadPrefersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("  from-file \n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TEST_GEMINI_KEY", "from-env")

	got, err := Load(Source{Name: "gemini api key", File: path, Env: "TEST_GEMINI_KEY", Value: "inline"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "from-file" {
		t.Fatalf("expected file secret, got %q", got)
	}
}

func TestLoadFallsBackToEnvThenValue(t *testing.T) {
	t.Setenv("TEST_GEMINI_KEY", " from-env ")

	got, err := Load(Source{Env: "TEST_GEMINI_KEY", Value: "inline"})
	if err != nil || got != "from-env" {
		t.Fatalf("expected env secret, got %q (%v)", got, err)
	}

	t.Setenv("TEST_GEMINI_KEY", "")
	got, err = Load(Source{Env: "TEST_GEMINI_KEY", Value: "inline"})
	if err != nil || got != "inline" {
		t.Fatalf("expected inline secret, got %q (%v)", got, err)
	}
}

func TestLoadErrors(t *testing.T) {
	empty := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(empty, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name string
		src  Source
		want string
	}{
		{name: "nothing configured", src: Source{Name: "token"}, want: "token is not configured"},
		{name: "empty file", src: Source{File: empty, Value: "ignored"}, want: "is empty"},
		{name: "missing file", src: Source{File: filepath.Join(t.TempDir(), "nope")}, want: "reading secret from file"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(tc.src)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}
