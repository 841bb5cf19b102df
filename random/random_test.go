package random

import (
	"strings"
	"testing"
)

func TestStringSecure(t *testing.T) {
	s, err := StringSecure(32)
	if err != nil {
		t.Fatal(err)
	}
	if len(s) != 32 {
		t.Fatalf("expected 32 chars, got %d", len(s))
	}
	for _, c := range s {
		if !strings.ContainsRune(charset, c) {
			t.Fatalf("unexpected char %q in %q", c, s)
		}
	}

	o, err := StringSecure(32)
	if err != nil {
		t.Fatal(err)
	}
	if s == o {
		t.Fatal("two secure strings should not collide")
	}
}

func TestString(t *testing.T) {
	if got := String(10); len(got) != 10 {
		t.Fatalf("expected 10 chars, got %q", got)
	}
	if got := String(0); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}
