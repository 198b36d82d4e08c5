package utils

import "testing"

func TestSanitizeStripsScripts(t *testing.T) {
	got := Sanitize(`<script>alert(1)</script>hello`)
	if got != "hello" {
		t.Errorf("Sanitize = %q, want hello", got)
	}
}

func TestSanitizeAndTrim(t *testing.T) {
	got := SanitizeAndTrim("   spaced out   ")
	if got != "spaced out" {
		t.Errorf("SanitizeAndTrim = %q, want %q", got, "spaced out")
	}

	if got := SanitizeAndTrim("  <script>x</script>  "); got != "" {
		t.Errorf("SanitizeAndTrim = %q, want empty after stripping markup", got)
	}
}
