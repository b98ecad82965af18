package logger

import (
	"strings"
	"testing"
)

func TestSanitizeValueRedactsCredentialKeys(t *testing.T) {
	cases := []struct {
		key  string
		want string
	}{
		{"password", "[REDACTED]"},
		{"access_token", "[REDACTED]"},
		{"refresh_token", "[REDACTED]"},
		{"jwt_secret_key", "[REDACTED]"},
		{"email", "[REDACTED]"},
	}
	for _, tc := range cases {
		got := sanitizeValue(tc.key, "raw-value")
		if got != tc.want {
			t.Fatalf("sanitizeValue(%q): want=%q got=%v", tc.key, tc.want, got)
		}
	}
}

func TestSanitizeValueHashesOwnerKeys(t *testing.T) {
	for _, key := range []string{"user_id", "session_key"} {
		got, ok := sanitizeValue(key, "owner-123").(string)
		if !ok || !strings.HasPrefix(got, "hash:") {
			t.Fatalf("sanitizeValue(%q): want hash: prefix got %v", key, got)
		}
		if strings.Contains(got, "owner-123") {
			t.Fatalf("sanitizeValue(%q) leaked the raw value: %v", key, got)
		}
	}
}

func TestSanitizeValuePassesPlainKeys(t *testing.T) {
	if got := sanitizeValue("product_id", "p-1"); got != "p-1" {
		t.Fatalf("plain key altered: got %v", got)
	}
}

func TestSanitizeKVsKeepsDanglingKey(t *testing.T) {
	if !redactionOn() {
		t.Skip("redaction disabled via env")
	}
	out := sanitizeKVs([]interface{}{"status", 200, "dangling"})
	if len(out) != 3 || out[2] != "dangling" {
		t.Fatalf("dangling key: got %v", out)
	}
}
