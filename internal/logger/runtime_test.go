package logger

import (
	"context"
	"testing"
)

func TestBuildRID(t *testing.T) {
	if got := BuildRID(42, -100123, 777); got != "42:-100123:777" {
		t.Fatalf("BuildRID = %q", got)
	}
}

func TestRIDRoundTrip(t *testing.T) {
	ctx := WithRID(context.Background(), "1:2:3")
	if got := RIDFrom(ctx); got != "1:2:3" {
		t.Fatalf("RIDFrom = %q", got)
	}
	if got := RIDFrom(context.Background()); got != "" {
		t.Fatalf("RIDFrom empty ctx = %q", got)
	}
}

func TestUpdateMetaRoundTrip(t *testing.T) {
	ctx := WithUpdateMeta(context.Background(), 42, 777, -100123)
	if got := UpdateIDFrom(ctx); got != 42 {
		t.Fatalf("UpdateIDFrom = %d", got)
	}
	if got := UserIDFrom(ctx); got != 777 {
		t.Fatalf("UserIDFrom = %d", got)
	}
	if got := ChatIDFrom(ctx); got != -100123 {
		t.Fatalf("ChatIDFrom = %d", got)
	}
}

func TestHandlerRoundTrip(t *testing.T) {
	ctx := WithHandler(context.Background(), "on_text")
	if got := HandlerFrom(ctx); got != "on_text" {
		t.Fatalf("HandlerFrom = %q", got)
	}
	if got := HandlerFrom(context.Background()); got != "" {
		t.Fatalf("HandlerFrom empty ctx = %q", got)
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"plain", "plain"},
		{"tab\tand\nnewline", "tab\tand\nnewline"},
		{"ctrl\x00\x1bchars", "ctrlchars"},
		{"del\x7fchar", "delchar"},
	}
	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeLimit(t *testing.T) {
	if got := SanitizeLimit("abcdef", 3); got != "abc" {
		t.Fatalf("SanitizeLimit = %q", got)
	}
	if got := SanitizeLimit("héllo wörld", 4); got != "héll" {
		t.Fatalf("SanitizeLimit = %q", got)
	}
	if got := SanitizeLimit("abc", 0); got != "" {
		t.Fatalf("SanitizeLimit max=0 = %q", got)
	}
}
