package level

import (
	"testing"

	"github.com/abhisek/adaptlearn/internal/rewrite"
)

func TestParseSpeed(t *testing.T) {
	tests := []struct {
		in     string
		want   Speed
		wantOK bool
	}{
		{"slow", SpeedSlow, true},
		{" FAST ", SpeedFast, true},
		{"Medium", SpeedMedium, true},
		{"turbo", SpeedMedium, false},
		{"", SpeedMedium, false},
	}
	for _, tt := range tests {
		got, ok := ParseSpeed(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseSpeed(%q) = (%s, %v), want (%s, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
	if SpeedOrDefault("warp") != SpeedMedium {
		t.Error("unrecognized speed should default to medium")
	}
}

func TestSpeedTextRoundTrip(t *testing.T) {
	for _, s := range AllSpeeds() {
		b, _ := s.MarshalText()
		var got Speed
		if err := got.UnmarshalText(b); err != nil || got != s {
			t.Errorf("round trip %s: got %s, err %v", s, got, err)
		}
	}
	var s Speed
	if err := s.UnmarshalText([]byte("warp")); err == nil {
		t.Error("expected error for unknown speed")
	}
}

func TestSpeedMappings(t *testing.T) {
	tests := []struct {
		speed   Speed
		content string
		catalog string
		mode    rewrite.Mode
		display string
	}{
		{SpeedSlow, "basic", "beginner", rewrite.ModeSimplify, "Beginner"},
		{SpeedMedium, "intermediate", "intermediate", rewrite.ModePassthrough, "Intermediate"},
		{SpeedFast, "advanced", "advanced", rewrite.ModeEnhance, "Advanced"},
	}
	for _, tt := range tests {
		tier := TierFor(tt.speed)
		if tier.ContentKey() != tt.content {
			t.Errorf("%s content key = %q, want %q", tt.speed, tier.ContentKey(), tt.content)
		}
		if tier.CatalogKey() != tt.catalog {
			t.Errorf("%s catalog key = %q, want %q", tt.speed, tier.CatalogKey(), tt.catalog)
		}
		if tier.DisplayName() != tt.display {
			t.Errorf("%s display = %q, want %q", tt.speed, tier.DisplayName(), tt.display)
		}
		if ModeFor(tt.speed) != tt.mode {
			t.Errorf("%s mode = %s, want %s", tt.speed, ModeFor(tt.speed), tt.mode)
		}
	}
}

func TestTierKeysRoundTrip(t *testing.T) {
	for _, tier := range AllTiers() {
		if got, ok := TierFromContentKey(tier.ContentKey()); !ok || got != tier {
			t.Errorf("content key %q → %s, %v", tier.ContentKey(), got, ok)
		}
		if got, ok := TierFromCatalogKey(tier.CatalogKey()); !ok || got != tier {
			t.Errorf("catalog key %q → %s, %v", tier.CatalogKey(), got, ok)
		}
	}
	if _, ok := TierFromCatalogKey("basic"); ok {
		t.Error("content naming must not parse as a catalog key")
	}
	if _, ok := TierFromContentKey("beginner"); ok {
		t.Error("catalog naming must not parse as a content key")
	}
}
