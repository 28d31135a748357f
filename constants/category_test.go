package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     Category
		wantTier MatchTier
	}{
		{"exact", "Food", Food, MatchExact},
		{"exact with whitespace", "  Transport  ", Transport, MatchExact},
		{"exact with trailing period", "Entertainment.", Entertainment, MatchExact},
		{"substring in sentence", "I think this is Food.", Food, MatchSubstring},
		{"substring case-insensitive", "probably UTILITY costs", Utility, MatchSubstring},
		{"no match falls back", "Groceries", DefaultCategory, MatchNone},
		{"empty falls back", "", DefaultCategory, MatchNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, tier := Canonicalize(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantTier, tier)
		})
	}
}

func TestAsStringSlice(t *testing.T) {
	assert.Equal(t, []string{"Food", "Transport", "Utility", "Entertainment"}, AsStringSlice())
}

func TestMatchTierString(t *testing.T) {
	assert.Equal(t, "exact", MatchExact.String())
	assert.Equal(t, "substring", MatchSubstring.String())
	assert.Equal(t, "none", MatchNone.String())
}

func TestAllowedExt(t *testing.T) {
	for _, ext := range []string{".png", ".jpg", ".JPEG", "pdf", ".PDF"} {
		assert.True(t, AllowedExt(ext), "ext %s", ext)
	}
	for _, ext := range []string{".txt", ".exe", "", ".gif", ".webp"} {
		assert.False(t, AllowedExt(ext), "ext %s", ext)
	}
}

func TestMIMEByExt(t *testing.T) {
	assert.Equal(t, "image/png", MIMEByExt(".png"))
	assert.Equal(t, "image/jpeg", MIMEByExt(".jpg"))
	assert.Equal(t, "image/jpeg", MIMEByExt(".JPEG"))
	assert.Equal(t, "application/pdf", MIMEByExt(".pdf"))
	assert.Equal(t, "image/jpeg", MIMEByExt(".unknown"))
}
