package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantKind Kind
		wantArgs string
		wantBulk bool
	}{
		{"ping", "/ping", KindPing, "", false},
		{"categories", "/categories", KindCategories, "", false},
		{"packages with arg", "/packages GP", KindPackages, "GP", false},
		{"token case-insensitive", "/PACKAGES GP", KindPackages, "GP", false},
		{"add single line", "/addpackage GP|1GB 7 Days|48", KindAddPackage, "GP|1GB 7 Days|48", false},
		{"complete", "/complete order123", KindComplete, "order123", false},
		{"unknown command", "/frobnicate now", KindHelp, "", false},
		{"plain text", "hello there", KindHelp, "", false},
		{"surrounding whitespace", "  /orders  ", KindOrders, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := Parse(tt.text)
			assert.Equal(t, tt.wantKind, cmd.Kind)
			assert.Equal(t, tt.wantArgs, cmd.Args)
			assert.Equal(t, tt.wantBulk, cmd.Bulk)
		})
	}
}

func TestParseBulk(t *testing.T) {
	cmd := Parse("/addpackage GP\n1GB|48\n\n2GB|98\nBADLINE\n")
	assert.Equal(t, KindAddPackage, cmd.Kind)
	assert.Equal(t, "GP", cmd.Args)
	assert.True(t, cmd.Bulk)
	// Blank lines dropped, malformed lines kept for the handler to skip.
	assert.Equal(t, []string{"1GB|48", "2GB|98", "BADLINE"}, cmd.Lines)
}

func TestSplitPipe(t *testing.T) {
	parts, ok := splitPipe("GP| 1GB 7 Days |48", 3)
	assert.True(t, ok)
	assert.Equal(t, []string{"GP", "1GB 7 Days", "48"}, parts)

	_, ok = splitPipe("GP|1GB", 3)
	assert.False(t, ok, "wrong segment count must fail")

	_, ok = splitPipe("GP||48", 3)
	assert.False(t, ok, "empty segment must fail")
}

func TestParsePrice(t *testing.T) {
	p, ok := parsePrice("48.5")
	assert.True(t, ok)
	assert.Equal(t, 48.5, p)

	_, ok = parsePrice("cheap")
	assert.False(t, ok)

	assert.Equal(t, "48", formatPrice(48))
	assert.Equal(t, "48.5", formatPrice(48.5))
}
