package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFilename(t *testing.T) {
	got := normalizeFilename("Lobby Promo (final).mp4")
	assert.True(t, strings.HasPrefix(got, "Lobby_Promo_final_"))
	assert.True(t, strings.HasSuffix(got, ".mp4"))
	assert.NotContains(t, got, " ")
	assert.NotContains(t, got, "(")

	got = normalizeFilename("???.png")
	assert.True(t, strings.HasPrefix(got, "file_"), "fully-stripped names get a placeholder")
	assert.True(t, strings.HasSuffix(got, ".png"))
}
