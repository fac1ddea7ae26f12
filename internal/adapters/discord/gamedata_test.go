package discord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameInfoFor(t *testing.T) {
	g := gameInfoFor("Valorant")
	assert.Equal(t, "🔫", g.Emoji)
	assert.NotEmpty(t, g.IconURL)

	g = gameInfoFor("Splatoon")
	assert.Equal(t, "🦑", g.Emoji)
	assert.Empty(t, g.IconURL)
}

func TestGameInfoForUnknownFallsBack(t *testing.T) {
	g := gameInfoFor("Some Obscure Game")
	assert.Equal(t, "🎮", g.Emoji)
	assert.Empty(t, g.IconURL)
}
