package discord

// gameInfo describes a known game: embed emoji and an optional thumbnail.
type gameInfo struct {
	Emoji   string
	IconURL string
}

var games = map[string]gameInfo{
	"Apex Legends": {
		Emoji:   "🎯",
		IconURL: "https://cdn.cloudflare.steamstatic.com/steamcommunity/public/images/apps/1172470/1fbe3bb93f3c2a9dad26d493f62e8bb79a4e39d3.jpg",
	},
	"Valorant": {
		Emoji:   "🔫",
		IconURL: "https://cdn.cloudflare.steamstatic.com/steamcommunity/public/images/apps/1172470/1fbe3bb93f3c2a9dad26d493f62e8bb79a4e39d3.jpg",
	},
	"Minecraft":      {Emoji: "⛏️"},
	"Among Us":       {Emoji: "🚀"},
	"Mario Kart":     {Emoji: "🏁"},
	"Splatoon":       {Emoji: "🦑"},
	"Monster Hunter": {Emoji: "⚔️"},
}

// gameInfoFor falls back to a generic controller emoji for unknown titles.
func gameInfoFor(gameType string) gameInfo {
	if g, ok := games[gameType]; ok {
		return g
	}
	return gameInfo{Emoji: "🎮"}
}
