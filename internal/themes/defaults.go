package themes

// DefaultKey is used when no theme is configured.
const DefaultKey = "classic"

var compiledDefaults = map[string]Settings{
	"classic": {
		Colors: Colors{
			Primary:    "#8B4513",
			Secondary:  "#F5DEB3",
			Accent:     "#D2691E",
			Background: "#FFFAF0",
			Text:       "#2F1B0C",
		},
		Fonts: Fonts{Heading: "Playfair Display", Body: "Lato"},
	},
	"modern": {
		Colors: Colors{
			Primary:    "#111827",
			Secondary:  "#E5E7EB",
			Accent:     "#10B981",
			Background: "#FFFFFF",
			Text:       "#111827",
		},
		Fonts: Fonts{Heading: "Inter", Body: "Inter"},
	},
}

// Defaults returns the compiled defaults for key and whether the key is known.
func Defaults(key string) (Settings, bool) {
	s, ok := compiledDefaults[key]
	return s, ok
}
