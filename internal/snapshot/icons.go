package snapshot

// Glyph codes in the FontAwesome 4 icon font.
var iconTable = map[string]string{
	"speaker": "",
	"wifi":    "",
	"link":    "",
	"broken":  "",
	"clock":   "",
	"play":    "",
	"pause":   "",
	"stop":    "",
	"up":      "",
	"down":    "",
	"left":    "",
	"right":   "",
}

// Dynamic icon entries redirected every tick.
const (
	IconIPType      = "ip_type"
	IconPlayerState = "player_state"
)

// Icons returns a fresh copy of the static icon table for one tick.
func Icons() Group {
	g := make(Group, len(iconTable)+2)
	for k, v := range iconTable {
		g[k] = v
	}
	return g
}

// Alias points alias at the glyph of target. An unknown target leaves the
// alias empty so nothing is drawn.
func (g Group) Alias(alias, target string) {
	if v, ok := g[target]; ok {
		g[alias] = v
		return
	}
	g[alias] = ""
}
