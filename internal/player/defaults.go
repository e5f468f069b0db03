package player

// Per-field fallbacks for the "status" response. The fields from songid on
// are missing whenever the player is stopped.
var statusDefaults = map[string]string{
	"volume":         "0",
	"repeat":         "0",
	"random":         "0",
	"single":         "0",
	"consume":        "0",
	"playlist":       "0",
	"playlistlength": "0",
	"mixrampdb":      "0.000000",
	"state":          StateStop,
	"song":           "0",
	"songid":         "0",
	"time":           "0:0",
	"elapsed":        "0.000",
	"bitrate":        "0",
	"duration":       "0.000",
	"audio":          "0:0:0",
	"nextsong":       "0",
	"nextsongid":     "0",
}

// Per-field fallbacks for the "currentsong" response.
var songDefaults = map[string]string{
	"file":          "no file",
	"Last-Modified": "empty",
	"Title":         "no title",
	"Artist":        "no artist",
	"Album":         "no album",
	"Name":          "no name",
	"Track":         "0",
	"Genre":         "no genre",
	"Time":          "0",
	"duration":      "0.000",
	"Pos":           "0",
	"Id":            "0",
}

// Placeholders Derive compares against to detect absent tags.
const (
	noArtist = "no artist"
	noName   = "no name"
	noTitle  = "no title"
	noAudio  = "0:0:0"
)

// Transport states reported by MPD.
const (
	StateStop  = "stop"
	StatePlay  = "play"
	StatePause = "pause"
)

// fill returns a copy of src with every missing key taken from defaults.
func fill(src map[string]string, defaults map[string]string) map[string]string {
	out := make(map[string]string, len(defaults)+len(src))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range src {
		out[k] = v
	}
	return out
}

// DefaultStatus returns a fresh status dictionary holding only fallbacks.
func DefaultStatus() map[string]string { return fill(nil, statusDefaults) }

// DefaultSong returns a fresh song dictionary holding only fallbacks.
func DefaultSong() map[string]string { return fill(nil, songDefaults) }
