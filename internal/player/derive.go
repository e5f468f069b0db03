package player

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/audiophonics/raspdac-oled/internal/snapshot"
)

const emptyLine = "empty"

// Derive builds the display strings of the now-playing pages from a status
// and a song dictionary. Both are expected to be filled with defaults.
func Derive(status, song map[string]string) snapshot.Group {
	if status["state"] == StateStop || status["state"] == "" || status["audio"] == noAudio {
		return snapshot.Group{
			"play1_l1":     emptyLine,
			"play1_l2":     emptyLine,
			"play2_l1":     emptyLine,
			"play2_l2":     emptyLine,
			"elapsed_ms":   "00:00",
			"duration_ms":  "00:00",
			"elapsed_sec":  0,
			"duration_sec": 0,
		}
	}

	var l1, l2, l3 string
	switch {
	case song["Artist"] != noArtist:
		l1, l2, l3 = song["Artist"], song["Album"], song["Title"]
	case song["Name"] != noName:
		l1 = strings.ToUpper(song["Name"])
		if song["Title"] != noTitle {
			l2 = song["Title"]
		}
		l3 = song["file"]
	case song["Title"] != noTitle:
		l1, l3 = strings.ToUpper(song["Title"]), song["file"]
	default:
		l1, l2, l3 = pathSegments(song["file"])
	}

	elapsed := seconds(status["elapsed"])
	duration := seconds(status["duration"])
	return snapshot.Group{
		"play1_l1":     l1,
		"play1_l2":     l2,
		"play2_l1":     l3,
		"play2_l2":     AudioSummary(status["audio"], status["bitrate"], status["duration"]),
		"elapsed_ms":   formatElapsed(elapsed),
		"duration_ms":  formatDuration(duration),
		"elapsed_sec":  int(elapsed),
		"duration_sec": int(duration),
	}
}

// pathSegments reads artist/album/title from the last three components of
// a file path. Shorter paths fill from the right.
func pathSegments(file string) (artist, album, title string) {
	parts := strings.Split(file, "/")
	pick := func(fromEnd int) string {
		i := len(parts) - fromEnd
		if i < 0 {
			return ""
		}
		return parts[i]
	}
	return pick(3), pick(2), pick(1)
}

func seconds(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}

// formatElapsed renders MM:SS, or HH:MM:SS from one hour on.
func formatElapsed(sec float64) string {
	total := int(sec)
	ms := fmt.Sprintf("%02d:%02d", total%3600/60, total%60)
	if sec >= 3600 {
		return fmt.Sprintf("%02d:%s", total/3600%24, ms)
	}
	return ms
}

// formatDuration renders MM:SS with unbounded minutes.
func formatDuration(sec float64) string {
	total := int(sec)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// AudioSummary describes the current stream: bitrate for streams of no
// defined duration, rate and depth for PCM, bitrate for DSD.
func AudioSummary(audio, bitrate, duration string) string {
	if duration == "0.000" {
		return fmt.Sprintf("stream / %s kbps", bitrate)
	}
	fields := strings.Split(audio, ":")
	if len(fields) > 2 {
		return fmt.Sprintf("PCM / %s kHz / %s bits", kilohertz(fields[0]), fields[1])
	}
	return fmt.Sprintf("%s / %s kbps", strings.ToUpper(fields[0]), bitrate)
}

// kilohertz keeps only the significant decimals: 44100 → 44.1, 48000 → 48,
// 88200 → 88.2, 22050 → 22.05.
func kilohertz(rate string) string {
	hz, err := strconv.ParseFloat(rate, 64)
	if err != nil {
		return rate
	}
	prec := 0
	switch {
	case len(rate) >= 2 && rate[len(rate)-2] != '0':
		prec = 2
	case len(rate) >= 3 && rate[len(rate)-3] != '0':
		prec = 1
	}
	return strconv.FormatFloat(hz/1000, 'f', prec, 64)
}
