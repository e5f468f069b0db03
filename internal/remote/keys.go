package remote

import "github.com/holoplot/go-evdev"

// Key is a symbolic remote-control key.
type Key int

const (
	KeyNone Key = iota
	KeyMenu
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyPlay
)

var keyNames = map[Key]string{
	KeyNone:  "KEY_NONE",
	KeyMenu:  "KEY_MENU",
	KeyUp:    "KEY_UP",
	KeyDown:  "KEY_DOWN",
	KeyLeft:  "KEY_LEFT",
	KeyRight: "KEY_RIGHT",
	KeyEnter: "KEY_ENTER",
	KeyPlay:  "KEY_PLAY",
}

func (k Key) String() string {
	if s, ok := keyNames[k]; ok {
		return s
	}
	return "KEY_UNKNOWN"
}

// ParseKey maps a LIRC key name to a Key. Unknown names map to KeyNone.
func ParseKey(name string) Key {
	switch name {
	case "KEY_MENU":
		return KeyMenu
	case "KEY_UP":
		return KeyUp
	case "KEY_DOWN":
		return KeyDown
	case "KEY_LEFT":
		return KeyLeft
	case "KEY_RIGHT":
		return KeyRight
	case "KEY_ENTER", "KEY_OK":
		return KeyEnter
	case "KEY_PLAY", "KEY_PLAYPAUSE":
		return KeyPlay
	default:
		return KeyNone
	}
}

// fromEvdev maps a kernel key code to a Key.
func fromEvdev(code evdev.EvCode) Key {
	switch code {
	case evdev.KEY_MENU:
		return KeyMenu
	case evdev.KEY_UP:
		return KeyUp
	case evdev.KEY_DOWN:
		return KeyDown
	case evdev.KEY_LEFT:
		return KeyLeft
	case evdev.KEY_RIGHT:
		return KeyRight
	case evdev.KEY_ENTER, evdev.KEY_OK:
		return KeyEnter
	case evdev.KEY_PLAY, evdev.KEY_PLAYPAUSE:
		return KeyPlay
	default:
		return KeyNone
	}
}

// Speed classifies how quickly a key followed the previous one.
type Speed int

const (
	Slow Speed = iota
	Fast
)

func (s Speed) String() string {
	if s == Fast {
		return "fast"
	}
	return "slow"
}
