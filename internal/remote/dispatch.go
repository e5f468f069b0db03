package remote

// Transport is the playback side commanded by the remote while the menu is
// closed.
type Transport interface {
	Previous()
	Next()
	Stop()
	Toggle()
	VolumeUp(step int)
	VolumeDown(step int)
}

// Steps are the volume increments for slow and fast key presses.
type Steps struct {
	Slow, Fast int
}

func (s Steps) For(speed Speed) int {
	if speed == Fast {
		return s.Fast
	}
	return s.Slow
}

// Dispatch sends the transport command bound to key. It reports whether the
// key asks for the menu to open.
func Dispatch(key Key, speed Speed, t Transport, steps Steps) (openMenu bool) {
	switch key {
	case KeyMenu:
		return true
	case KeyUp:
		t.VolumeUp(steps.For(speed))
	case KeyDown:
		t.VolumeDown(steps.For(speed))
	case KeyLeft:
		t.Previous()
	case KeyRight:
		t.Next()
	case KeyEnter:
		t.Stop()
	case KeyPlay:
		t.Toggle()
	}
	return false
}
