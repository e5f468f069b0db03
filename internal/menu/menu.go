// Package menu is the settings menu opened from the remote: which driver
// control is selected, which candidate value is highlighted, and which value
// is in effect.
package menu

import (
	"slices"
	"strconv"

	"github.com/audiophonics/raspdac-oled/internal/config"
	"github.com/audiophonics/raspdac-oled/internal/remote"
	"github.com/audiophonics/raspdac-oled/internal/snapshot"
)

// Control is one driver control reachable from the menu.
type Control struct {
	Name     string
	Command  string
	Values   []string
	Comments []string
}

// ControlsFrom converts configured controls.
func ControlsFrom(cfg []config.ControlConfig) []Control {
	out := make([]Control, len(cfg))
	for i, c := range cfg {
		out[i] = Control{Name: c.Name, Command: c.Command, Values: c.Values, Comments: c.Comments}
	}
	return out
}

// Command asks the driver to set Control (its amixer key) to Value.
type Command struct {
	Control string
	Value   string
}

// Navigator is the menu state machine. Controls must be non-empty and each
// must have at least one value.
type Navigator struct {
	on       bool
	controls []Control
	control  int
	item     int
	active   []int
}

func New(controls []Control) *Navigator {
	return &Navigator{
		controls: controls,
		active:   make([]int, len(controls)),
	}
}

// On reports whether the menu is open.
func (n *Navigator) On() bool { return n.on }

// Selection returns the selected control and highlighted item indexes.
func (n *Navigator) Selection() (control, item int) { return n.control, n.item }

// Handle applies a remote key. The Menu key toggles; the others are ignored
// while the menu is closed. Enter returns the command to apply.
func (n *Navigator) Handle(key remote.Key) (Command, bool) {
	if key == remote.KeyMenu {
		n.Toggle()
		return Command{}, false
	}
	if !n.on {
		return Command{}, false
	}
	switch key {
	case remote.KeyDown:
		n.NextControl()
	case remote.KeyUp:
		n.PrevControl()
	case remote.KeyLeft:
		n.PrevItem()
	case remote.KeyRight:
		n.NextItem()
	case remote.KeyEnter:
		return n.Commit()
	}
	return Command{}, false
}

// Toggle opens or closes the menu. The selection survives a close.
func (n *Navigator) Toggle() { n.on = !n.on }

func (n *Navigator) NextControl() { n.moveControl(1) }
func (n *Navigator) PrevControl() { n.moveControl(-1) }

// moveControl selects a neighbour control and highlights its live value.
func (n *Navigator) moveControl(delta int) {
	if !n.on {
		return
	}
	n.control = wrap(n.control+delta, len(n.controls))
	n.item = n.active[n.control]
}

func (n *Navigator) NextItem() { n.moveItem(1) }
func (n *Navigator) PrevItem() { n.moveItem(-1) }

func (n *Navigator) moveItem(delta int) {
	if !n.on {
		return
	}
	n.item = wrap(n.item+delta, len(n.controls[n.control].Values))
}

// Commit makes the highlighted value active and returns the command that
// applies it. The menu stays open.
func (n *Navigator) Commit() (Command, bool) {
	if !n.on {
		return Command{}, false
	}
	c := n.controls[n.control]
	n.active[n.control] = n.item
	return Command{Control: c.Command, Value: c.Values[n.item]}, true
}

// SetActive mirrors the value the driver reports for control name. Unknown
// controls and values are ignored.
func (n *Navigator) SetActive(name, value string) {
	for i, c := range n.controls {
		if c.Name != name {
			continue
		}
		if j := slices.Index(c.Values, value); j >= 0 {
			n.active[i] = j
		}
		return
	}
}

// Projection is the menu as the MENU page shows it.
func (n *Navigator) Projection() snapshot.Group {
	c := n.controls[n.control]
	status := "OFF"
	if n.on {
		status = "ON"
	}
	comment := ""
	if n.item < len(c.Comments) {
		comment = c.Comments[n.item]
	}
	return snapshot.Group{
		"status":  status,
		"control": c.Name,
		"item":    strconv.Itoa(n.item),
		"active":  n.item == n.active[n.control],
		"comment": comment,
	}
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
