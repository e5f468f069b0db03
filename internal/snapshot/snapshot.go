// Package snapshot holds the runtime data dictionary rebuilt every tick and
// read by the render pipeline through object bindings.
package snapshot

import "strconv"

// Group names used by the page templates.
const (
	GroupIcons   = "icons"
	GroupClock   = "clock"
	GroupNetwork = "network"
	GroupStatus  = "status"
	GroupSong    = "song"
	GroupDerived = "derived"
	GroupMenu    = "menu"
)

// Group maps a field name to a string, int or bool value.
type Group map[string]any

// Data maps a group name to its fields.
type Data map[string]Group

// Set stores value under group/field, creating the group if needed.
func (d Data) Set(group, field string, value any) {
	g, ok := d[group]
	if !ok {
		g = Group{}
		d[group] = g
	}
	g[field] = value
}

// Lookup returns the raw value bound to group/field.
func (d Data) Lookup(group, field string) (any, bool) {
	g, ok := d[group]
	if !ok {
		return nil, false
	}
	v, ok := g[field]
	return v, ok
}

// FromStrings converts a flat string dictionary into a Group.
func FromStrings(m map[string]string) Group {
	g := make(Group, len(m))
	for k, v := range m {
		g[k] = v
	}
	return g
}

// Text formats a bound value for drawing.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// Bool reports whether a bound value is true. Strings "true"/"1" count.
func Bool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case int:
		return t != 0
	case string:
		b, err := strconv.ParseBool(t)
		return err == nil && b
	default:
		return false
	}
}
