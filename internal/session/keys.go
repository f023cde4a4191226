package session

import "strings"

// Key is a keyboard event as the browser reports it.
type Key struct {
	Name  string
	Ctrl  bool
	Meta  bool
	Shift bool
	Alt   bool
}

// copy, paste, cut, select all, view source, save
var restrictedShortcuts = map[string]bool{
	"c": true, "v": true, "x": true, "a": true, "u": true, "s": true,
}

// IsRestrictedKey reports whether k is blocked during a test: F12 and the
// Ctrl or Cmd shortcuts that copy content or open developer views.
func IsRestrictedKey(k Key) bool {
	name := strings.ToLower(k.Name)
	if name == "f12" {
		return true
	}
	if k.Ctrl && k.Shift && (name == "i" || name == "j") {
		return true
	}
	return (k.Ctrl || k.Meta) && restrictedShortcuts[name]
}

// HandleKey returns true when the key must be suppressed. A restricted key
// counts as a violation and raises a warning.
func (c *Controller) HandleKey(k Key) bool {
	if !IsRestrictedKey(k) {
		return false
	}
	c.HandleSignal(SignalRestrictedKey)
	return true
}
