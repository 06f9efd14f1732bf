package focus

import (
	"strings"

	"github.com/go-vgo/robotgo"
)

// TitleSource returns the title of the window that owns input focus
type TitleSource interface {
	ActiveTitle() (string, error)
}

// TitleFunc adapts a function to TitleSource
type TitleFunc func() (string, error)

func (f TitleFunc) ActiveTitle() (string, error) { return f() }

// RobotgoTitle reads the foreground window title through robotgo
var RobotgoTitle = TitleFunc(func() (string, error) {
	return robotgo.GetTitle(), nil
})

// Gate opens only while the named application is focused
type Gate struct {
	source TitleSource
}

// NewGate creates a gate over source
func NewGate(source TitleSource) *Gate {
	return &Gate{source: source}
}

// IsTargetWindowActive reports whether the focused window title contains name,
// ignoring case. An error from the title source is returned with false.
func (g *Gate) IsTargetWindowActive(name string) (bool, error) {
	title, err := g.source.ActiveTitle()
	if err != nil {
		return false, err
	}
	return strings.Contains(strings.ToLower(title), strings.ToLower(name)), nil
}
