package bubble

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dshills/listkit/internal/config"
	"github.com/dshills/listkit/internal/renderer/core"
)

// Styles holds the lipgloss styles for each row state.
type Styles struct {
	Normal    lipgloss.Style
	Focused   lipgloss.Style
	Selected  lipgloss.Style
	Activated lipgloss.Style
	Disabled  lipgloss.Style
	Separator lipgloss.Style
	Empty     lipgloss.Style

	Marker         string
	SelectedMarker string
}

// DefaultStyles uses terminal colors with reverse video for focus.
func DefaultStyles() Styles {
	base := lipgloss.NewStyle()
	return Styles{
		Normal:         base,
		Focused:        base.Reverse(true),
		Selected:       base.Bold(true),
		Activated:      base.Bold(true).Underline(true),
		Disabled:       base.Faint(true),
		Separator:      base.Faint(true),
		Empty:          base.Faint(true).Italic(true),
		Marker:         "> ",
		SelectedMarker: "* ",
	}
}

// StylesFromConfig builds styles from the [theme] section. Colors that
// fail to parse are left at the terminal default.
func StylesFromConfig(tc config.ThemeConfig) Styles {
	s := DefaultStyles()
	s.Normal = colored(lipgloss.NewStyle(), tc.Fg, tc.Bg)
	s.Focused = colored(lipgloss.NewStyle(), tc.FocusedFg, tc.FocusedBg)
	if tc.FocusedFg == "" && tc.FocusedBg == "" {
		s.Focused = s.Focused.Reverse(true)
	}
	s.Selected = colored(lipgloss.NewStyle(), tc.SelectedFg, tc.SelectedBg).Bold(true)
	s.Disabled = colored(lipgloss.NewStyle(), tc.DisabledFg, tc.Bg).Faint(true)
	s.Separator = s.Disabled
	s.Empty = s.Disabled.Italic(true)

	activatedBg := blend(tc.SelectedBg, tc.FocusedBg, tc.ActivatedBlend)
	s.Activated = colored(lipgloss.NewStyle(), tc.SelectedFg, activatedBg).Bold(true).Underline(true)

	s.Marker = tc.Marker
	s.SelectedMarker = tc.SelectedMarker
	return s
}

func colored(st lipgloss.Style, fg, bg string) lipgloss.Style {
	if c, err := core.ColorFromHex(fg); err == nil && !c.IsDefault() {
		st = st.Foreground(lipgloss.Color(c.Hex()))
	}
	if c, err := core.ColorFromHex(bg); err == nil && !c.IsDefault() {
		st = st.Background(lipgloss.Color(c.Hex()))
	}
	return st
}

func blend(from, to string, amount float64) string {
	a, err := core.ColorFromHex(from)
	if err != nil {
		return ""
	}
	b, err := core.ColorFromHex(to)
	if err != nil {
		return a.Hex()
	}
	return a.Blend(b, amount).Hex()
}
