package listview

import (
	"fmt"

	"github.com/dshills/listkit/internal/config"
	"github.com/dshills/listkit/internal/renderer/core"
)

// Theme holds the row styles.
type Theme struct {
	Normal    core.Style
	Focused   core.Style
	Selected  core.Style
	Activated core.Style
	Disabled  core.Style
	Separator core.Style
	Empty     core.Style

	// Marker prefixes the focused row; other rows get blanks of equal
	// width.
	Marker string

	// SelectedMarker prefixes selected rows in multi-select lists.
	SelectedMarker string
}

// DefaultTheme uses the terminal colors with reverse video for focus.
func DefaultTheme() Theme {
	def := core.DefaultStyle()
	return Theme{
		Normal:         def,
		Focused:        def.With(core.AttrReverse),
		Selected:       def.With(core.AttrBold),
		Activated:      def.With(core.AttrBold).With(core.AttrUnderline),
		Disabled:       def.With(core.AttrDim),
		Separator:      def.With(core.AttrDim),
		Empty:          def.With(core.AttrDim).With(core.AttrItalic),
		Marker:         "> ",
		SelectedMarker: "* ",
	}
}

// ThemeFromConfig builds a theme from the [theme] section. The activated
// background is the selected background blended toward the focused one.
func ThemeFromConfig(tc config.ThemeConfig) (Theme, error) {
	var firstErr error
	parse := func(name, hex string) core.Color {
		c, err := core.ColorFromHex(hex)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("theme.%s: %w", name, err)
			}
			return core.ColorDefault
		}
		return c
	}

	fg := parse("fg", tc.Fg)
	bg := parse("bg", tc.Bg)
	focusedFg := parse("focusedFg", tc.FocusedFg)
	focusedBg := parse("focusedBg", tc.FocusedBg)
	selectedFg := parse("selectedFg", tc.SelectedFg)
	selectedBg := parse("selectedBg", tc.SelectedBg)
	disabledFg := parse("disabledFg", tc.DisabledFg)
	if firstErr != nil {
		return DefaultTheme(), firstErr
	}

	normal := core.Style{Foreground: fg, Background: bg}
	t := Theme{
		Normal:         normal,
		Focused:        core.Style{Foreground: focusedFg, Background: focusedBg},
		Selected:       core.Style{Foreground: selectedFg, Background: selectedBg}.With(core.AttrBold),
		Disabled:       normal.WithForeground(disabledFg),
		Separator:      normal.WithForeground(disabledFg),
		Empty:          normal.WithForeground(disabledFg).With(core.AttrItalic),
		Marker:         tc.Marker,
		SelectedMarker: tc.SelectedMarker,
	}
	t.Activated = t.Selected.WithBackground(selectedBg.Blend(focusedBg, tc.ActivatedBlend))
	return t, nil
}
