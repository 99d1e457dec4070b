package config

// palette is the small set of colors a preset is built from
type palette struct {
	background string
	foreground string
	subtle     string
	highlight  string
	border     string
	primary    string
	secondary  string
	info       string
	success    string
	warning    string
	danger     string
}

// Nord - Arctic, north-bluish color palette
// https://www.nordtheme.com/
var nord = palette{
	background: "#2E3440",
	foreground: "#ECEFF4",
	subtle:     "#4C566A",
	highlight:  "#3B4252",
	border:     "#4C566A",
	primary:    "#88C0D0", // Nord8
	secondary:  "#81A1C1", // Nord9
	info:       "#5E81AC", // Nord10
	success:    "#A3BE8C", // Nord14
	warning:    "#EBCB8B", // Nord13
	danger:     "#BF616A", // Nord11
}

// Dracula - https://draculatheme.com/
var dracula = palette{
	background: "#282A36",
	foreground: "#F8F8F2",
	subtle:     "#6272A4",
	highlight:  "#44475A",
	border:     "#6272A4",
	primary:    "#BD93F9", // Purple
	secondary:  "#8BE9FD", // Cyan
	info:       "#8BE9FD",
	success:    "#50FA7B",
	warning:    "#F1FA8C",
	danger:     "#FF5555",
}

// Gruvbox dark - https://github.com/morhetz/gruvbox
var gruvbox = palette{
	background: "#282828",
	foreground: "#EBDBB2",
	subtle:     "#928374",
	highlight:  "#3C3836",
	border:     "#504945",
	primary:    "#83A598", // Aqua
	secondary:  "#8EC07C",
	info:       "#83A598",
	success:    "#B8BB26",
	warning:    "#FABD2F",
	danger:     "#FB4934",
}

// Catppuccin Mocha - https://catppuccin.com/
var catppuccin = palette{
	background: "#1E1E2E",
	foreground: "#CDD6F4",
	subtle:     "#6C7086",
	highlight:  "#313244",
	border:     "#45475A",
	primary:    "#89B4FA", // Blue
	secondary:  "#CBA6F7", // Mauve
	info:       "#74C7EC", // Sapphire
	success:    "#A6E3A1",
	warning:    "#F9E2AF",
	danger:     "#F38BA8",
}

// presetOrder is the cycle order for switching presets at runtime
var presetOrder = []string{DefaultPreset, "nord", "dracula", "gruvbox", "catppuccin"}

// presets are partial color tables laid between the defaults and the
// user's own colors. The default preset has no entry.
var presets = map[string]ColorsFile{
	"nord":       nord.colors(),
	"dracula":    dracula.colors(),
	"gruvbox":    gruvbox.colors(),
	"catppuccin": catppuccin.colors(),
}

// Presets returns the preset names in cycle order
func Presets() []string {
	return append([]string(nil), presetOrder...)
}

// IsPreset reports whether name is a known preset
func IsPreset(name string) bool {
	for _, p := range presetOrder {
		if p == name {
			return true
		}
	}
	return false
}

// NextPreset returns the preset after name, wrapping around
func NextPreset(name string) string {
	for i, p := range presetOrder {
		if p == name {
			return presetOrder[(i+1)%len(presetOrder)]
		}
	}
	return DefaultPreset
}

func (p palette) colors() ColorsFile {
	s := func(v string) *string { return &v }
	return ColorsFile{
		FG:                         s(p.foreground),
		BG:                         s(p.background),
		SecondaryFG:                s(p.subtle),
		TertiaryFG:                 s(p.border),
		HighlightFG:                s(p.info),
		Primary:                    s(p.primary),
		Success:                    s(p.success),
		Warning:                    s(p.warning),
		Danger:                     s(p.danger),
		DateFG:                     s(p.secondary),
		TimeFG:                     s(p.subtle),
		InputFG:                    s(p.foreground),
		InputBG:                    s(p.highlight),
		InputFocusFG:               s(p.foreground),
		InputFocusBG:               s(p.border),
		InputCursorBG:              s(p.subtle),
		InputCursorInsertBG:        s(p.foreground),
		ActiveFG:                   s(p.background),
		ActiveBG:                   s(p.primary),
		Border:                     s(p.highlight),
		BorderActive:               s(p.subtle),
		BorderInsert:               s(p.primary),
		PopupBG:                    s(p.background),
		PopupBorder:                s(p.secondary),
		KeybindKey:                 s(p.secondary),
		KeybindFG:                  s(p.primary),
		TitleBarBG:                 s(p.highlight),
		TitleBarFG:                 s(p.foreground),
		TabFG:                      s(p.subtle),
		TabActiveFG:                s(p.foreground),
		TabBorder:                  s(p.highlight),
		StatusBarBG:                s(p.highlight),
		StatusBarFG:                s(p.subtle),
		StatusBarNormalModeBG:      s(p.success),
		StatusBarNormalModeFG:      s(p.background),
		StatusBarInsertModeBG:      s(p.primary),
		StatusBarInsertModeFG:      s(p.background),
		StatusBarInteractiveModeBG: s(p.warning),
		StatusBarInteractiveModeFG: s(p.background),
		StatusBarDeleteModeBG:      s(p.danger),
		StatusBarDeleteModeFG:      s(p.background),
	}
}
