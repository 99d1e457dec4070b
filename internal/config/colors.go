package config

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultPreset is the preset used when none or an unknown one is named
const DefaultPreset = "default"

// Colors is the merged color palette. Values stay hex strings until the UI
// turns them into styles.
type Colors struct {
	Preset                     string
	FG                         string
	BG                         string
	SecondaryFG                string
	TertiaryFG                 string
	HighlightFG                string
	Primary                    string
	Success                    string
	Warning                    string
	Danger                     string
	DateFG                     string
	TimeFG                     string
	InputFG                    string
	InputBG                    string
	InputFocusFG               string
	InputFocusBG               string
	InputCursorFG              string
	InputCursorBG              string
	InputCursorInsertFG        string
	InputCursorInsertBG        string
	ActiveFG                   string
	ActiveBG                   string
	Border                     string
	BorderActive               string
	BorderInsert               string
	PopupBG                    string
	PopupBorder                string
	KeybindKey                 string
	KeybindFG                  string
	TitleBarBG                 string
	TitleBarFG                 string
	TabFG                      string
	TabActiveFG                string
	TabBorder                  string
	StatusBarBG                string
	StatusBarFG                string
	StatusBarNormalModeBG      string
	StatusBarNormalModeFG      string
	StatusBarInsertModeBG      string
	StatusBarInsertModeFG      string
	StatusBarInteractiveModeBG string
	StatusBarInteractiveModeFG string
	StatusBarDeleteModeBG      string
	StatusBarDeleteModeFG      string
}

// ColorsFile is the optional [colors] table of a config file
type ColorsFile struct {
	Preset                     *string `toml:"preset"`
	FG                         *string `toml:"fg"`
	BG                         *string `toml:"bg"`
	SecondaryFG                *string `toml:"secondary_fg"`
	TertiaryFG                 *string `toml:"tertiary_fg"`
	HighlightFG                *string `toml:"highlight_fg"`
	Primary                    *string `toml:"primary"`
	Success                    *string `toml:"success"`
	Warning                    *string `toml:"warning"`
	Danger                     *string `toml:"danger"`
	DateFG                     *string `toml:"date_fg"`
	TimeFG                     *string `toml:"time_fg"`
	InputFG                    *string `toml:"input_fg"`
	InputBG                    *string `toml:"input_bg"`
	InputFocusFG               *string `toml:"input_focus_fg"`
	InputFocusBG               *string `toml:"input_focus_bg"`
	InputCursorFG              *string `toml:"input_cursor_fg"`
	InputCursorBG              *string `toml:"input_cursor_bg"`
	InputCursorInsertFG        *string `toml:"input_cursor_insert_fg"`
	InputCursorInsertBG        *string `toml:"input_cursor_insert_bg"`
	ActiveFG                   *string `toml:"active_fg"`
	ActiveBG                   *string `toml:"active_bg"`
	Border                     *string `toml:"border"`
	BorderActive               *string `toml:"border_active"`
	BorderInsert               *string `toml:"border_insert"`
	PopupBG                    *string `toml:"popup_bg"`
	PopupBorder                *string `toml:"popup_border"`
	KeybindKey                 *string `toml:"keybind_key"`
	KeybindFG                  *string `toml:"keybind_fg"`
	TitleBarBG                 *string `toml:"title_bar_bg"`
	TitleBarFG                 *string `toml:"title_bar_fg"`
	TabFG                      *string `toml:"tab_fg"`
	TabActiveFG                *string `toml:"tab_active_fg"`
	TabBorder                  *string `toml:"tab_border"`
	StatusBarBG                *string `toml:"status_bar_bg"`
	StatusBarFG                *string `toml:"status_bar_fg"`
	StatusBarNormalModeBG      *string `toml:"status_bar_normal_mode_bg"`
	StatusBarNormalModeFG      *string `toml:"status_bar_normal_mode_fg"`
	StatusBarInsertModeBG      *string `toml:"status_bar_insert_mode_bg"`
	StatusBarInsertModeFG      *string `toml:"status_bar_insert_mode_fg"`
	StatusBarInteractiveModeBG *string `toml:"status_bar_interactive_mode_bg"`
	StatusBarInteractiveModeFG *string `toml:"status_bar_interactive_mode_fg"`
	StatusBarDeleteModeBG      *string `toml:"status_bar_delete_mode_bg"`
	StatusBarDeleteModeFG      *string `toml:"status_bar_delete_mode_fg"`
}

func defaultColors() Colors {
	const (
		fg          = "#c0caf5"
		secondaryFG = "#7f87ac"
		tertiaryFG  = "#2c344d"
		bg          = "#11121D"
		secondaryBG = "#232b44"
		tertiaryBG  = "#373f58"
	)

	return Colors{
		Preset:                     DefaultPreset,
		FG:                         fg,
		BG:                         bg,
		SecondaryFG:                secondaryFG,
		TertiaryFG:                 tertiaryFG,
		HighlightFG:                "#61a4ff",
		Primary:                    "#9556f7",
		Success:                    "#85f67a",
		Warning:                    "#ff9382",
		Danger:                     "#ff4d66",
		DateFG:                     "#9293b8",
		TimeFG:                     "#717299",
		InputFG:                    fg,
		InputBG:                    secondaryBG,
		InputFocusFG:               fg,
		InputFocusBG:               tertiaryBG,
		InputCursorFG:              "#000000",
		InputCursorBG:              secondaryFG,
		InputCursorInsertFG:        "#000000",
		InputCursorInsertBG:        fg,
		ActiveFG:                   secondaryBG,
		ActiveBG:                   "#00ffff",
		Border:                     secondaryBG,
		BorderActive:               "#4d556e",
		BorderInsert:               "#00FFFF",
		PopupBG:                    bg,
		PopupBorder:                "#A485DD",
		KeybindKey:                 "#A485DD",
		KeybindFG:                  "#6698FF",
		TitleBarBG:                 tertiaryBG,
		TitleBarFG:                 "#CCCCCC",
		TabFG:                      secondaryFG,
		TabActiveFG:                fg,
		TabBorder:                  tertiaryBG,
		StatusBarBG:                secondaryBG,
		StatusBarFG:                secondaryFG,
		StatusBarNormalModeBG:      "#9bff46",
		StatusBarNormalModeFG:      secondaryBG,
		StatusBarInsertModeBG:      "#00ffff",
		StatusBarInsertModeFG:      secondaryBG,
		StatusBarInteractiveModeBG: "#ffff32",
		StatusBarInteractiveModeFG: secondaryBG,
		StatusBarDeleteModeBG:      "#ff4d66",
		StatusBarDeleteModeFG:      secondaryBG,
	}
}

// colorFields maps every color of the file onto the merged palette
var colorFields = []pair[Colors, ColorsFile]{
	field(func(c *Colors) *string { return &c.FG }, func(f *ColorsFile) *string { return f.FG }),
	field(func(c *Colors) *string { return &c.BG }, func(f *ColorsFile) *string { return f.BG }),
	field(func(c *Colors) *string { return &c.SecondaryFG }, func(f *ColorsFile) *string { return f.SecondaryFG }),
	field(func(c *Colors) *string { return &c.TertiaryFG }, func(f *ColorsFile) *string { return f.TertiaryFG }),
	field(func(c *Colors) *string { return &c.HighlightFG }, func(f *ColorsFile) *string { return f.HighlightFG }),
	field(func(c *Colors) *string { return &c.Primary }, func(f *ColorsFile) *string { return f.Primary }),
	field(func(c *Colors) *string { return &c.Success }, func(f *ColorsFile) *string { return f.Success }),
	field(func(c *Colors) *string { return &c.Warning }, func(f *ColorsFile) *string { return f.Warning }),
	field(func(c *Colors) *string { return &c.Danger }, func(f *ColorsFile) *string { return f.Danger }),
	field(func(c *Colors) *string { return &c.DateFG }, func(f *ColorsFile) *string { return f.DateFG }),
	field(func(c *Colors) *string { return &c.TimeFG }, func(f *ColorsFile) *string { return f.TimeFG }),
	field(func(c *Colors) *string { return &c.InputFG }, func(f *ColorsFile) *string { return f.InputFG }),
	field(func(c *Colors) *string { return &c.InputBG }, func(f *ColorsFile) *string { return f.InputBG }),
	field(func(c *Colors) *string { return &c.InputFocusFG }, func(f *ColorsFile) *string { return f.InputFocusFG }),
	field(func(c *Colors) *string { return &c.InputFocusBG }, func(f *ColorsFile) *string { return f.InputFocusBG }),
	field(func(c *Colors) *string { return &c.InputCursorFG }, func(f *ColorsFile) *string { return f.InputCursorFG }),
	field(func(c *Colors) *string { return &c.InputCursorBG }, func(f *ColorsFile) *string { return f.InputCursorBG }),
	field(func(c *Colors) *string { return &c.InputCursorInsertFG }, func(f *ColorsFile) *string { return f.InputCursorInsertFG }),
	field(func(c *Colors) *string { return &c.InputCursorInsertBG }, func(f *ColorsFile) *string { return f.InputCursorInsertBG }),
	field(func(c *Colors) *string { return &c.ActiveFG }, func(f *ColorsFile) *string { return f.ActiveFG }),
	field(func(c *Colors) *string { return &c.ActiveBG }, func(f *ColorsFile) *string { return f.ActiveBG }),
	field(func(c *Colors) *string { return &c.Border }, func(f *ColorsFile) *string { return f.Border }),
	field(func(c *Colors) *string { return &c.BorderActive }, func(f *ColorsFile) *string { return f.BorderActive }),
	field(func(c *Colors) *string { return &c.BorderInsert }, func(f *ColorsFile) *string { return f.BorderInsert }),
	field(func(c *Colors) *string { return &c.PopupBG }, func(f *ColorsFile) *string { return f.PopupBG }),
	field(func(c *Colors) *string { return &c.PopupBorder }, func(f *ColorsFile) *string { return f.PopupBorder }),
	field(func(c *Colors) *string { return &c.KeybindKey }, func(f *ColorsFile) *string { return f.KeybindKey }),
	field(func(c *Colors) *string { return &c.KeybindFG }, func(f *ColorsFile) *string { return f.KeybindFG }),
	field(func(c *Colors) *string { return &c.TitleBarBG }, func(f *ColorsFile) *string { return f.TitleBarBG }),
	field(func(c *Colors) *string { return &c.TitleBarFG }, func(f *ColorsFile) *string { return f.TitleBarFG }),
	field(func(c *Colors) *string { return &c.TabFG }, func(f *ColorsFile) *string { return f.TabFG }),
	field(func(c *Colors) *string { return &c.TabActiveFG }, func(f *ColorsFile) *string { return f.TabActiveFG }),
	field(func(c *Colors) *string { return &c.TabBorder }, func(f *ColorsFile) *string { return f.TabBorder }),
	field(func(c *Colors) *string { return &c.StatusBarBG }, func(f *ColorsFile) *string { return f.StatusBarBG }),
	field(func(c *Colors) *string { return &c.StatusBarFG }, func(f *ColorsFile) *string { return f.StatusBarFG }),
	field(func(c *Colors) *string { return &c.StatusBarNormalModeBG }, func(f *ColorsFile) *string { return f.StatusBarNormalModeBG }),
	field(func(c *Colors) *string { return &c.StatusBarNormalModeFG }, func(f *ColorsFile) *string { return f.StatusBarNormalModeFG }),
	field(func(c *Colors) *string { return &c.StatusBarInsertModeBG }, func(f *ColorsFile) *string { return f.StatusBarInsertModeBG }),
	field(func(c *Colors) *string { return &c.StatusBarInsertModeFG }, func(f *ColorsFile) *string { return f.StatusBarInsertModeFG }),
	field(func(c *Colors) *string { return &c.StatusBarInteractiveModeBG }, func(f *ColorsFile) *string { return f.StatusBarInteractiveModeBG }),
	field(func(c *Colors) *string { return &c.StatusBarInteractiveModeFG }, func(f *ColorsFile) *string { return f.StatusBarInteractiveModeFG }),
	field(func(c *Colors) *string { return &c.StatusBarDeleteModeBG }, func(f *ColorsFile) *string { return f.StatusBarDeleteModeBG }),
	field(func(c *Colors) *string { return &c.StatusBarDeleteModeFG }, func(f *ColorsFile) *string { return f.StatusBarDeleteModeFG }),
}

// named returns every color with its config key, in file order
func (c *Colors) named() []struct{ key, value string } {
	return []struct{ key, value string }{
		{"fg", c.FG},
		{"bg", c.BG},
		{"secondary_fg", c.SecondaryFG},
		{"tertiary_fg", c.TertiaryFG},
		{"highlight_fg", c.HighlightFG},
		{"primary", c.Primary},
		{"success", c.Success},
		{"warning", c.Warning},
		{"danger", c.Danger},
		{"date_fg", c.DateFG},
		{"time_fg", c.TimeFG},
		{"input_fg", c.InputFG},
		{"input_bg", c.InputBG},
		{"input_focus_fg", c.InputFocusFG},
		{"input_focus_bg", c.InputFocusBG},
		{"input_cursor_fg", c.InputCursorFG},
		{"input_cursor_bg", c.InputCursorBG},
		{"input_cursor_insert_fg", c.InputCursorInsertFG},
		{"input_cursor_insert_bg", c.InputCursorInsertBG},
		{"active_fg", c.ActiveFG},
		{"active_bg", c.ActiveBG},
		{"border", c.Border},
		{"border_active", c.BorderActive},
		{"border_insert", c.BorderInsert},
		{"popup_bg", c.PopupBG},
		{"popup_border", c.PopupBorder},
		{"keybind_key", c.KeybindKey},
		{"keybind_fg", c.KeybindFG},
		{"title_bar_bg", c.TitleBarBG},
		{"title_bar_fg", c.TitleBarFG},
		{"tab_fg", c.TabFG},
		{"tab_active_fg", c.TabActiveFG},
		{"tab_border", c.TabBorder},
		{"status_bar_bg", c.StatusBarBG},
		{"status_bar_fg", c.StatusBarFG},
		{"status_bar_normal_mode_bg", c.StatusBarNormalModeBG},
		{"status_bar_normal_mode_fg", c.StatusBarNormalModeFG},
		{"status_bar_insert_mode_bg", c.StatusBarInsertModeBG},
		{"status_bar_insert_mode_fg", c.StatusBarInsertModeFG},
		{"status_bar_interactive_mode_bg", c.StatusBarInteractiveModeBG},
		{"status_bar_interactive_mode_fg", c.StatusBarInteractiveModeFG},
		{"status_bar_delete_mode_bg", c.StatusBarDeleteModeBG},
		{"status_bar_delete_mode_fg", c.StatusBarDeleteModeFG},
	}
}

// Validate checks that every color is a #rrggbb hex value
func (c *Colors) Validate() error {
	for _, nc := range c.named() {
		if _, err := colorful.Hex(nc.value); err != nil {
			return fmt.Errorf("colors.%s: invalid color %q", nc.key, nc.value)
		}
	}
	return nil
}
