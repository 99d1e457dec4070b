package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/kanri/internal/config"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme defines the color scheme for the UI
type Theme struct {
	Name string

	// Base colors
	Background lipgloss.Color
	Foreground lipgloss.Color
	Subtle     lipgloss.Color
	Faint      lipgloss.Color
	Highlight  lipgloss.Color

	// Semantic colors
	Primary lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Date    lipgloss.Color
	Time    lipgloss.Color

	// Borders
	Border       lipgloss.Color
	BorderActive lipgloss.Color
	BorderInsert lipgloss.Color
	PopupBorder  lipgloss.Color
	PopupBG      lipgloss.Color

	// Inputs
	Input          lipgloss.Color
	InputBG        lipgloss.Color
	InputFocus     lipgloss.Color
	InputFocusBG   lipgloss.Color
	Cursor         lipgloss.Color
	CursorBG       lipgloss.Color
	CursorInsert   lipgloss.Color
	CursorInsertBG lipgloss.Color
	Active         lipgloss.Color
	ActiveBG       lipgloss.Color

	// Chrome
	KeybindKey  lipgloss.Color
	KeybindDesc lipgloss.Color
	TitleBar    lipgloss.Color
	TitleBarBG  lipgloss.Color
	Tab         lipgloss.Color
	TabActive   lipgloss.Color
	TabBorder   lipgloss.Color
	StatusBar   lipgloss.Color
	StatusBarBG lipgloss.Color

	// Status bar mode badges, foreground then background
	NormalMode      [2]lipgloss.Color
	InsertMode      [2]lipgloss.Color
	InteractiveMode [2]lipgloss.Color
	DeleteMode      [2]lipgloss.Color
}

// FromColors builds a theme from a merged config palette
func FromColors(c config.Colors) Theme {
	col := func(s string) lipgloss.Color { return lipgloss.Color(s) }
	return Theme{
		Name:           c.Preset,
		Background:     col(c.BG),
		Foreground:     col(c.FG),
		Subtle:         col(c.SecondaryFG),
		Faint:          col(c.TertiaryFG),
		Highlight:      col(c.HighlightFG),
		Primary:        col(c.Primary),
		Success:        col(c.Success),
		Warning:        col(c.Warning),
		Error:          col(c.Danger),
		Date:           col(c.DateFG),
		Time:           col(c.TimeFG),
		Border:         col(c.Border),
		BorderActive:   col(c.BorderActive),
		BorderInsert:   col(c.BorderInsert),
		PopupBorder:    col(c.PopupBorder),
		PopupBG:        col(c.PopupBG),
		Input:          col(c.InputFG),
		InputBG:        col(c.InputBG),
		InputFocus:     col(c.InputFocusFG),
		InputFocusBG:   col(c.InputFocusBG),
		Cursor:         col(c.InputCursorFG),
		CursorBG:       col(c.InputCursorBG),
		CursorInsert:   col(c.InputCursorInsertFG),
		CursorInsertBG: col(c.InputCursorInsertBG),
		Active:         col(c.ActiveFG),
		ActiveBG:       col(c.ActiveBG),
		KeybindKey:     col(c.KeybindKey),
		KeybindDesc:    col(c.KeybindFG),
		TitleBar:       col(c.TitleBarFG),
		TitleBarBG:     col(c.TitleBarBG),
		Tab:            col(c.TabFG),
		TabActive:      col(c.TabActiveFG),
		TabBorder:      col(c.TabBorder),
		StatusBar:      col(c.StatusBarFG),
		StatusBarBG:    col(c.StatusBarBG),

		NormalMode:      [2]lipgloss.Color{col(c.StatusBarNormalModeFG), col(c.StatusBarNormalModeBG)},
		InsertMode:      [2]lipgloss.Color{col(c.StatusBarInsertModeFG), col(c.StatusBarInsertModeBG)},
		InteractiveMode: [2]lipgloss.Color{col(c.StatusBarInteractiveModeFG), col(c.StatusBarInteractiveModeBG)},
		DeleteMode:      [2]lipgloss.Color{col(c.StatusBarDeleteModeFG), col(c.StatusBarDeleteModeBG)},
	}
}

// ColorOr parses a user supplied hex color, returning fallback when the
// value is empty, partial or not a color
func ColorOr(hex string, fallback lipgloss.Color) lipgloss.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallback
	}
	return lipgloss.Color(c.Hex())
}

// Styles holds pre-computed lipgloss styles based on theme
type Styles struct {
	// Base styles
	App    lipgloss.Style
	Header lipgloss.Style
	Footer lipgloss.Style

	// Tabs
	Tab       lipgloss.Style
	TabActive lipgloss.Style

	// Card styles
	CardNormal   lipgloss.Style
	CardSelected lipgloss.Style
	CardDone     lipgloss.Style
	CardOverdue  lipgloss.Style

	// Component styles
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	DueDate  lipgloss.Style
	Time     lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style

	// Input styles
	Input        lipgloss.Style
	InputFocused lipgloss.Style
	InputInsert  lipgloss.Style
	Placeholder  lipgloss.Style
	Button       lipgloss.Style
	ButtonActive lipgloss.Style

	// Panel styles
	Panel       lipgloss.Style
	PanelActive lipgloss.Style
	PanelInsert lipgloss.Style
	PanelTitle  lipgloss.Style
	Popup       lipgloss.Style

	// Help styles
	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style

	// Status bar
	StatusBar    lipgloss.Style
	StatusNormal lipgloss.Style
	StatusInsert lipgloss.Style
	StatusPopup  lipgloss.Style
	StatusDelete lipgloss.Style
	StatusKey    lipgloss.Style
	StatusValue  lipgloss.Style
}

func badge(c [2]lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(c[0]).
		Background(c[1]).
		Bold(true).
		Padding(0, 1)
}

func box(border lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
}

// NewStyles creates styles from a theme
func NewStyles(t Theme) Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Foreground(t.Foreground),

		Header: lipgloss.NewStyle().
			Foreground(t.TitleBar).
			Background(t.TitleBarBG).
			Bold(true).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Padding(0, 1),

		Tab: lipgloss.NewStyle().
			Foreground(t.Tab).
			Padding(0, 1),

		TabActive: lipgloss.NewStyle().
			Foreground(t.TabActive).
			Bold(true).
			Underline(true).
			Padding(0, 1),

		CardNormal: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 1),

		CardSelected: lipgloss.NewStyle().
			Foreground(t.Active).
			Background(t.ActiveBG).
			Padding(0, 1),

		CardDone: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Strikethrough(true).
			Padding(0, 1),

		CardOverdue: lipgloss.NewStyle().
			Foreground(t.Error).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Italic(true),

		Label: lipgloss.NewStyle().
			Foreground(t.Subtle),

		DueDate: lipgloss.NewStyle().
			Foreground(t.Date),

		Time: lipgloss.NewStyle().
			Foreground(t.Time),

		Success: lipgloss.NewStyle().
			Foreground(t.Success),

		Error: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		Input:        box(t.Border).Foreground(t.Input),
		InputFocused: box(t.BorderActive).Foreground(t.InputFocus),
		InputInsert:  box(t.BorderInsert).Foreground(t.InputFocus),

		Placeholder: lipgloss.NewStyle().
			Foreground(t.Faint),

		Button: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Padding(0, 1),

		ButtonActive: lipgloss.NewStyle().
			Foreground(t.Active).
			Background(t.ActiveBG).
			Bold(true).
			Padding(0, 1),

		Panel:       box(t.Border),
		PanelActive: box(t.BorderActive),
		PanelInsert: box(t.BorderInsert),

		PanelTitle: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Padding(0, 1),

		Popup: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.PopupBorder).
			Padding(1, 2),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.KeybindKey).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.KeybindDesc),

		HelpSeparator: lipgloss.NewStyle().
			Foreground(t.Border),

		StatusBar: lipgloss.NewStyle().
			Background(t.StatusBarBG).
			Foreground(t.StatusBar).
			Padding(0, 1),

		StatusNormal: badge(t.NormalMode),
		StatusInsert: badge(t.InsertMode),
		StatusPopup:  badge(t.InteractiveMode),
		StatusDelete: badge(t.DeleteMode),

		StatusKey: lipgloss.NewStyle().
			Foreground(t.KeybindKey).
			Bold(true),

		StatusValue: lipgloss.NewStyle().
			Foreground(t.StatusBar),
	}
}

// Current holds the current active theme and styles
var Current = struct {
	Theme  Theme
	Styles Styles
}{
	Theme:  FromColors(config.Default().Colors),
	Styles: NewStyles(FromColors(config.Default().Colors)),
}

// SetTheme changes the current theme
func SetTheme(t Theme) {
	Current.Theme = t
	Current.Styles = NewStyles(t)
}

// Apply switches the current theme to a merged config palette
func Apply(c config.Colors) {
	SetTheme(FromColors(c))
}
