package app

// View is the layer of the screen that currently receives keys
type View int

const (
	ViewDefault View = iota
	ViewPopup
	ViewCommand
)

// Mode is the input mode within the current view
type Mode int

const (
	ModeNavigation Mode = iota
	ModeInsert
	ModeDelete
	ModePopup
	ModeCommand
)

// String returns the status bar label for a mode
func (m Mode) String() string {
	switch m {
	case ModeNavigation:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeDelete:
		return "DELETE"
	case ModePopup:
		return "POPUP"
	case ModeCommand:
		return "COMMAND"
	default:
		return "UNKNOWN"
	}
}

// Display is the (view, mode) pair. The two always change together.
type Display struct {
	View View
	Mode Mode
}

// Module is a top-level screen
type Module int

const (
	ModuleDashboard Module = iota
	ModuleProjectManagement
)

func (m Module) String() string {
	switch m {
	case ModuleDashboard:
		return "Dashboard"
	case ModuleProjectManagement:
		return "Project Management"
	default:
		return "Unknown"
	}
}

// Modules returns every module in tab order
func Modules() []Module {
	return []Module{ModuleDashboard, ModuleProjectManagement}
}

// Popup is an app-wide popup drawn over any module
type Popup int

const (
	PopupNone Popup = iota
	PopupHelp
)

// State is the focus and navigation state shared by every screen
type State struct {
	Display Display
	Module  Module
	Popup   Popup
	Exit    bool

	saved []Display
}

// NewState returns the initial state: the dashboard in navigation mode
func NewState() *State {
	return &State{
		Display: Display{View: ViewDefault, Mode: ModeNavigation},
		Module:  ModuleDashboard,
	}
}

// baseMode is the mode a view returns to when insert or delete ends
func baseMode(v View) Mode {
	switch v {
	case ViewPopup:
		return ModePopup
	case ViewCommand:
		return ModeCommand
	default:
		return ModeNavigation
	}
}

// BaseMode returns the resting mode of the current view
func (s *State) BaseMode() Mode {
	return baseMode(s.Display.View)
}

// OpenPopup saves the current display and switches to the popup view in
// one step. Editors open in insert mode, viewers in popup mode.
func (s *State) OpenPopup(mode Mode) {
	s.saved = append(s.saved, s.Display)
	s.Display = Display{View: ViewPopup, Mode: mode}
}

// ClosePopup restores the display saved by the matching OpenPopup or
// OpenCommand
func (s *State) ClosePopup() {
	if n := len(s.saved); n > 0 {
		s.Display = s.saved[n-1]
		s.saved = s.saved[:n-1]
		return
	}
	s.Display = Display{View: ViewDefault, Mode: ModeNavigation}
}

// OpenCommand saves the current display and opens the command palette in
// insert mode
func (s *State) OpenCommand() {
	s.saved = append(s.saved, s.Display)
	s.Display = Display{View: ViewCommand, Mode: ModeInsert}
}

// CloseCommand restores the display saved by OpenCommand
func (s *State) CloseCommand() {
	s.ClosePopup()
}

// EnterInsert switches the current view to insert mode
func (s *State) EnterInsert() {
	s.Display.Mode = ModeInsert
}

// EnterDelete switches the current view to delete mode
func (s *State) EnterDelete() {
	s.Display.Mode = ModeDelete
}

// Normal returns the current view to its resting mode
func (s *State) Normal() {
	s.Display.Mode = s.BaseMode()
}

// Is reports whether the display is exactly (v, m)
func (s *State) Is(v View, m Mode) bool {
	return s.Display.View == v && s.Display.Mode == m
}

// SwitchModule changes the active module and drops any saved displays
func (s *State) SwitchModule(m Module) {
	s.Module = m
	s.saved = nil
	s.Display = Display{View: ViewDefault, Mode: ModeNavigation}
}

// OpenHelp shows the app-wide help popup
func (s *State) OpenHelp() {
	s.Popup = PopupHelp
	s.OpenPopup(ModePopup)
}

// CloseHelp hides the app-wide help popup
func (s *State) CloseHelp() {
	s.Popup = PopupNone
	s.ClosePopup()
}

// Quit marks the program for exit
func (s *State) Quit() {
	s.Exit = true
}
