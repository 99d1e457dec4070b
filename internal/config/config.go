package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

var (
	// ErrIncompleteProfile is returned when a profile in the file is missing
	// one of its fields
	ErrIncompleteProfile = errors.New("incomplete profile")
	// ErrUnknownProfile is returned when the requested profile is not listed
	ErrUnknownProfile = errors.New("unknown profile")
)

// Config is the merged configuration
type Config struct {
	LogLevel       string
	DefaultProfile string
	Colors         Colors
	Modules        Modules
	Profiles       []Profile

	// userColors is the file's color table, reapplied when the preset changes
	userColors *ColorsFile
}

type Modules struct {
	Home              HomeModule
	ProjectManagement ProjectManagementModule
}

type HomeModule struct {
	DashboardTitle   string
	DashboardMessage string
}

type ProjectManagementModule struct {
	MaxLists       int
	DueSoonDays    int
	CompletedChar  string
	OverdueChar    string
	DueSoonChar    string
	InProgressChar string
	ImportantChar  string
	DefaultChar    string
}

// Profile names a separate set of config, data and log files
type Profile struct {
	Name       string
	ConfigFile string
	DBFile     string
	LogFile    string
}

// File is a config file as written by the user. Every field is optional.
type File struct {
	LogLevel       *string        `toml:"log_level"`
	DefaultProfile *string        `toml:"default_profile"`
	Profiles       *[]ProfileFile `toml:"profiles"`
	Colors         *ColorsFile    `toml:"colors"`
	Modules        *ModulesFile   `toml:"modules"`
}

type ModulesFile struct {
	Home              *HomeFile              `toml:"home"`
	ProjectManagement *ProjectManagementFile `toml:"project_management"`
}

type HomeFile struct {
	DashboardTitle   *string `toml:"dashboard_title"`
	DashboardMessage *string `toml:"dashboard_message"`
}

type ProjectManagementFile struct {
	MaxLists       *int    `toml:"max_lists"`
	DueSoonDays    *int    `toml:"due_soon_days"`
	CompletedChar  *string `toml:"completed_char"`
	OverdueChar    *string `toml:"overdue_char"`
	DueSoonChar    *string `toml:"due_soon_char"`
	InProgressChar *string `toml:"in_progress_char"`
	ImportantChar  *string `toml:"important_char"`
	DefaultChar    *string `toml:"default_char"`
}

type ProfileFile struct {
	Name       *string `toml:"name"`
	ConfigFile *string `toml:"config_file"`
	DBFile     *string `toml:"db_file"`
	LogFile    *string `toml:"log_file"`
}

// DefaultProfile is used when no profile is requested
var DefaultProfile = Profile{
	Name:       "default",
	ConfigFile: "config.toml",
	DBFile:     "data.db",
	LogFile:    "debug.log",
}

// Default returns the compiled-in configuration
func Default() Config {
	return Config{
		LogLevel: "info",
		Colors:   defaultColors(),
		Modules: Modules{
			Home: HomeModule{
				DashboardTitle:   "Kanri",
				DashboardMessage: "Manage your personal life privately and securely.",
			},
			ProjectManagement: ProjectManagementModule{
				MaxLists:       5,
				DueSoonDays:    3,
				CompletedChar:  "✅",
				OverdueChar:    "🚫",
				DueSoonChar:    "⏰",
				InProgressChar: "🌐",
				ImportantChar:  "⭐",
				DefaultChar:    " ",
			},
		},
		Profiles: []Profile{{
			Name:       "dev",
			ConfigFile: "dev.toml",
			DBFile:     "dev.db",
			LogFile:    "dev.log",
		}},
	}
}

// DevBase returns the base used under a named profile
func DevBase(base Config) Config {
	base.LogLevel = "debug"
	base.Modules.Home.DashboardTitle = "DEVELOPER PROFILE ENABLED"
	base.Modules.Home.DashboardMessage = "This profile's data is separate!"
	return base
}

var homeFields = []pair[HomeModule, HomeFile]{
	field(func(b *HomeModule) *string { return &b.DashboardTitle }, func(o *HomeFile) *string { return o.DashboardTitle }),
	field(func(b *HomeModule) *string { return &b.DashboardMessage }, func(o *HomeFile) *string { return o.DashboardMessage }),
}

var projectManagementFields = []pair[ProjectManagementModule, ProjectManagementFile]{
	field(func(b *ProjectManagementModule) *int { return &b.MaxLists }, func(o *ProjectManagementFile) *int { return o.MaxLists }),
	field(func(b *ProjectManagementModule) *int { return &b.DueSoonDays }, func(o *ProjectManagementFile) *int { return o.DueSoonDays }),
	field(func(b *ProjectManagementModule) *string { return &b.CompletedChar }, func(o *ProjectManagementFile) *string { return o.CompletedChar }),
	field(func(b *ProjectManagementModule) *string { return &b.OverdueChar }, func(o *ProjectManagementFile) *string { return o.OverdueChar }),
	field(func(b *ProjectManagementModule) *string { return &b.DueSoonChar }, func(o *ProjectManagementFile) *string { return o.DueSoonChar }),
	field(func(b *ProjectManagementModule) *string { return &b.InProgressChar }, func(o *ProjectManagementFile) *string { return o.InProgressChar }),
	field(func(b *ProjectManagementModule) *string { return &b.ImportantChar }, func(o *ProjectManagementFile) *string { return o.ImportantChar }),
	field(func(b *ProjectManagementModule) *string { return &b.DefaultChar }, func(o *ProjectManagementFile) *string { return o.DefaultChar }),
}

// Merge lays a config file over a base configuration. Scalars in the file
// win when present. An absent group passes through whole; a present group
// is merged field by field. A profiles list replaces the base list.
func Merge(base Config, f File) (Config, error) {
	out := base

	if f.LogLevel != nil {
		out.LogLevel = *f.LogLevel
	}
	if f.DefaultProfile != nil {
		out.DefaultProfile = *f.DefaultProfile
	}

	if f.Colors != nil {
		preset := DefaultPreset
		if f.Colors.Preset != nil && IsPreset(*f.Colors.Preset) {
			preset = *f.Colors.Preset
		}
		out.userColors = f.Colors
		out.Colors = applyColors(base.Colors, preset, f.Colors)
	}

	if f.Modules != nil {
		out.Modules.Home = mergeGroup(base.Modules.Home, f.Modules.Home, homeFields)
		out.Modules.ProjectManagement = mergeGroup(base.Modules.ProjectManagement,
			f.Modules.ProjectManagement, projectManagementFields)
	}

	if f.Profiles != nil {
		profiles := make([]Profile, 0, len(*f.Profiles))
		for i, p := range *f.Profiles {
			resolved, err := p.resolve()
			if err != nil {
				return Config{}, fmt.Errorf("profiles[%d]: %w", i, err)
			}
			profiles = append(profiles, resolved)
		}
		out.Profiles = profiles
	}

	return out, nil
}

func (p ProfileFile) resolve() (Profile, error) {
	missing := func(name string) error {
		return fmt.Errorf("%w: %s not provided", ErrIncompleteProfile, name)
	}
	switch {
	case p.Name == nil:
		return Profile{}, missing("name")
	case p.ConfigFile == nil:
		return Profile{}, missing("config_file")
	case p.DBFile == nil:
		return Profile{}, missing("db_file")
	case p.LogFile == nil:
		return Profile{}, missing("log_file")
	}
	return Profile{Name: *p.Name, ConfigFile: *p.ConfigFile, DBFile: *p.DBFile, LogFile: *p.LogFile}, nil
}

// applyColors lays the preset and then the user's colors over base
func applyColors(base Colors, preset string, user *ColorsFile) Colors {
	out := base
	if p, ok := presets[preset]; ok {
		out = mergeGroup(out, &p, colorFields)
	}
	out = mergeGroup(out, user, colorFields)
	out.Preset = preset
	return out
}

// WithPreset returns the config re-merged with another color preset. The
// user's own colors still win over the preset.
func (c Config) WithPreset(name string) Config {
	if !IsPreset(name) {
		name = DefaultPreset
	}
	c.Colors = applyColors(defaultColors(), name, c.userColors)
	return c
}

// Validate checks values that would break the UI
func (c Config) Validate() error {
	if err := c.Colors.Validate(); err != nil {
		return err
	}
	pm := c.Modules.ProjectManagement
	if pm.MaxLists < 1 {
		return fmt.Errorf("modules.project_management.max_lists must be >= 1, got %d", pm.MaxLists)
	}
	if pm.DueSoonDays < 0 {
		return fmt.Errorf("modules.project_management.due_soon_days must be >= 0, got %d", pm.DueSoonDays)
	}
	return nil
}

// Load reads a config file. A missing or empty file yields an empty File.
func Load(path string) (File, error) {
	var f File
	if strings.TrimSpace(path) == "" {
		return f, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return f, nil
		}
		return File{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return f, nil
	}

	if err := toml.Unmarshal(content, &f); err != nil {
		return File{}, fmt.Errorf("decode toml %s: %w", path, err)
	}
	return f, nil
}

// Init reads and merges the configuration in dir. With no profile name the
// file's default_profile is used, and failing that the default profile.
// A named profile merges its own file over the developer base.
func Init(dir, profile string) (Config, Profile, error) {
	base := Default()

	f, err := Load(filepath.Join(dir, DefaultProfile.ConfigFile))
	if err != nil {
		return Config{}, Profile{}, err
	}
	cfg, err := Merge(base, f)
	if err != nil {
		return Config{}, Profile{}, err
	}

	name := profile
	if name == "" {
		name = cfg.DefaultProfile
	}
	if name == "" || name == DefaultProfile.Name {
		if err := cfg.Validate(); err != nil {
			return Config{}, Profile{}, err
		}
		return cfg, DefaultProfile, nil
	}

	var selected *Profile
	for i := range cfg.Profiles {
		if cfg.Profiles[i].Name == name {
			selected = &cfg.Profiles[i]
			break
		}
	}
	if selected == nil {
		return Config{}, Profile{}, fmt.Errorf("%w %q in %s", ErrUnknownProfile, name, DefaultProfile.ConfigFile)
	}

	pf, err := Load(filepath.Join(dir, selected.ConfigFile))
	if err != nil {
		return Config{}, Profile{}, err
	}
	pcfg, err := Merge(DevBase(base), pf)
	if err != nil {
		return Config{}, Profile{}, err
	}
	if err := pcfg.Validate(); err != nil {
		return Config{}, Profile{}, err
	}
	return pcfg, *selected, nil
}
