package types

import "fmt"

// Setting names one of the six toggleable flags.
type Setting int

const (
	DarkMode Setting = iota
	ClassicMode
	Obstacles
	PowerUps
	Music
	Sound
)

var settingNames = [...]string{
	DarkMode:    "darkMode",
	ClassicMode: "classicMode",
	Obstacles:   "obstacles",
	PowerUps:    "powerUps",
	Music:       "music",
	Sound:       "sound",
}

// AllSettings lists every setting in declaration order.
var AllSettings = []Setting{DarkMode, ClassicMode, Obstacles, PowerUps, Music, Sound}

func (s Setting) String() string {
	if s < 0 || int(s) >= len(settingNames) {
		return fmt.Sprintf("Setting(%d)", int(s))
	}
	return settingNames[s]
}

// ParseSetting resolves a setting by its camelCase name.
func ParseSetting(name string) (Setting, error) {
	for i, n := range settingNames {
		if n == name {
			return Setting(i), nil
		}
	}
	return 0, fmt.Errorf("unknown setting %q", name)
}

// Settings holds the user toggles. Only Obstacles and PowerUps change how a
// run plays; the others are for renderers and audio.
type Settings struct {
	DarkMode    bool `json:"darkMode"`
	ClassicMode bool `json:"classicMode"`
	Obstacles   bool `json:"obstacles"`
	PowerUps    bool `json:"powerUps"`
	Music       bool `json:"music"`
	Sound       bool `json:"sound"`
}

// DefaultSettings matches a fresh install: power-ups on, everything else off.
func DefaultSettings() Settings {
	return Settings{PowerUps: true}
}

func (s *Settings) field(which Setting) *bool {
	switch which {
	case DarkMode:
		return &s.DarkMode
	case ClassicMode:
		return &s.ClassicMode
	case Obstacles:
		return &s.Obstacles
	case PowerUps:
		return &s.PowerUps
	case Music:
		return &s.Music
	case Sound:
		return &s.Sound
	}
	return nil
}

// Get returns the current value of a setting. Unknown settings read false.
func (s Settings) Get(which Setting) bool {
	if f := s.field(which); f != nil {
		return *f
	}
	return false
}

// Toggle flips a setting and returns its new value. ok is false for an
// unknown setting, which leaves s untouched.
func (s *Settings) Toggle(which Setting) (value bool, ok bool) {
	f := s.field(which)
	if f == nil {
		return false, false
	}
	*f = !*f
	return *f, true
}
