package theme

import (
	"os"
	"strings"
)

// Theme represents the detected terminal theme
type Theme int

const (
	ThemeUnknown Theme = iota
	ThemeLight
	ThemeDark
)

func (t Theme) String() string {
	switch t {
	case ThemeLight:
		return "light"
	case ThemeDark:
		return "dark"
	default:
		return "unknown"
	}
}

// EnvTheme forces "light" or "dark"
const EnvTheme = "TECHEXAM_THEME"

// Detector guesses the terminal background from the environment
type Detector struct {
	getenv func(string) string
}

// NewDetector creates a detector reading the process environment
func NewDetector() *Detector {
	return &Detector{getenv: os.Getenv}
}

// NewDetectorWithEnv reads variables through getenv
func NewDetectorWithEnv(getenv func(string) string) *Detector {
	return &Detector{getenv: getenv}
}

// DetectTheme returns the forced theme, then the COLORFGBG hint, and dark otherwise
func (d *Detector) DetectTheme() Theme {
	switch strings.ToLower(d.getenv(EnvTheme)) {
	case "light":
		return ThemeLight
	case "dark":
		return ThemeDark
	}
	if theme := d.detectFromColorFGBG(); theme != ThemeUnknown {
		return theme
	}
	return ThemeDark
}

// detectFromColorFGBG reads "fg;bg" or "fg;default;bg" as set by rxvt, konsole and friends
func (d *Detector) detectFromColorFGBG() Theme {
	colorfgbg := d.getenv("COLORFGBG")
	if colorfgbg == "" {
		return ThemeUnknown
	}
	parts := strings.Split(colorfgbg, ";")
	if len(parts) < 2 {
		return ThemeUnknown
	}
	fg := strings.TrimSpace(parts[0])
	bg := strings.TrimSpace(parts[len(parts)-1])

	if (bg == "15" || bg == "7") && (fg == "0" || fg == "8") {
		return ThemeLight
	}
	if (bg == "0" || bg == "8") && (fg == "15" || fg == "7") {
		return ThemeDark
	}
	return ThemeUnknown
}
