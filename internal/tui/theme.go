package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Colors stay readable on light and dark backgrounds via AdaptiveColor.
// Faint styling is only applied on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted    lipgloss.TerminalColor = ac("240", "243")
	colorAccent   lipgloss.TerminalColor = ac("27", "62")
	colorActive   lipgloss.TerminalColor = ac("235", "252")
	colorDone     lipgloss.TerminalColor = ac("28", "71")
	colorBelt     lipgloss.TerminalColor = ac("130", "214")
	colorCenter   lipgloss.TerminalColor = ac("27", "75")
	colorSelectFg lipgloss.TerminalColor = ac("255", "235")
	colorError    lipgloss.TerminalColor = ac("160", "203")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleTitle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorError)
}

// cellStyle maps a canvas cell kind to its style.
func cellStyle(k cellKind) lipgloss.Style {
	st := lipgloss.NewStyle()
	switch k {
	case cellCenter:
		return st.Foreground(colorCenter).Bold(true)
	case cellActive:
		return st.Foreground(colorActive)
	case cellDone:
		return st.Foreground(colorDone)
	case cellBelt:
		return st.Foreground(colorBelt)
	case cellSelected:
		return st.Foreground(colorSelectFg).Background(colorAccent).Bold(true)
	case cellLabel:
		return styleMuted()
	default:
		return st
	}
}

// applyColorProfilePreference sets Lip Gloss's color profile for the
// interactive view. Only NO_COLOR disables colors; otherwise TERM and
// COLORTERM may upgrade what termenv detected.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && profile != termenv.TrueColor {
		profile = termenv.ANSI256
	}
	lipgloss.SetColorProfile(profile)
}

// applyThemePreference lets FOCUS_TUI_THEME=light|dark override background
// detection, which some terminals get wrong.
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("FOCUS_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	}
}

// PlainOutput forces colorless rendering, for piped output.
func PlainOutput() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
