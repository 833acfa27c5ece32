// Package ui provides theme management for grove.
// Themes define the color palette used by the selection menus, the inline
// editor, syntax highlighting and the colored status lines.
package ui

import "charm.land/lipgloss/v2"

// Theme defines a complete color palette.
type Theme struct {
	// Name is the display name of the theme
	Name string

	// Primary is the main accent color (prompt, cursor, highlighted row)
	Primary string
	// Secondary is the secondary accent color (checkmarks, key hints)
	Secondary string

	// Text colors
	Text        string // Primary text
	TextMuted   string // Unselected rows, hints
	TextInverse string // Text on colored backgrounds

	// Semantic colors
	Warning string
	Error   string
	Success string
	Info    string

	// Syntax colors for the inline editor
	SyntaxKeyword string
	SyntaxString  string
	SyntaxComment string
	SyntaxNumber  string
	SyntaxHeading string
	SyntaxKey     string
	SyntaxLink    string
	SyntaxCode    string
}

// ThemeName is a type for theme identifiers
type ThemeName string

// Available theme names
const (
	ThemeDarkPurple ThemeName = "dark-purple"
	ThemeNord       ThemeName = "nord"
	ThemeDracula    ThemeName = "dracula"
	ThemeLight      ThemeName = "light"
)

// DefaultTheme is the default theme name
const DefaultTheme = ThemeDarkPurple

// BuiltinThemes contains all built-in themes
var BuiltinThemes = map[ThemeName]Theme{
	ThemeDarkPurple: {
		Name:          "Dark Purple",
		Primary:       "#7C3AED",
		Secondary:     "#06B6D4",
		Text:          "#F9FAFB",
		TextMuted:     "#9CA3AF",
		TextInverse:   "#1F2937",
		Warning:       "#F59E0B",
		Error:         "#EF4444",
		Success:       "#10B981",
		Info:          "#06B6D4",
		SyntaxKeyword: "#C084FC",
		SyntaxString:  "#4ADE80",
		SyntaxComment: "#6B7280",
		SyntaxNumber:  "#F59E0B",
		SyntaxHeading: "#A78BFA",
		SyntaxKey:     "#60A5FA",
		SyntaxLink:    "#67E8F9",
		SyntaxCode:    "#67E8F9",
	},
	ThemeNord: {
		Name:          "Nord",
		Primary:       "#88C0D0",
		Secondary:     "#81A1C1",
		Text:          "#ECEFF4",
		TextMuted:     "#D8DEE9",
		TextInverse:   "#2E3440",
		Warning:       "#EBCB8B",
		Error:         "#BF616A",
		Success:       "#A3BE8C",
		Info:          "#81A1C1",
		SyntaxKeyword: "#81A1C1",
		SyntaxString:  "#A3BE8C",
		SyntaxComment: "#616E88",
		SyntaxNumber:  "#B48EAD",
		SyntaxHeading: "#88C0D0",
		SyntaxKey:     "#8FBCBB",
		SyntaxLink:    "#88C0D0",
		SyntaxCode:    "#A3BE8C",
	},
	ThemeDracula: {
		Name:          "Dracula",
		Primary:       "#BD93F9",
		Secondary:     "#8BE9FD",
		Text:          "#F8F8F2",
		TextMuted:     "#6272A4",
		TextInverse:   "#282A36",
		Warning:       "#FFB86C",
		Error:         "#FF5555",
		Success:       "#50FA7B",
		Info:          "#8BE9FD",
		SyntaxKeyword: "#FF79C6",
		SyntaxString:  "#F1FA8C",
		SyntaxComment: "#6272A4",
		SyntaxNumber:  "#BD93F9",
		SyntaxHeading: "#BD93F9",
		SyntaxKey:     "#8BE9FD",
		SyntaxLink:    "#8BE9FD",
		SyntaxCode:    "#50FA7B",
	},
	ThemeLight: {
		Name:          "Light",
		Primary:       "#6D28D9",
		Secondary:     "#0E7490",
		Text:          "#111827",
		TextMuted:     "#6B7280",
		TextInverse:   "#F9FAFB",
		Warning:       "#B45309",
		Error:         "#B91C1C",
		Success:       "#047857",
		Info:          "#0E7490",
		SyntaxKeyword: "#7C3AED",
		SyntaxString:  "#15803D",
		SyntaxComment: "#9CA3AF",
		SyntaxNumber:  "#B45309",
		SyntaxHeading: "#6D28D9",
		SyntaxKey:     "#1D4ED8",
		SyntaxLink:    "#0E7490",
		SyntaxCode:    "#0E7490",
	},
}

var currentTheme = BuiltinThemes[DefaultTheme]

// CurrentTheme returns the active theme
func CurrentTheme() Theme {
	return currentTheme
}

// SetTheme sets the active theme and regenerates all styles.
// Unknown names leave the current theme in place.
func SetTheme(name ThemeName) {
	theme, ok := BuiltinThemes[name]
	if !ok {
		return
	}
	currentTheme = theme
	regenerateStyles()
}

// SetThemeByName sets the active theme by string name
func SetThemeByName(name string) {
	SetTheme(ThemeName(name))
}

// CurrentThemeName returns the name of the current theme
func CurrentThemeName() ThemeName {
	for name, theme := range BuiltinThemes {
		if theme.Name == currentTheme.Name {
			return name
		}
	}
	return DefaultTheme
}

// ThemeNames returns the built-in theme identifiers in display order.
func ThemeNames() []ThemeName {
	return []ThemeName{ThemeDarkPurple, ThemeNord, ThemeDracula, ThemeLight}
}

func fg(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}
