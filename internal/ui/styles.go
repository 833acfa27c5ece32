package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Glyphs used by the selection menus.
const (
	CursorGlyph    = "❯"
	CheckedGlyph   = "◉"
	UncheckedGlyph = "◯"
	PartialGlyph   = "◐"
	EllipsisGlyph  = "…"
)

// Color palette, derived from the current theme.
var (
	ColorPrimary     color.Color
	ColorSecondary   color.Color
	ColorText        color.Color
	ColorTextMuted   color.Color
	ColorTextInverse color.Color
	ColorWarning     color.Color
	ColorError       color.Color
	ColorSuccess     color.Color
	ColorInfo        color.Color
)

// Menu styles
var (
	PromptStyle       lipgloss.Style
	CursorStyle       lipgloss.Style
	ItemActiveStyle   lipgloss.Style
	ItemStyle         lipgloss.Style
	ItemDisabledStyle lipgloss.Style
	CheckStyle        lipgloss.Style
	IndicatorStyle    lipgloss.Style
	SearchStyle       lipgloss.Style
	RangeStyle        lipgloss.Style
	HintKeyStyle      lipgloss.Style
	HintDescStyle     lipgloss.Style
)

// Editor styles
var (
	EditorLabelStyle  lipgloss.Style
	EditorFooterStyle lipgloss.Style
	GutterStyle       lipgloss.Style
	CursorCellStyle   lipgloss.Style
)

// Syntax styles
var (
	SyntaxKeywordStyle lipgloss.Style
	SyntaxStringStyle  lipgloss.Style
	SyntaxCommentStyle lipgloss.Style
	SyntaxNumberStyle  lipgloss.Style
	SyntaxHeadingStyle lipgloss.Style
	SyntaxKeyStyle     lipgloss.Style
	SyntaxLinkStyle    lipgloss.Style
	SyntaxCodeStyle    lipgloss.Style
	SyntaxEmphStyle    lipgloss.Style
)

// Status line styles for command output
var (
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	InfoStyle    lipgloss.Style
	MutedStyle   lipgloss.Style
)

func init() {
	regenerateStyles()
}

// regenerateStyles updates all style variables based on the current theme
func regenerateStyles() {
	t := currentTheme

	ColorPrimary = lipgloss.Color(t.Primary)
	ColorSecondary = lipgloss.Color(t.Secondary)
	ColorText = lipgloss.Color(t.Text)
	ColorTextMuted = lipgloss.Color(t.TextMuted)
	ColorTextInverse = lipgloss.Color(t.TextInverse)
	ColorWarning = lipgloss.Color(t.Warning)
	ColorError = lipgloss.Color(t.Error)
	ColorSuccess = lipgloss.Color(t.Success)
	ColorInfo = lipgloss.Color(t.Info)

	PromptStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorText)
	CursorStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	ItemActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	ItemStyle = lipgloss.NewStyle().Foreground(ColorTextMuted)
	ItemDisabledStyle = lipgloss.NewStyle().Faint(true).Strikethrough(true).Foreground(ColorTextMuted)
	CheckStyle = lipgloss.NewStyle().Foreground(ColorSecondary)
	IndicatorStyle = lipgloss.NewStyle().Italic(true).Foreground(ColorTextMuted)
	SearchStyle = lipgloss.NewStyle().Foreground(ColorInfo)
	RangeStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	HintKeyStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorSecondary)
	HintDescStyle = lipgloss.NewStyle().Foreground(ColorTextMuted)

	EditorLabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorTextInverse).
		Background(ColorPrimary).
		Padding(0, 1)
	EditorFooterStyle = lipgloss.NewStyle().Foreground(ColorTextMuted)
	GutterStyle = lipgloss.NewStyle().Foreground(ColorTextMuted)
	CursorCellStyle = lipgloss.NewStyle().Reverse(true)

	SyntaxKeywordStyle = fg(t.SyntaxKeyword).Bold(true)
	SyntaxStringStyle = fg(t.SyntaxString)
	SyntaxCommentStyle = fg(t.SyntaxComment).Italic(true)
	SyntaxNumberStyle = fg(t.SyntaxNumber)
	SyntaxHeadingStyle = fg(t.SyntaxHeading).Bold(true)
	SyntaxKeyStyle = fg(t.SyntaxKey)
	SyntaxLinkStyle = fg(t.SyntaxLink).Underline(true)
	SyntaxCodeStyle = fg(t.SyntaxCode)
	SyntaxEmphStyle = lipgloss.NewStyle().Bold(true)

	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorError)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	InfoStyle = lipgloss.NewStyle().Foreground(ColorInfo)
	MutedStyle = lipgloss.NewStyle().Foreground(ColorTextMuted)
}

// Hint renders a "key desc" pair for footers.
func Hint(key, desc string) string {
	return HintKeyStyle.Render(key) + " " + HintDescStyle.Render(desc)
}
