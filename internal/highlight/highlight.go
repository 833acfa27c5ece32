// Package highlight tokenizes editor lines into styled spans.
//
// Each file category has an ordered rule table. A line is scanned once from
// left to right; at every position the rules are tried in table order and the
// first one that matches a non-empty prefix claims it. Spans never overlap,
// so a keyword inside a string literal stays part of the string.
//
// Matching is per line. Constructs that span lines (block comments, fenced
// code, triple-quoted strings) are only recognized up to the end of the line
// they open on.
package highlight

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"charm.land/lipgloss/v2"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/zhubert/grove/internal/ui"
)

// Category selects a rule table.
type Category int

const (
	Plain Category = iota
	Shell
	CFamily
	Python
	JSON
	Markdown
	Config
	CSS
	Commit
)

var categoryNames = map[Category]string{
	Plain:    "plain",
	Shell:    "shell",
	CFamily:  "c-family",
	Python:   "python",
	JSON:     "json",
	Markdown: "markdown",
	Config:   "config",
	CSS:      "css",
	Commit:   "commit",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "plain"
}

// Class is the style class of a span.
type Class int

const (
	Keyword Class = iota + 1
	String
	Comment
	Number
	Heading
	Key
	Link
	Code
	Emph
)

// Style returns the lipgloss style for the class under the current theme.
func (c Class) Style() lipgloss.Style {
	switch c {
	case Keyword:
		return ui.SyntaxKeywordStyle
	case String:
		return ui.SyntaxStringStyle
	case Comment:
		return ui.SyntaxCommentStyle
	case Number:
		return ui.SyntaxNumberStyle
	case Heading:
		return ui.SyntaxHeadingStyle
	case Key:
		return ui.SyntaxKeyStyle
	case Link:
		return ui.SyntaxLinkStyle
	case Code:
		return ui.SyntaxCodeStyle
	case Emph:
		return ui.SyntaxEmphStyle
	}
	return lipgloss.NewStyle()
}

// Span covers runes [Start, End) of a line.
type Span struct {
	Start int
	End   int
	Class Class
}

// byExtension maps file extensions and hint words to categories.
var byExtension = map[string]Category{
	"sh": Shell, "bash": Shell, "zsh": Shell, "fish": Shell, "ksh": Shell,
	"shell": Shell, "dockerfile": Shell, "makefile": Shell, "mk": Shell,

	"c": CFamily, "h": CFamily, "cc": CFamily, "cpp": CFamily, "hpp": CFamily,
	"cs": CFamily, "go": CFamily, "java": CFamily, "kt": CFamily, "scala": CFamily,
	"swift": CFamily, "rs": CFamily, "js": CFamily, "jsx": CFamily, "mjs": CFamily,
	"cjs": CFamily, "ts": CFamily, "tsx": CFamily, "php": CFamily, "dart": CFamily,

	"py": Python, "pyi": Python, "python": Python, "rb": Python,

	"json": JSON, "jsonc": JSON, "geojson": JSON,

	"md": Markdown, "markdown": Markdown, "mdx": Markdown,

	"yaml": Config, "yml": Config, "toml": Config, "ini": Config,
	"cfg": Config, "conf": Config, "env": Config, "properties": Config,

	"css": CSS, "scss": CSS, "sass": CSS, "less": CSS,

	"gitcommit": Commit, "commit_editmsg": Commit,

	"txt": Plain, "text": Plain, "plain": Plain, "": Plain,
}

// byLexer maps chroma lexer names to categories for hints the extension
// table does not know.
var byLexer = map[string]Category{
	"Bash": Shell, "Bash Session": Shell, "PowerShell": Shell, "Fish": Shell,
	"Docker": Shell, "Makefile": Shell, "Tcsh": Shell,

	"C": CFamily, "C++": CFamily, "C#": CFamily, "Go": CFamily, "Java": CFamily,
	"JavaScript": CFamily, "TypeScript": CFamily, "Rust": CFamily, "Kotlin": CFamily,
	"Swift": CFamily, "Scala": CFamily, "Dart": CFamily, "PHP": CFamily,
	"Objective-C": CFamily, "Zig": CFamily, "Groovy": CFamily, "Protocol Buffer": CFamily,

	"Python": Python, "Python 2": Python, "Ruby": Python, "Perl": Python,
	"Elixir": Python, "Nim": Python, "Julia": Python, "R": Python,

	"JSON": JSON,

	"markdown": Markdown, "reStructuredText": Markdown,

	"YAML": Config, "TOML": Config, "INI": Config, "properties": Config, "HCL": Config,

	"CSS": CSS, "SCSS": CSS, "Sass": CSS, "LESS": CSS,
}

// Resolve maps a syntax hint to a category. The hint may be an extension
// ("go", ".py"), a file name ("Makefile", "notes.md") or a language name.
// Unrecognized hints resolve to Plain.
func Resolve(hint string) Category {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return Plain
	}

	base := filepath.Base(hint)
	key := strings.ToLower(strings.TrimPrefix(base, "."))
	if c, ok := byExtension[key]; ok {
		return c
	}
	if ext := strings.TrimPrefix(filepath.Ext(base), "."); ext != "" {
		if c, ok := byExtension[strings.ToLower(ext)]; ok {
			return c
		}
	}

	if c, ok := resolveLexer(lexers.Match(base)); ok {
		return c
	}
	if c, ok := resolveLexer(lexers.Match("file." + key)); ok {
		return c
	}
	if c, ok := resolveLexer(lexers.Get(hint)); ok {
		return c
	}
	return Plain
}

func resolveLexer(l chroma.Lexer) (Category, bool) {
	if l == nil {
		return Plain, false
	}
	c, ok := byLexer[l.Config().Name]
	return c, ok
}

// Tokenize scans line once and returns its styled spans in order.
func Tokenize(line string, c Category) []Span {
	table := TableFor(c)
	if len(table.Rules) == 0 {
		return nil
	}

	var spans []Span
	col := 0 // rune index of pos
	leading := true

	for pos := 0; pos < len(line); {
		n, class := table.match(line, pos, leading)
		if n > 0 {
			width := utf8.RuneCountInString(line[pos : pos+n])
			spans = append(spans, Span{Start: col, End: col + width, Class: class})
			pos += n
			col += width
			leading = false
			continue
		}

		// Skip identifiers whole so no rule starts inside a word.
		if w := table.Ident.FindString(line[pos:]); w != "" {
			pos += len(w)
			col += utf8.RuneCountInString(w)
			leading = false
			continue
		}

		r, size := utf8.DecodeRuneInString(line[pos:])
		if r != ' ' && r != '\t' {
			leading = false
		}
		pos += size
		col++
	}
	return spans
}

// match returns the byte length and class of the first rule matching at pos.
func (t *Table) match(line string, pos int, leading bool) (int, Class) {
	rest := line[pos:]
	for _, r := range t.Rules {
		if r.LineStart && !leading {
			continue
		}
		if r.Words != nil {
			w := t.Ident.FindString(rest)
			if w != "" && r.Words[w] {
				return len(w), r.Class
			}
			continue
		}
		if loc := r.Pattern.FindStringIndex(rest); loc != nil && loc[1] > 0 {
			return loc[1], r.Class
		}
	}
	return 0, 0
}

// StyleAt returns the class covering rune index col, or 0.
func StyleAt(spans []Span, col int) Class {
	for _, s := range spans {
		if col < s.Start {
			return 0
		}
		if col < s.End {
			return s.Class
		}
	}
	return 0
}

// Render returns line with its spans styled.
func Render(line string, spans []Span) string {
	if len(spans) == 0 {
		return line
	}
	runes := []rune(line)
	var b strings.Builder
	col := 0
	for _, s := range spans {
		if s.Start > col {
			b.WriteString(string(runes[col:s.Start]))
		}
		b.WriteString(s.Class.Style().Render(string(runes[s.Start:s.End])))
		col = s.End
	}
	if col < len(runes) {
		b.WriteString(string(runes[col:]))
	}
	return b.String()
}

// Line tokenizes and renders a single line.
func Line(line string, c Category) string {
	return Render(line, Tokenize(line, c))
}
