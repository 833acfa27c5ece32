package highlight

import (
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		hint string
		want Category
	}{
		{"", Plain},
		{"txt", Plain},
		{"sh", Shell},
		{".bash", Shell},
		{"Makefile", Shell},
		{"Dockerfile", Shell},
		{"go", CFamily},
		{"main.go", CFamily},
		{"src/app.tsx", CFamily},
		{"py", Python},
		{"script.py", Python},
		{"json", JSON},
		{"package.json", JSON},
		{"md", Markdown},
		{"README.md", Markdown},
		{"yaml", Config},
		{".grove.toml", Config},
		{"css", CSS},
		{"gitcommit", Commit},
		{".git/COMMIT_EDITMSG", Commit},
		{"JavaScript", CFamily},
		{"definitely-not-a-language", Plain},
	}

	for _, tt := range tests {
		t.Run(tt.hint, func(t *testing.T) {
			if got := Resolve(tt.hint); got != tt.want {
				t.Errorf("Resolve(%q) = %v, want %v", tt.hint, got, tt.want)
			}
		})
	}
}

// text returns the substrings covered by spans, paired with their class.
func text(line string, spans []Span) []string {
	runes := []rune(line)
	var out []string
	for _, s := range spans {
		out = append(out, string(runes[s.Start:s.End]))
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		line     string
		want     []string
		classes  []Class
	}{
		{
			name:     "go keywords and string",
			category: CFamily,
			line:     `func main() { return "if" }`,
			want:     []string{"func", "return", `"if"`},
			classes:  []Class{Keyword, Keyword, String},
		},
		{
			name:     "keyword inside string stays string",
			category: CFamily,
			line:     `x := "for while"`,
			want:     []string{`"for while"`},
			classes:  []Class{String},
		},
		{
			name:     "keyword inside identifier is not matched",
			category: CFamily,
			line:     `format(iffy, forest)`,
			want:     nil,
		},
		{
			name:     "line comment swallows the rest",
			category: CFamily,
			line:     `a = 1 // return "x"`,
			want:     []string{"1", `// return "x"`},
			classes:  []Class{Number, Comment},
		},
		{
			name:     "block comment closes on the line",
			category: CFamily,
			line:     `/* if */ let`,
			want:     []string{"/* if */", "let"},
			classes:  []Class{Comment, Keyword},
		},
		{
			name:     "number inside identifier is not matched",
			category: CFamily,
			line:     `v2 := 42`,
			want:     []string{"42"},
			classes:  []Class{Number},
		},
		{
			name:     "shell variable and comment",
			category: Shell,
			line:     `echo "$HOME" $USER # done`,
			want:     []string{"echo", `"$HOME"`, "$USER", "# done"},
			classes:  []Class{Keyword, String, Key, Comment},
		},
		{
			name:     "python def and decorator",
			category: Python,
			line:     `@cached def f(x): return None`,
			want:     []string{"@cached", "def", "return", "None"},
			classes:  []Class{Key, Keyword, Keyword, Keyword},
		},
		{
			name:     "json key before string",
			category: JSON,
			line:     `{"name": "grove", "ok": true, "n": -1.5}`,
			want:     []string{`"name":`, `"grove"`, `"ok":`, "true", `"n":`, "-1.5"},
			classes:  []Class{Key, String, Key, Keyword, Key, Number},
		},
		{
			name:     "markdown heading",
			category: Markdown,
			line:     "## Summary of `code`",
			want:     []string{"## Summary of `code`"},
			classes:  []Class{Heading},
		},
		{
			name:     "markdown inline",
			category: Markdown,
			line:     "- see **this** and [docs](http://x)",
			want:     []string{"- ", "**this**", "[docs](http://x)"},
			classes:  []Class{Key, Emph, Link},
		},
		{
			name:     "markdown heading only at line start",
			category: Markdown,
			line:     "issue # 4",
			want:     nil,
		},
		{
			name:     "toml table and key",
			category: Config,
			line:     `[repo]`,
			want:     []string{"[repo]"},
			classes:  []Class{Heading},
		},
		{
			name:     "toml key value",
			category: Config,
			line:     `base = "main" # default`,
			want:     []string{"base =", `"main"`, "# default"},
			classes:  []Class{Key, String, Comment},
		},
		{
			name:     "yaml boolean",
			category: Config,
			line:     `  enabled: true`,
			want:     []string{"enabled:", "true"},
			classes:  []Class{Key, Keyword},
		},
		{
			name:     "css property and color",
			category: CSS,
			line:     `.btn { color: #fff; margin: 4px }`,
			want:     []string{".btn", "color:", "#fff", "margin:", "4px"},
			classes:  []Class{Key, Keyword, Number, Keyword, Number},
		},
		{
			name:     "conventional commit subject",
			category: Commit,
			line:     "feat(ui): add range select (#12)",
			want:     []string{"feat(ui):", "#12"},
			classes:  []Class{Keyword, Link},
		},
		{
			name:     "commit comment line",
			category: Commit,
			line:     "# Please enter the commit message",
			want:     []string{"# Please enter the commit message"},
			classes:  []Class{Comment},
		},
		{
			name:     "plain has no spans",
			category: Plain,
			line:     `func "x" 1`,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans := Tokenize(tt.line, tt.category)
			if got := text(tt.line, spans); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Tokenize(%q) texts = %q, want %q", tt.line, got, tt.want)
			}
			for i, s := range spans {
				if tt.classes != nil && s.Class != tt.classes[i] {
					t.Errorf("span %d (%q) class = %v, want %v", i, text(tt.line, spans)[i], s.Class, tt.classes[i])
				}
			}
		})
	}
}

func TestTokenize_SpansAreOrderedAndDisjoint(t *testing.T) {
	lines := map[Category]string{
		CFamily:  `if x := "a//b"; x != nil { return 0x1F } // if`,
		Shell:    `for f in "$@"; do echo '$f' # x; done`,
		Python:   `'''doc''' if True else "no" # yes`,
		Markdown: "> quote with `code` and **bold**",
		CSS:      `/* a */ #id .c { color: red; }`,
	}
	for c, line := range lines {
		spans := Tokenize(line, c)
		prev := 0
		for _, s := range spans {
			if s.Start < prev || s.End <= s.Start {
				t.Errorf("%v: span %+v overlaps or is empty (prev end %d)", c, s, prev)
			}
			prev = s.End
		}
		if prev > len([]rune(line)) {
			t.Errorf("%v: span past end of line", c)
		}
	}
}

func TestTokenize_RuneColumns(t *testing.T) {
	line := `é := "ü"`
	spans := Tokenize(line, CFamily)
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Start != 5 || spans[0].End != 8 {
		t.Errorf("span = %+v, want rune columns [5,8)", spans[0])
	}
}

func TestStyleAt(t *testing.T) {
	spans := []Span{{Start: 2, End: 4, Class: Keyword}, {Start: 6, End: 7, Class: String}}
	tests := []struct {
		col  int
		want Class
	}{
		{0, 0}, {2, Keyword}, {3, Keyword}, {4, 0}, {6, String}, {7, 0},
	}
	for _, tt := range tests {
		if got := StyleAt(spans, tt.col); got != tt.want {
			t.Errorf("StyleAt(%d) = %v, want %v", tt.col, got, tt.want)
		}
	}
}

func TestRender_PreservesText(t *testing.T) {
	line := `if x { return "y" } // z`
	out := Line(line, CFamily)
	if got := ansi.Strip(out); got != line {
		t.Errorf("stripped render = %q, want %q", got, line)
	}
	if !strings.Contains(out, "return") {
		t.Errorf("render lost text: %q", out)
	}
}
