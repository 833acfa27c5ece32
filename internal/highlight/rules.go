package highlight

import (
	"regexp"
	"strings"
)

// Rule is one entry of a category's table. Exactly one of Pattern or Words
// is set. Pattern must be anchored with ^ since it is matched against the
// remainder of the line at the scan position.
type Rule struct {
	Class   Class
	Pattern *regexp.Regexp
	// Words matches a whole identifier (as defined by the table) that is in the set.
	Words map[string]bool
	// LineStart restricts the rule to positions preceded only by whitespace.
	LineStart bool
}

// Table is the ordered rule list for one category. Earlier rules win.
type Table struct {
	Category Category
	Rules    []Rule
	// Ident matches identifiers; unmatched identifiers are skipped whole so
	// keywords and numbers never match inside a longer word.
	Ident *regexp.Regexp
}

func re(pattern string) *regexp.Regexp {
	return regexp.MustCompile("^(?:" + pattern + ")")
}

func words(list string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(list) {
		set[w] = true
	}
	return set
}

var (
	identDefault = re(`[A-Za-z_][A-Za-z0-9_]*`)
	identDashed  = re(`[A-Za-z_][A-Za-z0-9_-]*`)

	doubleQuoted = re(`"(?:[^"\\]|\\.)*"?`)
	singleQuoted = re(`'(?:[^'\\]|\\.)*'?`)
	backtick     = re("`[^`]*`?")
	hashComment  = re(`#.*`)
	slashComment = re(`//.*`)
	blockComment = re(`/\*.*?(?:\*/|$)`)
	number       = re(`0[xX][0-9a-fA-F]+|\d+(?:\.\d+)?(?:[eE][+-]?\d+)?`)
)

var shellKeywords = words(`
	if then else elif fi for while until do done case esac in function select
	return local export readonly declare unset shift exit break continue
	echo printf read source eval exec set trap test true false`)

var cFamilyKeywords = words(`
	async await break case catch chan class const continue default defer delete do
	else enum export extends false final finally fn for func function go goto if impl
	implements import in instanceof interface let loop map match mod mut namespace new
	nil null override package private protected pub public range return select self
	static struct super switch this throw throws trait true try type typedef typeof
	undefined union unsafe use var void volatile where while yield`)

var pythonKeywords = words(`
	and as assert async await break class continue def del elif else except False
	finally for from global if import in is lambda None nonlocal not or pass raise
	return True try while with yield self cls match case`)

var jsonKeywords = words(`true false null`)

var configKeywords = words(`true false yes no on off null none`)

var commitTypes = `feat|fix|docs|style|refactor|perf|test|build|ci|chore|revert`

// tables holds the rule set for every category, in priority order.
var tables = map[Category]*Table{
	Shell: {
		Category: Shell,
		Ident:    identDashed,
		Rules: []Rule{
			{Class: Comment, Pattern: hashComment},
			{Class: String, Pattern: doubleQuoted},
			{Class: String, Pattern: singleQuoted},
			{Class: String, Pattern: backtick},
			{Class: Key, Pattern: re(`\$\{[^}]*\}?|\$[A-Za-z_][A-Za-z0-9_]*|\$[0-9@#?$!*-]`)},
			{Class: Keyword, Words: shellKeywords},
			{Class: Number, Pattern: re(`\d+`)},
		},
	},
	CFamily: {
		Category: CFamily,
		Ident:    identDefault,
		Rules: []Rule{
			{Class: Comment, Pattern: slashComment},
			{Class: Comment, Pattern: blockComment},
			{Class: String, Pattern: doubleQuoted},
			{Class: String, Pattern: singleQuoted},
			{Class: String, Pattern: backtick},
			{Class: Keyword, Words: cFamilyKeywords},
			{Class: Number, Pattern: number},
		},
	},
	Python: {
		Category: Python,
		Ident:    identDefault,
		Rules: []Rule{
			{Class: Comment, Pattern: hashComment},
			{Class: String, Pattern: re(`""".*?(?:"""|$)|'''.*?(?:'''|$)`)},
			{Class: String, Pattern: doubleQuoted},
			{Class: String, Pattern: singleQuoted},
			{Class: Key, Pattern: re(`@[A-Za-z_][A-Za-z0-9_.]*`)},
			{Class: Keyword, Words: pythonKeywords},
			{Class: Number, Pattern: number},
		},
	},
	JSON: {
		Category: JSON,
		Ident:    identDefault,
		Rules: []Rule{
			{Class: Key, Pattern: re(`"(?:[^"\\]|\\.)*"\s*:`)},
			{Class: String, Pattern: doubleQuoted},
			{Class: Keyword, Words: jsonKeywords},
			{Class: Number, Pattern: re(`-?\d+(?:\.\d+)?(?:[eE][+-]?\d+)?`)},
		},
	},
	Markdown: {
		Category: Markdown,
		Ident:    identDefault,
		Rules: []Rule{
			{Class: Heading, Pattern: re(`#{1,6}\s.*`), LineStart: true},
			{Class: Code, Pattern: re("(?:```|~~~).*"), LineStart: true},
			{Class: Comment, Pattern: re(`>.*`), LineStart: true},
			{Class: Key, Pattern: re(`(?:[-*+]|\d+\.)\s`), LineStart: true},
			{Class: Code, Pattern: backtick},
			{Class: Emph, Pattern: re(`\*\*[^*]+\*\*|__[^_]+__`)},
			{Class: Link, Pattern: re(`!?\[[^\]]*\]\([^)]*\)`)},
			{Class: Link, Pattern: re(`https?://[^\s)>]+`)},
		},
	},
	Config: {
		Category: Config,
		Ident:    identDashed,
		Rules: []Rule{
			{Class: Comment, Pattern: hashComment},
			{Class: Comment, Pattern: re(`;.*`), LineStart: true},
			{Class: Heading, Pattern: re(`\[\[?[^\]]*\]\]?`), LineStart: true},
			{Class: Key, Pattern: re(`-\s+[A-Za-z0-9_."'-]+\s*:|[A-Za-z0-9_."'-]+\s*[:=]`), LineStart: true},
			{Class: String, Pattern: doubleQuoted},
			{Class: String, Pattern: singleQuoted},
			{Class: Keyword, Words: configKeywords},
			{Class: Number, Pattern: number},
		},
	},
	CSS: {
		Category: CSS,
		Ident:    identDashed,
		Rules: []Rule{
			{Class: Comment, Pattern: blockComment},
			{Class: String, Pattern: doubleQuoted},
			{Class: String, Pattern: singleQuoted},
			{Class: Number, Pattern: re(`#[0-9a-fA-F]{3,8}\b`)},
			{Class: Key, Pattern: re(`[.#][A-Za-z_-][A-Za-z0-9_-]*`)},
			{Class: Keyword, Pattern: re(`[a-z-]+\s*:`)},
			{Class: Keyword, Pattern: re(`@[a-z-]+|!important`)},
			{Class: Number, Pattern: re(`-?\d*\.?\d+(?:px|em|rem|%|vh|vw|vmin|vmax|s|ms|deg|fr|ch|pt)?`)},
		},
	},
	Commit: {
		Category: Commit,
		Ident:    identDefault,
		Rules: []Rule{
			{Class: Comment, Pattern: hashComment, LineStart: true},
			{Class: Keyword, Pattern: re(`(?:` + commitTypes + `)(?:\([^)]*\))?!?:`), LineStart: true},
			{Class: Key, Pattern: re(`[A-Z][A-Za-z-]+:\s`), LineStart: true},
			{Class: Link, Pattern: re(`#\d+`)},
		},
	},
	Plain: {
		Category: Plain,
		Ident:    identDefault,
	},
}

// TableFor returns the rule table for a category, falling back to Plain.
func TableFor(c Category) *Table {
	if t, ok := tables[c]; ok {
		return t
	}
	return tables[Plain]
}
