// Package keys decodes raw terminal input bytes into symbolic key events.
//
// A terminal delivers a standalone Escape keypress and the first byte of a
// navigation sequence (arrows, Home/End, word jumps) as the same 0x1B byte.
// The Decoder holds a pending Escape until either more bytes complete a known
// sequence or the caller reports that the debounce window expired (Expire),
// at which point a lone Escape is emitted.
//
// The debounce is a fixed-duration approximation: over a slow link a sequence
// split across two reads more than DefaultEscapeTimeout apart decodes as an
// Escape followed by Unknown. Callers that need a different trade-off can
// tune the window; the Decoder itself never looks at the clock.
package keys

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// DefaultEscapeTimeout is how long a lone ESC waits for a continuation.
const DefaultEscapeTimeout = 30 * time.Millisecond

// maxSequenceLen bounds how many bytes an unrecognized sequence may swallow.
const maxSequenceLen = 16

// Kind is the closed set of key events the decoder produces.
type Kind int

const (
	Unknown Kind = iota
	Up
	Down
	Left
	Right
	WordLeft
	WordRight
	LineStart
	LineEnd
	Enter
	Backspace
	Delete
	Tab
	Printable
	Ctrl
	Escape
)

var kindNames = map[Kind]string{
	Unknown:   "unknown",
	Up:        "up",
	Down:      "down",
	Left:      "left",
	Right:     "right",
	WordLeft:  "word-left",
	WordRight: "word-right",
	LineStart: "home",
	LineEnd:   "end",
	Enter:     "enter",
	Backspace: "backspace",
	Delete:    "delete",
	Tab:       "tab",
	Printable: "printable",
	Ctrl:      "ctrl",
	Escape:    "esc",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Control codes with a fixed meaning somewhere in the engine.
const (
	esc byte = 0x1b

	CtrlA byte = 0x01 // line start in the editor
	CtrlC byte = 0x03 // quit
	CtrlD byte = 0x04 // submit a multi-line prompt
	CtrlE byte = 0x05 // line end in the editor
	CtrlK byte = 0x0b // clear the current line in the editor
	CtrlS byte = 0x13 // save in the editor
	CtrlU byte = 0x15 // clear a single-line prompt
)

// Event is one decoded key.
type Event struct {
	Kind Kind
	// Rune is set for Printable.
	Rune rune
	// Code is the raw control byte for Ctrl.
	Code byte
	// Seq holds the dropped bytes for Unknown, for logging only.
	Seq string
}

// Is reports whether e is the Ctrl event for code.
func (e Event) Is(code byte) bool {
	return e.Kind == Ctrl && e.Code == code
}

func (e Event) String() string {
	switch e.Kind {
	case Printable:
		return fmt.Sprintf("%q", e.Rune)
	case Ctrl:
		return fmt.Sprintf("ctrl+%c", e.Code+'a'-1)
	case Unknown:
		return fmt.Sprintf("unknown(%q)", e.Seq)
	default:
		return e.Kind.String()
	}
}

// sequences maps every recognized ESC-prefixed sequence to its key. Several
// keys have alternates because emulators disagree on the encoding.
var sequences = map[string]Kind{
	// Cursor keys, normal and application mode.
	"\x1b[A": Up,
	"\x1b[B": Down,
	"\x1b[C": Right,
	"\x1b[D": Left,
	"\x1bOA": Up,
	"\x1bOB": Down,
	"\x1bOC": Right,
	"\x1bOD": Left,

	// Home / End.
	"\x1b[H":    LineStart,
	"\x1bOH":    LineStart,
	"\x1b[1~":   LineStart,
	"\x1b[7~":   LineStart,
	"\x1b[1;9D": LineStart, // cmd+left (iTerm2)
	"\x1b[1;2H": LineStart,
	"\x1b[F":    LineEnd,
	"\x1bOF":    LineEnd,
	"\x1b[4~":   LineEnd,
	"\x1b[8~":   LineEnd,
	"\x1b[1;9C": LineEnd, // cmd+right (iTerm2)
	"\x1b[1;2F": LineEnd,

	// Word jumps: ctrl+arrow, alt+arrow, rxvt, and macOS option+arrow.
	"\x1b[1;5D": WordLeft,
	"\x1b[1;3D": WordLeft,
	"\x1b[5D":   WordLeft,
	"\x1bb":     WordLeft,
	"\x1b[1;5C": WordRight,
	"\x1b[1;3C": WordRight,
	"\x1b[5C":   WordRight,
	"\x1bf":     WordRight,

	"\x1b[3~": Delete,
}

// prefixes holds every proper prefix of a known sequence.
var prefixes = func() map[string]bool {
	p := make(map[string]bool)
	for seq := range sequences {
		for i := 1; i < len(seq); i++ {
			p[seq[:i]] = true
		}
	}
	return p
}()

// Decoder turns a byte stream into key events. It is not safe for
// concurrent use; the engine drives it from its single event loop.
type Decoder struct {
	pending []byte // ESC-prefixed bytes awaiting a match
	partial []byte // leading bytes of an incomplete UTF-8 rune
}

// NewDecoder returns an empty decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Pending reports whether an ESC-prefixed sequence is waiting for more input.
// While it is, the caller should run the debounce timer and call Expire when
// it fires.
func (d *Decoder) Pending() bool {
	return len(d.pending) > 0
}

// Feed decodes one chunk of input.
func (d *Decoder) Feed(chunk []byte) []Event {
	var out []Event
	for _, b := range chunk {
		out = d.feedByte(b, out)
	}
	return out
}

// Expire resolves a pending sequence after the debounce window elapsed with
// no continuation: a lone ESC becomes Escape, anything longer is Unknown.
func (d *Decoder) Expire() []Event {
	if len(d.pending) == 0 {
		return nil
	}
	ev := d.flushPending()
	return []Event{ev}
}

func (d *Decoder) flushPending() Event {
	var ev Event
	if len(d.pending) == 1 {
		ev = Event{Kind: Escape}
	} else {
		ev = Event{Kind: Unknown, Seq: string(d.pending)}
	}
	d.pending = d.pending[:0]
	return ev
}

func (d *Decoder) feedByte(b byte, out []Event) []Event {
	if len(d.pending) > 0 {
		return d.feedSequence(b, out)
	}

	if len(d.partial) > 0 {
		if b >= 0x80 && !utf8.RuneStart(b) {
			return d.feedRune(b, out)
		}
		// A new rune or control byte interrupts the incomplete one.
		out = append(out, Event{Kind: Unknown, Seq: string(d.partial)})
		d.partial = d.partial[:0]
	}

	switch {
	case b == esc:
		d.pending = append(d.pending, b)
		return out
	case b >= 0x80:
		return d.feedRune(b, out)
	}
	return append(out, controlOrASCII(b))
}

func (d *Decoder) feedSequence(b byte, out []Event) []Event {
	if b == esc {
		// ESC ESC: the first one stood alone.
		out = append(out, d.flushPending())
		d.pending = append(d.pending, b)
		return out
	}

	d.pending = append(d.pending, b)
	seq := string(d.pending)

	if kind, ok := sequences[seq]; ok {
		d.pending = d.pending[:0]
		return append(out, Event{Kind: kind})
	}
	if prefixes[seq] {
		return out
	}

	// An unrecognized CSI sequence is swallowed up to its final byte so its
	// tail does not leak out as printable characters.
	if len(d.pending) > 2 && d.pending[1] == '[' && len(d.pending) < maxSequenceLen {
		if b >= 0x20 && b <= 0x3f {
			return out
		}
	}
	return append(out, Event{Kind: Unknown, Seq: string(d.flushPendingSeq())})
}

func (d *Decoder) flushPendingSeq() []byte {
	seq := append([]byte(nil), d.pending...)
	d.pending = d.pending[:0]
	return seq
}

func (d *Decoder) feedRune(b byte, out []Event) []Event {
	d.partial = append(d.partial, b)
	if !utf8.FullRune(d.partial) {
		return out
	}
	r, size := utf8.DecodeRune(d.partial)
	if r == utf8.RuneError && size <= 1 {
		out = append(out, Event{Kind: Unknown, Seq: string(d.partial)})
	} else {
		out = append(out, Event{Kind: Printable, Rune: r})
	}
	d.partial = d.partial[:0]
	return out
}

func controlOrASCII(b byte) Event {
	switch b {
	case '\r', '\n':
		return Event{Kind: Enter}
	case 0x7f, 0x08:
		return Event{Kind: Backspace}
	case '\t':
		return Event{Kind: Tab}
	}
	if b < 0x20 {
		return Event{Kind: Ctrl, Code: b}
	}
	return Event{Kind: Printable, Rune: rune(b)}
}
