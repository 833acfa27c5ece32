// Package prompt runs interactive menus, the inline editor and simple line
// prompts on a terminal.
//
// The terminal is an exclusive resource. Acquire switches it to raw mode,
// hides the cursor and starts reading input; the returned Session must be
// released, which restores everything. Only one session may be active per
// Terminal at a time. Each interactive call acquires and releases its own
// session, so calls must be made one after another, never nested.
package prompt

import (
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"
	"github.com/muesli/cancelreader"
	"golang.org/x/term"

	"github.com/zhubert/grove/internal/errors"
	"github.com/zhubert/grove/internal/keys"
	"github.com/zhubert/grove/internal/logger"
	"github.com/zhubert/grove/internal/render"
	"github.com/zhubert/grove/internal/selection"
)

// Sentinel errors that workflows return when an interaction did not
// produce a value. Quit means the whole program should stop.
var (
	ErrCancelled = stderrors.New("cancelled")
	ErrQuit      = stderrors.New("quit")
)

// Option configures a Terminal.
type Option func(*Terminal)

// WithEscapeTimeout sets how long a lone ESC waits for the rest of a
// sequence before it counts as the Escape key.
func WithEscapeTimeout(d time.Duration) Option {
	return func(t *Terminal) {
		if d > 0 {
			t.escTimeout = d
		}
	}
}

// WithMenuHeight sets how many menu items are visible at once.
func WithMenuHeight(n int) Option {
	return func(t *Terminal) {
		if n > 0 {
			t.menuHeight = n
		}
	}
}

// WithSize overrides how the terminal dimensions are queried.
func WithSize(size func() (width, height int, err error)) Option {
	return func(t *Terminal) { t.size = size }
}

// Terminal owns an input stream and an output stream.
type Terminal struct {
	in  io.Reader
	out io.Writer

	fd    int
	isTTY bool

	escTimeout time.Duration
	menuHeight int
	size       func() (int, int, error)

	mu     sync.Mutex
	active *Session
	pump   *pump
}

// NewTerminal creates a terminal over in and out. Raw mode is only used
// when in is a terminal; any other reader (a pipe, a test buffer) is read
// as-is.
func NewTerminal(in io.Reader, out io.Writer, opts ...Option) *Terminal {
	t := &Terminal{
		in:         in,
		out:        out,
		escTimeout: keys.DefaultEscapeTimeout,
		menuHeight: selection.DefaultHeight,
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		t.fd = int(f.Fd())
		t.isTTY = true
	}
	t.size = t.querySize
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Stdio returns a terminal reading stdin and drawing on stderr, leaving
// stdout free for results.
func Stdio(opts ...Option) *Terminal {
	return NewTerminal(os.Stdin, os.Stderr, opts...)
}

// OpenTTY returns a terminal on the controlling tty, for when stdin is
// carrying data. The returned func closes the tty.
func OpenTTY(opts ...Option) (*Terminal, func() error, error) {
	f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, nil, errors.E(errors.Op("prompt.OpenTTY"), errors.KindTerminal, err)
	}
	return NewTerminal(f, f, opts...), f.Close, nil
}

// IsInteractive reports whether input comes from a terminal.
func (t *Terminal) IsInteractive() bool {
	return t.isTTY
}

func (t *Terminal) querySize() (int, int, error) {
	if f, ok := t.out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return term.GetSize(int(f.Fd()))
	}
	if t.isTTY {
		return term.GetSize(t.fd)
	}
	return render.DefaultWidth, 0, nil
}

// Session is an acquired terminal. It is released exactly once; further
// Release calls do nothing.
type Session struct {
	term     *Terminal
	id       string
	log      *slog.Logger
	oldState *term.State
	renderer *render.Renderer
	decoder  *keys.Decoder
	pump     *pump

	once sync.Once
}

// Acquire takes exclusive ownership of the terminal. It fails with a busy
// error while another session is active.
func (t *Terminal) Acquire() (*Session, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active != nil {
		return nil, errors.TerminalBusy()
	}

	s := &Session{
		term:     t,
		id:       uuid.NewString(),
		renderer: render.New(t.out, t.size),
		decoder:  keys.NewDecoder(),
	}
	s.log = logger.WithInteraction(s.id, "session")

	if t.isTTY {
		old, err := term.MakeRaw(t.fd)
		if err != nil {
			return nil, errors.RawModeFailed(err)
		}
		s.oldState = old
	}

	if t.pump == nil || t.pump.exited() {
		p, err := startPump(t.in, t.isTTY)
		if err != nil {
			s.restore()
			return nil, errors.E(errors.Op("prompt.Acquire"), errors.KindTerminal, err)
		}
		t.pump = p
	}
	s.pump = t.pump

	if _, err := io.WriteString(t.out, ansi.HideCursor); err != nil {
		s.restore()
		return nil, errors.RenderFailed(err)
	}

	t.active = s
	s.log.Debug("terminal acquired", "tty", t.isTTY)
	return s, nil
}

// Release gives the terminal back: input reading stops, cooked mode and
// the cursor are restored.
func (s *Session) Release() {
	s.once.Do(func() {
		t := s.term
		t.mu.Lock()
		defer t.mu.Unlock()

		if s.pump.cancelable {
			s.pump.stop()
			t.pump = nil
		}
		_, _ = io.WriteString(t.out, ansi.ShowCursor)
		s.restore()
		t.active = nil
		s.log.Debug("terminal released")
	})
}

func (s *Session) restore() {
	if s.oldState == nil {
		return
	}
	if err := term.Restore(s.term.fd, s.oldState); err != nil {
		s.log.Warn("failed to restore terminal mode", "error", err)
	}
	s.oldState = nil
}

// ID returns the interaction id used in logs.
func (s *Session) ID() string {
	return s.id
}

// readResult is one read from the input stream.
type readResult struct {
	data []byte
	err  error
}

// pump reads input on its own goroutine and hands chunks to the active
// session. A pump over a tty is stopped on release so no read is left
// pending in cooked mode; any other reader cannot be interrupted, so its
// pump is kept and reused by the next session.
type pump struct {
	reader     cancelreader.CancelReader
	cancelable bool
	reads      chan readResult
	quit       chan struct{}
	done       chan struct{}
}

func startPump(in io.Reader, tty bool) (*pump, error) {
	p := &pump{
		reads: make(chan readResult),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	if tty {
		r, err := cancelreader.NewReader(in)
		if err != nil {
			return nil, err
		}
		p.reader = r
		p.cancelable = true
	} else {
		p.reader = plainReader{in}
	}
	go p.loop()
	return p, nil
}

func (p *pump) loop() {
	defer close(p.done)
	buf := make([]byte, 256)
	for {
		n, err := p.reader.Read(buf)
		if n > 0 {
			chunk := append([]byte(nil), buf[:n]...)
			select {
			case p.reads <- readResult{data: chunk}:
			case <-p.quit:
				return
			}
		}
		if err != nil {
			select {
			case p.reads <- readResult{err: err}:
			case <-p.quit:
			}
			return
		}
	}
}

func (p *pump) stop() {
	p.reader.Cancel()
	close(p.quit)
	<-p.done
	_ = p.reader.Close()
}

func (p *pump) exited() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// plainReader adapts a reader that cannot be interrupted.
type plainReader struct {
	io.Reader
}

func (plainReader) Cancel() bool { return false }
func (plainReader) Close() error { return nil }
