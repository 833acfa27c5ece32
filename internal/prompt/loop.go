package prompt

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"time"

	"github.com/muesli/cancelreader"

	"github.com/zhubert/grove/internal/keys"
)

// model is the state machine behind one interactive call.
type model interface {
	Handle(keys.Event)
	Done() bool
}

// run drives m from the session's input until it is done, the input ends or
// ctx is cancelled. view is repainted after every batch of events. On end of
// input, eof is called to resolve m.
//
// A lone ESC leaves the decoder pending; the loop then arms the debounce
// timer and, if no further bytes arrive before it fires, expires the
// decoder so the ESC is delivered as the Escape key.
func (s *Session) run(ctx context.Context, kind string, m model, view func(width, height int) []string, eof func()) error {
	log := s.log.With(slog.String("kind", kind))
	log.Debug("interaction started")

	paint := func() error {
		w, h := s.renderer.Size()
		return s.renderer.Paint(view(w, h))
	}
	if err := paint(); err != nil {
		return err
	}

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()
	var expire <-chan time.Time

	for !m.Done() {
		var events []keys.Event
		ended := false

		select {
		case <-ctx.Done():
			log.Debug("interaction aborted", "error", ctx.Err())
			return ctx.Err()

		case r := <-s.pump.reads:
			if len(r.data) > 0 {
				events = s.decoder.Feed(r.data)
			}
			if r.err != nil {
				if !stderrors.Is(r.err, io.EOF) && !stderrors.Is(r.err, cancelreader.ErrCanceled) {
					log.Warn("input read failed", "error", r.err)
				}
				events = append(events, s.decoder.Expire()...)
				ended = true
			}

		case <-expire:
			expire = nil
			events = s.decoder.Expire()
		}

		dispatch(log, m, events)
		if ended && !m.Done() {
			log.Debug("end of input")
			eof()
		}

		if s.decoder.Pending() {
			timer.Reset(s.term.escTimeout)
			expire = timer.C
		} else if expire != nil {
			timer.Stop()
			expire = nil
		}

		if m.Done() || ended {
			break
		}
		if err := paint(); err != nil {
			return err
		}
	}
	return nil
}

func dispatch(log *slog.Logger, m model, events []keys.Event) {
	for _, ev := range events {
		if m.Done() {
			return
		}
		if ev.Kind == keys.Unknown {
			log.Debug("dropped key sequence", "seq", ev.Seq)
			continue
		}
		m.Handle(ev)
	}
}

// finish replaces the live frame with a short summary that stays on screen.
func (s *Session) finish(lines ...string) error {
	if err := s.renderer.Paint(lines); err != nil {
		return err
	}
	s.renderer.Commit()
	return nil
}
