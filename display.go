package main

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Key is a single keyboard input read from a Display.
type Key struct {
	Rune      rune
	Interrupt bool // Ctrl-C or a canceled context
}

// Display is the full-screen terminal used by interactive mode.
type Display interface {
	// Size returns the screen size in cells.
	Size() (width, height int)
	// Draw replaces the screen contents with lines; the first line is the
	// header and the last the status prompt.
	Draw(lines []string)
	// ReadKey waits up to timeout for a key press. It reports false if
	// the timeout elapsed first.
	ReadKey(ctx context.Context, timeout time.Duration) (Key, bool)
	// Close restores the terminal.
	Close()
}

// tcellDisplay implements Display on a tcell screen.
type tcellDisplay struct {
	screen tcell.Screen
	events chan tcell.Event
	quit   chan struct{}
}

// openDisplay takes over the terminal. The caller must Close it.
func openDisplay() (Display, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	d, err := newTcellDisplay(screen)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func newTcellDisplay(screen tcell.Screen) (*tcellDisplay, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}

	d := &tcellDisplay{
		screen: screen,
		events: make(chan tcell.Event, 16),
		quit:   make(chan struct{}),
	}
	go screen.ChannelEvents(d.events, d.quit)
	return d, nil
}

func (d *tcellDisplay) Size() (int, int) {
	return d.screen.Size()
}

func (d *tcellDisplay) Draw(lines []string) {
	d.screen.Clear()
	for y, line := range lines {
		style := tcell.StyleDefault
		switch y {
		case 0:
			style = style.Reverse(true)
		case len(lines) - 1:
			style = style.Dim(true)
		}
		drawString(d.screen, 0, y, style, line)
	}
	d.screen.Show()
}

func (d *tcellDisplay) ReadKey(ctx context.Context, timeout time.Duration) (Key, bool) {
	if ctx.Err() != nil {
		return Key{Interrupt: true}, true
	}

	// Keys already queued win over an expired deadline, so a zero timeout
	// still sees them.
	for len(d.events) > 0 {
		ev, open := <-d.events
		if key, ok := d.handleEvent(ev, open); ok {
			return key, true
		}
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return Key{Interrupt: true}, true
		case <-timer.C:
			return Key{}, false
		case ev, open := <-d.events:
			if key, ok := d.handleEvent(ev, open); ok {
				return key, true
			}
		}
	}
}

// handleEvent turns a screen event into a key. Resizes are handled here and
// produce no key. A closed event stream means the screen is gone.
func (d *tcellDisplay) handleEvent(ev tcell.Event, open bool) (Key, bool) {
	if !open {
		return Key{Interrupt: true}, true
	}
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return Key{Interrupt: true}, true
		}
		return Key{Rune: ev.Rune()}, true
	case *tcell.EventResize:
		d.screen.Sync()
	}
	return Key{}, false
}

func (d *tcellDisplay) Close() {
	close(d.quit)
	d.screen.Fini()
}

// drawString puts text on row y starting at column x, advancing by each
// rune's cell width.
func drawString(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}
