package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/phuslu/log"
)

// Controller drives a batch run or the interactive refresh loop.
type Controller struct {
	Lister ThreadLister
	Names  NameResolver
	Out    io.Writer
	Batch  bool
	Delay  time.Duration
	Log    *log.Logger

	// OpenDisplay acquires the terminal for interactive mode.
	OpenDisplay func() (Display, error)

	// Now is the clock used to account for time spent waiting on input.
	Now func() time.Time
}

// Run executes one batch poll or the interactive loop until the user quits.
func (c *Controller) Run(ctx context.Context) error {
	var err error
	if c.Batch {
		err = c.runBatch(ctx)
	} else {
		err = c.runInteractive(ctx)
	}
	if err == nil && ctx.Err() != nil {
		err = ErrInterrupted
	}
	return err
}

func (c *Controller) runBatch(ctx context.Context) error {
	rows, err := c.poll(ctx, NoLimit)
	if err != nil {
		return err
	}
	return Print(c.Out, rows, RenderOptions{})
}

// runInteractive owns the display for its whole lifetime. On quit the last
// snapshot is printed again once the terminal is restored, so it stays
// visible in the scrollback.
func (c *Controller) runInteractive(ctx context.Context) error {
	rows, err := c.interactiveLoop(ctx)
	if err != nil {
		return err
	}
	return Print(c.Out, rows, RenderOptions{})
}

func (c *Controller) interactiveLoop(ctx context.Context) ([]ThreadRow, error) {
	display, err := c.OpenDisplay()
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	defer display.Close()

	prompt := fmt.Sprintf("refresh every %s, press q to quit", c.Delay)
	for {
		width, height := display.Size()
		rows, err := c.poll(ctx, max(height-2, 0))
		if err != nil {
			return nil, err
		}

		lines, err := Format(rows, RenderOptions{MaxWidth: width})
		if err != nil {
			return nil, err
		}
		display.Draw(append(lines, truncateString(prompt, width)))

		quit, err := c.awaitInput(ctx, display)
		if err != nil {
			return nil, err
		}
		if quit {
			return rows, nil
		}
	}
}

// awaitInput waits out the refresh delay, returning early only for q or Q.
// Other keys are swallowed and the wait resumes for the remaining time.
func (c *Controller) awaitInput(ctx context.Context, display Display) (bool, error) {
	// A zero delay still checks for pending keys once per refresh.
	remaining := c.Delay
	for {
		start := c.Now()
		key, ok := display.ReadKey(ctx, max(remaining, 0))
		if !ok {
			return false, nil
		}
		switch {
		case key.Interrupt:
			return false, ErrInterrupted
		case key.Rune == 'q' || key.Rune == 'Q':
			return true, nil
		}
		remaining -= c.Now().Sub(start)
		if remaining <= 0 {
			return false, nil
		}
	}
}

// poll lists the busiest threads and labels them with their names.
func (c *Controller) poll(ctx context.Context, limit int) ([]ThreadRow, error) {
	start := c.Now()
	rows, err := c.Lister.List(ctx, limit)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			return nil, ErrInterrupted
		}
		return nil, err
	}
	rows = Join(ctx, rows, c.Names)
	// An interrupt during name lookup leaves placeholder names behind.
	if ctx.Err() != nil {
		return nil, ErrInterrupted
	}
	c.Log.Debug().Int("rows", len(rows)).Dur("took", c.Now().Sub(start)).Msg("poll complete")
	return rows, nil
}
