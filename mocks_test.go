package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/phuslu/log"
)

// --- Mocks for Testing ---

// MockCommandRunner simulates running external commands.
type MockCommandRunner struct {
	outputs map[string]string // Maps a command string to its output
	errs    map[string]error  // Optional error per command string
	calls   []string
}

// Output implements CommandRunner for MockCommandRunner.
func (mcr *MockCommandRunner) Output(_ context.Context, name string, arg ...string) ([]byte, error) {
	// Create a unique key for the command and its arguments.
	cmdKey := name + " " + strings.Join(arg, " ")
	mcr.calls = append(mcr.calls, cmdKey)
	output, ok := mcr.outputs[cmdKey]
	if err, hasErr := mcr.errs[cmdKey]; hasErr {
		return []byte(output), err
	}
	if ok {
		return []byte(output), nil
	}
	return nil, fmt.Errorf("mock command not found: %s", cmdKey)
}

// MockTgids maps thread ids to process ids. Threads listed in gone report a
// missing status file.
type MockTgids struct {
	tgids map[int]int
	gone  map[int]bool
}

func (m MockTgids) Tgid(_ context.Context, tid int) (int, error) {
	if m.gone[tid] {
		return 0, &PidResolutionError{TID: tid, Err: &fs.PathError{Op: "open", Path: "status", Err: fs.ErrNotExist}}
	}
	pid, ok := m.tgids[tid]
	if !ok {
		return 0, &PidResolutionError{TID: tid, Err: errNoTgid}
	}
	return pid, nil
}

// MockNames returns a fixed name index per pid and counts lookups.
type MockNames struct {
	byPid map[int]ThreadNameIndex
	calls map[int]int
}

func (m *MockNames) Resolve(_ context.Context, pid int) ThreadNameIndex {
	if m.calls == nil {
		m.calls = make(map[int]int)
	}
	m.calls[pid]++
	return m.byPid[pid]
}

// MockLister returns canned rows and remembers the limits it was asked for.
type MockLister struct {
	rows   []ThreadRow
	err    error
	limits []int
}

func (m *MockLister) List(_ context.Context, limit int) ([]ThreadRow, error) {
	m.limits = append(m.limits, limit)
	if m.err != nil {
		return nil, m.err
	}
	rows := m.rows
	if limit >= 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// MockDisplay records frames and replays scripted key presses. Each key
// advances the mock clock by its delay before being delivered.
type MockDisplay struct {
	width, height int
	keys          []scriptedKey
	frames        [][]string
	timeouts      []time.Duration
	closed        bool
	clock         *mockClock
}

type scriptedKey struct {
	after time.Duration
	key   Key
}

func (m *MockDisplay) Size() (int, int) { return m.width, m.height }

func (m *MockDisplay) Draw(lines []string) {
	m.frames = append(m.frames, append([]string(nil), lines...))
}

func (m *MockDisplay) ReadKey(_ context.Context, timeout time.Duration) (Key, bool) {
	m.timeouts = append(m.timeouts, timeout)
	if len(m.keys) == 0 || m.keys[0].after > timeout {
		m.clock.advance(timeout)
		return Key{}, false
	}
	next := m.keys[0]
	m.keys = m.keys[1:]
	m.clock.advance(next.after)
	return next.key, true
}

func (m *MockDisplay) Close() { m.closed = true }

type mockClock struct {
	now time.Time
}

func (c *mockClock) Now() time.Time { return c.now }

func (c *mockClock) advance(d time.Duration) { c.now = c.now.Add(d) }

// failingWriter fails every write with err.
type failingWriter struct {
	err error
}

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

// discardLogger swallows all log output.
func discardLogger() *log.Logger {
	return &log.Logger{Writer: &log.IOWriter{Writer: io.Discard}}
}
