package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"

	"github.com/phuslu/log"
)

// NoLimit disables truncation in ProcessLister.List.
const NoLimit = -1

// Normalised column keys of the top listing. In thread mode top's PID
// column holds the thread id.
const (
	colTID     = "tid"
	colUser    = "euser"
	colCPU     = "%cpu"
	colMem     = "%mem"
	colCommand = "comm"
)

var (
	topColumns = []string{"PID", "USER", "%CPU", "%MEM", "COMMAND"}
	topRename  = map[string]string{
		"PID":     colTID,
		"USER":    colUser,
		"%CPU":    colCPU,
		"%MEM":    colMem,
		"COMMAND": colCommand,
	}
)

// ThreadRow is one thread observed in a poll.
type ThreadRow struct {
	PID     int
	TID     int
	User    string
	CPU     float64
	Mem     float64
	Command string
	Name    string // empty until Join runs
}

// ThreadLister produces the thread rows of one poll.
type ThreadLister interface {
	List(ctx context.Context, limit int) ([]ThreadRow, error)
}

// ProcessLister lists the threads of every process whose command name is
// Target, busiest first.
type ProcessLister struct {
	Runner CommandRunner
	Tgids  TgidResolver
	TopCmd string
	Target string
	Log    *log.Logger
}

// List runs top once in thread mode and returns the matching threads sorted
// by CPU usage descending, truncated to limit rows unless limit is NoLimit.
func (l *ProcessLister) List(ctx context.Context, limit int) ([]ThreadRow, error) {
	out, err := l.Runner.Output(ctx, l.TopCmd, "-H", "-b", "-n", "1")
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("list threads: %w", err)
	}

	records, err := ParseColumns(bytes.NewReader(out), topColumns, topRename)
	if err != nil {
		return nil, fmt.Errorf("parse %s output: %w", l.TopCmd, err)
	}

	rows := make([]ThreadRow, 0, len(records))
	for _, rec := range records {
		row, err := rowFromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("parse %s output: %w", l.TopCmd, err)
		}
		if row.Command != l.Target {
			continue
		}

		pid, err := l.Tgids.Tgid(ctx, row.TID)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				// The thread exited between the listing and the lookup.
				l.Log.Debug().Int("tid", row.TID).Msg("thread vanished before pid lookup")
				continue
			}
			return nil, err
		}
		row.PID = pid
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CPU > rows[j].CPU
	})

	if limit >= 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	l.Log.Debug().Int("records", len(records)).Int("threads", len(rows)).Str("target", l.Target).Msg("listed threads")
	return rows, nil
}

// rowFromRecord converts a parsed top record into a ThreadRow. PID and Name
// are left for the caller to fill in.
func rowFromRecord(rec Record) (ThreadRow, error) {
	tid, err := strconv.Atoi(rec[colTID])
	if err != nil {
		return ThreadRow{}, fieldError(rec, colTID)
	}
	cpu, err := strconv.ParseFloat(rec[colCPU], 64)
	if err != nil {
		return ThreadRow{}, fieldError(rec, colCPU)
	}
	mem, err := strconv.ParseFloat(rec[colMem], 64)
	if err != nil {
		return ThreadRow{}, fieldError(rec, colMem)
	}

	return ThreadRow{
		TID:     tid,
		User:    rec[colUser],
		CPU:     cpu,
		Mem:     mem,
		Command: rec[colCommand],
	}, nil
}

func fieldError(rec Record, key string) error {
	return &MalformedRowError{
		Text:   fmt.Sprintf("%s=%s", key, rec[key]),
		Reason: "invalid " + key,
	}
}
