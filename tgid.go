package main

import (
	"context"
	"errors"

	"github.com/shirou/gopsutil/v3/process"
)

// errNoTgid is the cause of a PidResolutionError for a status file without
// a Tgid field.
var errNoTgid = errors.New("no Tgid field in status")

// TgidResolver maps a kernel thread id to the id of its thread group, i.e.
// the owning process.
type TgidResolver interface {
	Tgid(ctx context.Context, tid int) (int, error)
}

// procStatusResolver reads the Tgid field of /proc/<tid>/status. HOST_PROC
// relocates the proc root as it does for every gopsutil lookup.
type procStatusResolver struct{}

func (procStatusResolver) Tgid(ctx context.Context, tid int) (int, error) {
	// Thread ids are not listed in /proc, so build the handle directly
	// instead of going through process.NewProcess and its existence check.
	p := &process.Process{Pid: int32(tid)}
	tgid, err := p.TgidWithContext(ctx)
	if err != nil {
		return 0, &PidResolutionError{TID: tid, Err: err}
	}
	if tgid <= 0 {
		return 0, &PidResolutionError{TID: tid, Err: errNoTgid}
	}
	return int(tgid), nil
}
