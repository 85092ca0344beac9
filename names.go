package main

import (
	"bufio"
	"bytes"
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/phuslu/log"
)

// ThreadNameIndex maps native thread ids of one process to Java thread names.
type ThreadNameIndex map[int]string

// NameResolver looks up the thread names of a process.
type NameResolver interface {
	Resolve(ctx context.Context, pid int) ThreadNameIndex
}

// jstack thread header, e.g.
//
//	"main" #1 prio=5 os_prio=0 cpu=41.2ms elapsed=3.1s tid=0x00007f nid=0x1a03 runnable
var threadHeaderRe = regexp.MustCompile(`^\s*"(.*)".*\bnid=(0x[0-9a-fA-F]+|[0-9]+)`)

// JstackResolver scrapes thread names out of a jstack thread dump.
type JstackResolver struct {
	Runner    CommandRunner
	JstackCmd string
	Log       *log.Logger
}

// Resolve dumps the threads of pid and indexes them by native id. A failing
// jstack is not an error: the process may have exited since it was listed,
// so whatever output was produced is used as is.
func (r *JstackResolver) Resolve(ctx context.Context, pid int) ThreadNameIndex {
	out, err := r.Runner.Output(ctx, r.JstackCmd, strconv.Itoa(pid))
	if err != nil {
		r.Log.Debug().Err(err).Int("pid", pid).Msg("thread dump failed, names may be incomplete")
	}
	return parseThreadDump(out)
}

// parseThreadDump builds the nid to name index from jstack output.
func parseThreadDump(out []byte) ThreadNameIndex {
	names := make(ThreadNameIndex)
	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		m := threadHeaderRe.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		nid, ok := parseNid(m[2])
		if !ok {
			continue
		}
		names[nid] = m[1]
	}
	return names
}

// parseNid accepts both the hex form older JDKs print and plain decimal.
func parseNid(s string) (int, bool) {
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s, base = s[2:], 16
	}
	n, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		return 0, false
	}
	return int(n), true
}
