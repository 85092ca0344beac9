package main

import "context"

// Thread name sentinels.
const (
	mainThreadName    = "<main>"
	unknownThreadName = "???"
)

// Join labels every row with its thread name. Names are resolved once per
// distinct process id; the process's own thread is always "<main>" and a
// thread missing from the dump is "???". Rows are returned in input order
// and the input slice is left untouched.
func Join(ctx context.Context, rows []ThreadRow, names NameResolver) []ThreadRow {
	out := make([]ThreadRow, len(rows))
	copy(out, rows)

	// Bucket row indexes by pid, keeping first-seen pid order.
	var pids []int
	groups := make(map[int][]int)
	for i, row := range out {
		if _, ok := groups[row.PID]; !ok {
			pids = append(pids, row.PID)
		}
		groups[row.PID] = append(groups[row.PID], i)
	}

	for _, pid := range pids {
		index := names.Resolve(ctx, pid)
		for _, i := range groups[pid] {
			out[i].Name = threadName(out[i], index)
		}
	}
	return out
}

func threadName(row ThreadRow, index ThreadNameIndex) string {
	if row.TID == row.PID {
		return mainThreadName
	}
	if name, ok := index[row.TID]; ok {
		return name
	}
	return unknownThreadName
}
