package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

const jstackOutput = `2024-05-01 10:00:00
Full thread dump OpenJDK 64-Bit Server VM (17.0.9+9 mixed mode, sharing):

Threads class SMR info:
_java_thread_list=0x00007f3c1c0f2a30, length=12, elements={
0x00007f3c1c024d70, 0x00007f3c1c0d4b60
}

"main" #1 prio=5 os_prio=0 cpu=512.33ms elapsed=30.12s tid=0x00007f3c1c024d70 nid=0x64 waiting on condition  [0x00007f3c2146e000]
   java.lang.Thread.State: TIMED_WAITING (sleeping)
	at java.lang.Thread.sleep(java.base@17.0.9/Native Method)

"Worker-1" #12 prio=5 os_prio=0 cpu=10.01ms elapsed=29.80s tid=0x00007f3c1c0d4b60 nid=0x65 runnable  [0x00007f3bf8dfe000]
   java.lang.Thread.State: RUNNABLE

"VM Thread" os_prio=0 cpu=3.21ms elapsed=30.10s tid=0x00007f3c1c0c1c30 nid=0x66 runnable

"pool-1-thread-1" #20 prio=5 os_prio=0 cpu=0.51ms elapsed=1.00s tid=0x00007f3c1c0e0000 nid=103 waiting on condition

JNI global refs: 15, weak refs: 0
`

// TestParseThreadDump checks hex and decimal nids and ignores other lines.
func TestParseThreadDump(t *testing.T) {
	names := parseThreadDump([]byte(jstackOutput))

	assert.Equal(t, ThreadNameIndex{
		100: "main",
		101: "Worker-1",
		102: "VM Thread",
		103: "pool-1-thread-1",
	}, names)
}

// TestParseNid tests both nid notations.
func TestParseNid(t *testing.T) {
	testCases := []struct {
		input string
		want  int
		ok    bool
	}{
		{"0x1a03", 0x1a03, true},
		{"0X1A03", 0x1a03, true},
		{"6659", 6659, true},
		{"0x", 0, false},
		{"", 0, false},
	}
	for _, tc := range testCases {
		got, ok := parseNid(tc.input)
		assert.Equal(t, tc.ok, ok, tc.input)
		assert.Equal(t, tc.want, got, tc.input)
	}
}

// TestJstackResolverToleratesFailure keeps names from partial output when
// jstack exits non-zero, and returns an empty index when it produced none.
func TestJstackResolverToleratesFailure(t *testing.T) {
	runner := &MockCommandRunner{
		outputs: map[string]string{
			"jstack 100": `"Worker-1" #12 prio=5 tid=0x00007f nid=0x65 runnable` + "\n",
		},
		errs: map[string]error{
			"jstack 100": &CommandExecutionError{Command: []string{"jstack", "100"}, ExitCode: 1},
			"jstack 200": &CommandExecutionError{Command: []string{"jstack", "200"}, ExitCode: 1, Stderr: "200: No such process"},
		},
	}
	resolver := &JstackResolver{Runner: runner, JstackCmd: "jstack", Log: discardLogger()}

	assert.Equal(t, ThreadNameIndex{101: "Worker-1"}, resolver.Resolve(context.Background(), 100))
	assert.Empty(t, resolver.Resolve(context.Background(), 200))
	assert.Equal(t, []string{"jstack 100", "jstack 200"}, runner.calls)
}
