// Package main implements jtop, top for the threads of Java processes.
//
// jtop runs `top -H` to find the busiest OS threads of every process named
// java, maps each thread to its process through /proc/<tid>/status, and
// labels it with the Java thread name found in `jstack <pid>` output. The
// result is printed once (--batch) or refreshed in a full-screen terminal
// view until q is pressed.
//
// # Architecture
//
//   - runner.go: CommandRunner, spawning external commands under the C locale
//   - columns.go: ParseColumns, the header-driven parser for top's table
//   - tgid.go: TgidResolver, thread id to process id via gopsutil
//   - lister.go: ProcessLister, filtering, sorting and truncating thread rows
//   - names.go: JstackResolver, scraping thread names from a thread dump
//   - join.go: Join, attaching names and the <main>/??? sentinels to rows
//   - render.go: Format and Print, fixed-width output fitted to a width
//   - display.go: Display, the tcell screen used in interactive mode
//   - controller.go: Controller, batch run and the refresh loop
//   - config.go, logger.go: viper configuration and phuslu logging
//
// # Exit status
//
// jtop exits 0 on success, 130 when interrupted, 141 when its output
// cannot be written, and with top's own status if top fails.
package main
