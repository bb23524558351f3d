// Package profile provides optional runtime profiling for snip.
//
// # Overview
//
// This package integrates [github.com/pkg/profile] to provide runtime
// profiling with conditional compilation support. Profiling is optional and
// must be enabled at build time using the "pprof" build tag.
//
// When built with profiling disabled (default), all operations are no-ops
// with zero runtime overhead.
//
// # Available Profiling Modes
//
// The following profiling modes are supported when built with the pprof tag:
//
//   - allocs:    Memory allocation profiling (all allocations)
//   - block:     Block (synchronization) profiling
//   - clock:     Wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: Goroutine profiling
//   - heap:      Heap memory profiling (live allocations)
//   - mem:       General memory profiling
//   - mutex:     Mutex contention profiling
//   - thread:    Thread creation profiling
//   - trace:     Execution trace profiling
//
// Use [Modes] to retrieve the list of supported modes programmatically.
//
// # Usage
//
// The profiler is configured using the [Config] type and started with
// [Config.Start]:
//
//	var cfg profile.Config = func() (string, string, bool) {
//	    return "cpu", "/tmp/profiles", true
//	}
//	ctrl := cfg.Start()
//	defer ctrl.Stop()
//
// Profile files are written to the given directory with names matching the
// profiling mode (e.g., cpu.pprof, mem.pprof).
//
// # Command-Line Usage
//
// The snip command supports profiling through command-line flags when built
// with the pprof tag:
//
//	# Enable CPU profiling (writes to default cache directory)
//	./snip --pprof-mode cpu gen -f '<host>' host=a
//
//	# Enable heap profiling with custom output directory
//	./snip --pprof-mode heap --pprof-dir ./profiles list
//
// The default output directory is:
//
//	$XDG_CACHE_HOME/snip/pprof   (Linux/Unix)
//	~/Library/Caches/snip/pprof  (macOS)
//	%LocalAppData%\snip\pprof    (Windows)
//
// # Analyzing Profile Data
//
// Use the go tool pprof command to analyze profile data:
//
//	# Analyze with the original binary for symbol resolution
//	go tool pprof ./snip /tmp/profiles/cpu.pprof
//
//	# Open web UI for visual analysis
//	go tool pprof -http=: /tmp/profiles/cpu.pprof
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
