// Package profile starts optional runtime profiling with
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the pprof build tag:
//
//	go build -tags pprof .
//
// Without it, [Modes] is empty and [Profiler.Start] returns a Stopper that
// does nothing.
//
// # Modes
//
// allocs, block, clock, cpu, goroutine, heap, mem, mutex, thread and
// trace. Each writes <mode>.pprof (or trace.out) under [Profiler.Path]:
//
//	p := profile.Profiler{Mode: "cpu", Path: dir, Quiet: true}
//	defer p.Start().Stop()
//
// Profiles are read with go tool pprof:
//
//	go tool pprof -http=: ./subcmd "$XDG_CACHE_HOME/subcmd/pprof/cpu.pprof"
//
// # Live Endpoints
//
// Setting [Profiler.Addr] also serves the [net/http/pprof] handlers at
// /debug/pprof/ on that address until Stop is called:
//
//	subcmd --pprof-mode cpu --pprof-addr localhost:6060 repl
//	go tool pprof http://localhost:6060/debug/pprof/heap
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
