//go:build pprof

package profile

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/ on http.DefaultServeMux
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/pkg/profile"

	"github.com/ardnew/subcmd/log"
)

// Modes returns the supported profiling modes in lexical order.
var Modes = sync.OnceValue(func() []string {
	return slices.Sorted(maps.Keys(modes))
})

var modes = map[string]func(*profile.Profile){
	"allocs":    profile.MemProfileAllocs,
	"block":     profile.BlockProfile,
	"clock":     profile.ClockProfile,
	"cpu":       profile.CPUProfile,
	"goroutine": profile.GoroutineProfile,
	"heap":      profile.MemProfileHeap,
	"mem":       profile.MemProfile,
	"mutex":     profile.MutexProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
}

const shutdownTimeout = 2 * time.Second

type session struct {
	profile interface{ Stop() }
	server  *http.Server
	once    sync.Once
}

func start(p Profiler) Stopper {
	mode, ok := modes[strings.ToLower(p.Mode)]
	if !ok {
		return ignore{}
	}

	opts := []func(*profile.Profile){mode}

	if p.Path != "" {
		opts = append(opts, profile.ProfilePath(p.Path))
	}

	if p.Quiet {
		opts = append(opts, profile.Quiet)
	}

	s := &session{profile: profile.Start(opts...)}

	if p.Addr != "" {
		s.server = &http.Server{
			Addr:              p.Addr,
			Handler:           http.DefaultServeMux,
			ReadHeaderTimeout: shutdownTimeout,
		}

		go func() {
			err := s.server.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Warn("pprof server stopped",
					slog.String("addr", p.Addr),
					slog.Any("error", err),
				)
			}
		}()
	}

	return s
}

func (s *session) Stop() {
	s.once.Do(func() {
		if s.server != nil {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			_ = s.server.Shutdown(ctx)
		}

		s.profile.Stop()
	})
}
