//go:build pprof

package profile

import (
	"slices"
	"sync"

	"github.com/pkg/profile"

	_ "net/http/pprof" // register HTTP handlers
)

// Modes returns the list of supported profiling modes when built with the
// pprof build tag. The special mode "quiet" is omitted from the list.
var Modes = sync.OnceValue(
	func() []string {
		names := make([]string, 0, len(modeOption))

		for name := range modeOption {
			if name != "quiet" {
				names = append(names, name)
			}
		}

		slices.Sort(names)

		return names
	},
)

var modeOption = map[string]func(*profile.Profile){
	"block":     profile.BlockProfile,
	"cpu":       profile.CPUProfile,
	"clock":     profile.ClockProfile,
	"goroutine": profile.GoroutineProfile,
	"mem":       profile.MemProfile,
	"allocs":    profile.MemProfileAllocs,
	"heap":      profile.MemProfileHeap,
	"mutex":     profile.MutexProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
	"quiet":     profile.Quiet,
}

// chain is the accumulated argument list passed to [profile.Start].
type chain struct {
	args []func(*profile.Profile)
}

func start(mode, path string, quiet bool) interface{ Stop() } {
	c := fold(chain{}, withMode(mode))

	// An unrecognized mode profiles nothing.
	if len(c.args) == 0 {
		return noop{}
	}

	return profile.Start(
		fold(c, withPath(path), withQuiet(quiet)).args...,
	)
}

func withMode(m string) Option {
	return func(c chain) chain {
		if fn, ok := modeOption[m]; ok {
			c.args = append(c.args, fn)
		}

		return c
	}
}

func withPath(p string) Option {
	return func(c chain) chain {
		if p != "" {
			c.args = append(c.args, profile.ProfilePath(p))
		}

		return c
	}
}

func withQuiet(v bool) Option {
	return func(c chain) chain {
		if v {
			c.args = append(c.args, profile.Quiet)
		}

		return c
	}
}
