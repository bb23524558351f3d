package cli

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/snip/log"
)

// logFormat is a custom type that configures the logger format as a side
// effect of parsing via encoding.TextUnmarshaler.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
// As Kong parses the --log-format flag, this method is called, allowing us
// to configure the logger early enough to affect error messages during parsing.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel is a custom type that configures the logger level as a side
// effect of parsing via encoding.TextUnmarshaler.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
// As Kong parses the --log-level flag, this method is called, allowing us
// to configure the logger early enough to affect error messages during parsing.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"warn"  enum:"trace,debug,info,warn,error" help:"Set log level."`
	Format     logFormat `default:"text"  enum:"json,text"                   help:"Set log format."`
	TimeLayout string    `default:"none"                                     help:"Set timestamp format."`
	Caller     bool      `default:"false"                                    help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"true"                                     help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{}
}

func (*logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging options"

	return group
}

func (f *logConfig) start() {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.Debug("logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// scan performs an early pass over command-line arguments to extract and
// apply logger configuration before Kong begins parsing. This ensures the
// logger is configured properly regardless of flag position on the command
// line.
//
// While logFormat and logLevel implement encoding.TextUnmarshaler to
// configure the logger as flags are encountered during parsing, boolean
// flags like Pretty don't go through that interface. This pre-scan ensures
// all logger flags are applied early.
func (f *logConfig) scan(args []string) {
	valueFlags := map[string]func(string){
		"--log-level":  func(v string) { _ = f.Level.UnmarshalText([]byte(v)) },
		"--log-format": func(v string) { _ = f.Format.UnmarshalText([]byte(v)) },
	}

	boolFlags := map[string]func(bool){
		"--log-pretty": func(v bool) {
			f.Pretty = v
			log.Config(log.WithPretty(v))
		},
		"--log-caller": func(v bool) {
			f.Caller = v
			log.Config(log.WithCaller(v))
		},
	}

	for i := 0; i < len(args); i++ {
		name, value, assigned := strings.Cut(args[i], "=")

		if apply, ok := valueFlags[name]; ok {
			// Non-boolean flag: consume next arg as value if not assigned.
			if !assigned && i+1 < len(args) && len(args[i+1]) > 0 &&
				args[i+1][0] != '-' {
				value = args[i+1]
				i++
			}

			apply(value)

			continue
		}

		negated := strings.HasPrefix(name, "--no-log-")
		if negated {
			name = "--log-" + name[len("--no-log-"):]
		}

		apply, ok := boolFlags[name]
		if !ok {
			continue
		}

		// Boolean flag: only parse value if explicitly assigned with =.
		enabled := true

		if assigned {
			v, err := strconv.ParseBool(value)
			if err != nil {
				continue
			}

			enabled = v
		}

		apply(enabled != negated)
	}
}
