package preset

import (
	"fmt"
	"log/slog"
	"os"
	"os/user"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/expr-lang/expr"

	"github.com/ardnew/snip/lang"
)

// Predefined errors (sentinel values).
var (
	ErrCompile   = lang.NewError("preset expression compilation failed")
	ErrEvaluate  = lang.NewError("preset expression evaluation failed")
	ErrValueType = lang.NewError("invalid preset value type")
)

// Definition is a user-defined preset from the configuration file. Value
// is an expr-lang expression evaluated once per invocation.
type Definition struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Value       string `yaml:"value"`
}

// builtinLayout maps the built-in preset names to their time layouts.
//
//nolint:gochecknoglobals
var builtinLayout = map[string]string{
	"date":      "20060102",
	"date_time": "20060102150405",
}

// Builtins describes the presets that exist without any configuration.
func Builtins() []Definition {
	return []Definition{
		{Name: "date", Description: "current date (yyyymmdd)"},
		{Name: "date_time", Description: "current date and time (yyyymmddhhmmss)"},
	}
}

// Compute evaluates the built-in presets and the given definitions at a
// single instant and returns the value lists keyed by preset name.
// Definitions may shadow the built-in names.
func Compute(defs ...Definition) (map[string][]string, error) {
	now := time.Now()

	out := make(map[string][]string, len(builtinLayout)+len(defs))
	for name, layout := range builtinLayout {
		out[name] = []string{now.Format(layout)}
	}

	if len(defs) == 0 {
		return out, nil
	}

	env := exprEnv(now)

	for _, def := range defs {
		name := strings.ToLower(def.Name)

		program, err := expr.Compile(def.Value, expr.Env(env))
		if err != nil {
			return nil, ErrCompile.Wrap(err).
				With(slog.String("preset", name)).
				With(slog.String("value", def.Value))
		}

		result, err := expr.Run(program, env)
		if err != nil {
			return nil, ErrEvaluate.Wrap(err).
				With(slog.String("preset", name))
		}

		values, err := toValues(result)
		if err != nil {
			return nil, lang.WrapError(err).
				With(slog.String("preset", name))
		}

		out[name] = values
	}

	return out, nil
}

// exprEnv builds the evaluation environment for preset expressions.
func exprEnv(now time.Time) map[string]any {
	env := makeEnvCache()

	env["date"] = func(layout string) string { return now.Format(layout) }

	return env
}

// Private singleton cache.
//
//nolint:gochecknoglobals
var (
	envCacheOnce sync.Once
	envCache     map[string]any
)

// makeEnvCache returns a copy of the lazily-initialized, process-scoped
// environment of built-in variables and functions.
func makeEnvCache() map[string]any {
	envCacheOnce.Do(func() {
		envCache = map[string]any{
			"hostname": getHostname(),
			"user":     getUser(),
			"cwd":      getCwd,
			"env":      os.Getenv,
		}
	})

	out := make(map[string]any, len(envCache)+1)
	for k, v := range envCache {
		out[k] = v
	}

	return out
}

// toValues converts an expression result to a placeholder value list.
func toValues(result any) ([]string, error) {
	switch v := result.(type) {
	case string:
		return []string{v}, nil

	case []string:
		return v, nil

	case []any:
		out := make([]string, len(v))

		for i, item := range v {
			s, err := toValue(item)
			if err != nil {
				return nil, err
			}

			out[i] = s
		}

		return out, nil

	default:
		s, err := toValue(result)
		if err != nil {
			return nil, err
		}

		return []string{s}, nil
	}
}

func toValue(item any) (string, error) {
	switch v := item.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return "", ErrValueType.
			With(slog.String("type", fmt.Sprintf("%T", item)))
	}
}

func getHostname() string {
	name, err := os.Hostname()
	if err != nil {
		return ""
	}

	return name
}

func getUser() string {
	u, err := user.Current()
	if err != nil {
		return os.Getenv("USER")
	}

	return u.Username
}

func getCwd() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	return dir
}
