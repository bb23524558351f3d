package lang

import (
	"errors"
	"os"
	"reflect"
	"testing"

	"github.com/ardnew/snip/log"
)

// quiet returns Sources hermetic to the test: no process environment and
// no logging output.
func quiet(args ...string) Sources {
	return Sources{
		Args:    args,
		Environ: []string{},
		Logger:  log.Make(nil),
	}
}

func mustResolve(t *testing.T, format string, src Sources) Bindings {
	t.Helper()

	tmpl, err := Parse(format)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	bindings, err := tmpl.Resolve(src)
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}

	return bindings
}

func values(t *testing.T, b Bindings, name string) []string {
	t.Helper()

	bind, ok := b[name]
	if !ok {
		t.Fatalf("no binding for %q", name)
	}

	return bind.Values
}

func TestResolve_NamedArguments(t *testing.T) {
	b := mustResolve(t, "<arg1> <arg2>",
		quiet("arg1=a", "arg2=b", "arg1=c"))

	if got := values(t, b, "arg1"); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("arg1 = %v", got)
	}

	if got := values(t, b, "arg2"); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("arg2 = %v", got)
	}
}

func TestResolve_NamesFoldedLower(t *testing.T) {
	b := mustResolve(t, "<arg1>", quiet("ARG1=x"))

	if got := values(t, b, "arg1"); !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("arg1 = %v", got)
	}
}

func TestResolve_ExplicitEmpty(t *testing.T) {
	b := mustResolve(t, "<arg1>", quiet("arg1="))

	bind := b["arg1"]
	if bind == nil || !bind.Explicit || len(bind.Values) != 0 {
		t.Errorf("binding = %+v, want explicit empty", bind)
	}
}

func TestResolve_Positional(t *testing.T) {
	tests := []struct {
		name   string
		format string
		args   []string
		want   map[string][]string
	}{
		{
			name:   "fill placeholders in template order",
			format: "<arg1> <arg2>",
			args:   []string{"a", "b"},
			want:   map[string][]string{"arg1": {"a"}, "arg2": {"b"}},
		},
		{
			name:   "bare values follow a named assignment",
			format: "<arg1> <arg2>",
			args:   []string{"arg1=a", "b", "c"},
			want:   map[string][]string{"arg1": {"a", "b", "c"}},
		},
		{
			name:   "overflow sticks to the last placeholder",
			format: "<arg1> <arg2>",
			args:   []string{"a", "b", "c"},
			want:   map[string][]string{"arg1": {"a"}, "arg2": {"b", "c"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustResolve(t, tt.format, quiet(tt.args...))

			for name, want := range tt.want {
				if got := values(t, b, name); !reflect.DeepEqual(got, want) {
					t.Errorf("%s = %v, want %v", name, got, want)
				}
			}
		})
	}
}

func TestResolve_PositionalAfterNamedBindsToNamed(t *testing.T) {
	// "arg2=b a": the bare value follows the last named placeholder,
	// not the next unset one.
	b := mustResolve(t, "<arg1> <arg2>", quiet("arg2=b", "a"))

	if got := values(t, b, "arg2"); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Errorf("arg2 = %v, want [b a]", got)
	}

	if _, ok := b["arg1"]; ok {
		t.Error("arg1 should have no binding")
	}
}

func TestResolve_UnknownNameWarnsAndDrops(t *testing.T) {
	b := mustResolve(t, "<arg1>", quiet("nope=x", "arg1=a"))

	if _, ok := b["nope"]; ok {
		t.Error("unknown binding was kept")
	}

	if got := values(t, b, "arg1"); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("arg1 = %v", got)
	}
}

func TestResolve_FileBinding(t *testing.T) {
	src := quiet("host:hosts.txt")
	src.ReadFile = func(name string) ([]byte, error) {
		if name != "hosts.txt" {
			t.Errorf("unexpected file %q", name)
		}

		return []byte("alpha\n\nbeta\r\ngamma\n"), nil
	}

	b := mustResolve(t, "<host>", src)

	want := []string{"alpha", "beta", "gamma"}
	if got := values(t, b, "host"); !reflect.DeepEqual(got, want) {
		t.Errorf("host = %v, want %v", got, want)
	}
}

func TestResolve_FileMissing(t *testing.T) {
	src := quiet("host:nope.txt")
	src.ReadFile = func(string) ([]byte, error) {
		return nil, os.ErrNotExist
	}

	tmpl, err := Parse("<host>")
	if err != nil {
		t.Fatal(err)
	}

	_, err = tmpl.Resolve(src)
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("err = %v, want ErrSourceUnavailable", err)
	}
}

func TestResolve_Environment(t *testing.T) {
	src := quiet()
	src.Environ = []string{"rhost=localhost", "RHOST=shouty", "_secret=x"}

	b := mustResolve(t, "<rhost>", src)

	if got := values(t, b, "rhost"); !reflect.DeepEqual(got, []string{"localhost"}) {
		t.Errorf("rhost = %v", got)
	}
}

func TestResolve_ArgumentsBeatEnvironment(t *testing.T) {
	src := quiet("rhost=github.com")
	src.Environ = []string{"rhost=localhost"}

	b := mustResolve(t, "<rhost>", src)

	if got := values(t, b, "rhost"); !reflect.DeepEqual(got, []string{"github.com"}) {
		t.Errorf("rhost = %v", got)
	}
}

func TestResolve_ListLiteral(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{
			name:  "quoted items",
			value: `\('a' 'b c'\)`,
			want:  []string{"a", "b c"},
		},
		{
			name:  "bare items",
			value: `\(x y z\)`,
			want:  []string{"x", "y", "z"},
		},
		{
			name:  "mixed",
			value: `\('a b' c\)`,
			want:  []string{"a b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := quiet()
			src.Environ = []string{"arg1=" + tt.value}

			b := mustResolve(t, "<arg1>", src)

			if got := values(t, b, "arg1"); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("arg1 = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolve_Presets(t *testing.T) {
	src := quiet()
	src.Presets = map[string][]string{"date": {"20260825", "20260825"}}

	b := mustResolve(t, "backup_<date>.tgz", src)

	// Duplicate preset values collapse while preserving order.
	if got := values(t, b, "date"); !reflect.DeepEqual(got, []string{"20260825"}) {
		t.Errorf("date = %v", got)
	}

	if b["date"].Origin != OriginPreset {
		t.Errorf("origin = %v, want preset", b["date"].Origin)
	}
}

func TestResolve_PresetConflict(t *testing.T) {
	src := quiet("date=1999")
	src.Presets = map[string][]string{"date": {"20260825"}}

	tmpl, err := Parse("<date>")
	if err != nil {
		t.Fatal(err)
	}

	_, err = tmpl.Resolve(src)
	if !errors.Is(err, ErrPresetConflict) {
		t.Errorf("err = %v, want ErrPresetConflict", err)
	}
}

func TestResolve_PresetShadowsEnvironment(t *testing.T) {
	src := quiet()
	src.Environ = []string{"date=fromenv"}
	src.Presets = map[string][]string{"date": {"20260825"}}

	b := mustResolve(t, "<date>", src)

	if got := values(t, b, "date"); !reflect.DeepEqual(got, []string{"20260825"}) {
		t.Errorf("date = %v", got)
	}
}

func TestResolve_Defaults(t *testing.T) {
	b := mustResolve(t, "<port='8080'>", quiet())

	if got := values(t, b, "port"); !reflect.DeepEqual(got, []string{"8080"}) {
		t.Errorf("port = %v", got)
	}

	if b["port"].Origin != OriginDefault {
		t.Errorf("origin = %v, want default", b["port"].Origin)
	}

	// Arguments beat defaults.
	b = mustResolve(t, "<port='8080'>", quiet("port=22"))

	if got := values(t, b, "port"); !reflect.DeepEqual(got, []string{"22"}) {
		t.Errorf("port = %v", got)
	}
}

func TestResolve_UnboundLeftUnbound(t *testing.T) {
	b := mustResolve(t, "<arg1> [<arg2>]", quiet("arg1=a"))

	if _, ok := b["arg2"]; ok {
		t.Error("arg2 should have no binding")
	}
}

func TestSplitArg(t *testing.T) {
	tests := []struct {
		arg   string
		name  string
		value string
		sep   byte
	}{
		{"arg1=x", "arg1", "x", '='},
		{"arg1=", "arg1", "", '='},
		{"host:file.txt", "host", "file.txt", ':'},
		{"plain", "", "plain", 0},
		{"=leading", "", "=leading", 0},
		{":leading", "", ":leading", 0},
		{"a=b:c", "a", "b:c", '='},
		{"a:b=c", "a", "b=c", ':'},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			name, value, sep := splitArg(tt.arg)
			if name != tt.name || value != tt.value || sep != tt.sep {
				t.Errorf("splitArg(%q) = %q, %q, %q", tt.arg, name, value, sep)
			}
		})
	}
}
