package lang

import (
	"errors"
	"reflect"
	"testing"
)

// snippet runs the whole pipeline: parse, resolve from args, expand.
func snippet(t *testing.T, format string, args ...string) []string {
	t.Helper()

	tmpl, err := Parse(format)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	bindings, err := tmpl.Resolve(quiet(args...))
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}

	lines, err := tmpl.Expand(bindings)
	if err != nil {
		t.Fatalf("expand error: %v", err)
	}

	return lines
}

func snippetErr(t *testing.T, format string, args ...string) error {
	t.Helper()

	tmpl, err := Parse(format)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	bindings, err := tmpl.Resolve(quiet(args...))
	if err != nil {
		return err
	}

	_, err = tmpl.Expand(bindings)
	if err == nil {
		t.Fatal("expected expand error")
	}

	return err
}

func TestExpand_Basic(t *testing.T) {
	tests := []struct {
		name   string
		format string
		args   []string
		want   []string
	}{
		{
			name:   "simple substitution",
			format: "hello <arg1>",
			args:   []string{"snip"},
			want:   []string{"hello snip"},
		},
		{
			name:   "no placeholders",
			format: "echo hello",
			want:   []string{"echo hello"},
		},
		{
			name:   "default value",
			format: "curl <host='localhost'>",
			want:   []string{"curl localhost"},
		},
		{
			name:   "same name repeated",
			format: "ping <rhost> > <rhost>.log",
			args:   []string{"rhost=gw"},
			want:   []string{"ping gw > gw.log"},
		},
		{
			name:   "explicit empty renders empty",
			format: "echo <arg1>",
			args:   []string{"arg1="},
			want:   []string{"echo "},
		},
		{
			name:   "escaped brackets stay literal",
			format: `echo \[<arg1>\]`,
			args:   []string{"x"},
			want:   []string{"echo [x]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := snippet(t, tt.format, tt.args...)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpand_Cartesian(t *testing.T) {
	got := snippet(t, "<a>-<b>", "a=1", "a=2", "b=x", "b=y")

	want := []string{"1-x", "1-y", "2-x", "2-y"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExpand_CartesianOuterIsFirstOccurrence(t *testing.T) {
	// b is assigned first but a appears first in the template, so a is
	// the outer loop.
	got := snippet(t, "<a> <b>", "b=x", "b=y", "a=1", "a=2")

	want := []string{"1 x", "1 y", "2 x", "2 y"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExpand_MultiValueSingleName(t *testing.T) {
	got := snippet(t, "ping -c 1 <rhost>;", "rhost=localhost", "github.com")

	want := []string{"ping -c 1 localhost;", "ping -c 1 github.com;"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExpand_Repeatable(t *testing.T) {
	tests := []struct {
		name   string
		format string
		args   []string
		want   []string
	}{
		{
			name:   "implicit space join",
			format: "<arg1...>",
			args:   []string{"arg1=test", "arg1=abc"},
			want:   []string{"test abc"},
		},
		{
			name:   "value codec maps before the join",
			format: "<arg1...|add:'abc'>",
			args:   []string{"arg1=def", "arg1=cba"},
			want:   []string{"defabc cbaabc"},
		},
		{
			name:   "explicit join codec",
			format: "<arg1...|join:','>",
			args:   []string{"arg1=123", "arg1=456"},
			want:   []string{"123,456"},
		},
		{
			name:   "length counts the list",
			format: "<arg1...|length>",
			args:   []string{"arg1=test", "arg1=abc"},
			want:   []string{"2"},
		},
		{
			name:   "single value",
			format: "<arg1...>",
			args:   []string{"arg1=only"},
			want:   []string{"only"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := snippet(t, tt.format, tt.args...)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpand_ReducingSuppressesCartesian(t *testing.T) {
	tests := []struct {
		name   string
		format string
		args   []string
		want   []string
	}{
		{
			name:   "first",
			format: "<arg1|first>",
			args:   []string{"arg1=test", "arg1=abc"},
			want:   []string{"test"},
		},
		{
			name:   "last",
			format: "<arg1|last>",
			args:   []string{"arg1=test", "arg1=abc"},
			want:   []string{"abc"},
		},
		{
			name:   "join",
			format: "<arg1|join:','>",
			args:   []string{"arg1=1", "arg1=2"},
			want:   []string{"1,2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := snippet(t, tt.format, tt.args...)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpand_ValueCodecKeepsCartesian(t *testing.T) {
	// length is value-wise here, so two values still mean two lines.
	got := snippet(t, "<arg1|length>", "arg1=test", "arg1=tset")

	want := []string{"4", "4"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExpand_MixedRepeatableAndScalar(t *testing.T) {
	// The repeatable occurrence renders the whole list on every line;
	// the scalar occurrence still multiplies.
	got := snippet(t, "<arg>: <arg...>", "arg=a", "arg=b")

	want := []string{"a: a b", "b: a b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExpand_CodecChains(t *testing.T) {
	tests := []struct {
		name   string
		format string
		args   []string
		want   []string
	}{
		{
			name:   "chain folds left to right",
			format: "<arg1|b64|b64>",
			args:   []string{"arg1=test"},
			want:   []string{"ZEdWemRBPT0="},
		},
		{
			name:   "quote after hash",
			format: "<arg1|md5|squote>",
			args:   []string{"arg1=abcdefghijklmnopqrstuvwxyz"},
			want:   []string{"'c3fcd3d76192e4007dfb496cca67e13b'"},
		},
		{
			name:   "original readme example",
			format: "echo 'hello <arg1> (<arg1|b64>)';",
			args:   []string{"snippet"},
			want:   []string{"echo 'hello snippet (c25pcHBldA==)';"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := snippet(t, tt.format, tt.args...)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpand_Optional(t *testing.T) {
	tests := []struct {
		name   string
		format string
		args   []string
		want   []string
	}{
		{
			name:   "included when bound",
			format: "echo '<arg1>[ <arg2>]'",
			args:   []string{"hello", "world"},
			want:   []string{"echo 'hello world'"},
		},
		{
			name:   "omitted when unbound, literals verbatim",
			format: "<arg1> [<arg2>]",
			args:   []string{"hello"},
			want:   []string{"hello "},
		},
		{
			name:   "omitted on explicit empty",
			format: "<arg1>[ <arg2>]",
			args:   []string{"arg1=a", "arg2="},
			want:   []string{"a"},
		},
		{
			name:   "omitted when a codec renders empty",
			format: "<arg1>[ <arg2|truncatechars:'0'>]",
			args:   []string{"arg1=a", "arg2=gone"},
			want:   []string{"a"},
		},
		{
			name:   "nested optional omitted independently",
			format: "[<a>[ and <b>]]",
			args:   []string{"a=x"},
			want:   []string{"x"},
		},
		{
			name:   "outer omitted drops inner too",
			format: "always[<a> never[ <b>]] end",
			args:   []string{"b=y"},
			want:   []string{"always end"},
		},
		{
			name:   "default satisfies an optional",
			format: "<arg1>[ <arg2='w'>]",
			args:   []string{"arg1=v"},
			want:   []string{"v w"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := snippet(t, tt.format, tt.args...)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpand_OptionalCartesian(t *testing.T) {
	got := snippet(t, "<a>[ <b>]", "a=1", "a=2", "b=x")

	want := []string{"1 x", "2 x"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExpand_UnresolvedRequired(t *testing.T) {
	err := snippetErr(t, "echo <arg1>")
	if !errors.Is(err, ErrUnresolved) {
		t.Errorf("err = %v, want ErrUnresolved", err)
	}

	// Repeatable placeholders are just as required.
	err = snippetErr(t, "echo <arg1...>")
	if !errors.Is(err, ErrUnresolved) {
		t.Errorf("err = %v, want ErrUnresolved", err)
	}
}

func TestExpand_CodecErrors(t *testing.T) {
	tests := []struct {
		name   string
		format string
		args   []string
	}{
		{
			name:   "unknown codec",
			format: "<arg1|nosuchcodec>",
			args:   []string{"arg1=x"},
		},
		{
			name:   "missing required argument",
			format: "<arg1|truncatechars>",
			args:   []string{"arg1=x"},
		},
		{
			name:   "unexpected argument",
			format: "<arg1|upper:'5'>",
			args:   []string{"arg1=x"},
		},
		{
			name:   "bad width argument",
			format: "<arg1|center:'wide'>",
			args:   []string{"arg1=x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := snippetErr(t, tt.format, tt.args...)
			if !errors.Is(err, ErrCodec) {
				t.Errorf("err = %v, want ErrCodec", err)
			}
		})
	}
}

func TestExpand_CommentLinePassesThrough(t *testing.T) {
	got := snippet(t, "# uses <arg1> raw\necho <arg1>", "arg1=a")

	want := []string{"# uses <arg1> raw\necho a"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExpand_EmptyTemplate(t *testing.T) {
	got := snippet(t, "")
	if !reflect.DeepEqual(got, []string{""}) {
		t.Errorf("got %v, want one empty line", got)
	}
}
