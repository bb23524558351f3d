package codec

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Kind describes how a codec consumes a placeholder's values.
type Kind int

const (
	// KindValue codecs transform each value independently.
	KindValue Kind = iota
	// KindList codecs reduce the whole value list to a single value.
	KindList
	// KindWhole codecs see the raw item: the string itself when the
	// placeholder renders a single value, the whole list when it renders
	// a list. Only length behaves this way.
	KindWhole
)

// ErrUnknown is returned by [Get] when no codec is registered under the
// requested name.
var ErrUnknown = errors.New("unknown codec")

// ValueFunc transforms a single value.
type ValueFunc func(value, arg string) (string, error)

// ListFunc transforms a whole value list.
type ListFunc func(values []string, arg string) ([]string, error)

// Codec is a named transformation applied to placeholder values.
type Codec struct {
	Name     string
	Desc     string
	Kind     Kind
	NeedsArg bool
	value    ValueFunc
	list     ListFunc
}

// Reducing reports whether the codec collapses a value list to a single
// value. Reducing codecs suppress cartesian expansion for the values they
// consume.
func (c Codec) Reducing() bool { return c.Kind == KindList }

// ApplyValue applies the codec to a placeholder rendering a single value.
func (c Codec) ApplyValue(value, arg string) (string, error) {
	switch c.Kind {
	case KindList:
		// A reducing codec over a single value sees a one-element list.
		out, err := c.list([]string{value}, arg)
		if err != nil {
			return "", err
		}

		return strings.Join(out, " "), nil

	default:
		return c.value(value, arg)
	}
}

// ApplyList applies the codec to a placeholder rendering a value list.
func (c Codec) ApplyList(values []string, arg string) ([]string, error) {
	switch c.Kind {
	case KindList, KindWhole:
		return c.list(values, arg)

	default:
		out := make([]string, len(values))

		for i, v := range values {
			r, err := c.value(v, arg)
			if err != nil {
				return nil, err
			}

			out[i] = r
		}

		return out, nil
	}
}

// CheckArg verifies that the presence of a chain argument matches the
// codec's arity.
func (c Codec) CheckArg(hasArg bool) error {
	if c.NeedsArg && !hasArg {
		return fmt.Errorf("codec %q requires an argument", c.Name)
	}

	if !c.NeedsArg && hasArg {
		return fmt.Errorf("codec %q takes no argument", c.Name)
	}

	return nil
}

//nolint:gochecknoglobals
var registry = sync.OnceValue(func() map[string]Codec {
	table := make(map[string]Codec, len(builtin))

	for _, c := range builtin {
		table[c.Name] = c
	}

	return table
})

// Get returns the codec registered under name.
func Get(name string) (Codec, error) {
	c, ok := registry()[name]
	if !ok {
		return Codec{}, fmt.Errorf("%w: %q", ErrUnknown, name)
	}

	return c, nil
}

// Names returns the names of all registered codecs in sorted order.
func Names() []string {
	table := registry()
	names := make([]string, 0, len(table))

	for name := range table {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Describe returns the one-line description of a registered codec, or an
// empty string if the name is unknown.
func Describe(name string) string {
	return registry()[name].Desc
}
