package preset_test

import (
	"errors"
	"os"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/snip/preset"
)

func TestComputeBuiltins(t *testing.T) {
	values, err := preset.Compute()
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^\d{8}$`), values["date"][0])
	assert.Regexp(t, regexp.MustCompile(`^\d{14}$`), values["date_time"][0])

	// Both stamps come from the same instant.
	assert.Equal(t, values["date"][0], values["date_time"][0][:8])
}

func TestComputeDefinitions(t *testing.T) {
	t.Setenv("SNIP_TEST_VALUE", "from-env")

	values, err := preset.Compute(
		preset.Definition{Name: "greeting", Value: `"hello " + "world"`},
		preset.Definition{Name: "Pair", Value: `["a", "b"]`},
		preset.Definition{Name: "fromenv", Value: `env("SNIP_TEST_VALUE")`},
		preset.Definition{Name: "answer", Value: `6 * 7`},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"hello world"}, values["greeting"])
	assert.Equal(t, []string{"a", "b"}, values["pair"], "names fold to lower case")
	assert.Equal(t, []string{"from-env"}, values["fromenv"])
	assert.Equal(t, []string{"42"}, values["answer"])
}

func TestComputeEnvironment(t *testing.T) {
	values, err := preset.Compute(
		preset.Definition{Name: "stamp", Value: `date("2006")`},
		preset.Definition{Name: "here", Value: `cwd()`},
	)
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, []string{wd}, values["here"])
	assert.Len(t, values["stamp"][0], 4)
}

func TestComputeCompileError(t *testing.T) {
	_, err := preset.Compute(
		preset.Definition{Name: "bad", Value: `1 +`},
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, preset.ErrCompile), "err = %v", err)
}

func TestComputeShadowsBuiltin(t *testing.T) {
	values, err := preset.Compute(
		preset.Definition{Name: "date", Value: `"fixed"`},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"fixed"}, values["date"])
}

func TestBuiltinsListed(t *testing.T) {
	names := make([]string, 0, 2)
	for _, def := range preset.Builtins() {
		names = append(names, def.Name)
		assert.NotEmpty(t, def.Description)
	}

	assert.ElementsMatch(t, []string{"date", "date_time"}, names)
}
