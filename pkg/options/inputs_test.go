package options

import (
	"testing"

	"github.com/Azure/xccover/pkg/report"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("report", pflag.ContinueOnError)
	flags.String(InputResultBundle, "", "")
	flags.String(InputTargets, "", "")
	flags.String("format", "markdown", "")
	return flags
}

func TestInputEnv(t *testing.T) {
	assert.Equal(t, "INPUT_RESULT-BUNDLE", InputEnv(InputResultBundle))
	assert.Equal(t, "INPUT_TARGETS", InputEnv(InputTargets))
	assert.Equal(t, "INPUT_MY_INPUT", InputEnv("my input"))
}

func TestLoad(t *testing.T) {
	t.Run("from action inputs", func(t *testing.T) {
		t.Setenv("INPUT_RESULT-BUNDLE", "build/Tests.xcresult")
		t.Setenv("INPUT_TARGETS", " AppTarget, ,TestsTarget,AppTarget")

		v, err := NewViper(newFlags())
		require.NoError(t, err)

		inputs, err := Load(v)
		require.NoError(t, err)
		assert.Equal(t, "build/Tests.xcresult", inputs.ResultBundle)
		assert.Equal(t, report.TargetFilter{"AppTarget", "TestsTarget"}, inputs.Targets)
	})

	t.Run("flags override inputs", func(t *testing.T) {
		t.Setenv("INPUT_RESULT-BUNDLE", "from-env.xcresult")
		t.Setenv("INPUT_TARGETS", "")

		flags := newFlags()
		require.NoError(t, flags.Parse([]string{"--result-bundle", "from-flag.xcresult"}))

		v, err := NewViper(flags)
		require.NoError(t, err)

		inputs, err := Load(v)
		require.NoError(t, err)
		assert.Equal(t, "from-flag.xcresult", inputs.ResultBundle)
		assert.True(t, inputs.Targets.Empty())
	})

	t.Run("other flags from prefixed environment", func(t *testing.T) {
		t.Setenv("XCCOVER_FORMAT", "html")

		v, err := NewViper(newFlags())
		require.NoError(t, err)
		assert.Equal(t, "html", v.GetString("format"))
	})

	t.Run("result bundle is required", func(t *testing.T) {
		t.Setenv("INPUT_RESULT-BUNDLE", "   ")

		v, err := NewViper(newFlags())
		require.NoError(t, err)

		_, err = Load(v)
		assert.ErrorIs(t, err, ErrInputRequired)
	})

	t.Run("invalid target pattern", func(t *testing.T) {
		t.Setenv("INPUT_RESULT-BUNDLE", "Tests.xcresult")
		t.Setenv("INPUT_TARGETS", "App[")

		v, err := NewViper(newFlags())
		require.NoError(t, err)

		_, err = Load(v)
		assert.Error(t, err)
	})
}
