package options

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Azure/xccover/pkg/report"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	InputResultBundle = "result-bundle"
	InputTargets      = "targets"

	// EnvPrefix is the prefix of the environment variables that back the other flags, e.g. XCCOVER_FORMAT.
	EnvPrefix = "XCCOVER"
)

var ErrInputRequired = errors.New("input required and not supplied")

// Inputs are the step inputs of a report run.
type Inputs struct {
	ResultBundle string
	Targets      report.TargetFilter
}

// InputEnv returns the environment variable the actions runner uses for a step input.
func InputEnv(name string) string {
	return "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}

// NewViper creates a viper instance bound to flags.
// Step inputs are additionally read from their INPUT_* variables, every other flag from XCCOVER_*.
// A flag set on the command line always wins.
func NewViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	for _, input := range []string{InputResultBundle, InputTargets} {
		if err := v.BindEnv(input, InputEnv(input)); err != nil {
			return nil, fmt.Errorf("bind input %s: %w", input, err)
		}
	}

	return v, nil
}

// Load reads the step inputs from v.
func Load(v *viper.Viper) (*Inputs, error) {
	bundle := v.GetString(InputResultBundle)
	if strings.TrimSpace(bundle) == "" {
		return nil, fmt.Errorf("%w: %s", ErrInputRequired, InputResultBundle)
	}

	targets := report.ParseTargetFilter(v.GetString(InputTargets))
	if err := targets.Validate(); err != nil {
		return nil, fmt.Errorf("input %s: %w", InputTargets, err)
	}

	return &Inputs{
		ResultBundle: bundle,
		Targets:      targets,
	}, nil
}
