package main

import (
	"errors"
	"io"
	"os"

	"github.com/joeshaw/envdecode"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

// EnvConfig holds the defaults read from the environment.
type EnvConfig struct {
	// Policy file used when -policy is not given. ENV: MIXER_POLICY
	Policy string `env:"MIXER_POLICY"`
	// NoColor disables colored output. ENV: MIXER_NO_COLOR
	NoColor bool `env:"MIXER_NO_COLOR,default=false"`
}

func loadEnv() (EnvConfig, error) {
	var env EnvConfig
	if err := envdecode.Decode(&env); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return env, err
	}

	return env, nil
}

type MainConfig struct {
	Y bool `cli:"name=y aliases=yaml desc='write yaml instead of json'"`

	Env EnvConfig

	Main *cli.Command
}

// colored reports whether w is a terminal and colors are not disabled.
func (cfg *MainConfig) colored(w io.Writer) bool {
	if cfg.Env.NoColor {
		return false
	}

	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type MergeConfig struct {
	*MainConfig

	Left     bool   `cli:"name=left desc='left value wins every shared property'"`
	Right    bool   `cli:"name=right desc='right value wins every shared property'"`
	Truncate bool   `cli:"name=truncate desc='cut lists of different lengths to the shorter one'"`
	Policy   string `cli:"name=policy desc='policy file, default $MIXER_POLICY'"`
	Patch    bool   `cli:"name=patch desc='print the merge patch from left to the result'"`
	Diff     bool   `cli:"name=diff desc='print a character diff from left to the result'"`
	Report   bool   `cli:"name=report desc='print merge conflicts to stderr'"`
	Log      bool   `cli:"name=log desc='log merge conflicts to stderr as they happen'"`

	Ignore []string

	Merge *cli.Command
}

type EvalConfig struct {
	*MainConfig

	Vars map[string]any

	Eval *cli.Command
}

type PropsConfig struct {
	*MainConfig

	Recursive bool `cli:"name=r desc='list nested properties too'"`

	Props *cli.Command
}
