// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"github.com/spf13/cobra"

	"github.com/ik5/podsplice/internal/config"
)

// globalOptions are the persistent flags of the root command.
type globalOptions struct {
	configPath string
	verbose    bool
}

// RootCmd assembles the podsplice command tree.
func RootCmd(env *Env, version string) *cobra.Command {
	var opts globalOptions

	root := &cobra.Command{
		Use:     "podsplice",
		Short:   "Merge synthesized speech clips into one podcast track",
		Version: version,
		// Errors are printed by main, which also picks the exit code.
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetIn(env.Stdin)
	root.SetOut(env.Stdout)
	root.SetErr(env.Stderr)

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML configuration file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Debug logging")

	root.AddCommand(MergeCmd(env, &opts))
	root.AddCommand(InspectCmd(env, &opts))
	return root
}

// loadConfig reads the configuration file and applies the environment
// overrides. Flags are applied and the result validated by the caller.
func loadConfig(env *Env, opts *globalOptions) (*config.Config, error) {
	cfg, err := config.Read(opts.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(env.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}
