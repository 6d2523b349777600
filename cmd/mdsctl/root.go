package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mydatashare/mdscore"
	"github.com/mydatashare/mdscore/pkg/logger"
)

// app carries the state shared by all commands of one invocation.
type app struct {
	envFiles []string
	apiURL   string
	verbose  bool
	output   string

	log    *slog.Logger
	client *mdscore.Client
}

// NewRootCmd builds the mdsctl command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "mdsctl",
		Short: "MyDataShare API client",
		Long: `mdsctl talks to the public MyDataShare API.

It can:
  - List the available auth items in a given language
  - Run an OpenID Connect login against the identity provider of an auth item

Configuration is read from the environment (MDS_API_BASE_URL, MDS_API_VERSION,
REDIS_URL, ...) and from a .env file in the working directory.`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	flags := cmd.PersistentFlags()
	flags.StringSliceVar(&a.envFiles, "env-file", nil, "additional dotenv files to load")
	flags.StringVar(&a.apiURL, "api-url", "", "API base URL (env: MDS_API_BASE_URL)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")
	flags.StringVarP(&a.output, "output", "o", outputYAML, "output format: json or yaml")

	cmd.AddCommand(newAuthItemsCmd(a))
	cmd.AddCommand(newLoginCmd(a))
	return cmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := checkOutput(a.output); err != nil {
		return err
	}

	env, err := mdscore.LoadEnv(a.envFiles...)
	if err != nil {
		return err
	}
	if a.apiURL != "" {
		env.APIBaseURL = a.apiURL
	}

	a.log = env.Logger(logger.WithVerbose(a.verbose), logger.WithOutput(cmd.ErrOrStderr()))
	a.client, err = mdscore.FromEnv(cmd.Context(), env,
		mdscore.WithLogger(a.log),
		mdscore.WithUserAgent("mdsctl"),
	)
	return err
}

func (a *app) teardown(_ *cobra.Command, _ []string) error {
	if a.client == nil {
		return nil
	}
	return a.client.Close()
}
