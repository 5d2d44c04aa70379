package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simbrella/cms-console/config"
	"github.com/simbrella/cms-console/internal/adapters/sessionfile"
	"github.com/simbrella/cms-console/internal/bootstrap"
)

type rootOptions struct {
	envFiles    []string
	apiURL      string
	sessionFile string
	output      string
	query       string
	verbose     bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "cms-admin",
		Short: "Operator CLI for the CMS console",
		Long: `Operator CLI for the CMS console.

Sign in once with "cms-admin login"; the session is kept in a local file and reused by
later commands until it expires or you run "cms-admin logout".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch opts.output {
			case outputTable, outputJSON, outputYAML:
				return nil
			default:
				return fmt.Errorf("unsupported --output %q (want table, json or yaml)", opts.output)
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringSliceVar(&opts.envFiles, "env-file", nil, "dotenv files to load before reading the environment")
	flags.StringVar(&opts.apiURL, "api-url", "", "content API base URL (overrides API_BASE_URL)")
	flags.StringVar(&opts.sessionFile, "session-file", "", "session file (overrides CMS_ADMIN_SESSION_FILE)")
	flags.StringVarP(&opts.output, "output", "o", outputTable, "output format: table, json or yaml")
	flags.StringVarP(&opts.query, "query", "q", "", "JMESPath expression applied to the result before printing")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log API calls to stderr")

	cmd.AddCommand(
		newLoginCmd(opts),
		newLogoutCmd(opts),
		newWhoamiCmd(opts),
		newCanCmd(opts),
		newListCmd(opts),
		newGetCmd(opts),
		newDeleteCmd(opts),
		newRestoreCmd(opts),
		newForceDeleteCmd(opts),
		newDashboardCmd(opts),
	)
	return cmd
}

// app is what a command needs once flags are parsed.
type app struct {
	opts    *rootOptions
	cfg     config.AppConfig
	logger  *slog.Logger
	store   *sessionfile.Store
	svcs    bootstrap.ServiceContainer
	in      io.Reader
	out     io.Writer
	printer printer
}

func newApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	cfg, err := bootstrap.LoadConfig(opts.envFiles...)
	if err != nil {
		return nil, err
	}
	if u := strings.TrimSpace(opts.apiURL); u != "" {
		cfg.API.BaseURL = strings.TrimRight(u, "/")
	}
	if f := strings.TrimSpace(opts.sessionFile); f != "" {
		cfg.CLI.SessionFile = f
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	// The session file is both where login persists the session and where outbound
	// calls find their token.
	store := sessionfile.New(cfg.CLI.SessionFile)
	svcs, err := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config:   &cfg,
		Stores:   bootstrap.Stores{Sessions: store},
		Sessions: store,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}

	return &app{
		opts:    opts,
		cfg:     cfg,
		logger:  logger,
		store:   store,
		svcs:    svcs,
		in:      cmd.InOrStdin(),
		out:     cmd.OutOrStdout(),
		printer: printer{format: opts.output, query: opts.query},
	}, nil
}

// runWith adapts a command body that needs an app to cobra's RunE.
func runWith(opts *rootOptions, fn func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, opts)
		if err != nil {
			return err
		}
		return fn(cmd, a, args)
	}
}
