package main

import (
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/config"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/db"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/env"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/logger"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap"
)

const component = "CLI"

// session is the state shared by the subcommands of one invocation.
type session struct {
	secrets  string
	logLevel string
	envFile  string

	log     *logger.Logger
	manager *db.Manager
	console *siciap.Console
	out     io.Writer
}

// execute runs one invocation and releases the database handle whatever
// the outcome.
func execute(args []string, out io.Writer) error {
	s := &session{}
	root := newRootCmd(s)
	root.SetArgs(args)
	root.SetOut(out)

	err := root.Execute()
	if cerr := s.close(); err == nil {
		err = cerr
	}
	return err
}

func newRootCmd(s *session) *cobra.Command {
	root := &cobra.Command{
		Use:           "siciap",
		Short:         "Load and query the SICIAP procurement datasets",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.open(cmd)
		},
	}

	root.PersistentFlags().StringVar(&s.envFile, "env-file", ".env", "Optional dotenv file loaded before reading the environment")
	root.PersistentFlags().StringVar(&s.secrets, "secrets", "", "Secrets file with a postgres section (default $SICIAP_SECRETS or secrets.yaml)")
	root.PersistentFlags().StringVar(&s.logLevel, "loglevel", "", "Log level: debug, info, warn, error (default $LOG_LEVEL or info)")

	root.AddCommand(
		newLoadCmd(s),
		newQueryCmd(s),
		newPingCmd(s),
	)
	return root
}

func (s *session) open(cmd *cobra.Command) error {
	if s.envFile != "" {
		if _, err := os.Stat(s.envFile); err == nil {
			if err := godotenv.Load(s.envFile); err != nil {
				return err
			}
		}
	}

	s.out = cmd.OutOrStdout()

	level := s.logLevel
	if level == "" {
		level = env.GetString("LOG_LEVEL", "info")
	}
	s.log = logger.New(logger.ParseLevel(level))

	secrets := s.secrets
	if secrets == "" {
		secrets = env.GetString("SICIAP_SECRETS", "secrets.yaml")
	}
	cfg, err := config.LoadDB(secrets)
	if err != nil {
		return err
	}

	s.manager = db.NewManager(cfg, s.log)
	s.console = siciap.NewConsole(s.manager, s.log)
	s.log.Debug(component, "Session opened: database=%s", cfg.Redacted())
	return nil
}

func (s *session) close() error {
	if s.manager == nil {
		return nil
	}
	err := s.manager.Dispose()
	s.manager = nil
	s.log.Sync()
	return err
}
