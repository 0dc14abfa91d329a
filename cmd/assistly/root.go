package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/assistly-go/internal/app"
	"github.com/samvad-hq/assistly-go/internal/config"
	"github.com/samvad-hq/assistly-go/internal/logger"
	"github.com/samvad-hq/assistly-go/pkg/assistly"
	"github.com/samvad-hq/assistly-go/pkg/httpclient"
)

// cli carries state shared by every subcommand.
type cli struct {
	out      io.Writer
	envFile  string
	logLevel string

	cfg *config.Config
	log logger.Logger

	// newResource is swapped in tests.
	newResource func(cfg *config.Config, log logger.Logger) (customerAPI, error)
}

// customerAPI is the subset of the customer resource the commands call.
type customerAPI interface {
	Customers(ctx context.Context, filters httpclient.Params) (httpclient.Value, error)
	Customer(ctx context.Context, id string) (httpclient.Value, error)
	CreateCustomer(ctx context.Context, attrs httpclient.Params) (httpclient.Value, error)
	UpdateCustomer(ctx context.Context, id string, attrs httpclient.Params) (httpclient.Value, error)
	CreateCustomerDetail(ctx context.Context, customerID string, kind assistly.DetailKind, value string, opts httpclient.Params) (httpclient.Value, error)
	UpdateCustomerDetail(ctx context.Context, customerID string, kind assistly.DetailKind, detailID string, attrs httpclient.Params) (httpclient.Value, error)
}

func newRootCmd(out io.Writer) *cobra.Command {
	return newCLI(out).rootCmd()
}

func newCLI(out io.Writer) *cli {
	return &cli{
		out: out,
		newResource: func(cfg *config.Config, log logger.Logger) (customerAPI, error) {
			return app.NewCustomerResource(cfg, log)
		},
	}
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "assistly",
		Short:         "Assistly customer API client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = logger.Close()
		},
	}

	root.PersistentFlags().StringVar(&c.envFile, "env-file", config.DefaultEnvFile, ".env file to read before the environment")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level override. One of debug, info, warn, error")

	root.AddCommand(
		c.customersCmd(),
		c.detailsCmd(),
		c.syncCmd(),
	)
	return root
}

// setup loads config and the logger once per invocation.
func (c *cli) setup() error {
	cfg, err := config.Load(c.envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if lvl := strings.TrimSpace(c.logLevel); lvl != "" {
		cfg.LogLevel = lvl
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.DebugObj("configuration loaded", "config", cfg.Redacted())

	c.cfg = cfg
	c.log = log
	return nil
}

func (c *cli) resource() (customerAPI, error) {
	return c.newResource(c.cfg, c.log)
}

// print writes the value as indented JSON followed by a newline.
func (c *cli) print(v httpclient.Value) error {
	out := v.Pretty()
	if out == "" {
		out = "null"
	}
	_, err := fmt.Fprintln(c.out, strings.TrimRight(out, "\n"))
	return err
}
