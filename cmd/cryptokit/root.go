package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/RowanDark/cryptokit/internal/breaker"
	"github.com/RowanDark/cryptokit/internal/config"
	"github.com/RowanDark/cryptokit/internal/logging"
)

const productName = "cryptokit"

// app carries the state resolved before any subcommand runs.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	audit  *logging.AuditLogger

	logLevel  string
	logFormat string
	auditLog  string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           productName,
		Short:         "Encoding, XOR analysis and AES helpers",
		Long:          "cryptokit converts between hex, base64 and text, breaks XOR ciphers,\nand wraps AES with PKCS#7 padding.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.audit.Close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&a.logFormat, "log-format", "", "log format (text or json)")
	flags.StringVar(&a.auditLog, "audit-log", "", "append audit events to this file")

	root.AddCommand(
		newConvertCmd(),
		newXORCmd(),
		newHammingCmd(),
		newScoreCmd(a),
		newBreakCmd(a),
		newAESCmd(),
		newPadCmd(),
		newDetectCmd(),
		newFetchCmd(a),
		newRecipeCmd(a),
		newMetricsCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	if a.auditLog != "" {
		cfg.AuditLog = a.auditLog
	}
	a.cfg = cfg

	logger, err := logging.NewSlog(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.logger = logger

	if cfg.AuditLog != "" {
		audit, err := logging.OpenAuditLog(productName, cfg.AuditLog)
		if err != nil {
			return err
		}
		a.audit = audit
	}
	return nil
}

func (a *app) engine(method string) (*breaker.Engine, error) {
	if method == "" {
		method = a.cfg.Analysis.Method
	}
	engine, err := breaker.NewEngine(method, a.logger)
	if err != nil {
		return nil, err
	}
	if a.audit != nil {
		engine.Audit = a.audit.WithComponent("breaker")
	}
	return engine, nil
}
