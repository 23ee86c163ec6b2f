// Recovers the seed phrase of a legacy Kukai (v3) wallet backup.
// Usage: kukai-reveal reveal --file wallet.tez
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlexZinkM/kukai-seed/internal/config"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	if err := config.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := newLogger(config.GetLogLevel())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := newApp(log, passwordPrompt(config.PromptForPassword)).Run(os.Args); err != nil {
		os.Exit(1)
	}
}

// newLogger builds a production JSON logger writing to stderr
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

// passwordPrompt returns the password as []byte (caller zeroes it)
type passwordPrompt func() ([]byte, error)

func newApp(log *zap.Logger, prompt passwordPrompt) *cli.App {
	return &cli.App{
		Name:  "kukai-reveal",
		Usage: "recover the seed phrase of a legacy Kukai wallet backup",
		// print instead of exiting so main decides the exit code
		ExitErrHandler: func(c *cli.Context, err error) {
			var exitErr cli.ExitCoder
			if errors.As(err, &exitErr) {
				fmt.Fprintln(c.App.ErrWriter, exitErr.Error())
			}
		},
		Commands: []*cli.Command{
			{
				Name:  "reveal",
				Usage: "decrypt the backup and print its seed phrase",
				Flags: []cli.Flag{
					backupFileFlag(),
					&cli.StringFlag{Name: "qr", Usage: "also write the phrase as a QR code PNG to this path"},
				},
				Action: func(c *cli.Context) error {
					return revealCmd(c, log, prompt)
				},
			},
			{
				Name:  "inspect",
				Usage: "show version, wallet type and address without decrypting",
				Flags: []cli.Flag{backupFileFlag()},
				Action: func(c *cli.Context) error {
					return inspectCmd(c)
				},
			},
			{
				Name:  "serve",
				Usage: "serve the local HTTP API",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "listen", Usage: "listen address", Value: config.GetListenAddr()},
				},
				Action: func(c *cli.Context) error {
					return serveCmd(c, log)
				},
			},
		},
	}
}

func backupFileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "file",
		Aliases: []string{"f"},
		Usage:   "path to Kukai backup (.tez)",
		Value:   config.GetBackupPath(),
	}
}
