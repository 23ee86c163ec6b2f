package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlexZinkM/kukai-seed/internal/api"
	"github.com/AlexZinkM/kukai-seed/internal/config"
	"github.com/AlexZinkM/kukai-seed/internal/crypto"
	"github.com/AlexZinkM/kukai-seed/kukai"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

func revealCmd(c *cli.Context, log *zap.Logger, prompt passwordPrompt) error {
	filePath := c.String("file")
	if filePath == "" {
		return cli.Exit("backup path required: use --file or KUKAI_BACKUP_PATH", 1)
	}

	password, err := prompt()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer clear(password) // Always clear password from memory

	// scrypt takes a moment
	fmt.Fprintln(c.App.ErrWriter, "Decrypting...")

	resp, err := kukai.RevealFromFile(filePath, password, false)
	if err != nil {
		log.Debug("reveal failed", zap.String("kind", crypto.Kind(err)))
		return cli.Exit(crypto.UserMessage(err), 1)
	}

	fmt.Fprintln(c.App.Writer, resp.Mnemonic)

	if qrPath := c.String("qr"); qrPath != "" {
		if err := kukai.WriteQRFile(resp.Mnemonic, qrPath); err != nil {
			return cli.Exit(err.Error(), 1)
		}
		fmt.Fprintf(c.App.ErrWriter, "QR code written to %s\n", qrPath)
	}
	return nil
}

func inspectCmd(c *cli.Context) error {
	filePath := c.String("file")
	if filePath == "" {
		return cli.Exit("backup path required: use --file or KUKAI_BACKUP_PATH", 1)
	}

	data, err := crypto.ReadBackupFile(filePath)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	resp, err := kukai.Inspect(data)
	if err != nil {
		return cli.Exit(crypto.UserMessage(err), 1)
	}

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	fmt.Fprintln(c.App.Writer, string(out))
	return nil
}

func serveCmd(c *cli.Context, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              c.String("listen"),
		Handler:           api.SetupRouter(log, config.GetMaxBodyBytes()),
		ReadHeaderTimeout: 10 * time.Second,
		// reveal runs scrypt, keep write timeout generous
		WriteTimeout: 60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", zap.Error(err))
			return cli.Exit(err.Error(), 1)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
