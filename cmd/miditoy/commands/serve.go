package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/miditoy/miditoy/pkg/cli"
	"github.com/miditoy/miditoy/pkg/toolsrv"
)

var (
	serveListen  string
	serveMonitor bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the tool server",
	Long: `Run the composition tool server.

By default the server speaks JSON-RPC 2.0 over stdio, one request per
line, for embedding in tool-calling hosts. With --listen it serves the
same protocol over WebSocket instead.

Examples:
  miditoy serve
  miditoy serve --listen :8765
  miditoy serve --listen :8765 --monitor`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "WebSocket listen address (empty for stdio)")
	serveCmd.Flags().BoolVar(&serveMonitor, "monitor", false, "draw a live status frame (needs --listen)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lib, err := openLibrary()
	if err != nil {
		return err
	}
	defer lib.Close()
	store, err := openStore()
	if err != nil {
		return err
	}

	// Log to stderr: stdout carries the protocol in stdio mode.
	var logOut io.Writer = os.Stderr
	var logw *cli.LogWriter
	if serveMonitor {
		logw = cli.NewLogWriter(200)
		logOut = logw
	}
	level := slog.LevelInfo
	if IsVerbose() {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	srv := &toolsrv.Server{Logger: logger}
	svc := &toolsrv.Service{Library: lib, Store: store, Player: newPlayer()}
	if err := svc.Register(srv); err != nil {
		return err
	}

	listen := serveListen
	if listen == "" {
		if cfg, err := GetConfig(); err == nil && serveMonitor {
			// Monitor mode implies a network listener; fall back to the
			// configured address.
			listen = cfg.Listen
		}
	}

	if listen == "" {
		if serveMonitor {
			return fmt.Errorf("--monitor needs --listen (or a configured listen address)")
		}
		logger.Info("serving on stdio", "tools", len(srv.Tools()))
		err := srv.Serve(ctx, os.Stdin, os.Stdout)
		if errors.Is(err, toolsrv.ErrServerClosed) {
			return nil
		}
		return err
	}

	ws := &toolsrv.WSListener{Addr: listen, Server: srv}
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		ws.Shutdown(sctx)
	}()

	if serveMonitor {
		go runMonitor(ctx, listen, logw)
	}
	logger.Info("serving on websocket", "addr", listen, "tools", len(srv.Tools()))
	err = ws.ListenAndServe(ctx)
	if errors.Is(err, toolsrv.ErrServerClosed) {
		return nil
	}
	return err
}

const shutdownTimeout = 5 * time.Second

// runMonitor redraws the status frame whenever a log line arrives.
func runMonitor(ctx context.Context, addr string, logw *cli.LogWriter) {
	frame := cli.Frame{
		Styles: cli.NewStyles(cli.DefaultTheme),
		Title:  "miditoy serve",
		Status: addr,
		Sections: []cli.Section{
			{Label: "log", Content: logw.Lines},
		},
		Help: "ctrl-c to quit",
	}
	const width, height = 100, 28
	draw := func() {
		fmt.Print("\033[2J\033[H" + frame.Render(width, height))
	}
	draw()
	for {
		select {
		case <-ctx.Done():
			fmt.Println()
			return
		case <-logw.Channel():
			draw()
		}
	}
}
