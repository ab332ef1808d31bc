// Command mootimerd is the mootimer daemon: it owns every profile's
// timers, tasks, entries, and config, and serves them over a Unix socket
// (or, with --mcp, over stdio as an MCP tool server).
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mootimer/daemon/internal/config"
	"github.com/mootimer/daemon/internal/entry"
	"github.com/mootimer/daemon/internal/eventbus"
	mcpadapter "github.com/mootimer/daemon/internal/mcp"
	"github.com/mootimer/daemon/internal/paths"
	"github.com/mootimer/daemon/internal/profile"
	"github.com/mootimer/daemon/internal/rpc"
	"github.com/mootimer/daemon/internal/storage"
	"github.com/mootimer/daemon/internal/sync"
	"github.com/mootimer/daemon/internal/task"
	"github.com/mootimer/daemon/internal/timer"
)

var (
	socketPath string
	logLevel   string
	mcpMode    bool
)

var rootCmd = &cobra.Command{
	Use:           "mootimerd",
	Short:         "mootimer work-timing daemon",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&socketPath, "socket", "", "Unix socket path (default: daemon.socket_path from config)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "error|warn|info|debug|trace (default: daemon.log_level from config)")
	rootCmd.Flags().BoolVar(&mcpMode, "mcp", false, "serve an MCP stdio tool adapter instead of the RPC socket")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mootimerd: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	dataDir, err := paths.DataDir()
	if err != nil {
		return fmt.Errorf("resolving data dir: %w", err)
	}
	configDir, err := paths.ConfigDir()
	if err != nil {
		return fmt.Errorf("resolving config dir: %w", err)
	}
	if err := paths.EnsureDir(dataDir); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	if err := paths.EnsureDir(configDir); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	cfgManager, err := config.NewManager(storage.NewConfigStorage(configDir))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cfgManager.Get()

	if logLevel == "" {
		logLevel = cfg.Daemon.LogLevel
	}
	if socketPath == "" {
		socketPath = cfg.Daemon.SocketPath
	}
	setupLogging(logLevel, paths.LogFile(dataDir))

	bus := eventbus.New()

	profileManager, err := profile.NewManager(storage.NewProfileStorage(dataDir), bus)
	if err != nil {
		return fmt.Errorf("loading profiles: %w", err)
	}
	taskManager := task.NewManager(storage.NewTaskStorage(dataDir), bus)
	entryManager := entry.NewManager(storage.NewEntryStorage(dataDir), bus)

	timerManager := timer.NewManager(bus)
	timerManager.SetTaskTitleResolver(taskManager)

	deps := &rpc.Deps{
		Bus:      bus,
		Timers:   timerManager,
		Profiles: profileManager,
		Tasks:    taskManager,
		Entries:  entryManager,
		Config:   cfgManager,
		Syncer:   sync.NewSyncer(dataDir),
	}

	ctx := setupSignalHandler()

	if mcpMode {
		slog.Info("mootimerd: starting MCP adapter")
		return mcpadapter.NewServer(deps).Start(ctx)
	}

	go rpc.RunDrainWorker(ctx, deps)

	server := rpc.NewServer(socketPath, deps)
	if err := server.Serve(ctx); err != nil {
		return fmt.Errorf("rpc server: %w", err)
	}
	slog.Info("mootimerd: shut down cleanly")
	return nil
}

func setupLogging(level, logFile string) {
	f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	var handler slog.Handler
	if err != nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slogLevel(level)})
	} else {
		handler = slog.NewTextHandler(f, &slog.HandlerOptions{Level: slogLevel(level)})
	}
	slog.SetDefault(slog.New(handler))
}

// slogLevel maps the daemon's five-level taxonomy onto slog's four;
// "trace" logs at slog's lowest level since slog has no finer level.
func slogLevel(level string) slog.Level {
	switch level {
	case "error":
		return slog.LevelError
	case "warn":
		return slog.LevelWarn
	case "debug", "trace":
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// setupSignalHandler sets up a context that cancels on SIGINT/SIGTERM,
// matching the teacher's cmd/services.go pattern.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}
