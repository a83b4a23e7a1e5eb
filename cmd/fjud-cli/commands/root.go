package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"fjudcrawl/internal/components/telemetry"
	"fjudcrawl/internal/scrapers/fjud"
	"fjudcrawl/lib/configutil"
	"fjudcrawl/lib/restyutil"
	"fjudcrawl/lib/serviceutil"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fjud-cli",
	Short: "fjud-cli searches the judicial judgment portal and exports judgment records.",
}

var verbose *bool

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Config is the optional config.json5 next to the binary. Zero values fall
// back to the client defaults.
type Config struct {
	BaseUrl           string  `json:"base_url"`
	ExportUrl         string  `json:"export_url"`
	TimeoutSeconds    int     `json:"timeout_seconds"`
	RequestsPerSecond float64 `json:"requests_per_second"`
}

func initSlog(extra io.Writer) {
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}

	out := io.Writer(os.Stderr)
	if extra != nil {
		out = io.MultiWriter(os.Stderr, extra)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: level,
	})))
}

func createClient(debugDir string) *fjud.Client {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		serviceutil.Fatal("failed to read config", err)
	}

	var debug restyutil.InstrumentOutput
	if debugDir != "" {
		debug = restyutil.NewFilesystemOutput(debugDir)
	}

	client, err := fjud.NewClient(fjud.ClientOptions{
		BaseUrl:           cfg.BaseUrl,
		ExportUrl:         cfg.ExportUrl,
		Timeout:           time.Duration(cfg.TimeoutSeconds) * time.Second,
		RequestsPerSecond: cfg.RequestsPerSecond,
		DebugOutput:       debug,
	}, telemetry.SlogAPI{})
	if err != nil {
		serviceutil.Fatal("failed to initialize portal client", err)
	}
	return client
}
