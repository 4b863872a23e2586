package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/imroc/req/v3"
	"github.com/spf13/cobra"

	"github.com/mailposture/mailposture/internal/config"
	"github.com/mailposture/mailposture/internal/doh"
	"github.com/mailposture/mailposture/internal/httpclient"
	"github.com/mailposture/mailposture/internal/output"
	"github.com/mailposture/mailposture/internal/ratelimit"
)

// Resolver pacing against the public DoH endpoint. Spamhaus DQS and the
// other HTTP APIs share the same client and therefore the same budget.
const (
	requestsPerSecond = 10
	requestBurst      = 5
)

// deps holds fully-resolved runtime dependencies for a subcommand.
type deps struct {
	logger   *slog.Logger
	cfg      *config.Config
	client   *req.Client
	resolver *doh.Client
	format   output.Format
}

// buildDeps resolves config, logger, output format and the shared HTTP
// client. Flag values override their config-file counterparts.
func buildDeps(cmd *cobra.Command, stderr io.Writer) (*deps, error) {
	flags := cmd.Flags()

	configPath, _ := flags.GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	applyFlagOverrides(cmd, cfg)

	level := slog.LevelInfo
	if cfg.Global.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	format := output.Format(cfg.Global.Output)
	switch format {
	case output.FormatTable, output.FormatText, output.FormatJSON, output.FormatPlain:
	default:
		return nil, fmt.Errorf("invalid output format %q: must be \"table\", \"text\", \"json\", or \"plain\"", cfg.Global.Output)
	}

	client, err := httpclient.New(cfg.Global.Proxy, cfg.Global.UserAgent, cfg.Global.Timeout, logger, cfg.Global.Verbose)
	if err != nil {
		return nil, err
	}
	httpclient.AttachRateLimit(client, ratelimit.New(requestsPerSecond, requestBurst))

	return &deps{
		logger:   logger,
		cfg:      cfg,
		client:   client,
		resolver: doh.NewClient(client, cfg.Global.DoHURL),
		format:   format,
	}, nil
}

// applyFlagOverrides copies explicitly-set persistent flags over the
// loaded config so flags always win.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Global.Output, _ = flags.GetString("output")
	}
	if flags.Changed("verbose") {
		cfg.Global.Verbose, _ = flags.GetBool("verbose")
	}
	if flags.Changed("doh-url") {
		cfg.Global.DoHURL, _ = flags.GetString("doh-url")
	}
	if flags.Changed("timeout") {
		cfg.Global.Timeout, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("proxy") {
		cfg.Global.Proxy, _ = flags.GetString("proxy")
	}
	if flags.Changed("dqs-key") {
		cfg.APIKeys.SpamhausDQS, _ = flags.GetString("dqs-key")
	}
	if flags.Changed("geoip-db") {
		cfg.Global.GeoDBPath, _ = flags.GetString("geoip-db")
	}
}
