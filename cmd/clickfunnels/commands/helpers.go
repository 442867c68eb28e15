package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/fivetwenty-io/clickfunnels-node/internal/constants"
	"github.com/fivetwenty-io/clickfunnels-node/internal/node"
	"github.com/fivetwenty-io/clickfunnels-node/pkg/cfclient"
	"github.com/fivetwenty-io/clickfunnels-node/pkg/clickfunnels"
	"github.com/lmittmann/tint"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// session bundles what a command needs to talk to ClickFunnels.
type session struct {
	config  *Config
	client  clickfunnels.Client
	logger  clickfunnels.Logger
	metrics *clickfunnels.MetricsCollector
}

// newLogger builds the stderr logger: tint-formatted, debug level with
// --verbose.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}

	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.RFC3339Nano,
		NoColor:    viper.GetBool("no_color"),
	}))
}

// newSession creates an authenticated client from the CLI configuration.
func newSession(ctx context.Context) (*session, error) {
	config := loadConfig()
	if config.APIToken == "" {
		return nil, constants.ErrNoAPIToken
	}

	logger := clickfunnels.NewSlogLogger(newLogger())
	metrics := clickfunnels.NewMetricsCollector()

	client, err := cfclient.New(ctx, clientConfig(config, logger, metrics))
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &session{config: config, client: client, logger: logger, metrics: metrics}, nil
}

func clientConfig(config *Config, logger clickfunnels.Logger, metrics *clickfunnels.MetricsCollector) *clickfunnels.Config {
	return &clickfunnels.Config{
		APIToken:    config.APIToken,
		Domain:      config.Domain,
		HTTPTimeout: viper.GetDuration("timeout"),
		RetryMax:    config.RetryMax,
		RateLimit:   config.RateLimit,
		Debug:       viper.GetBool("verbose"),
		Logger:      logger,
		Metrics:     metrics,
	}
}

// newNode creates a node over the session client with the configured
// options cache. The returned function releases the cache backend.
func (s *session) newNode(continueOnFail bool) (*node.Node, func(), error) {
	cache, closeCache, err := buildCacheManager(s.config)
	if err != nil {
		return nil, nil, err
	}

	n := node.New(s.client,
		node.WithLogger(s.logger),
		node.WithCache(cache),
		node.WithCredential(s.config.APIToken, s.config.Domain),
		node.WithContinueOnFail(continueOnFail),
		node.WithOptionsTTL(s.config.Cache.TTL),
	)

	return n, closeCache, nil
}

func buildCacheManager(config *Config) (*clickfunnels.CacheManager, func(), error) {
	cacheType, err := clickfunnels.ParseCacheType(config.Cache.Type)
	if err != nil {
		return nil, nil, err
	}

	ttl := config.Cache.TTL
	if ttl <= 0 {
		ttl = constants.OptionsCacheTTL
	}

	options := clickfunnels.DefaultCacheOptions()
	options.DefaultTTL = ttl

	builder := clickfunnels.NewCacheBuilder().
		WithType(cacheType).
		WithMemoryConfig(constants.DefaultCacheSize).
		WithOptions(options)

	if cacheType == clickfunnels.CacheTypeNATS || cacheType == clickfunnels.CacheTypeTiered {
		builder.WithNATSConfig(&clickfunnels.NATSKVConfig{
			URL:     config.Cache.NATS.URL,
			Bucket:  config.Cache.NATS.Bucket,
			TTL:     ttl,
			Timeout: constants.ShortHTTPTimeout,
		})
	}

	cache, err := builder.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create options cache: %w", err)
	}

	closeCache := func() {}
	if closer, ok := cache.(interface{ Close() }); ok {
		closeCache = closer.Close
	}

	return clickfunnels.NewCacheManager(cache, options), closeCache, nil
}

// commandContext applies the --timeout flag.
func commandContext() (context.Context, context.CancelFunc) {
	timeout := viper.GetDuration("timeout")
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}

	return context.WithTimeout(context.Background(), timeout)
}

// renderOutput writes value as JSON or YAML, or calls table for the default
// table format.
func renderOutput(value interface{}, table func() error) error {
	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		return encoder.Encode(value)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)

		return encoder.Encode(value)
	case constants.FormatTable, "":
		return table()
	default:
		return fmt.Errorf("%w: %s", constants.ErrInvalidOutputType, output)
	}
}

func renderTable(table *tablewriter.Table) error {
	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// printStats renders the per-endpoint request statistics when --stats is set.
func (s *session) printStats() error {
	if !viper.GetBool("stats") {
		return nil
	}

	endpoints := s.metrics.Endpoints()
	if len(endpoints) == 0 {
		return nil
	}

	_, _ = os.Stderr.WriteString("\nRequest statistics:\n")

	table := tablewriter.NewWriter(os.Stderr)
	table.Header("Endpoint", "Requests", "Errors", "Avg Latency")

	for _, endpoint := range endpoints {
		metrics := s.metrics.GetMetrics(endpoint)
		if metrics == nil {
			continue
		}

		_ = table.Append([]string{
			endpoint,
			strconv.FormatInt(metrics.TotalRequests, 10),
			strconv.FormatInt(metrics.TotalErrors, 10),
			metrics.AverageLatency.Round(time.Millisecond).String(),
		})
	}

	return renderTable(table)
}

// truncate shortens value for table cells.
func truncate(value string, length int) string {
	runes := []rune(value)
	if len(runes) <= length {
		return value
	}

	return string(runes[:length-3]) + "..."
}
