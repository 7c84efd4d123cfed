// Command pumpwatch runs the monitor end to end: it dials the upstream
// feed, decodes launchpad and AMM events, maintains the State Store, and
// dispatches one enriched alert per mint that crosses the age/market-cap
// threshold (spec §4, full pipeline).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pumpwatch/monitor/internal/aiclient"
	"github.com/pumpwatch/monitor/internal/alert"
	"github.com/pumpwatch/monitor/internal/chain"
	"github.com/pumpwatch/monitor/internal/chatbot"
	"github.com/pumpwatch/monitor/internal/config"
	"github.com/pumpwatch/monitor/internal/evaluator"
	"github.com/pumpwatch/monitor/internal/ingest"
	"github.com/pumpwatch/monitor/internal/logging"
	"github.com/pumpwatch/monitor/internal/social"
	"github.com/pumpwatch/monitor/internal/store"
	"github.com/pumpwatch/monitor/internal/stream"
)

func main() {
	var debug bool

	root := &cobra.Command{
		Use:   "pumpwatch",
		Short: "watch pump.fun launches and alert on new coins crossing a market-cap threshold",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), debug)
		},
	}
	root.Flags().BoolVar(&debug, "debug", false, "use human-readable development logging")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, debug bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(debug)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	s, err := store.NewRedisStore(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connect store: %w", err)
	}
	poolIndex := store.NewPoolIndex(s)

	sub, err := stream.Dial(ctx, cfg.StreamURL, []string{
		chain.LaunchpadProgramID.String(),
		chain.AMMProgramID.String(),
	})
	if err != nil {
		return fmt.Errorf("dial upstream stream: %w", err)
	}
	defer sub.Close()

	fanout := alert.New(
		social.New(cfg.XSearchBaseURL, cfg.XAPIKey),
		aiclient.New(cfg.AIBaseURL, cfg.AIAPIKey),
		chatbot.New(cfg.TelegramBotToken, cfg.TelegramChatID),
	)

	evalCfg := evaluator.Config{
		MinAge:         cfg.NewCoinMinTime,
		MaxAge:         cfg.NewCoinMaxTime,
		MarketCapFloor: cfg.MarketCapFloor,
	}

	if cfg.RPCURL != "" {
		go watchClockDrift(ctx, chain.NewClient(cfg.RPCURL, rpcRequestsPerSecond), logger)
	}

	socialProbeHTTP := resty.New()
	loop := ingest.New(sub, s, poolIndex, logger)
	loop.OnCreate = func(mint string) {
		probeCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if chain.HasSocialLinks(probeCtx, socialProbeHTTP, mint) {
			logger.Debug("new mint has social links", zap.String("mint", mint))
		}
	}
	loop.OnEvaluatorDue = func() {
		evalCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		dispatches, err := evaluator.Run(evalCtx, s, evalCfg, time.Now())
		if err != nil {
			logger.Warn("evaluator pass failed", zap.Error(err))
			return
		}
		if len(dispatches) == 0 {
			return
		}
		logger.Info("dispatching alerts", zap.Int("count", len(dispatches)))
		for _, sendErr := range fanout.SendAll(evalCtx, dispatches) {
			logger.Warn("alert fan-out failed", zap.Error(sendErr))
		}
	}

	logger.Info("pumpwatch started", zap.String("stream_url", cfg.StreamURL))
	return loop.Run(ctx)
}

// rpcRequestsPerSecond caps the optional RPC client's call rate; the
// monitor's core path never calls it, so a conservative cap is enough to
// avoid tripping a public endpoint's own rate limiter.
const rpcRequestsPerSecond = 5

// watchClockDrift periodically compares the validator's on-chain clock
// against wall-clock time, logging the difference. RPC_URL is optional
// (spec §6): when unset, this is never started, and age calculations stay
// wall-clock-only.
func watchClockDrift(ctx context.Context, c *chain.Client, logger *zap.Logger) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			clock, err := c.GetClock(ctx)
			if err != nil {
				logger.Warn("fetch on-chain clock failed", zap.Error(err))
				continue
			}
			drift := time.Now().Unix() - int64(clock.UnixTimestamp)
			logger.Debug("on-chain clock drift", zap.Int64("seconds", drift))
		}
	}
}
