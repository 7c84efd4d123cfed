// Package alert fans out a dispatched mint into an enriched chat message:
// social search, AI summary, rendering, and chat delivery (spec §4.G).
package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/pumpwatch/monitor/internal/aiclient"
	"github.com/pumpwatch/monitor/internal/evaluator"
	"github.com/pumpwatch/monitor/internal/pricing"
	"github.com/pumpwatch/monitor/internal/render"
	"github.com/pumpwatch/monitor/internal/social"
)

// SocialSearcher finds the first matching post for a mint.
type SocialSearcher interface {
	SearchFirstPost(ctx context.Context, query string) social.Post
}

// Summarizer produces an AI summary for a token.
type Summarizer interface {
	Summarize(ctx context.Context, in aiclient.Input) (string, error)
}

// launchTimeLocation is the fixed timezone the chat message reports
// launch_time in, per spec §4.G item 3 / original_source/src/utils.rs's
// format_timestamp_to_et.
var launchTimeLocation = func() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return time.UTC
	}
	return loc
}()

// formatLaunchTime renders createTimeMs as "YYYY-MM-DD hh:mm AM/PM ET".
func formatLaunchTime(createTimeMs int64) string {
	t := time.UnixMilli(createTimeMs).In(launchTimeLocation)
	return t.Format("2006-01-02 03:04 PM") + " ET"
}

// ChatSender delivers a rendered alert to the chat channel.
type ChatSender interface {
	SendAlert(ctx context.Context, d render.TokenDetails) error
}

// Fanout wires together the social, AI-summary, render, and chat stages for
// one dispatched mint.
type Fanout struct {
	Social SocialSearcher
	AI     Summarizer
	Chat   ChatSender
}

// New builds a Fanout from its three collaborators.
func New(social SocialSearcher, ai Summarizer, chat ChatSender) *Fanout {
	return &Fanout{Social: social, AI: ai, Chat: chat}
}

// Send enriches d and delivers the resulting alert. A failed AI summary is
// fatal for this mint's alert (spec §4.G item 2): the caller returns an
// error but the mint's alert_sent marker, already set by the Evaluator
// before handoff, is deliberately left in place — a summary failure must
// not cause a retry storm on the next pass (spec §7).
func (f *Fanout) Send(ctx context.Context, d evaluator.Dispatch) error {
	post := f.Social.SearchFirstPost(ctx, d.Mint)

	summary, err := f.AI.Summarize(ctx, aiclient.Input{
		Name:     d.Record.Name,
		Symbol:   d.Record.Symbol,
		URI:      d.Record.URI,
		XContent: post.Text,
	})
	if err != nil {
		return fmt.Errorf("ai summary for mint %s: %w", d.Mint, err)
	}

	details := render.TokenDetails{
		Mint:       d.Mint,
		Name:       d.Record.Name,
		Symbol:     d.Record.Symbol,
		URI:        d.Record.URI,
		AIAnalysis: summary,
		AIFromX:    post.URL,
		MarketCap:  pricing.FormatMarketCap(d.Record.MarketCap),
		Creator:    d.Record.Creator,
		LaunchTime: formatLaunchTime(d.Record.CreateTimeMs),
	}

	if err := f.Chat.SendAlert(ctx, details); err != nil {
		return fmt.Errorf("send alert for mint %s: %w", d.Mint, err)
	}
	return nil
}

// SendAll delivers every dispatch, collecting but not aborting on
// individual failures: one mint's failure must never block the others
// (spec §5, "must not block ingestion" generalized to fan-out).
func (f *Fanout) SendAll(ctx context.Context, dispatches []evaluator.Dispatch) []error {
	var errs []error
	for _, d := range dispatches {
		if err := f.Send(ctx, d); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
