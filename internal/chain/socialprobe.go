package chain

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	socialProbeTimeout = 300 * time.Millisecond
	frontendAPIBaseURL = "https://frontend-api.pump.fun/coins/"
)

type coinMetadata struct {
	Twitter string `json:"twitter"`
	Telegram string `json:"telegram"`
}

// HasSocialLinks probes the launchpad's public frontend metadata for a
// mint's Telegram/X links, ported from original_source/src/utils.rs's
// have_tg_or_x. It never returns an error: a timeout, non-200, or
// unparseable body is simply "false". Used as an optional enrichment hint
// only; no core behavior depends on it (spec §5).
func HasSocialLinks(ctx context.Context, client *resty.Client, mint string) bool {
	ctx, cancel := context.WithTimeout(ctx, socialProbeTimeout)
	defer cancel()

	var meta coinMetadata
	resp, err := client.R().
		SetContext(ctx).
		SetQueryParam("sync", "false").
		SetResult(&meta).
		Get(frontendAPIBaseURL + mint)
	if err != nil || resp.IsError() {
		return false
	}
	return meta.Twitter != "" || meta.Telegram != ""
}
