package indexer

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sandevgo/scribebot/internal/core"
	"github.com/sandevgo/scribebot/pkg/log"
)

// Crawler pages backwards through a channel's history until it reaches the
// watermark of the previous run, the source is exhausted, or the per-channel
// cap is filled. Pages are fetched one at a time with a fixed delay in between
// to stay inside the gateway's rate limits.
type Crawler struct {
	gateway    core.Gateway
	pageSize   int
	channelCap int
	fetchDelay time.Duration
}

func NewCrawler(gateway core.Gateway, pageSize, channelCap int, fetchDelay time.Duration) *Crawler {
	return &Crawler{
		gateway:    gateway,
		pageSize:   pageSize,
		channelCap: channelCap,
		fetchDelay: fetchDelay,
	}
}

// Crawl fetches all messages newer than previousWatermark, newest-first.
// The cursor for each page is the oldest message ID seen so far.
func (c *Crawler) Crawl(ctx context.Context, channel core.ChannelRef, previousWatermark int64) ([]core.Message, error) {
	var fetched []core.Message
	var before string

	for {
		page, err := c.gateway.FetchPage(ctx, channel, before, c.pageSize)
		if err != nil {
			return nil, fmt.Errorf("fetch page (channel %s, before %q): %w", channel.ID, before, err)
		}
		if len(page) == 0 {
			break
		}

		reachedWatermark := false
		for _, msg := range page {
			if msg.Timestamp <= previousWatermark {
				// Everything from here on was indexed by a previous run.
				reachedWatermark = true
				break
			}
			fetched = append(fetched, msg)
		}

		if reachedWatermark || len(fetched) >= c.channelCap {
			break
		}

		before = page[len(page)-1].ID

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.fetchDelay):
		}
	}

	log.FromCtx(ctx).Debug().
		Str("channel", channel.Name).
		Int("fetched", len(fetched)).
		Msg("crawl finished")

	return fetched, nil
}

// Merge combines previously stored messages with freshly crawled ones:
// dedupe by ID (fresh wins), sort newest-first, truncate to cap. The returned
// watermark is the max timestamp of the merged set, 0 if empty.
func Merge(stored, fresh []core.Message, cap int) ([]core.Message, int64) {
	byID := make(map[string]core.Message, len(stored)+len(fresh))
	for _, m := range stored {
		byID[m.ID] = m
	}
	for _, m := range fresh {
		byID[m.ID] = m
	}

	merged := make([]core.Message, 0, len(byID))
	for _, m := range byID {
		merged = append(merged, m)
	}

	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Timestamp != merged[j].Timestamp {
			return merged[i].Timestamp > merged[j].Timestamp
		}
		return merged[i].ID > merged[j].ID
	})

	if len(merged) > cap {
		merged = merged[:cap]
	}

	if len(merged) == 0 {
		return merged, 0
	}
	return merged, merged[0].Timestamp
}
