package indexer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sandevgo/scribebot/internal/config"
	"github.com/sandevgo/scribebot/internal/core"
	"github.com/sandevgo/scribebot/pkg/log"
)

// Indexer drives a best-effort indexing pass over all discoverable channels of
// a guild. A failing channel or thread is logged and skipped; only a failure
// to list the guild's channels aborts the run. Runs for the same guild are
// serialized: the snapshot has a single writer.
type Indexer struct {
	gateway core.Gateway
	store   core.SnapshotStore
	crawler *Crawler
	now     func() time.Time

	mu     sync.Mutex
	guilds map[string]*sync.Mutex
}

func NewIndexer(gateway core.Gateway, store core.SnapshotStore, cfg *config.IndexerConfig) *Indexer {
	return &Indexer{
		gateway: gateway,
		store:   store,
		crawler: NewCrawler(gateway, cfg.PageSize, cfg.ChannelCap, cfg.FetchDelay),
		now:     time.Now,
		guilds:  make(map[string]*sync.Mutex),
	}
}

func (ix *Indexer) guildLock(guildID string) *sync.Mutex {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	lock, ok := ix.guilds[guildID]
	if !ok {
		lock = &sync.Mutex{}
		ix.guilds[guildID] = lock
	}
	return lock
}

// Run executes one full indexing pass for the guild and returns the updated
// snapshot. The snapshot is persisted best-effort at the end of the run.
func (ix *Indexer) Run(ctx context.Context, guildID string) (*core.Snapshot, error) {
	lock := ix.guildLock(guildID)
	lock.Lock()
	defer lock.Unlock()

	logger := log.FromCtx(ctx)

	snap, ok, err := ix.store.Load(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if !ok {
		snap = core.NewSnapshot()
	}

	channels, err := ix.gateway.ListChannels(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("list channels (guild %s): %w", guildID, err)
	}

	for _, ch := range channels {
		switch ch.Kind {
		case core.ChannelStandard:
			ix.indexChannel(ctx, snap, ch)
		case core.ChannelForum:
			ix.indexForum(ctx, snap, ch)
		}
	}

	now := ix.now().UTC()
	snap.LastIndexed = &now

	if err := ix.store.Save(ctx, guildID, snap); err != nil {
		logger.Error().Err(err).Str("guild", guildID).Msg("failed to persist snapshot")
	}

	logger.Info().
		Str("guild", guildID).
		Int("channels", len(snap.Channels)).
		Int("bugs", len(snap.Bugs)).
		Int("features", len(snap.Features)).
		Int("solutions", len(snap.Solutions)).
		Msg("indexing run complete")

	return snap, nil
}

// indexForum treats every thread of a forum container as an independently
// indexable channel. A failing thread does not affect its siblings.
func (ix *Indexer) indexForum(ctx context.Context, snap *core.Snapshot, forum core.ChannelRef) {
	threads, err := ix.gateway.ListThreads(ctx, forum)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("forum", forum.Name).Msg("skipping forum, thread listing failed")
		return
	}
	for _, thread := range threads {
		ix.indexChannel(ctx, snap, thread)
	}
}

func (ix *Indexer) indexChannel(ctx context.Context, snap *core.Snapshot, ch core.ChannelRef) {
	logger := log.FromCtx(ctx)

	var stored []core.Message
	var previousWatermark int64
	if existing, ok := snap.Channels[ch.ID]; ok {
		stored = existing.Messages
		previousWatermark = existing.Watermark
	}

	fresh, err := ix.crawler.Crawl(ctx, ch, previousWatermark)
	if err != nil {
		logger.Warn().Err(err).Str("channel", ch.Name).Msg("skipping channel, crawl failed")
		return
	}

	merged, watermark := Merge(stored, fresh, ix.crawler.channelCap)
	snap.Channels[ch.ID] = &core.ChannelIndex{
		ID:           ch.ID,
		Name:         ch.Name,
		MessageCount: len(merged),
		Watermark:    watermark,
		Messages:     merged,
	}

	ix.classify(snap, ch, fresh)

	logger.Debug().
		Str("channel", ch.Name).
		Int("fresh", len(fresh)).
		Int("stored", len(merged)).
		Int64("watermark", watermark).
		Msg("channel indexed")
}

// classify appends a record per matching category for every freshly harvested
// message. Automated authors are excluded.
func (ix *Indexer) classify(snap *core.Snapshot, ch core.ChannelRef, fresh []core.Message) {
	for _, msg := range fresh {
		if msg.Author.Bot {
			continue
		}
		for _, cat := range Classify(msg.Content) {
			snap.AppendRecord(core.ClassifiedRecord{
				Channel:   ch.Name,
				Content:   msg.Content,
				Author:    msg.Author.Name,
				Timestamp: msg.Timestamp,
				MessageID: msg.ID,
				Category:  cat,
			})
		}
	}
}
