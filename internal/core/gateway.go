package core

import "context"

// Gateway is the paginated, rate-limited message source. FetchPage returns
// messages newest-first, strictly older than beforeID (all newest messages when
// beforeID is empty). ListThreads returns both active and archived threads of a
// forum container.
type Gateway interface {
	ListChannels(ctx context.Context, guildID string) ([]ChannelRef, error)
	FetchPage(ctx context.Context, channel ChannelRef, beforeID string, limit int) ([]Message, error)
	ListThreads(ctx context.Context, forum ChannelRef) ([]ChannelRef, error)
}
