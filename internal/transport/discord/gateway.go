package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/sandevgo/scribebot/internal/config"
	"github.com/sandevgo/scribebot/internal/core"
)

// Gateway adapts the Discord REST API to core.Gateway. Only REST is used; no
// websocket session is opened.
type Gateway struct {
	session *discordgo.Session
}

func NewGateway(cfg *config.DiscordConfig) (*Gateway, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.UserAgent = core.ScribeUserAgent
	return &Gateway{session: session}, nil
}

func (g *Gateway) ListChannels(ctx context.Context, guildID string) ([]core.ChannelRef, error) {
	channels, err := g.session.GuildChannels(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("list guild channels: %w", err)
	}

	refs := make([]core.ChannelRef, 0, len(channels))
	for _, ch := range channels {
		switch ch.Type {
		case discordgo.ChannelTypeGuildText, discordgo.ChannelTypeGuildNews:
			refs = append(refs, toRef(ch, core.ChannelStandard))
		case discordgo.ChannelTypeGuildForum:
			refs = append(refs, toRef(ch, core.ChannelForum))
		}
	}
	return refs, nil
}

func (g *Gateway) FetchPage(ctx context.Context, channel core.ChannelRef, beforeID string, limit int) ([]core.Message, error) {
	msgs, err := g.session.ChannelMessages(channel.ID, limit, beforeID, "", "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetch channel messages: %w", err)
	}

	page := make([]core.Message, 0, len(msgs))
	for _, m := range msgs {
		page = append(page, toMessage(m))
	}
	return page, nil
}

// ListThreads returns both active and archived threads of a forum container.
// Active threads are listed guild-wide by the API and filtered by parent.
func (g *Gateway) ListThreads(ctx context.Context, forum core.ChannelRef) ([]core.ChannelRef, error) {
	var refs []core.ChannelRef

	active, err := g.session.GuildThreadsActive(forum.GuildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("list active threads: %w", err)
	}
	for _, th := range active.Threads {
		if th.ParentID == forum.ID {
			refs = append(refs, toRef(th, core.ChannelStandard))
		}
	}

	archived, err := g.session.ThreadsArchived(forum.ID, nil, 100, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("list archived threads: %w", err)
	}
	for _, th := range archived.Threads {
		refs = append(refs, toRef(th, core.ChannelStandard))
	}

	return refs, nil
}

func toRef(ch *discordgo.Channel, kind core.ChannelKind) core.ChannelRef {
	return core.ChannelRef{
		ID:      ch.ID,
		GuildID: ch.GuildID,
		Name:    ch.Name,
		Kind:    kind,
	}
}

func toMessage(m *discordgo.Message) core.Message {
	msg := core.Message{
		ID:            m.ID,
		Content:       m.Content,
		Timestamp:     m.Timestamp.UnixMilli(),
		HasAttachment: len(m.Attachments) > 0,
	}
	if m.Author != nil {
		msg.Author = core.Author{
			ID:   m.Author.ID,
			Name: m.Author.Username,
			Bot:  m.Author.Bot,
		}
	}
	for _, r := range m.Reactions {
		if r.Emoji == nil {
			continue
		}
		msg.Reactions = append(msg.Reactions, core.Reaction{
			Emoji: r.Emoji.Name,
			Count: r.Count,
		})
	}
	return msg
}
