package core

import "time"

const (
	ScribeName          = "ScribeBot"
	ScribeUserAgent     = "ScribeBot-Indexer/0.1"
	ScribeRepositoryURL = "https://github.com/sandevgo/scribebot"
	ScribeVersion       = "0.1.0"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChannelKind dispatches indexing behavior per container shape.
type ChannelKind int

const (
	ChannelStandard ChannelKind = iota
	ChannelForum
)

// ChannelRef identifies an indexable message container.
type ChannelRef struct {
	ID      string
	GuildID string
	Name    string
	Kind    ChannelKind
}

type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Bot  bool   `json:"bot,omitempty"`
}

type Reaction struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}

// Message is a harvested channel message. Timestamp is unix milliseconds.
type Message struct {
	ID            string     `json:"id"`
	Author        Author     `json:"author"`
	Content       string     `json:"content"`
	Timestamp     int64      `json:"timestamp"`
	HasAttachment bool       `json:"hasAttachment,omitempty"`
	Reactions     []Reaction `json:"reactions,omitempty"`
}

// ChannelIndex holds the bounded, newest-first message window for one channel.
// Watermark is the max timestamp among stored messages, 0 if empty.
type ChannelIndex struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	MessageCount int       `json:"messageCount"`
	Watermark    int64     `json:"watermark"`
	Messages     []Message `json:"messages"`
}

type Category string

const (
	CategoryBug      Category = "bug"
	CategoryFeature  Category = "feature"
	CategorySolution Category = "solution"
)

type ClassifiedRecord struct {
	Channel   string   `json:"channel"`
	Content   string   `json:"content"`
	Author    string   `json:"author"`
	Timestamp int64    `json:"timestamp"`
	MessageID string   `json:"messageId"`
	Category  Category `json:"category"`
}

// Snapshot is the per-guild aggregate index. It is owned by its caller and
// mutated only by a single indexing run at a time.
type Snapshot struct {
	Channels    map[string]*ChannelIndex `json:"channels"`
	Bugs        []ClassifiedRecord       `json:"bugs"`
	Features    []ClassifiedRecord       `json:"features"`
	Solutions   []ClassifiedRecord       `json:"solutions"`
	LastIndexed *time.Time               `json:"lastIndexed"`
}

func NewSnapshot() *Snapshot {
	return &Snapshot{
		Channels:  make(map[string]*ChannelIndex),
		Bugs:      []ClassifiedRecord{},
		Features:  []ClassifiedRecord{},
		Solutions: []ClassifiedRecord{},
	}
}

func (s *Snapshot) Records(cat Category) []ClassifiedRecord {
	switch cat {
	case CategoryBug:
		return s.Bugs
	case CategoryFeature:
		return s.Features
	case CategorySolution:
		return s.Solutions
	}
	return nil
}

// AppendRecord adds a classified record unless one with the same message ID
// already exists in the category. Re-indexing a channel whose watermark has not
// advanced therefore never duplicates records.
func (s *Snapshot) AppendRecord(rec ClassifiedRecord) bool {
	for _, existing := range s.Records(rec.Category) {
		if existing.MessageID == rec.MessageID {
			return false
		}
	}
	switch rec.Category {
	case CategoryBug:
		s.Bugs = append(s.Bugs, rec)
	case CategoryFeature:
		s.Features = append(s.Features, rec)
	case CategorySolution:
		s.Solutions = append(s.Solutions, rec)
	default:
		return false
	}
	return true
}

// Turn is one conversational exchange half for a single user.
// CreatedAt is unix milliseconds.
type Turn struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
}

// ChatMessage is the role/content pair handed to the text-generation provider.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
