package training

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sandevgo/scribebot/internal/core"
)

const (
	recordsPerCategory   = 10
	messagesPerHighlight = 5
)

// highlightChannels are matched case-insensitively as substrings of stored
// channel display names; the first match per label is used.
var highlightChannels = []string{"announcements", "dev-logs"}

// Entry is one time-annotated line of training context.
type Entry struct {
	Channel   string
	Author    string
	Content   string
	Timestamp int64
	When      string
}

// ChannelHighlight carries the most recent raw messages of a well-known channel.
type ChannelHighlight struct {
	Label    string
	Channel  string
	Messages []Entry
}

// Context is the recency-ranked projection of an index snapshot that gets
// embedded into the generation prompt.
type Context struct {
	ChannelCount  int
	BugCount      int
	FeatureCount  int
	SolutionCount int
	LastIndexed   *time.Time

	RecentBugs      []Entry
	RecentFeatures  []Entry
	RecentSolutions []Entry
	Highlights      []ChannelHighlight
}

// Aggregate is a read-only projection; the snapshot is never mutated.
func Aggregate(snap *core.Snapshot, now time.Time) *Context {
	c := &Context{
		ChannelCount:  len(snap.Channels),
		BugCount:      len(snap.Bugs),
		FeatureCount:  len(snap.Features),
		SolutionCount: len(snap.Solutions),
		LastIndexed:   snap.LastIndexed,

		RecentBugs:      recentRecords(snap.Bugs, now),
		RecentFeatures:  recentRecords(snap.Features, now),
		RecentSolutions: recentRecords(snap.Solutions, now),
	}

	for _, label := range highlightChannels {
		if hl, ok := highlight(snap, label, now); ok {
			c.Highlights = append(c.Highlights, hl)
		}
	}
	return c
}

func recentRecords(records []core.ClassifiedRecord, now time.Time) []Entry {
	sorted := make([]core.ClassifiedRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp > sorted[j].Timestamp
	})

	if len(sorted) > recordsPerCategory {
		sorted = sorted[:recordsPerCategory]
	}

	entries := make([]Entry, 0, len(sorted))
	for _, rec := range sorted {
		entries = append(entries, Entry{
			Channel:   rec.Channel,
			Author:    rec.Author,
			Content:   rec.Content,
			Timestamp: rec.Timestamp,
			When:      Relative(now, rec.Timestamp),
		})
	}
	return entries
}

func highlight(snap *core.Snapshot, label string, now time.Time) (ChannelHighlight, bool) {
	// Deterministic scan order over the channel map.
	ids := make([]string, 0, len(snap.Channels))
	for id := range snap.Channels {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		ch := snap.Channels[id]
		if !strings.Contains(strings.ToLower(ch.Name), label) {
			continue
		}

		n := len(ch.Messages)
		if n > messagesPerHighlight {
			n = messagesPerHighlight
		}
		entries := make([]Entry, 0, n)
		for _, msg := range ch.Messages[:n] { // stored newest-first
			entries = append(entries, Entry{
				Channel:   ch.Name,
				Author:    msg.Author.Name,
				Content:   msg.Content,
				Timestamp: msg.Timestamp,
				When:      Relative(now, msg.Timestamp),
			})
		}
		return ChannelHighlight{Label: label, Channel: ch.Name, Messages: entries}, true
	}
	return ChannelHighlight{}, false
}

// Render serializes the context as structured text for prompt embedding.
func (c *Context) Render() string {
	var sb strings.Builder

	sb.WriteString("## Community Index Summary\n")
	fmt.Fprintf(&sb, "Channels indexed: %d\n", c.ChannelCount)
	fmt.Fprintf(&sb, "Bug reports: %d | Feature requests: %d | Solutions: %d\n", c.BugCount, c.FeatureCount, c.SolutionCount)
	if c.LastIndexed != nil {
		fmt.Fprintf(&sb, "Last indexed: %s\n", c.LastIndexed.Format(time.RFC3339))
	} else {
		sb.WriteString("Last indexed: never\n")
	}

	writeSection := func(title string, entries []Entry) {
		if len(entries) == 0 {
			return
		}
		fmt.Fprintf(&sb, "\n### %s\n", title)
		for _, e := range entries {
			fmt.Fprintf(&sb, "- [#%s, %s] %s: %s\n", e.Channel, e.When, e.Author, e.Content)
		}
	}

	writeSection("Recent Bug Reports", c.RecentBugs)
	writeSection("Recent Feature Requests", c.RecentFeatures)
	writeSection("Recent Solutions", c.RecentSolutions)

	for _, hl := range c.Highlights {
		writeSection(fmt.Sprintf("Latest from #%s", hl.Channel), hl.Messages)
	}

	return sb.String()
}
