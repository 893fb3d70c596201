package training

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/sandevgo/scribebot/internal/core"
)

func rec(id string, ts int64, content string) core.ClassifiedRecord {
	return core.ClassifiedRecord{
		Channel:   "general",
		Content:   content,
		Author:    "alice",
		Timestamp: ts,
		MessageID: id,
	}
}

func TestAggregate_Counts(t *testing.T) {
	now := time.UnixMilli(1_000_000)

	snap := core.NewSnapshot()
	snap.Channels["c1"] = &core.ChannelIndex{ID: "c1", Name: "general"}
	snap.Channels["c2"] = &core.ChannelIndex{ID: "c2", Name: "random"}
	snap.Bugs = []core.ClassifiedRecord{rec("b1", 100, "bug one")}
	snap.Features = []core.ClassifiedRecord{rec("f1", 100, "feat one"), rec("f2", 200, "feat two")}
	indexed := now.Add(-time.Hour)
	snap.LastIndexed = &indexed

	c := Aggregate(snap, now)

	if c.ChannelCount != 2 {
		t.Errorf("channels = %d, want 2", c.ChannelCount)
	}
	if c.BugCount != 1 || c.FeatureCount != 2 || c.SolutionCount != 0 {
		t.Errorf("counts = %d/%d/%d, want 1/2/0", c.BugCount, c.FeatureCount, c.SolutionCount)
	}
	if c.LastIndexed == nil || !c.LastIndexed.Equal(indexed) {
		t.Error("lastIndexed not carried over")
	}
}

func TestAggregate_RecentRecordsCappedAndOrdered(t *testing.T) {
	now := time.UnixMilli(1_000_000)

	snap := core.NewSnapshot()
	// 15 bug records, inserted oldest-first.
	for i := 1; i <= 15; i++ {
		snap.Bugs = append(snap.Bugs, rec(fmt.Sprintf("b%d", i), int64(i*1000), fmt.Sprintf("bug %d", i)))
	}

	c := Aggregate(snap, now)

	if len(c.RecentBugs) != 10 {
		t.Fatalf("recent bugs = %d, want 10", len(c.RecentBugs))
	}
	if c.RecentBugs[0].Content != "bug 15" {
		t.Errorf("first = %q, want most recent", c.RecentBugs[0].Content)
	}
	for i := 1; i < len(c.RecentBugs); i++ {
		if c.RecentBugs[i-1].Timestamp < c.RecentBugs[i].Timestamp {
			t.Errorf("not sorted desc at index %d", i)
		}
	}
	// BugCount reflects the full set, not the projection.
	if c.BugCount != 15 {
		t.Errorf("bug count = %d, want 15", c.BugCount)
	}
}

func TestAggregate_EntriesGetRelativeTime(t *testing.T) {
	now := time.UnixMilli(10_000_000_000)

	snap := core.NewSnapshot()
	snap.Bugs = []core.ClassifiedRecord{rec("b1", now.UnixMilli()-3_661_000, "crash")}

	c := Aggregate(snap, now)
	if c.RecentBugs[0].When != "1 hour ago" {
		t.Errorf("when = %q, want %q", c.RecentBugs[0].When, "1 hour ago")
	}
}

func TestAggregate_Highlights(t *testing.T) {
	now := time.UnixMilli(1_000_000)

	mkMsg := func(id string, ts int64, content string) core.Message {
		return core.Message{
			ID:        id,
			Author:    core.Author{ID: "u1", Name: "bob"},
			Content:   content,
			Timestamp: ts,
		}
	}

	snap := core.NewSnapshot()
	// Name match is case-insensitive and by substring.
	announcements := &core.ChannelIndex{ID: "c1", Name: "Server-Announcements"}
	for i := 7; i >= 1; i-- { // newest-first
		announcements.Messages = append(announcements.Messages, mkMsg(fmt.Sprintf("a%d", i), int64(i*1000), fmt.Sprintf("news %d", i)))
	}
	snap.Channels["c1"] = announcements
	snap.Channels["c2"] = &core.ChannelIndex{ID: "c2", Name: "general"}

	c := Aggregate(snap, now)

	if len(c.Highlights) != 1 {
		t.Fatalf("highlights = %d, want 1", len(c.Highlights))
	}
	hl := c.Highlights[0]
	if hl.Label != "announcements" {
		t.Errorf("label = %q", hl.Label)
	}
	if hl.Channel != "Server-Announcements" {
		t.Errorf("channel = %q", hl.Channel)
	}
	if len(hl.Messages) != 5 {
		t.Fatalf("messages = %d, want 5", len(hl.Messages))
	}
	if hl.Messages[0].Content != "news 7" {
		t.Errorf("first highlight = %q, want newest", hl.Messages[0].Content)
	}
}

func TestAggregate_NoHighlightWithoutMatch(t *testing.T) {
	snap := core.NewSnapshot()
	snap.Channels["c1"] = &core.ChannelIndex{ID: "c1", Name: "general"}

	c := Aggregate(snap, time.UnixMilli(1_000_000))
	if len(c.Highlights) != 0 {
		t.Errorf("highlights = %d, want 0", len(c.Highlights))
	}
}

func TestRender(t *testing.T) {
	now := time.UnixMilli(10_000_000_000)

	snap := core.NewSnapshot()
	snap.Channels["c1"] = &core.ChannelIndex{ID: "c1", Name: "general"}
	snap.Bugs = []core.ClassifiedRecord{rec("b1", now.UnixMilli()-60_000, "app crashes on launch")}
	indexed := now.Add(-time.Minute)
	snap.LastIndexed = &indexed

	out := Aggregate(snap, now).Render()

	for _, want := range []string{
		"Channels indexed: 1",
		"Bug reports: 1 | Feature requests: 0 | Solutions: 0",
		"Recent Bug Reports",
		"1 minute ago",
		"app crashes on launch",
		indexed.Format(time.RFC3339),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered context missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "Recent Feature Requests") {
		t.Error("empty sections should be omitted")
	}
}

func TestRender_NeverIndexed(t *testing.T) {
	out := Aggregate(core.NewSnapshot(), time.UnixMilli(1_000_000)).Render()
	if !strings.Contains(out, "Last indexed: never") {
		t.Errorf("missing never marker:\n%s", out)
	}
}
