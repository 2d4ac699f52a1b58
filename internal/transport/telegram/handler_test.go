package telegram

import (
	"strings"
	"testing"
	"time"

	"github.com/go-telegram/bot/models"

	channelDomain "github.com/fugui-tools/filter-bot/internal/modules/channel/domain"
	filterDomain "github.com/fugui-tools/filter-bot/internal/modules/filter/domain"
	statsDomain "github.com/fugui-tools/filter-bot/internal/modules/stats/domain"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		text string
		name string
		args []string
		ok   bool
	}{
		{"/add hello Hi there!", "add", []string{"hello", "Hi", "there!"}, true},
		{"/ADD hello hi", "add", []string{"hello", "hi"}, true},
		{"/filters@some_bot", "filters", nil, true},
		{"/stats", "stats", nil, true},
		{"hello world", "", nil, false},
		{"/", "", nil, false},
	}

	for _, tt := range tests {
		name, args, ok := parseCommand(tt.text)
		if ok != tt.ok {
			t.Errorf("parseCommand(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			continue
		}
		if name != tt.name {
			t.Errorf("parseCommand(%q) name = %q, want %q", tt.text, name, tt.name)
		}
		if len(args) != len(tt.args) {
			t.Errorf("parseCommand(%q) args = %v, want %v", tt.text, args, tt.args)
			continue
		}
		for i := range args {
			if args[i] != tt.args[i] {
				t.Errorf("parseCommand(%q) args = %v, want %v", tt.text, args, tt.args)
				break
			}
		}
	}
}

func TestParsePage(t *testing.T) {
	if got := parsePage(nil); got != 1 {
		t.Errorf("parsePage(nil) = %d, want 1", got)
	}
	if got := parsePage([]string{"3"}); got != 3 {
		t.Errorf("parsePage([3]) = %d, want 3", got)
	}
	if got := parsePage([]string{"abc"}); got != 1 {
		t.Errorf("parsePage([abc]) = %d, want 1", got)
	}
	if got := parsePage([]string{"-2"}); got != 1 {
		t.Errorf("parsePage([-2]) = %d, want 1", got)
	}
}

func TestIsGroupChat(t *testing.T) {
	if !isGroupChat(models.Chat{Type: models.ChatTypeGroup}) {
		t.Error("expected group chat to count as a group")
	}
	if !isGroupChat(models.Chat{Type: models.ChatTypeSupergroup}) {
		t.Error("expected supergroup chat to count as a group")
	}
	if isGroupChat(models.Chat{Type: models.ChatTypePrivate}) {
		t.Error("expected private chat to not count as a group")
	}
}

func TestFormatFilterListTruncatesPreviews(t *testing.T) {
	long := strings.Repeat("x", 50)
	out := formatFilterList([]filterDomain.Filter{
		{Keyword: "hello", Response: "Hi there!"},
		{Keyword: "rules", Response: long},
	})

	if !strings.Contains(out, "1. hello → Hi there!") {
		t.Errorf("expected short response verbatim, got:\n%s", out)
	}
	if !strings.Contains(out, "2. rules → "+long[:30]+"...") {
		t.Errorf("expected long response truncated to 30 chars, got:\n%s", out)
	}
	if strings.Contains(out, long) {
		t.Error("full long response should not appear in the listing")
	}
}

func TestFormatFilterListCapsTotalLength(t *testing.T) {
	filters := make([]filterDomain.Filter, 200)
	for i := range filters {
		filters[i] = filterDomain.Filter{
			Keyword:  strings.Repeat("k", 30),
			Response: strings.Repeat("r", 40),
		}
	}

	out := formatFilterList(filters)
	if len(out) > maxReplyLength+100 {
		t.Errorf("listing length = %d, expected it capped near %d", len(out), maxReplyLength)
	}
	if !strings.HasSuffix(out, "... and more") {
		t.Error("capped listing should end with a continuation marker")
	}
}

func TestFormatChannelPage(t *testing.T) {
	added := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	out := formatChannelPage([]channelDomain.Channel{
		{ChannelID: -1001, Title: "News", AddedAt: added},
	}, 2, 25, 3)

	if !strings.Contains(out, "News") {
		t.Errorf("expected channel title in listing, got:\n%s", out)
	}
	if !strings.Contains(out, "ID: -1001") {
		t.Errorf("expected channel ID in listing, got:\n%s", out)
	}
	if !strings.Contains(out, "Page 2/3 of 25 channels") {
		t.Errorf("expected pagination footer, got:\n%s", out)
	}
}

func TestFormatChannelPageOmitsFooterForSinglePage(t *testing.T) {
	out := formatChannelPage([]channelDomain.Channel{
		{ChannelID: -1001, Title: "News", AddedAt: time.Now()},
	}, 1, 1, 1)

	if strings.Contains(out, "Page 1/1") {
		t.Errorf("single-page listing should not carry a footer, got:\n%s", out)
	}
}

func TestFormatStats(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	out := formatStats(&statsDomain.Summary{
		WindowDays:    7,
		TotalCommands: 12,
		ActiveUsers:   3,
		ActiveChats:   2,
		Days: []statsDomain.Daily{
			{Date: day, Commands: map[string]int64{"add": 5, "filters": 7}, Total: 12},
		},
	})

	if !strings.Contains(out, "last 7 days") {
		t.Errorf("expected window in header, got:\n%s", out)
	}
	if !strings.Contains(out, "Total commands: 12") {
		t.Errorf("expected command total, got:\n%s", out)
	}
	if !strings.Contains(out, "add: 5") || !strings.Contains(out, "filters: 7") {
		t.Errorf("expected per-command breakdown, got:\n%s", out)
	}
	if strings.Index(out, "add: 5") > strings.Index(out, "filters: 7") {
		t.Errorf("expected commands sorted by name, got:\n%s", out)
	}
}
