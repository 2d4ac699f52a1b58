package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fugui-tools/filter-bot/internal/modules/stats/domain"
)

type fakeRepo struct {
	days []domain.Daily

	incrementErr error
	listErr      error

	lastDay     time.Time
	lastCommand string
}

func (r *fakeRepo) Increment(ctx context.Context, day time.Time, command string, userID, chatID int64) error {
	if r.incrementErr != nil {
		return r.incrementErr
	}
	r.lastDay, r.lastCommand = day, command
	for i := range r.days {
		if r.days[i].Date.Equal(day) {
			r.days[i].Commands[command]++
			r.days[i].Total++
			r.days[i].Users = addToSet(r.days[i].Users, userID)
			r.days[i].Chats = addToSet(r.days[i].Chats, chatID)
			return nil
		}
	}
	r.days = append(r.days, domain.Daily{
		Date:     day,
		Commands: map[string]int64{command: 1},
		Total:    1,
		Users:    []int64{userID},
		Chats:    []int64{chatID},
	})
	return nil
}

func (r *fakeRepo) ListSince(ctx context.Context, since time.Time) ([]domain.Daily, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []domain.Daily
	for _, d := range r.days {
		if !d.Date.Before(since) {
			out = append(out, d)
		}
	}
	return out, nil
}

func addToSet(set []int64, v int64) []int64 {
	for _, x := range set {
		if x == v {
			return set
		}
	}
	return append(set, v)
}

func dayAgo(n int) time.Time {
	return domain.Day(time.Now().AddDate(0, 0, -n))
}

func TestRecordDistinctSets(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo)
	ctx := context.Background()

	svc.Record(ctx, "add", 7, 1)
	svc.Record(ctx, "add", 7, 1) // same user, same chat
	svc.Record(ctx, "del", 8, 1)

	if len(repo.days) != 1 {
		t.Fatalf("expected one daily row, have %d", len(repo.days))
	}
	d := repo.days[0]
	if d.Total != 3 || d.Commands["add"] != 2 || d.Commands["del"] != 1 {
		t.Errorf("counts wrong: %+v", d)
	}
	if len(d.Users) != 2 {
		t.Errorf("repeat user must not double count, users = %v", d.Users)
	}
	if len(d.Chats) != 1 {
		t.Errorf("repeat chat must not double count, chats = %v", d.Chats)
	}
	if !d.Date.Equal(domain.Day(time.Now())) {
		t.Errorf("row keyed to %v, want today's UTC day", d.Date)
	}
}

func TestRecordSwallowsFaults(t *testing.T) {
	repo := &fakeRepo{incrementErr: errors.New("mongo down")}
	svc := New(repo)

	// Must not panic or surface anything.
	svc.Record(context.Background(), "add", 7, 1)
}

func TestSummaryWindow(t *testing.T) {
	repo := &fakeRepo{days: []domain.Daily{
		{Date: dayAgo(10), Commands: map[string]int64{"add": 5}, Total: 5, Users: []int64{1}, Chats: []int64{1}},
		{Date: dayAgo(3), Commands: map[string]int64{"add": 2}, Total: 2, Users: []int64{1, 2}, Chats: []int64{1}},
		{Date: dayAgo(1), Commands: map[string]int64{"del": 1}, Total: 1, Users: []int64{1}, Chats: []int64{2}},
	}}
	svc := New(repo)

	sum := svc.Summary(context.Background(), 7)
	if sum.TotalCommands != 3 {
		t.Errorf("total = %d, want 3 (day -10 excluded)", sum.TotalCommands)
	}
	if len(sum.Days) != 2 {
		t.Errorf("days in window = %d, want 2", len(sum.Days))
	}
	// User 1 was active on two days and counts twice: per-day-summed, not
	// globally distinct.
	if sum.ActiveUsers != 3 {
		t.Errorf("active users = %d, want 3", sum.ActiveUsers)
	}
	if sum.ActiveChats != 2 {
		t.Errorf("active chats = %d, want 2", sum.ActiveChats)
	}
}

func TestSummaryStoreFault(t *testing.T) {
	repo := &fakeRepo{listErr: errors.New("mongo down")}
	svc := New(repo)

	sum := svc.Summary(context.Background(), 7)
	if sum.TotalCommands != 0 || len(sum.Days) != 0 {
		t.Errorf("expected empty summary on store fault, got %+v", sum)
	}
}
