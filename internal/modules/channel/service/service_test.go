package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fugui-tools/filter-bot/internal/modules/channel/domain"
	sharederrors "github.com/fugui-tools/filter-bot/internal/shared/errors"
)

// fakeRepo keeps channels in insertion order and applies the same active-only
// page semantics the Mongo implementation queries for.
type fakeRepo struct {
	channels []domain.Channel

	upsertErr error
	listErr   error
	deleteErr error
}

func (r *fakeRepo) Upsert(ctx context.Context, c *domain.Channel) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	for i := range r.channels {
		if r.channels[i].ChannelID == c.ChannelID {
			r.channels[i] = *c
			return nil
		}
	}
	r.channels = append(r.channels, *c)
	return nil
}

func (r *fakeRepo) Get(ctx context.Context, channelID int64) (*domain.Channel, error) {
	for i := range r.channels {
		if r.channels[i].ChannelID == channelID {
			return &r.channels[i], nil
		}
	}
	return nil, sharederrors.ErrChannelNotFound
}

func (r *fakeRepo) ListActive(ctx context.Context, skip, limit int64) ([]domain.Channel, int64, error) {
	if r.listErr != nil {
		return nil, 0, r.listErr
	}
	var active []domain.Channel
	for _, c := range r.channels {
		if c.IsActive {
			active = append(active, c)
		}
	}
	total := int64(len(active))
	if skip >= total {
		return nil, total, nil
	}
	end := skip + limit
	if end > total {
		end = total
	}
	return active[skip:end], total, nil
}

func (r *fakeRepo) Delete(ctx context.Context, channelID int64) (bool, error) {
	if r.deleteErr != nil {
		return false, r.deleteErr
	}
	for i := range r.channels {
		if r.channels[i].ChannelID == channelID {
			r.channels = append(r.channels[:i], r.channels[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func seedChannels(repo *fakeRepo, active, inactive int) {
	for i := 0; i < active; i++ {
		repo.channels = append(repo.channels, domain.Channel{
			ChannelID: int64(i + 1),
			Title:     fmt.Sprintf("channel %d", i+1),
			AddedAt:   time.Now().UTC(),
			IsActive:  true,
		})
	}
	for i := 0; i < inactive; i++ {
		repo.channels = append(repo.channels, domain.Channel{
			ChannelID: int64(1000 + i),
			Title:     fmt.Sprintf("removed %d", i),
			AddedAt:   time.Now().UTC(),
			IsActive:  false,
		})
	}
}

func TestPageExcludesInactive(t *testing.T) {
	repo := &fakeRepo{}
	seedChannels(repo, 25, 3)
	svc := New(repo, 10)

	channels, total, pages := svc.Page(context.Background(), 2)
	if total != 25 {
		t.Errorf("total = %d, want 25 (inactive excluded)", total)
	}
	if pages != 3 {
		t.Errorf("pages = %d, want 3", pages)
	}
	if len(channels) != 10 {
		t.Fatalf("page length = %d, want 10", len(channels))
	}
	if channels[0].ChannelID != 11 || channels[9].ChannelID != 20 {
		t.Errorf("page 2 spans %d..%d, want 11..20", channels[0].ChannelID, channels[9].ChannelID)
	}
}

func TestPageClampsToFirst(t *testing.T) {
	repo := &fakeRepo{}
	seedChannels(repo, 5, 0)
	svc := New(repo, 10)

	channels, total, _ := svc.Page(context.Background(), 0)
	if total != 5 || len(channels) != 5 {
		t.Errorf("page 0 should behave as page 1, got %d items of %d", len(channels), total)
	}
}

func TestAddReactivates(t *testing.T) {
	repo := &fakeRepo{}
	repo.channels = append(repo.channels, domain.Channel{ChannelID: 9, Title: "old", IsActive: false})
	svc := New(repo, 10)

	if !svc.Add(context.Background(), 9, "fresh title", 42) {
		t.Fatal("add failed")
	}

	ch := svc.Get(context.Background(), 9)
	if ch == nil || !ch.IsActive {
		t.Fatalf("re-added channel should be active again, got %v", ch)
	}
	if ch.Title != "fresh title" {
		t.Errorf("title = %q", ch.Title)
	}
	if len(repo.channels) != 1 {
		t.Errorf("expected a single registry row, have %d", len(repo.channels))
	}
}

func TestDeleteNotFound(t *testing.T) {
	svc := New(&fakeRepo{}, 10)

	if svc.Delete(context.Background(), 1) {
		t.Error("deleting a nonexistent channel should report false")
	}
}

func TestStoreFaultsAreNeutral(t *testing.T) {
	repo := &fakeRepo{
		upsertErr: errors.New("mongo down"),
		listErr:   errors.New("mongo down"),
		deleteErr: errors.New("mongo down"),
	}
	svc := New(repo, 10)

	if svc.Add(context.Background(), 1, "t", 42) {
		t.Error("add should fail on store fault")
	}
	if channels, total, _ := svc.Page(context.Background(), 1); channels != nil || total != 0 {
		t.Error("page should be empty on store fault")
	}
	if svc.Delete(context.Background(), 1) {
		t.Error("delete should report false on store fault")
	}
}
