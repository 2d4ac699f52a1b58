package service

import (
	"context"
	"errors"
	"testing"

	"github.com/fugui-tools/filter-bot/internal/modules/admin/domain"
)

type fakeRepo struct {
	grants map[[2]int64]domain.Grant

	upsertErr error
	existsErr error
	deleteErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{grants: map[[2]int64]domain.Grant{}}
}

func (r *fakeRepo) Upsert(ctx context.Context, g *domain.Grant) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.grants[[2]int64{g.ChatID, g.UserID}] = *g
	return nil
}

func (r *fakeRepo) Exists(ctx context.Context, chatID, userID int64) (bool, error) {
	if r.existsErr != nil {
		return false, r.existsErr
	}
	_, ok := r.grants[[2]int64{chatID, userID}]
	return ok, nil
}

func (r *fakeRepo) Delete(ctx context.Context, chatID, userID int64) (bool, error) {
	if r.deleteErr != nil {
		return false, r.deleteErr
	}
	key := [2]int64{chatID, userID}
	if _, ok := r.grants[key]; !ok {
		return false, nil
	}
	delete(r.grants, key)
	return true, nil
}

type fakeRoles struct {
	admins map[[2]int64]bool
	err    error
}

func (r *fakeRoles) HasAdminRole(ctx context.Context, chatID, userID int64) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	return r.admins[[2]int64{chatID, userID}], nil
}

func TestGrantRevokeRoundTrip(t *testing.T) {
	svc := New(newFakeRepo())
	ctx := context.Background()

	if svc.IsAdmin(ctx, 1, 7) {
		t.Error("no grant yet")
	}
	if !svc.Grant(ctx, 1, 7, 99) {
		t.Fatal("grant failed")
	}
	if !svc.IsAdmin(ctx, 1, 7) {
		t.Error("grant not visible")
	}
	if !svc.Revoke(ctx, 1, 7) {
		t.Error("revoke should report true")
	}
	if svc.Revoke(ctx, 1, 7) {
		t.Error("revoking a missing grant should report false")
	}
}

func TestCanManageFiltersPrivateChat(t *testing.T) {
	svc := New(newFakeRepo())

	// No grant, no platform role, but private chats are unrestricted.
	if !svc.CanManageFilters(context.Background(), 7, 7, false) {
		t.Error("private chat should not require authorization")
	}
}

func TestCanManageFiltersGroupDenied(t *testing.T) {
	svc := New(newFakeRepo())
	svc.SetRoleLookup(&fakeRoles{admins: map[[2]int64]bool{}})

	if svc.CanManageFilters(context.Background(), 1, 7, true) {
		t.Error("user without grant or role must be denied in a group")
	}
}

func TestCanManageFiltersStoredGrant(t *testing.T) {
	svc := New(newFakeRepo())
	svc.Grant(context.Background(), 1, 7, 99)

	if !svc.CanManageFilters(context.Background(), 1, 7, true) {
		t.Error("stored grant should authorize")
	}
}

func TestCanManageFiltersPlatformRole(t *testing.T) {
	svc := New(newFakeRepo())
	svc.SetRoleLookup(&fakeRoles{admins: map[[2]int64]bool{{1, 7}: true}})

	if !svc.CanManageFilters(context.Background(), 1, 7, true) {
		t.Error("platform admin role should authorize")
	}
}

func TestRoleLookupFailureDenies(t *testing.T) {
	svc := New(newFakeRepo())
	svc.SetRoleLookup(&fakeRoles{err: errors.New("network error")})

	if svc.CanManageFilters(context.Background(), 1, 7, true) {
		t.Error("role lookup failure must be treated as not authorized")
	}
}

func TestMissingRoleLookupDenies(t *testing.T) {
	svc := New(newFakeRepo())

	if svc.CanManageFilters(context.Background(), 1, 7, true) {
		t.Error("absent role lookup must not authorize")
	}
}

func TestStoreFaultDenies(t *testing.T) {
	repo := newFakeRepo()
	repo.existsErr = errors.New("mongo down")
	svc := New(repo)

	if svc.IsAdmin(context.Background(), 1, 7) {
		t.Error("store fault must count as no grant")
	}
}
