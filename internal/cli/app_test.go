package cli

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Tomasivanovich/ProjectManagementApp/internal/api"
	"github.com/Tomasivanovich/ProjectManagementApp/internal/cache"
	"github.com/Tomasivanovich/ProjectManagementApp/internal/config"
)

func testApp(t *testing.T) *app {
	t.Helper()
	store, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("cache.Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return &app{cfg: config.DefaultConfig(), cache: store}
}

func TestCachedListStoresOnSuccess(t *testing.T) {
	t.Parallel()
	a := testApp(t)

	fetch := func(ctx context.Context) ([]api.Project, error) {
		return []api.Project{{ID: 1, Name: "P"}}, nil
	}

	got, fromCache, err := cachedList(context.Background(), a, "projects", fetch)
	if err != nil {
		t.Fatalf("cachedList failed: %v", err)
	}
	if fromCache {
		t.Error("Expected live result")
	}
	if len(got) != 1 || got[0].Name != "P" {
		t.Errorf("got %+v", got)
	}

	if _, _, ok := a.cache.Get("projects"); !ok {
		t.Error("result not written to cache")
	}
}

func TestCachedListFallsBackOnNetworkError(t *testing.T) {
	t.Parallel()
	a := testApp(t)

	live := func(ctx context.Context) ([]api.Project, error) {
		return []api.Project{{ID: 1, Name: "P"}}, nil
	}
	down := func(ctx context.Context) ([]api.Project, error) {
		return nil, &api.NetworkError{Err: errors.New("refused")}
	}

	if _, _, err := cachedList(context.Background(), a, "projects", live); err != nil {
		t.Fatalf("warm-up fetch failed: %v", err)
	}

	got, fromCache, err := cachedList(context.Background(), a, "projects", down)
	if err != nil {
		t.Fatalf("Expected cached fallback, got %v", err)
	}
	if !fromCache {
		t.Error("Expected fromCache=true")
	}
	if len(got) != 1 || got[0].Name != "P" {
		t.Errorf("got %+v", got)
	}
}

// Server errors are not masked by the cache: the user asked and the server
// answered no.
func TestCachedListDoesNotMaskServerErrors(t *testing.T) {
	t.Parallel()
	a := testApp(t)

	live := func(ctx context.Context) ([]api.Project, error) {
		return []api.Project{{ID: 1}}, nil
	}
	denied := func(ctx context.Context) ([]api.Project, error) {
		return nil, &api.ServerError{Status: 403, Message: "sin permiso"}
	}

	if _, _, err := cachedList(context.Background(), a, "projects", live); err != nil {
		t.Fatalf("warm-up fetch failed: %v", err)
	}

	_, _, err := cachedList(context.Background(), a, "projects", denied)
	var serverErr *api.ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("Expected ServerError passed through, got %v", err)
	}
}

func TestCachedListExpiredEntry(t *testing.T) {
	t.Parallel()
	a := testApp(t)
	a.cfg.Cache.MaxAgeHours = 1

	stale := time.Now().Add(-2 * time.Hour)
	if err := a.cache.Put("projects", []byte(`[{"id_proyecto": 1}]`), stale); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	down := func(ctx context.Context) ([]api.Project, error) {
		return nil, &api.NetworkError{Err: errors.New("refused")}
	}

	_, _, err := cachedList(context.Background(), a, "projects", down)
	var netErr *api.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("Expected NetworkError when cache too old, got %v", err)
	}
}

func TestCachedListWithoutCache(t *testing.T) {
	t.Parallel()
	a := &app{cfg: config.DefaultConfig()}

	down := func(ctx context.Context) ([]api.Task, error) {
		return nil, &api.NetworkError{Err: errors.New("refused")}
	}
	if _, _, err := cachedList(context.Background(), a, "tasks/1", down); err == nil {
		t.Fatal("Expected error with no cache configured")
	}
}
