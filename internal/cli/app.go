package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Tomasivanovich/ProjectManagementApp/internal/api"
	"github.com/Tomasivanovich/ProjectManagementApp/internal/cache"
	"github.com/Tomasivanovich/ProjectManagementApp/internal/config"
	"github.com/Tomasivanovich/ProjectManagementApp/internal/session"
)

// app wires the configured components together for one command invocation.
// Construction order matters: the store exists first, the client reads its
// token from the store, the manager owns both.
type app struct {
	cfg      *config.Config
	store    *session.FileStore
	client   *api.Client
	sessions *session.Manager
	cache    *cache.Store
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	store, err := session.NewFileStore(config.DataDir())
	if err != nil {
		return nil, err
	}

	client := api.NewClient(cfg.API.BaseURL, session.Tokens(store))
	if cfg.API.TimeoutSeconds > 0 {
		client.SetHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second,
		})
	}

	manager := session.NewManager(store, client)
	manager.Restore()

	a := &app{
		cfg:      cfg,
		store:    store,
		client:   client,
		sessions: manager,
	}

	if cfg.Cache.Enabled {
		// A broken cache only costs offline fallback; the command still runs.
		if c, err := cache.Open(cfg.Cache.Path); err == nil {
			a.cache = c
		} else if verbose {
			fmt.Println("cache disabled:", err)
		}
	}

	return a, nil
}

func (a *app) Close() {
	if a.cache != nil {
		a.cache.Close()
	}
}

// requireUser returns the logged-in profile or an instruction to log in.
func (a *app) requireUser() (*api.UserProfile, error) {
	s := a.sessions.Current()
	if !s.IsAuthenticated() {
		return nil, errors.New("not logged in (run 'pmapp login')")
	}
	return s.User, nil
}

// cachedList fetches via fetch and stores the result under key. When the
// network is unreachable and the cache holds the key, the stale copy is
// returned instead, with fromCache set so callers can say so.
func cachedList[T any](ctx context.Context, a *app, key string, fetch func(context.Context) ([]T, error)) ([]T, bool, error) {
	items, err := fetch(ctx)
	if err == nil {
		if a.cache != nil {
			if payload, merr := json.Marshal(items); merr == nil {
				_ = a.cache.Put(key, payload, time.Now())
			}
		}
		return items, false, nil
	}

	var netErr *api.NetworkError
	if errors.As(err, &netErr) && a.cache != nil {
		maxAge := time.Duration(a.cfg.Cache.MaxAgeHours) * time.Hour
		if payload, fetchedAt, ok := a.cache.Get(key); ok {
			if maxAge <= 0 || time.Since(fetchedAt) <= maxAge {
				var cached []T
				if json.Unmarshal(payload, &cached) == nil {
					return cached, true, nil
				}
			}
		}
	}

	return nil, false, err
}

func staleNotice(fromCache bool) {
	if fromCache {
		fmt.Println("(offline: showing cached data)")
	}
}
