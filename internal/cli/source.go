package cli

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/rshade/accountdesk/internal/config"
	"github.com/rshade/accountdesk/internal/logging"
	"github.com/rshade/accountdesk/internal/source"
	"github.com/rshade/accountdesk/internal/source/cache"
	"github.com/rshade/accountdesk/internal/source/memory"
	"github.com/rshade/accountdesk/internal/source/sqlstore"
	"github.com/rshade/accountdesk/internal/transport/httpapi"
	"github.com/rshade/accountdesk/internal/transport/rpc"
	"github.com/rshade/accountdesk/internal/viewmodel"
)

// closeFunc releases whatever openSource acquired.
type closeFunc func() error

func noopClose() error { return nil }

// openSource builds the configured account backend, wrapped in the snapshot
// cache when a TTL is set.
func openSource(ctx context.Context, cfg config.SourceConfig) (source.Source, closeFunc, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	src, closer, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	if ttl := cfg.CacheTTL(); ttl > 0 {
		src = cache.New(src, ttl)
	}

	logging.FromContext(ctx).Debug().Ctx(ctx).
		Str("component", "cli").
		Str("source", cfg.Kind).
		Dur("cache_ttl", cfg.CacheTTL()).
		Msg("account source opened")

	return src, closer, nil
}

func openBackend(ctx context.Context, cfg config.SourceConfig) (source.Source, closeFunc, error) {
	switch cfg.Kind {
	case config.SourceMemory:
		opts := []memory.Option{memory.WithActor(cfg.Actor), memory.WithBatchSize(cfg.BatchSize)}
		if cfg.Fixture == "" {
			st, err := memory.Sample(opts...)
			if err != nil {
				return nil, nil, err
			}
			return st, noopClose, nil
		}
		st, err := memory.Open(cfg.Fixture, opts...)
		if err != nil {
			return nil, nil, err
		}
		return st, noopClose, nil

	case config.SourceSQL:
		st, err := sqlstore.Open(ctx, cfg.Driver, cfg.DSN,
			sqlstore.WithActor(cfg.Actor), sqlstore.WithBatchSize(cfg.BatchSize))
		if err != nil {
			return nil, nil, err
		}
		if err := st.Migrate(ctx); err != nil {
			_ = st.Close()
			return nil, nil, err
		}
		if cfg.Fixture != "" {
			if err := seedFromFixture(ctx, st, cfg.Fixture); err != nil {
				_ = st.Close()
				return nil, nil, err
			}
		}
		return st, st.Close, nil

	case config.SourceHTTP:
		var opts []httpapi.ClientOption
		if cfg.Token != "" {
			opts = append(opts, httpapi.WithToken(cfg.Token))
		}
		return httpapi.NewClient(cfg.URL, opts...), noopClose, nil

	case config.SourceGRPC:
		conn, err := rpc.Dial(cfg.Address)
		if err != nil {
			return nil, nil, err
		}
		return rpc.NewClient(conn), conn.Close, nil

	default:
		return nil, nil, fmt.Errorf("%w: unknown kind %q", config.ErrInvalidSource, cfg.Kind)
	}
}

// seedFromFixture loads fixture records into an empty database.
func seedFromFixture(ctx context.Context, st *sqlstore.Store, path string) error {
	existing, err := st.FetchAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	fx, err := memory.LoadFixture(path)
	if err != nil {
		return err
	}
	return st.Seed(ctx, fx.Accounts)
}

// errRateNeedsBurst guards rate.NewLimiter against a zero burst.
var errRateNeedsBurst = errors.New("rate delay needs burst >= 1")

// newDelay builds the pre-update scheduling policy.
func newDelay(cfg config.UpdateConfig) (viewmodel.Delay, error) {
	switch cfg.Policy {
	case config.DelayNone:
		return viewmodel.NoDelay(), nil
	case config.DelayRate:
		if cfg.Burst < 1 {
			return nil, errRateNeedsBurst
		}
		return viewmodel.RateLimitDelay(rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst)), nil
	default:
		d, err := cfg.DelayDuration()
		if err != nil {
			return nil, err
		}
		return viewmodel.FixedDelay(d), nil
	}
}

// viewOptions turns the config into ViewModel options.
func viewOptions(ctx context.Context, cfg *config.Config) ([]viewmodel.Option, error) {
	spec, err := cfg.View.SortSpec()
	if err != nil {
		return nil, err
	}
	delay, err := newDelay(cfg.Update)
	if err != nil {
		return nil, err
	}
	return []viewmodel.Option{
		viewmodel.WithPageSize(cfg.View.PageSize),
		viewmodel.WithSort(spec),
		viewmodel.WithDelay(delay),
		viewmodel.WithLogger(logging.ComponentLogger(*logging.FromContext(ctx), "viewmodel")),
	}, nil
}
