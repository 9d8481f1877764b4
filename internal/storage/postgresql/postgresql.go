package postgresql

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
)

type Config struct {
	URL        string
	ServiceKey string
	Timeout    time.Duration
	MaxConns   int32
}

type Storage struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

// New builds the pool without touching the network. The first query dials,
// so a bad or unreachable remote surfaces per request as BackendUnavailable
// instead of failing startup.
func New(ctx context.Context, cfg Config) (*Storage, error) {
	const op = "storage.postgresql.New"

	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	poolCfg.LazyConnect = true
	if cfg.ServiceKey != "" {
		poolCfg.ConnConfig.Password = cfg.ServiceKey
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.Timeout > 0 {
		poolCfg.ConnConfig.ConnectTimeout = cfg.Timeout
		poolCfg.ConnConfig.RuntimeParams["statement_timeout"] = strconv.FormatInt(cfg.Timeout.Milliseconds(), 10)
	}

	db, err := pgxpool.ConnectConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		db:      db,
		timeout: cfg.Timeout,
	}, nil
}

func (s *Storage) Pool() *pgxpool.Pool {
	return s.db
}

func (s *Storage) Timeout() time.Duration {
	return s.timeout
}

func (s *Storage) Ping(ctx context.Context) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return Classify(s.db.Ping(ctx))
}

func (s *Storage) Stop() {
	s.db.Close()
}
