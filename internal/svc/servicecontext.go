package svc

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx driver
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
	_ "modernc.org/sqlite" // register sqlite driver

	"mltrading-api/internal/cache"
	"mltrading-api/internal/config"
	"mltrading-api/internal/model"
	marketpersist "mltrading-api/internal/persistence/market"
	"mltrading-api/internal/repo"
	"mltrading-api/internal/resolver"
	"mltrading-api/internal/universe"
	marketpkg "mltrading-api/pkg/market"
	_ "mltrading-api/pkg/market/exchanges/polygon"
	_ "mltrading-api/pkg/market/exchanges/sim"
)

const schemaTimeout = 30 * time.Second

type ServiceContext struct {
	Config config.Config

	DBConn           sqlx.SqlConn
	StockPricesModel model.StockPricesModel
	StocksModel      model.StocksModel
	Repos            *repo.Set

	Cache    *cache.Store
	TTL      cache.TTLSet
	Universe *universe.Catalog

	MarketConfig     *marketpkg.Config
	MarketConfigPath string
	// MarketProviders holds providers built so far, keyed by config name.
	MarketProviders map[string]marketpkg.Provider
	DefaultMarket   marketpkg.Provider
	providersMu     sync.Mutex

	Persistence *marketpersist.Service
	Resolver    *resolver.Resolver
}

// NewServiceContext wires every dependency and exits the process on failure.
func NewServiceContext(c config.Config, mainConfigPath string) *ServiceContext {
	svc, err := Build(c)
	if err != nil {
		log.Fatalf("failed to build service context from %s: %v", mainConfigPath, err)
	}
	return svc
}

// Build wires the service context and reports the first failure.
func Build(c config.Config) (*ServiceContext, error) {
	svc := &ServiceContext{
		Config:   c,
		TTL:      cache.NewTTLSet(c.TTL),
		Universe: universe.Default(),
	}

	if err := svc.initDatabase(); err != nil {
		return nil, err
	}
	if err := svc.initCache(); err != nil {
		return nil, err
	}
	if err := svc.initMarket(); err != nil {
		return nil, err
	}

	svc.Persistence = marketpersist.NewService(marketpersist.Config{
		Prices: svc.Repos.Prices,
		Stocks: svc.Repos.Stocks,
		Cache:  svc.Cache,
	})

	loc, err := c.Resolver.Location()
	if err != nil {
		return nil, fmt.Errorf("resolver timezone: %w", err)
	}
	res, err := resolver.New(resolver.Dependencies{
		Cache:     svc.Cache,
		Store:     svc.Repos.Prices,
		Source:    svc.DefaultMarket,
		Directory: svc.Universe,
		Config: resolver.Config{
			CurrentTTL:       svc.TTL.Current,
			HistoryTTL:       svc.TTL.History,
			FreshnessDays:    c.Resolver.FreshnessDays,
			SufficiencyFloor: c.Resolver.SufficiencyFloor,
			Overfetch:        c.Resolver.Overfetch,
		},
	}, resolver.WithLocation(loc))
	if err != nil {
		return nil, err
	}
	svc.Resolver = res
	return svc, nil
}

func (s *ServiceContext) initDatabase() error {
	db := s.Config.Database
	conn := sqlx.NewSqlConn(db.Driver, db.DSN)
	raw, err := conn.RawDB()
	if err != nil {
		return fmt.Errorf("open %s database: %w", db.Driver, err)
	}
	if db.MaxOpen > 0 {
		raw.SetMaxOpenConns(db.MaxOpen)
	}
	if db.MaxIdle > 0 {
		raw.SetMaxIdleConns(db.MaxIdle)
	}
	if db.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
		defer cancel()
		if err := model.EnsureSchema(ctx, conn); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	s.DBConn = conn
	s.StockPricesModel = model.NewStockPricesModel(conn)
	s.StocksModel = model.NewStocksModel(conn)
	repos, err := repo.New(repo.Dependencies{
		DBConn:           conn,
		StockPricesModel: s.StockPricesModel,
		StocksModel:      s.StocksModel,
	})
	if err != nil {
		return err
	}
	s.Repos = repos
	return nil
}

// initCache prefers Redis and falls back to the in-process cache when no host is set.
func (s *ServiceContext) initCache() error {
	if s.Config.Redis.Host != "" {
		s.Cache = cache.NewStore("redis", cache.NewRedisBackendFromConf(s.Config.Redis))
		return nil
	}
	backend, err := cache.NewMemoryBackend(s.Config.TTL.MemoryLimit)
	if err != nil {
		return err
	}
	logx.Info("redis not configured, using in-memory cache")
	s.Cache = cache.NewStore("memory", backend)
	return nil
}

func (s *ServiceContext) initMarket() error {
	marketCfg, path := s.Config.MarketConfig()
	def, err := marketCfg.BuildDefault()
	if err != nil {
		return fmt.Errorf("build market provider from %s: %w", path, err)
	}
	s.MarketConfig = marketCfg
	s.MarketConfigPath = path
	s.MarketProviders = make(map[string]marketpkg.Provider)
	if def != nil {
		s.MarketProviders[marketCfg.Default] = def
	}
	s.DefaultMarket = def
	return nil
}

// Provider returns the named market provider, building it on first use.
// An empty name selects the default.
func (s *ServiceContext) Provider(name string) (marketpkg.Provider, error) {
	if name == "" {
		return s.DefaultMarket, nil
	}
	s.providersMu.Lock()
	defer s.providersMu.Unlock()
	if p, ok := s.MarketProviders[name]; ok {
		return p, nil
	}
	p, err := s.MarketConfig.Build(name)
	if err != nil {
		return nil, err
	}
	s.MarketProviders[name] = p
	return p, nil
}
