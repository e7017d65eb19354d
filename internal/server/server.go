package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/kidlost1412/shopchinh/internal/api/v1"
	"github.com/kidlost1412/shopchinh/internal/config"
	"github.com/kidlost1412/shopchinh/internal/exporter"
	"github.com/kidlost1412/shopchinh/internal/importer"
	"github.com/kidlost1412/shopchinh/internal/source"
	"github.com/kidlost1412/shopchinh/internal/store"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// shutdownTimeout 优雅关闭等待时间
const shutdownTimeout = 10 * time.Second

// Server HTTP服务器
type Server struct {
	router *gin.Engine
	store  *store.Store
	redis  *redis.Client
	logger *zap.Logger
}

// NewServer 创建服务器：数据源 → 行缓存 → SQLite → 导入协调器 → 路由
func NewServer(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) (*Server, error) {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	st, err := store.New(filepath.Join(dataDir, "shopchinh.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	s := &Server{store: st, logger: logger}

	src, err := newSource(ctx, cfg.Source)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	cache := s.newRowCache(ctx, cfg.Cache)

	sheets := importer.Sheets{
		SourceID:     cfg.Source.SourceID(),
		Orders:       cfg.Source.OrdersSheet,
		Affiliate:    cfg.Source.AffiliateSheet,
		Ledger:       cfg.Source.LedgerSheet,
		FetchTimeout: cfg.Source.FetchTimeout(),
	}
	imp := importer.NewCoordinator(source.NewCached(src, cache, logger), st, sheets, logger)
	handler := v1.NewHandler(imp, st, exporter.NewExporter(), logger)

	s.router = gin.New()
	s.setupRoutes(cfg.Server.DevMode, handler)

	logger.Info("server initialized",
		zap.String("source", cfg.Source.Kind),
		zap.String("source_id", sheets.SourceID),
		zap.String("cache", cfg.Cache.Backend),
		zap.Duration("cache_ttl", cfg.Cache.TTL()),
	)
	return s, nil
}

// newSource 按配置创建表格数据源
func newSource(ctx context.Context, cfg config.SourceConfig) (source.Source, error) {
	switch cfg.Kind {
	case config.SourceFile:
		if cfg.FilePath == "" {
			return nil, errors.New("source.file_path is required for file source")
		}
		return source.NewFileSource(), nil
	case config.SourceSheets, "":
		if cfg.SpreadsheetID == "" {
			return nil, errors.New("source.spreadsheet_id is required for sheets source")
		}
		return source.NewSheetsSource(ctx, source.Credentials{
			ClientEmail: cfg.ClientEmail,
			PrivateKey:  cfg.PrivateKey,
			File:        cfg.CredentialsFile,
		})
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Kind)
	}
}

// newRowCache Redis 不可达时退回内存缓存
func (s *Server) newRowCache(ctx context.Context, cfg config.CacheConfig) source.RowCache {
	switch cfg.Backend {
	case config.CacheNone:
		return source.NopCache{}
	case config.CacheRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			s.logger.Warn("redis unavailable, falling back to memory cache", zap.String("addr", cfg.RedisAddr), zap.Error(err))
			_ = rdb.Close()
			return source.NewMemoryCache(cfg.TTL())
		}
		s.redis = rdb
		return source.NewRedisCache(rdb, cfg.TTL())
	default:
		return source.NewMemoryCache(cfg.TTL())
	}
}

// setupRoutes 设置中间件与路由
func (s *Server) setupRoutes(devMode bool, handler *v1.Handler) {
	if devMode {
		s.router.Use(gin.Logger(), gin.Recovery())
	} else {
		s.router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
			s.logger.Error("panic recovered", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusInternalServerError, v1.Response{Success: false, Error: "internal server error"})
		}))
		s.router.Use(requestLogger(s.logger))
	}
	s.router.Use(cors())
	s.router.Use(requestID())
	s.router.Use(gzip.Gzip(gzip.DefaultCompression))

	api := s.router.Group("/api")
	{
		handler.RegisterRoutes(api)
	}

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, v1.Response{Success: false, Error: "route not found"})
	})
}

// Handler 供测试直接调用
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 启动服务器，ctx 结束后优雅关闭
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// Close 关闭数据库与 Redis 连接
func (s *Server) Close() error {
	var errs []error
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	errs = append(errs, s.store.Close())
	return errors.Join(errs...)
}
