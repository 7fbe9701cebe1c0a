package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "storyshot/docs"
	"storyshot/internal/config"
	"storyshot/internal/handler"
	shotHandler "storyshot/internal/handler/shot"
	"storyshot/internal/pkg/cache"
	"storyshot/internal/pkg/jwt"
	"storyshot/internal/pkg/mongodb"
	"storyshot/internal/pkg/shottools"
	"storyshot/internal/pkg/shottools/providers"
	"storyshot/internal/pkg/storage"
	"storyshot/internal/pkg/storagefactory"
	shotRepo "storyshot/internal/repository/shot"
	"storyshot/internal/server/middleware"
	shotService "storyshot/internal/service/shot"
)

const (
	// shutdownTimeout 优雅关闭等待进行中请求的时间
	shutdownTimeout = 30 * time.Second
	// writeTimeoutMargin 写超时在生成超时之外预留的留档时间
	writeTimeoutMargin = 30 * time.Second
)

// Server HTTP 服务器
type Server struct {
	cfg      *config.Config
	engine   *gin.Engine
	mongo    *mongodb.Client
	redis    *cache.RedisCache
	storage  storage.Storage
	provider shottools.StreamProvider
	jwt      *jwt.JWT
}

// New 创建服务器实例
// MongoDB / Redis / 产物存储都是可选的，连接失败只记录警告
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	provider, err := providers.NewStreamProvider(ctx, &cfg.AI)
	if err != nil {
		return nil, err
	}
	log.Info().Str("provider", provider.Name()).Str("model", cfg.AI.Model).Msg("initialized generation provider")

	srv := &Server{
		cfg:      cfg,
		engine:   gin.New(),
		provider: provider,
	}

	// 初始化 MongoDB (可选)
	if cfg.Mongo.URI != "" {
		client, err := mongodb.New(&cfg.Mongo)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to MongoDB, run history disabled")
		} else {
			srv.mongo = client
			log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

			if err := mongodb.EnsureIndexes(ctx, client.Database()); err != nil {
				log.Warn().Err(err).Msg("failed to ensure indexes")
			}
		}
	}

	// 初始化 Redis (可选)
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, run cache disabled")
		} else {
			srv.redis = rc
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		}
	}

	// 初始化产物存储 (可选)
	if cfg.Artifacts.Enabled {
		st, err := storagefactory.NewStorage(ctx, &cfg.Storage)
		if err != nil {
			return nil, err
		}
		srv.storage = st
		log.Info().Str("type", st.GetStorageType()).Msg("artifact storage enabled")
	}

	// 认证 (可选)
	if cfg.Auth.JWTSecret != "" {
		expiry := cfg.Auth.AccessTokenExpiry
		if expiry == 0 {
			expiry = 24 * time.Hour
		}
		srv.jwt = jwt.NewJWT(cfg.Auth.JWTSecret, expiry)
	} else {
		log.Warn().Msg("auth.jwt_secret not configured, API is open")
	}

	srv.setupRoutes()

	return srv, nil
}

// newShotService 组装镜头服务
// 可选依赖只在非 nil 时注入，避免 nil 指针被包装成非 nil 接口
func (s *Server) newShotService() shotService.ShotService {
	deps := shotService.Deps{
		Provider:  s.provider,
		Generate:  s.cfg.Generation,
		Artifacts: s.cfg.Artifacts,
		CacheTTL:  s.cfg.Redis.RunTTL,
	}
	if s.mongo != nil {
		deps.RunRepo = shotRepo.NewRunRepo(s.mongo.Database())
	}
	if s.redis != nil {
		deps.Cache = s.redis
	}
	if s.storage != nil {
		deps.Storage = s.storage
	}
	return shotService.NewShotService(deps)
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// 全局中间件
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.CORS())

	// 健康检查
	checks := make(map[string]handler.CheckFunc)
	if s.mongo != nil {
		checks["mongo"] = s.mongo.Ping
	}
	if s.redis != nil {
		checks["redis"] = s.redis.Ping
	}
	healthHandler := handler.NewHealthHandler(s.provider.Name(), checks)
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)

	// Swagger 文档
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	shotHdl := shotHandler.NewHandler(s.newShotService(), s.cfg.Generation)
	auth := middleware.Auth(s.jwt)

	// 兼容原有路径
	s.engine.POST("/generate-shots", auth, shotHdl.GenerateShots)

	// API v1
	v1 := s.engine.Group("/api/v1")
	v1.Use(auth)
	{
		shots := v1.Group("/shots")
		shots.POST("/generate", shotHdl.GenerateShots)
		shots.POST("/generate/stream", shotHdl.GenerateShotsStream)
		shots.POST("/analyze", shotHdl.AnalyzeShots)
		shots.GET("/runs", shotHdl.ListRuns)
		shots.GET("/runs/:run_id", shotHdl.GetRun)
		shots.GET("/runs/:run_id/artifacts/:name", shotHdl.GetArtifact)
	}
}

// Run 启动服务器
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.writeTimeout(),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)

		if s.mongo != nil {
			if err := s.mongo.Close(context.Background()); err != nil {
				log.Error().Err(err).Msg("failed to close MongoDB connection")
			}
		}
		if s.redis != nil {
			if err := s.redis.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close Redis connection")
			}
		}

		return err
	case err := <-errCh:
		return err
	}
}

// writeTimeout 写超时不能短于生成超时，否则长时间的生成请求会被提前断开
func (s *Server) writeTimeout() time.Duration {
	wt := s.cfg.Server.WriteTimeout
	if wt == 0 {
		return 0
	}
	if gt := s.cfg.Generation.Timeout; gt > 0 && wt < gt+writeTimeoutMargin {
		return gt + writeTimeoutMargin
	}
	return wt
}

// Engine 获取 Gin 引擎 (用于测试)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
