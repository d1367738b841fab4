package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lilo791027/clinic-schedule/internal/config"
	"github.com/lilo791027/clinic-schedule/internal/roster"
	"github.com/lilo791027/clinic-schedule/internal/server/handlers"
	"github.com/lilo791027/clinic-schedule/internal/service/store"
)

// Server HTTP 伺服器
type Server struct {
	router   *gin.Engine
	store    *store.SessionStore
	handlers *handlers.Handlers
}

// NewServer 建立伺服器
func NewServer(cfg *config.AppConfig, logger *zap.Logger) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	sessionStore := store.NewSessionStore()
	engine := roster.NewEngine(roster.EngineOptionsFromConfig(cfg), logger)
	h := handlers.NewHandlers(cfg, sessionStore, engine, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(logger))
	router.Use(CORS())

	s := &Server{
		router:   router,
		store:    sessionStore,
		handlers: h,
	}

	s.setupRoutes(cfg.Server.DevMode)

	return s
}

// setupRoutes 設定路由
func (s *Server) setupRoutes(devMode bool) {
	api := s.router.Group("/api")
	{
		s.handlers.RegisterRoutes(api)
	}

	if devMode {
		// 開發模式：前端開發伺服器自行代理
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
		return
	}

	s.router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
	})
}

// indexPage 無打包前端時的簡易操作頁
var indexPage = []byte(`<!DOCTYPE html>
<html lang="zh-Hant">
<head><meta charset="utf-8"><title>診所排班修正工具</title></head>
<body>
<h1>診所排班修正工具</h1>
<p>API 路徑掛在 <code>/api</code>，請參考 README 操作流程。</p>
</body>
</html>`)

// Run 啟動伺服器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
