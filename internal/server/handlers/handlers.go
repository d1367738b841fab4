package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lilo791027/clinic-schedule/internal/config"
	"github.com/lilo791027/clinic-schedule/internal/roster"
	"github.com/lilo791027/clinic-schedule/internal/service/store"
)

// Handlers API 處理器
type Handlers struct {
	store  *store.SessionStore
	engine *roster.Engine
	cfg    *config.AppConfig
	logger *zap.Logger
}

// NewHandlers 建立處理器
func NewHandlers(cfg *config.AppConfig, sessionStore *store.SessionStore, engine *roster.Engine, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		store:  sessionStore,
		engine: engine,
		cfg:    cfg,
		logger: logger,
	}
}

// Response 通用回應
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, Response{
		Code:    1,
		Message: message,
	})
}

// RegisterRoutes 註冊 API 路由
func (h *Handlers) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)

	// 排班表
	router.POST("/schedule/upload", h.UploadSchedule)
	router.GET("/schedule/preview", h.PreviewSchedule)
	router.POST("/schedule/idcolumn", h.FixEmployeeIDs)

	// 角色
	router.GET("/roles", h.ListRoles)
	router.PUT("/roles", h.UpdateRole)

	// 完診時間分析表
	router.POST("/completion/upload", h.UploadCompletion)

	// 批次排班佇列
	router.POST("/queue", h.EnqueueTask)
	router.GET("/queue", h.ListQueue)
	router.DELETE("/queue", h.ClearQueue)
	router.POST("/queue/apply", h.ApplyQueue)

	// 對帳
	router.POST("/reconcile", h.Reconcile)
	router.POST("/reconcile/apply", h.ApplyChanges)

	// 匯出
	router.POST("/export", h.Export)
	router.GET("/export/:token", h.DownloadExport)
}

// GetStatus 系統狀態
func (h *Handlers) GetStatus(c *gin.Context) {
	tableLoaded := false
	if _, err := h.store.Table(); err == nil {
		tableLoaded = true
	}
	lookupLoaded := false
	clinic := ""
	if lookup, err := h.store.Lookup(); err == nil {
		lookupLoaded = true
		clinic = lookup.Clinic
	}

	success(c, gin.H{
		"time":          time.Now().Format(time.RFC3339),
		"scheduleReady": tableLoaded,
		"lookupReady":   lookupLoaded,
		"clinic":        clinic,
		"flagship":      h.engine.IsFlagship(clinic),
		"queueLength":   len(h.store.Queue()),
		"pendingCount":  len(h.store.Pending()),
	})
}
