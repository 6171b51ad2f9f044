// Package routers 组装 HTTP 路由和中间件
package routers

import (
	"time"

	"github.com/haierkeys/sheet-memo-dashboard/internal/app"
	"github.com/haierkeys/sheet-memo-dashboard/internal/middleware"
	"github.com/haierkeys/sheet-memo-dashboard/internal/routers/api_router"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// methodLimiters 远程呼び出しを伴う経路は厳しめに制限する
var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/export",
		FillInterval: time.Second,
		Capacity:     5,
		Quantum:      5,
	},
	limiter.BucketRule{
		Key:          "/api/dashboard/refresh",
		FillInterval: time.Second,
		Capacity:     2,
		Quantum:      2,
	},
)

// NewRouter 创建公开 API 路由
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	// 获取配置
	cfg := appContainer.Config()

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfoWithConfig(app.Name, appContainer.Version().Version))
		api.Use(middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header)) // Trace ID 中间件
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// 创建 Handlers（注入 App Container）
		memoHandler := api_router.NewMemoHandler(appContainer)
		settingHandler := api_router.NewSettingHandler(appContainer)
		dashboardHandler := api_router.NewDashboardHandler(appContainer)
		exportHandler := api_router.NewExportHandler(appContainer)
		versionHandler := api_router.NewVersionHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)
		systemHandler := api_router.NewSystemHandler(appContainer)

		// 无需认证的系统接口
		api.GET("/version", versionHandler.ServerVersion)
		api.GET("/health", healthHandler.Check)

		// 业务接口，Token 未設定時は素通し
		auth := api.Group("", middleware.SimpleAuthTokenWithConfig(cfg.Security.AuthToken))

		auth.POST("/memo", memoHandler.Create)
		auth.GET("/memo", memoHandler.Get)
		auth.GET("/memo/image", memoHandler.Image)
		auth.PUT("/memo", memoHandler.Update)
		auth.DELETE("/memo", memoHandler.Delete)
		auth.GET("/memo/histories", memoHandler.History)
		auth.GET("/memos", memoHandler.List)
		auth.GET("/memos/count", memoHandler.Count)

		auth.POST("/memo/export", exportHandler.ExportOne)
		auth.POST("/export", exportHandler.Export)

		auth.GET("/setting", settingHandler.Load)
		auth.POST("/setting", settingHandler.Save)
		auth.DELETE("/setting", settingHandler.Clear)

		auth.GET("/dashboard", dashboardHandler.View)
		auth.POST("/dashboard/refresh", dashboardHandler.Refresh)

		auth.GET("/system/info", systemHandler.GetSystemInfo)
	}

	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}
