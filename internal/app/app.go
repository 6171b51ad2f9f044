// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/haierkeys/sheet-memo-dashboard/internal/dao"
	"github.com/haierkeys/sheet-memo-dashboard/internal/domain"
	"github.com/haierkeys/sheet-memo-dashboard/internal/gateway"
	"github.com/haierkeys/sheet-memo-dashboard/internal/service"
	pkgapp "github.com/haierkeys/sheet-memo-dashboard/pkg/app"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/storage"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// 文件存储
	Storage storage.Storager

	// Repository 层
	MemoRepo     domain.MemoRepository
	HistoryRepo  domain.MemoHistoryRepository
	SettingRepo  domain.SettingRepository
	SnapshotRepo domain.SnapshotRepository

	// Service 层
	MemoService      service.MemoService
	SettingService   service.SettingService
	ExportService    service.ExportService
	DashboardService service.DashboardService

	// GatewayFactory 根据当前连接配置创建网关
	GatewayFactory service.GatewayFactory

	// StartTime 启动时间，用于健康检查的 uptime
	StartTime time.Time

	// 关闭控制
	shutdownCh chan struct{}
	wg         sync.WaitGroup

	// 版本检查信息
	checkVersionMu sync.RWMutex
	checkVersion   pkgapp.CheckVersionInfo
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:     cfg,
		logger:     logger,
		DB:         db,
		StartTime:  time.Now(),
		shutdownCh: make(chan struct{}),
	}

	// 创建 DatabaseConfig 用于 DAO
	dbConfig := &dao.DatabaseConfig{
		Type:            cfg.Database.Type,
		Path:            cfg.Database.Path,
		UserName:        cfg.Database.UserName,
		Password:        cfg.Database.Password,
		Host:            cfg.Database.Host,
		Name:            cfg.Database.Name,
		TablePrefix:     cfg.Database.TablePrefix,
		AutoMigrate:     cfg.Database.AutoMigrate,
		Charset:         cfg.Database.Charset,
		ParseTime:       cfg.Database.ParseTime,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		RunMode:         cfg.Server.RunMode,
	}

	// 初始化 DAO（使用依赖注入）
	a.Dao = dao.New(db, context.Background(),
		dao.WithConfig(dbConfig),
		dao.WithLogger(logger),
	)

	// 初始化文件存储
	store, err := storage.NewClient(&cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	a.Storage = store

	// 初始化 Repository 层
	a.MemoRepo = dao.NewMemoRepository(a.Dao)
	a.HistoryRepo = dao.NewMemoHistoryRepository(a.Dao)
	a.SettingRepo = dao.NewSettingRepository(a.Dao)
	a.SnapshotRepo = dao.NewSnapshotRepository(a.Dao)

	// 初始化网关工厂（按当前连接配置创建 direct / relay 网关）
	a.GatewayFactory = service.NewGatewayFactory(a.SettingRepo, gateway.WithLogger(logger))

	// 创建 ServiceConfig（从 AppConfig 提取 Service 层需要的配置）
	svcConfig := &service.ServiceConfig{
		App: service.AppServiceConfig{
			HistoryRetentionTime: cfg.App.HistoryRetentionTime,
			ImageMaxSize:         cfg.App.ImageMaxSize,
		},
	}

	// 初始化 Service 层（依赖注入）
	a.MemoService = service.NewMemoService(a.MemoRepo, a.HistoryRepo, a.Storage, logger, svcConfig)
	a.SettingService = service.NewSettingService(a.SettingRepo, logger)
	a.ExportService = service.NewExportService(a.MemoRepo, a.SettingRepo, a.GatewayFactory, logger)
	a.DashboardService = service.NewDashboardService(a.SnapshotRepo, a.SettingRepo, a.GatewayFactory, logger)

	logger.Info("App container initialized successfully",
		zap.String("storage", cfg.Storage.Type),
		zap.String("database", cfg.Database.Type))

	return a, nil
}

// Close 释放应用容器持有的资源
func (a *App) Close() error {
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:    Version,
		GitTag:     GitTag,
		BuildTime:  BuildTime,
		InstanceID: util.GetMachineID(),
	}
}

// CheckVersion 获取版本检查信息
func (a *App) CheckVersion() pkgapp.CheckVersionInfo {
	a.checkVersionMu.RLock()
	defer a.checkVersionMu.RUnlock()

	cv := a.checkVersion

	// 如果没有更新，把版本名称设置为空
	if !cv.VersionIsNew {
		cv.VersionNewName = ""
	}

	// 返回给客户端的版本号不带 v 前缀
	cv.VersionNewName = strings.TrimPrefix(cv.VersionNewName, "v")
	// 补充链接信息
	if cv.VersionNewLink == "" && cv.VersionNewName != "" {
		cv.VersionNewLink = "https://github.com/haierkeys/sheet-memo-dashboard/releases/tag/" + cv.VersionNewName
	}

	return cv
}

// SetCheckVersionInfo 设置版本检查信息
func (a *App) SetCheckVersionInfo(info pkgapp.CheckVersionInfo) {
	a.checkVersionMu.Lock()
	defer a.checkVersionMu.Unlock()
	a.checkVersion = info
}

// IsProductionMode 是否为生产模式
// 根据日志配置中的 Production 字段判断
func (a *App) IsProductionMode() bool {
	return a.config.Log.Production
}

// GetAuthToken 获取 API 访问令牌
func (a *App) GetAuthToken() string {
	return a.config.Security.AuthToken
}

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

// Shutdown 优雅关闭应用容器
// 等待后台操作完成后关闭数据库连接
// ctx 用于控制关闭超时，如果为 nil 则使用默认 30 秒超时
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("App container shutting down...")

	// 如果没有提供 context，使用默认超时
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
	}

	// 标记关闭
	select {
	case <-a.shutdownCh:
		// 已经关闭
		return nil
	default:
		close(a.shutdownCh)
	}

	var errs []error

	// 1. 等待所有后台操作完成
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		a.logger.Info("All background operations completed")
	case <-ctx.Done():
		a.logger.Warn("Shutdown timeout waiting for background operations")
		errs = append(errs, fmt.Errorf("background operations timeout: %w", ctx.Err()))
	}

	// 2. 关闭数据库连接
	if err := a.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		a.logger.Warn("App container shutdown completed with errors",
			zap.Int("errorCount", len(errs)))
		return fmt.Errorf("shutdown completed with %d errors: %v", len(errs), errs)
	}

	a.logger.Info("App container shutdown completed successfully")
	return nil
}

// IsShuttingDown 检查应用是否正在关闭
func (a *App) IsShuttingDown() bool {
	select {
	case <-a.shutdownCh:
		return true
	default:
		return false
	}
}

// ShutdownCh 返回关闭信号通道（用于监听关闭事件）
func (a *App) ShutdownCh() <-chan struct{} {
	return a.shutdownCh
}

// TrackOperation 跟踪后台操作（用于优雅关闭时等待）
// 返回一个函数，在操作完成时调用
func (a *App) TrackOperation() func() {
	a.wg.Add(1)
	return func() {
		a.wg.Done()
	}
}
