// Package dao 实现数据访问层
package dao

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/haierkeys/sheet-memo-dashboard/internal/model"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/fileurl"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/util"

	"github.com/glebarez/sqlite"
	"github.com/haierkeys/gormTracing"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Type 数据库类型 sqlite / mysql
	Type string
	// Path SQLite 数据库文件路径
	Path string
	// UserName 用户名
	UserName string
	// Password 密码
	Password string
	// Host 主机
	Host string
	// Name 数据库名
	Name string
	// TablePrefix 表前缀
	TablePrefix string
	// AutoMigrate 是否启用自动迁移
	AutoMigrate bool
	// Charset 字符集
	Charset string
	// ParseTime 是否解析时间
	ParseTime bool
	// MaxIdleConns 最大闲置连接数
	MaxIdleConns int
	// MaxOpenConns 最大打开连接数
	MaxOpenConns int
	// ConnMaxLifetime 连接最大生命周期，支持格式：30m、1h
	ConnMaxLifetime string
	// ConnMaxIdleTime 空闲连接最大生命周期
	ConnMaxIdleTime string
	// RunMode 运行模式，debug 时输出 SQL 日志
	RunMode string
}

// Dao 数据访问对象
type Dao struct {
	db     *gorm.DB
	ctx    context.Context
	config *DatabaseConfig
	logger *zap.Logger
}

// Option Dao 选项
type Option func(*Dao)

// WithConfig 注入数据库配置
func WithConfig(c *DatabaseConfig) Option {
	return func(d *Dao) {
		d.config = c
	}
}

// WithLogger 注入日志器
func WithLogger(l *zap.Logger) Option {
	return func(d *Dao) {
		d.logger = l
	}
}

// New 创建 Dao 实例
func New(db *gorm.DB, ctx context.Context, opts ...Option) *Dao {
	d := &Dao{
		db:  db,
		ctx: ctx,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	return d
}

// DB 获取底层数据库连接
func (d *Dao) DB() *gorm.DB {
	return d.db
}

// Logger 获取日志器
func (d *Dao) Logger() *zap.Logger {
	return d.logger
}

func dialector(c *DatabaseConfig) (gorm.Dialector, error) {
	switch c.Type {
	case "sqlite":
		if err := fileurl.CreatePath(c.Path, 0o755); err != nil {
			return nil, err
		}
		return sqlite.Open(filepath.Clean(c.Path)), nil
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
			c.UserName, c.Password, c.Host, c.Name, c.Charset, c.ParseTime)
		return mysql.Open(dsn), nil
	}
	return nil, fmt.Errorf("database type %q is not supported", c.Type)
}

// NewDBEngine 创建数据库连接
func NewDBEngine(c *DatabaseConfig) (*gorm.DB, error) {
	dial, err := dialector(c)
	if err != nil {
		return nil, err
	}

	logMode := logger.Default.LogMode(logger.Silent)
	if c.RunMode == "debug" {
		logMode = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(dial, &gorm.Config{
		Logger: logMode,
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, err
	}

	// 注册链路追踪插件
	_ = db.Use(&gormTracing.OpentracingPlugin{})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	if lifetime, err := util.ParseDuration(c.ConnMaxLifetime); err == nil && lifetime > 0 {
		sqlDB.SetConnMaxLifetime(lifetime)
	} else {
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	if idleTime, err := util.ParseDuration(c.ConnMaxIdleTime); err == nil && idleTime > 0 {
		sqlDB.SetConnMaxIdleTime(idleTime)
	}

	if c.AutoMigrate {
		if err := model.AutoMigrateAll(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}
