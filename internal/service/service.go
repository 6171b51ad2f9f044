// Package service 实现业务逻辑层
package service

import (
	"context"

	"github.com/haierkeys/sheet-memo-dashboard/internal/domain"
	"github.com/haierkeys/sheet-memo-dashboard/internal/gateway"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/code"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ServiceConfig Service 层配置
type ServiceConfig struct {
	App AppServiceConfig
}

// AppServiceConfig 应用级业务配置
type AppServiceConfig struct {
	// HistoryRetentionTime 履歴保持期間、支持格式：7d、24h
	HistoryRetentionTime string
	// ImageMaxSize 画像上传上限（字节）
	ImageMaxSize int64
}

// GatewayFactory 根据当前连接配置创建网关
// 設定が未完了なら ErrorSheetsNotConfigured を返す
type GatewayFactory func(ctx context.Context) (gateway.Gateway, error)

// NewGatewayFactory 创建基于配置仓储的网关工厂
func NewGatewayFactory(settingRepo domain.SettingRepository, opts ...gateway.Option) GatewayFactory {
	return func(ctx context.Context) (gateway.Gateway, error) {
		setting, err := settingRepo.Get(ctx)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, code.ErrorSheetsNotConfigured
			}
			return nil, code.ErrorDBQuery.WithDetails(err.Error())
		}
		return gateway.New(setting, opts...)
	}
}
