package api_router

import (
	"github.com/haierkeys/sheet-memo-dashboard/internal/app"
	"github.com/haierkeys/sheet-memo-dashboard/internal/dto"
	pkgapp "github.com/haierkeys/sheet-memo-dashboard/pkg/app"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/code"
	apperrors "github.com/haierkeys/sheet-memo-dashboard/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SettingHandler 连接配置 API 路由处理器
type SettingHandler struct {
	*Handler
}

// NewSettingHandler 创建 SettingHandler 实例
func NewSettingHandler(a *app.App) *SettingHandler {
	return &SettingHandler{
		Handler: NewHandler(a),
	}
}

// Save 保存连接配置（全量上書き）
// API キーとトークンはレスポンスでマスクされる
func (h *SettingHandler) Save(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.SettingSaveRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("SettingHandler.Save.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	setting, err := h.App.SettingService.Save(ctx, params)
	if err != nil {
		h.logError(ctx, "SettingHandler.Save", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessUpdate.WithData(setting))
}

// Load 获取当前连接配置，未保存時はデフォルト値を返す
func (h *SettingHandler) Load(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()

	setting, err := h.App.SettingService.Load(ctx)
	if err != nil {
		h.logError(ctx, "SettingHandler.Load", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(setting))
}

// Clear 删除连接配置
func (h *SettingHandler) Clear(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()

	if err := h.App.SettingService.Clear(ctx); err != nil {
		h.logError(ctx, "SettingHandler.Clear", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessDelete)
}
