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

// DashboardHandler 仪表盘 API 路由处理器
type DashboardHandler struct {
	*Handler
}

// NewDashboardHandler 创建 DashboardHandler 实例
func NewDashboardHandler(a *app.App) *DashboardHandler {
	return &DashboardHandler{
		Handler: NewHandler(a),
	}
}

// View 获取仪表盘视图
// 検索・絞り込み・並び替え・集計はキャッシュ済みスナップショットに対して行う
// 絞り込み条件は filter[列名]=値 形式のクエリで渡す
func (h *DashboardHandler) View(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.DashboardViewRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("DashboardHandler.View.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}
	params.Filter = c.QueryMap("filter")

	ctx := c.Request.Context()

	view, err := h.App.DashboardService.View(ctx, params)
	if err != nil {
		h.logError(ctx, "DashboardHandler.View", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(view))
}

// Refresh 从远程拉取全部工作表并更新快照缓存
// 取得失敗でもキャッシュがあれば劣化モードで成功を返す
func (h *DashboardHandler) Refresh(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()

	result, err := h.App.DashboardService.Refresh(ctx)
	if err != nil {
		h.logError(ctx, "DashboardHandler.Refresh", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}
