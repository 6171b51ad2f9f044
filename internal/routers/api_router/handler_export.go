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

// ExportHandler 备忘录导出 API 路由处理器
type ExportHandler struct {
	*Handler
}

// NewExportHandler 创建 ExportHandler 实例
func NewExportHandler(a *app.App) *ExportHandler {
	return &ExportHandler{
		Handler: NewHandler(a),
	}
}

// Export 批量导出备忘录到远程工作表
// ids 空时导出全部未导出分。追記成功後のマーク失敗は部分結果付きで返る
func (h *ExportHandler) Export(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ExportRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("ExportHandler.Export.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	result, err := h.App.ExportService.ExportMany(ctx, params)
	if err != nil {
		h.logError(ctx, "ExportHandler.Export", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessExport.WithData(result))
}

// ExportOne 导出单条备忘录
func (h *ExportHandler) ExportOne(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.MemoIDRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("ExportHandler.ExportOne.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	result, err := h.App.ExportService.ExportOne(ctx, params.ID, c.Query("sheet"))
	if err != nil {
		h.logError(ctx, "ExportHandler.ExportOne", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessExport.WithData(result))
}
