package api_router

import (
	"io"
	"net/http"

	"github.com/haierkeys/sheet-memo-dashboard/internal/app"
	"github.com/haierkeys/sheet-memo-dashboard/internal/dto"
	"github.com/haierkeys/sheet-memo-dashboard/internal/service"
	pkgapp "github.com/haierkeys/sheet-memo-dashboard/pkg/app"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/code"
	apperrors "github.com/haierkeys/sheet-memo-dashboard/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MemoHandler 备忘录 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type MemoHandler struct {
	*Handler
}

// NewMemoHandler 创建 MemoHandler 实例
func NewMemoHandler(a *app.App) *MemoHandler {
	return &MemoHandler{
		Handler: NewHandler(a),
	}
}

// Create 创建备忘录
// 画像は multipart の imagefile フィールドで受け取る（必須）
func (h *MemoHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.MemoCreateRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("MemoHandler.Create.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	file, fileHeader, errf := c.Request.FormFile("imagefile")
	if errf != nil {
		response.ToResponse(code.ErrorMemoImageRequired)
		return
	}
	defer file.Close()

	// 画像サイズの上限チェック
	if maxSize := h.App.Config().App.ImageMaxSize; maxSize > 0 && fileHeader.Size > maxSize {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("image exceeds the configured size limit"))
		return
	}

	ctx := c.Request.Context()

	image := &service.ImageUpload{
		Reader: file,
		Size:   fileHeader.Size,
		Mime:   fileHeader.Header.Get("Content-Type"),
		Name:   fileHeader.Filename,
	}

	memo, err := h.App.MemoService.Create(ctx, params, image)
	if err != nil {
		h.logError(ctx, "MemoHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessCreate.WithData(memo))
}

// Get 获取单条备忘录详情
func (h *MemoHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.MemoIDRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("MemoHandler.Get.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	memo, err := h.App.MemoService.Get(ctx, params.ID)
	if err != nil {
		h.logError(ctx, "MemoHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(memo))
}

// Image 读取备忘录图片
// JSON エンベロープではなくバイナリをそのまま返す
func (h *MemoHandler) Image(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.MemoIDRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("MemoHandler.Image.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	reader, mime, err := h.App.MemoService.GetImage(ctx, params.ID)
	if err != nil {
		h.logError(ctx, "MemoHandler.Image", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Type", mime)
	c.Header("Cache-Control", "private, max-age=86400")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		h.logError(ctx, "MemoHandler.Image.Copy", err)
	}
}

// List 分页获取备忘录列表（创建时间倒序）
func (h *MemoHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.MemoListRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("MemoHandler.List.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	memos, total, err := h.App.MemoService.List(ctx, params, pkgapp.GetPage(c), pkgapp.GetPageSize(c))
	if err != nil {
		h.logError(ctx, "MemoHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success, memos, int(total))
}

// Update 更新备忘录文本（OCR 誤認識の手修正）
func (h *MemoHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	idParams := &dto.MemoIDRequest{}

	if valid, errs := pkgapp.BindAndValid(c, idParams); !valid {
		h.App.Logger().Error("MemoHandler.Update.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	params := &dto.MemoUpdateRequest{}
	if valid, errs := pkgapp.BindAndValid(c, params); !valid {
		h.App.Logger().Error("MemoHandler.Update.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	memo, err := h.App.MemoService.Update(ctx, idParams.ID, params)
	if err != nil {
		h.logError(ctx, "MemoHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessUpdate.WithData(memo))
}

// Delete 删除备忘录及其图片和历史
func (h *MemoHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.MemoIDRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("MemoHandler.Delete.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	if err := h.App.MemoService.Delete(ctx, params.ID); err != nil {
		h.logError(ctx, "MemoHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessDelete)
}

// History 获取备忘录修改历史（新しい版から順）
func (h *MemoHandler) History(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.MemoIDRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("MemoHandler.History.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	histories, err := h.App.MemoService.History(ctx, params.ID)
	if err != nil {
		h.logError(ctx, "MemoHandler.History", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(histories))
}

// Count 获取备忘录数量统计
func (h *MemoHandler) Count(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()

	count, err := h.App.MemoService.Count(ctx)
	if err != nil {
		h.logError(ctx, "MemoHandler.Count", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(count))
}
