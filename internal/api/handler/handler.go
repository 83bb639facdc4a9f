package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"token-pulse-go/internal/api/constant"
	"token-pulse-go/internal/api/dto"
	"token-pulse-go/internal/api/usecase"
	"token-pulse-go/internal/models"

	"github.com/gin-gonic/gin"
)

type HandlerItf interface {
	GetBoard(*gin.Context)
	GetColumn(*gin.Context)
	ExportColumn(*gin.Context)
	GetToken(*gin.Context)
	GetPrices(*gin.Context)
	SetSearchQuery(*gin.Context)
	SetSortField(*gin.Context)
	ToggleSortDirection(*gin.Context)
	SetFilter(*gin.Context)
	ResetFilters(*gin.Context)
	StartEngine(*gin.Context)
	StopEngine(*gin.Context)
	Regenerate(*gin.Context)
}

type Handler struct {
	uc usecase.UsecaseItf
}

func NewHandler(uc usecase.UsecaseItf) *Handler {
	return &Handler{uc: uc}
}

func categoryOf(raw string) models.Category {
	category, _ := models.ParseCategory(raw)
	return category
}

func ok(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusOK, dto.Res{Success: true, Data: data})
}

// bindOptional binds a JSON body when one was sent; an absent body keeps
// the zero value.
func bindOptional(ctx *gin.Context, obj any) error {
	if ctx.Request.ContentLength == 0 {
		return nil
	}
	return ctx.ShouldBindJSON(obj)
}

func (hd *Handler) GetBoard(ctx *gin.Context) {
	board, err := hd.uc.GetBoard(ctx.Request.Context())
	if err != nil {
		ctx.Error(err)
		return
	}
	ok(ctx, board)
}

func (hd *Handler) GetColumn(ctx *gin.Context) {
	column, err := hd.uc.GetColumn(ctx.Request.Context(), ctx.Param("category"))
	if err != nil {
		ctx.Error(err)
		return
	}
	ok(ctx, column)
}

func (hd *Handler) ExportColumn(ctx *gin.Context) {
	category := ctx.Param("category")

	var buf bytes.Buffer
	if err := hd.uc.ExportColumn(ctx.Request.Context(), category, &buf); err != nil {
		ctx.Error(err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", category+".csv"))
	ctx.Data(http.StatusOK, constant.ExportContentType, buf.Bytes())
}

func (hd *Handler) GetToken(ctx *gin.Context) {
	detail, err := hd.uc.GetToken(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		ctx.Error(err)
		return
	}
	ok(ctx, detail)
}

func (hd *Handler) GetPrices(ctx *gin.Context) {
	snapshot, err := hd.uc.GetPrices(ctx.Request.Context())
	if err != nil {
		ctx.Error(err)
		return
	}
	ok(ctx, snapshot)
}

func (hd *Handler) SetSearchQuery(ctx *gin.Context) {
	var req dto.SearchReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.Error(err)
		return
	}

	if err := hd.uc.SetSearchQuery(ctx.Request.Context(), req.Query); err != nil {
		ctx.Error(err)
		return
	}
	ok(ctx, dto.SearchRes{Query: req.Query})
}

func (hd *Handler) SetSortField(ctx *gin.Context) {
	var req dto.SortReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.Error(err)
		return
	}

	category := ctx.Param("category")
	state, err := hd.uc.SetSortField(ctx.Request.Context(), category, req.Field)
	if err != nil {
		ctx.Error(err)
		return
	}
	ok(ctx, dto.QueryStateRes{Category: categoryOf(category), State: state})
}

func (hd *Handler) ToggleSortDirection(ctx *gin.Context) {
	category := ctx.Param("category")
	state, err := hd.uc.ToggleSortDirection(ctx.Request.Context(), category)
	if err != nil {
		ctx.Error(err)
		return
	}
	ok(ctx, dto.QueryStateRes{Category: categoryOf(category), State: state})
}

func (hd *Handler) SetFilter(ctx *gin.Context) {
	var req dto.FilterReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.Error(err)
		return
	}

	category := ctx.Param("category")
	state, err := hd.uc.SetFilter(ctx.Request.Context(), category, req.Dimension, req.Bucket)
	if err != nil {
		ctx.Error(err)
		return
	}
	ok(ctx, dto.QueryStateRes{Category: categoryOf(category), State: state})
}

func (hd *Handler) ResetFilters(ctx *gin.Context) {
	category := ctx.Param("category")
	state, err := hd.uc.ResetFilters(ctx.Request.Context(), category)
	if err != nil {
		ctx.Error(err)
		return
	}
	ok(ctx, dto.QueryStateRes{Category: categoryOf(category), State: state})
}

func (hd *Handler) StartEngine(ctx *gin.Context) {
	var req dto.StartEngineReq
	if err := bindOptional(ctx, &req); err != nil {
		ctx.Error(err)
		return
	}

	interval, err := hd.uc.StartEngine(ctx.Request.Context(), req.IntervalMs)
	if err != nil {
		ctx.Error(err)
		return
	}
	ok(ctx, dto.EngineRes{Running: true, IntervalMs: interval.Milliseconds()})
}

func (hd *Handler) StopEngine(ctx *gin.Context) {
	if err := hd.uc.StopEngine(ctx.Request.Context()); err != nil {
		ctx.Error(err)
		return
	}
	ok(ctx, dto.EngineRes{Running: false})
}

func (hd *Handler) Regenerate(ctx *gin.Context) {
	var req dto.RegenerateReq
	if err := bindOptional(ctx, &req); err != nil {
		ctx.Error(err)
		return
	}

	category := ctx.Param("category")
	tokens, err := hd.uc.Regenerate(ctx.Request.Context(), category, req.Count)
	if err != nil {
		ctx.Error(err)
		return
	}
	ok(ctx, dto.RegenerateRes{Category: categoryOf(category), Tokens: tokens})
}
