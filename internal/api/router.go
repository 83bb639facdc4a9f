package api

import (
	"time"

	"token-pulse-go/internal/api/handler"
	"token-pulse-go/internal/api/middleware"
	"token-pulse-go/internal/api/stream"
	"token-pulse-go/internal/api/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewRouter wires the dashboard intents and reads under /api/v1. The
// snapshot stream bypasses the request timeout.
func NewRouter(uc usecase.UsecaseItf, hub *stream.Hub, timeout time.Duration, logger logrus.FieldLogger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(logger))

	hd := handler.NewHandler(uc)

	v1 := r.Group("/api/v1")
	if hub != nil {
		v1.GET("/stream", hub.Serve)
	}

	bounded := v1.Group("")
	bounded.Use(middleware.Error())
	bounded.Use(middleware.Timeout(timeout))
	{
		bounded.GET("/columns", hd.GetBoard)
		bounded.GET("/columns/:category", hd.GetColumn)
		bounded.GET("/columns/:category/export", hd.ExportColumn)
		bounded.GET("/tokens/:id", hd.GetToken)
		bounded.GET("/prices", hd.GetPrices)

		bounded.PUT("/search", hd.SetSearchQuery)
		bounded.PUT("/columns/:category/sort", hd.SetSortField)
		bounded.POST("/columns/:category/sort/toggle", hd.ToggleSortDirection)
		bounded.PUT("/columns/:category/filters", hd.SetFilter)
		bounded.DELETE("/columns/:category/filters", hd.ResetFilters)

		bounded.POST("/engine/start", hd.StartEngine)
		bounded.POST("/engine/stop", hd.StopEngine)
		bounded.POST("/catalog/:category/regenerate", hd.Regenerate)
	}

	return r
}
