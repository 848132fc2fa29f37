package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/ems/pkg/ginx"
	"github.com/rs/zerolog"
)

// requestLogger 为每个请求派生带 request_id 的 logger，并记录访问日志
func requestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		requestID := ginx.RequestID(ctx)

		logger := zerolog.Ctx(ctx.Request.Context()).With().
			Str("request_id", requestID).
			Str("method", ctx.Request.Method).
			Str("path", ctx.Request.URL.Path).
			Logger()
		ctx.Request = ctx.Request.WithContext(logger.WithContext(ctx.Request.Context()))

		ctx.Next()

		logger.Info().
			Int("status", ctx.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("Request handled")
	}
}
