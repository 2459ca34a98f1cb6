package server

import (
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

func NewLoggerHandler(logger *zap.Logger, handler fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		begin := time.Now()

		handler(ctx)

		logger.Debug(string(ctx.Method()),
			zap.ByteString("url", ctx.RequestURI()),
			zap.Int("status", ctx.Response.StatusCode()),
			zap.Int("request_size", len(ctx.Request.Body())),
			zap.Int("response_size", len(ctx.Response.Body())),
			zap.Duration("elapse", time.Since(begin)),
		)
	}
}
