package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/7phs/binbuf/buffer"
	"github.com/7phs/binbuf/internal/config"
	"github.com/7phs/binbuf/internal/storages"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	contentTypeText   = "text/plain; charset=utf-8"
	contentTypeBinary = "application/octet-stream"

	// idleTimeout bounds how long a keep-alive connection may wait for the
	// next request, Stop waits for such connections to go away.
	idleTimeout = 5 * time.Second
)

var (
	_ Server = (*DefaultServer)(nil)
)

type Server interface {
	Start() error
	Stop()
}

type DefaultServer struct {
	logger              *zap.Logger
	maintenance         GroupMaintenance
	port                int
	maintenanceInterval time.Duration
	server              fasthttp.Server

	cancelCtx context.Context
	cancel    func()

	storages storages.Storages
}

func NewServer(
	logger *zap.Logger,
	conf config.Config,
	storages storages.Storages,
) *DefaultServer {
	cancelCtx, cancel := context.WithCancel(context.Background())

	srv := &DefaultServer{
		logger:              logger,
		storages:            storages,
		port:                conf.Port(),
		maintenanceInterval: conf.Maintenance(),

		cancelCtx: cancelCtx,
		cancel:    cancel,

		maintenance: NewGroupMaintenance(logger, storages),
	}
	srv.server.Handler = NewLoggerHandler(logger, srv.handler)
	srv.server.IdleTimeout = idleTimeout

	return srv
}

func (o *DefaultServer) handler(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Method()) {
	case http.MethodGet:
		key := ctx.Path()

		o.logger.Debug("handle GET",
			zap.ByteString("key", key),
		)

		body, err := o.storages.Get(key)
		if err != nil {
			o.handlerError(ctx, err)
			return
		}

		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetContentType(contentType(body))
		ctx.SetBody(body)

	case http.MethodPost:
		key := ctx.Path()

		body, err := readBody(&ctx.Request)
		if err != nil {
			o.handlerError(ctx, err)
			return
		}

		o.logger.Debug("handle POST",
			zap.ByteString("key", key),
			zap.Stringer("body", body),
		)

		err = o.storages.Add(key, body.ToByteArray())
		if err != nil {
			o.handlerError(ctx, err)
			return
		}

		ctx.SetStatusCode(fasthttp.StatusOK)

	default:
		ctx.Error("Unsupported method", fasthttp.StatusMethodNotAllowed)
	}
}

func (o *DefaultServer) handlerError(ctx *fasthttp.RequestCtx, err error) {
	switch err {
	case storages.ErrKeyNotFound, storages.ErrKeyExpired:
		ctx.Error("Not found", fasthttp.StatusNotFound)
	case storages.ErrOutOfLimit, buffer.ErrTooLarge:
		ctx.Error("Out of limit", fasthttp.StatusInsufficientStorage)
	default:
		o.logger.Error("failed to handle request",
			zap.ByteString("url", ctx.RequestURI()),
			zap.Error(err),
		)

		ctx.Error("Internal error", fasthttp.StatusInternalServerError)
	}
}

func (o *DefaultServer) Start() error {
	port := fmt.Sprintf(":%d", o.port)

	o.logger.Info("http: listen",
		zap.String("port", port),
	)

	ln, err := net.Listen("tcp4", port)
	if err != nil {
		return err
	}

	return o.Serve(ln)
}

func (o *DefaultServer) Serve(ln net.Listener) error {
	var wg errgroup.Group

	wg.Go(func() error {
		o.logger.Info("maintenance: start")

		o.maintenance.Start(o.cancelCtx, o.maintenanceInterval)
		return nil
	})

	wg.Go(func() error {
		return o.server.Serve(ln)
	})

	return wg.Wait()
}

func (o *DefaultServer) Stop() {
	var wg errgroup.Group

	wg.Go(func() error {
		o.logger.Info("http: shutdown")

		return o.server.Shutdown()
	})

	wg.Go(func() error {
		o.logger.Info("maintenance: shutdown")

		o.cancel()

		return nil
	})

	err := wg.Wait()
	if err != nil {
		o.logger.Error("failed to stop server",
			zap.Error(err),
		)
	}
}

// readBody accumulates the request body into a buffer sized by Content-Length
// when the client sent one.
func readBody(req *fasthttp.Request) (*buffer.HeapBuffer, error) {
	body := buffer.Allocate()

	if sz := req.Header.ContentLength(); sz > buffer.DefaultSize {
		var err error

		body, err = buffer.AllocateSize(sz)
		if err != nil {
			return nil, err
		}
	}

	err := req.BodyWriteTo(body)
	if err != nil {
		return nil, err
	}

	return body, nil
}

func contentType(body []byte) string {
	if utf8.Valid(body) {
		return contentTypeText
	}

	return contentTypeBinary
}
