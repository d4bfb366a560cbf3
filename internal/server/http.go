package server

import (
	nethttp "net/http"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/uuid"

	"github.com/iWorld-y/topic_coverage/internal/conf"
	"github.com/iWorld-y/topic_coverage/internal/service"
)

const RequestIDHeader = "X-Request-ID"

// NewHTTPServer 创建 HTTP 服务
func NewHTTPServer(c *conf.Server, s *service.CoverageService, logger log.Logger) (*http.Server, error) {
	// 未配置时不限制请求时长，模型调用可能较慢
	timeout, err := c.HTTP.RequestTimeout()
	if err != nil {
		return nil, err
	}
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
			logging.Server(logger),
		),
		http.Filter(
			requestID,
			cors(c.CORS.AllowOrigin),
		),
	}
	if c.HTTP.Addr != "" {
		opts = append(opts, http.Address(c.HTTP.Addr))
	}
	opts = append(opts, http.Timeout(timeout))

	srv := http.NewServer(opts...)
	service.RegisterCoverageHTTPServer(srv, s)
	return srv, nil
}

// requestID 透传或生成请求 ID
func requestID(next nethttp.Handler) nethttp.Handler {
	return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(RequestIDHeader, id)
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// cors 跨域处理，预检请求直接返回 204
func cors(allowOrigin string) http.FilterFunc {
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	return func(next nethttp.Handler) nethttp.Handler {
		return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", allowOrigin)
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+RequestIDHeader)
			if r.Method == nethttp.MethodOptions {
				w.WriteHeader(nethttp.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
