package service

import (
	"context"
	"net/http"

	"github.com/go-kratos/kratos/v2/errors"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
)

const (
	OperationAnalyze = "/api/analyze"
	OperationHealth  = "/api/health"
)

// RegisterCoverageHTTPServer 注册 /api 路由
func RegisterCoverageHTTPServer(s *khttp.Server, srv *CoverageService) {
	r := s.Route("/api")
	r.POST("/analyze", analyzeHTTPHandler(srv))
	r.GET("/health", healthHTTPHandler(srv))
}

func analyzeHTTPHandler(srv *CoverageService) func(ctx khttp.Context) error {
	return func(ctx khttp.Context) error {
		var in AnalyzeRequest
		if err := ctx.Bind(&in); err != nil {
			srv.log.WithContext(ctx).Warnf("请求体解析失败: %v", err)
			return ctx.JSON(http.StatusBadRequest, &ErrorReply{Error: "Invalid request body"})
		}
		khttp.SetOperation(ctx, OperationAnalyze)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Analyze(ctx, req.(*AnalyzeRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return writeError(ctx, srv, err)
		}
		return ctx.JSON(http.StatusOK, out)
	}
}

func healthHTTPHandler(srv *CoverageService) func(ctx khttp.Context) error {
	return func(ctx khttp.Context) error {
		khttp.SetOperation(ctx, OperationHealth)
		return ctx.JSON(http.StatusOK, srv.Health(ctx))
	}
}

// writeError 校验错误返回 400，其余(包括视频不存在)统一返回 500
func writeError(ctx khttp.Context, srv *CoverageService, err error) error {
	se := errors.FromError(err)
	if se.Code == http.StatusBadRequest {
		return ctx.JSON(http.StatusBadRequest, &ErrorReply{Error: se.Message})
	}
	srv.log.WithContext(ctx).Errorf("分析请求失败: %v", err)
	return ctx.JSON(http.StatusInternalServerError, &ErrorReply{
		Error:   se.Message,
		Details: UpstreamErrorDetails,
	})
}
