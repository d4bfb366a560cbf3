package main

import (
	"context"
	"net/http"
	"os"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/topic_coverage/internal/conf"
	"github.com/iWorld-y/topic_coverage/internal/coverage"
	"github.com/iWorld-y/topic_coverage/internal/llm"
	"github.com/iWorld-y/topic_coverage/internal/logger"
	"github.com/iWorld-y/topic_coverage/internal/service"
	"github.com/iWorld-y/topic_coverage/internal/usecase"
	"github.com/iWorld-y/topic_coverage/internal/youtube"
)

// bootstrap 加载配置并初始化日志
func bootstrap() (*conf.Bootstrap, log.Logger, error) {
	cfg, err := conf.LoadConfig(flagconf)
	if err != nil {
		return nil, nil, err
	}

	l, err := logger.NewLogger(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return nil, nil, err
	}
	// logrus 已输出文件行号，这里的 caller 指向业务调用处
	id, _ := os.Hostname()
	kl := log.With(logger.NewKratos(l),
		"caller", log.DefaultCaller,
		"service.id", id,
		"service.name", Name,
		"service.version", Version,
	)
	log.SetLogger(kl)
	return cfg, kl, nil
}

// newCoverageService 按依赖顺序组装各组件
func newCoverageService(ctx context.Context, cfg *conf.Bootstrap, l log.Logger) (*service.CoverageService, error) {
	httpClient := &http.Client{}

	metadata := youtube.NewMetadataClient(cfg.YouTube.BaseURL, cfg.YouTube.APIKey, httpClient)
	captions := youtube.NewCaptionClient(cfg.YouTube.WatchURL, cfg.YouTube.Languages, httpClient)
	resolver := youtube.NewTranscriptResolver(captions, l)

	chatModel, err := llm.NewChatModel(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}
	analyzer := coverage.NewAnalyzer(llm.NewChatCompleter(chatModel, cfg.LLM.Temperature), l)

	uc := usecase.NewAnalyzeUseCase(metadata, resolver, analyzer, l)
	return service.NewCoverageService(uc, cfg, l), nil
}
