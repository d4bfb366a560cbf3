package main

import (
	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/spf13/cobra"

	"github.com/iWorld-y/topic_coverage/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API (POST /api/analyze, GET /api/health)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	helper := log.NewHelper(logger)
	if !cfg.HasLLMKey() {
		helper.Warn("未配置 GROQ_API_KEY，覆盖度分析将全部降级")
	}
	if !cfg.HasYouTubeKey() {
		helper.Warn("未配置 YOUTUBE_API_KEY，获取视频信息会失败")
	}

	svc, err := newCoverageService(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	hs, err := server.NewHTTPServer(&cfg.Server, svc, logger)
	if err != nil {
		return err
	}

	app := kratos.New(
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Metadata(map[string]string{}),
		kratos.Logger(logger),
		kratos.Server(hs),
	)
	helper.Infof("服务启动，监听 %s", cfg.Server.HTTP.Addr)
	return app.Run()
}
