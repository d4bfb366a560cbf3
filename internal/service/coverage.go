package service

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/topic_coverage/internal/conf"
	"github.com/iWorld-y/topic_coverage/internal/domain"
	"github.com/iWorld-y/topic_coverage/internal/usecase"
)

const (
	// TranscriptPreviewChars 响应中字幕预览的最大字符数
	TranscriptPreviewChars = 500
	// UpstreamErrorDetails 上游失败时附带的提示
	UpstreamErrorDetails = "Please check API keys and try again."
)

type AnalyzeRequest struct {
	YoutubeURL      string   `json:"youtubeUrl"`
	Topic           string   `json:"topic"`
	CustomSubtopics []string `json:"customSubtopics"`
}

type AnalyzeReply struct {
	Success    bool                   `json:"success"`
	VideoInfo  domain.VideoInfo       `json:"videoInfo"`
	Transcript string                 `json:"transcript"`
	Subtopics  []string               `json:"subtopics"`
	Analysis   *domain.CoverageReport `json:"analysis"`
}

type HealthReply struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	HasGroqKey    bool   `json:"hasGroqKey"`
	HasYouTubeKey bool   `json:"hasYouTubeKey"`
}

type ErrorReply struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// CoverageService 覆盖度分析对外服务
type CoverageService struct {
	uc  *usecase.AnalyzeUseCase
	cfg *conf.Bootstrap
	log *log.Helper
}

func NewCoverageService(uc *usecase.AnalyzeUseCase, cfg *conf.Bootstrap, logger log.Logger) *CoverageService {
	return &CoverageService{
		uc:  uc,
		cfg: cfg,
		log: log.NewHelper(logger),
	}
}

func (s *CoverageService) Analyze(ctx context.Context, req *AnalyzeRequest) (*AnalyzeReply, error) {
	res, err := s.uc.Analyze(ctx, &usecase.AnalyzeRequest{
		YoutubeURL: req.YoutubeURL,
		Topic:      req.Topic,
		Subtopics:  req.CustomSubtopics,
	})
	if err != nil {
		return nil, err
	}
	return &AnalyzeReply{
		Success:    true,
		VideoInfo:  res.VideoInfo,
		Transcript: preview(res.Transcript, TranscriptPreviewChars),
		Subtopics:  res.Subtopics,
		Analysis:   res.Analysis,
	}, nil
}

// Health 只返回密钥是否已配置，不返回密钥本身
func (s *CoverageService) Health(ctx context.Context) *HealthReply {
	return &HealthReply{
		Status:        "OK",
		Message:       "Server is running",
		HasGroqKey:    s.cfg.HasLLMKey(),
		HasYouTubeKey: s.cfg.HasYouTubeKey(),
	}
}

func preview(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
