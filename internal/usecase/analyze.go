package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/topic_coverage/internal/domain"
	"github.com/iWorld-y/topic_coverage/internal/youtube"
)

const (
	ReasonInvalidRequest = "INVALID_REQUEST"
	ReasonInvalidURL     = "INVALID_YOUTUBE_URL"
)

// MetadataFetcher 视频元数据获取
type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, videoID string) (*domain.VideoMetadata, error)
}

// TranscriptResolver 字幕解析，失败时自行降级
type TranscriptResolver interface {
	Resolve(ctx context.Context, videoID, description string) string
}

// CoverageAnalyzer 覆盖度分析，失败时返回全零报告
type CoverageAnalyzer interface {
	Analyze(ctx context.Context, transcript string, subtopics []string) *domain.CoverageReport
}

// AnalyzeRequest 一次分析请求
type AnalyzeRequest struct {
	YoutubeURL string
	Topic      string
	Subtopics  []string
}

// AnalyzeUseCase 串行执行：解析视频 ID -> 元数据 -> 字幕 -> 覆盖度分析
type AnalyzeUseCase struct {
	metadata   MetadataFetcher
	transcript TranscriptResolver
	analyzer   CoverageAnalyzer
	log        *log.Helper
}

// NewAnalyzeUseCase 创建分析业务逻辑实例
func NewAnalyzeUseCase(m MetadataFetcher, t TranscriptResolver, a CoverageAnalyzer, logger log.Logger) *AnalyzeUseCase {
	return &AnalyzeUseCase{
		metadata:   m,
		transcript: t,
		analyzer:   a,
		log:        log.NewHelper(logger),
	}
}

// Validate 校验请求并返回视频 ID
func (req *AnalyzeRequest) Validate() (string, error) {
	if strings.TrimSpace(req.YoutubeURL) == "" || strings.TrimSpace(req.Topic) == "" || len(req.Subtopics) == 0 {
		return "", errors.BadRequest(ReasonInvalidRequest, "YouTube URL, topic, and custom subtopics are required")
	}
	videoID, ok := youtube.ExtractVideoID(req.YoutubeURL)
	if !ok {
		return "", errors.BadRequest(ReasonInvalidURL, "Invalid YouTube URL")
	}
	return videoID, nil
}

// Analyze 执行一次完整分析
func (uc *AnalyzeUseCase) Analyze(ctx context.Context, req *AnalyzeRequest) (*domain.AnalyzeResult, error) {
	videoID, err := req.Validate()
	if err != nil {
		return nil, err
	}
	l := uc.log.WithContext(ctx)
	l.Infof("开始分析视频 [%s]，主题 %q，%d 个子主题", videoID, req.Topic, len(req.Subtopics))

	meta, err := uc.metadata.FetchMetadata(ctx, videoID)
	if err != nil {
		l.Errorf("获取视频信息失败 [%s]: %v", videoID, err)
		return nil, fmt.Errorf("fetch video metadata: %w", err)
	}

	transcript := uc.transcript.Resolve(ctx, videoID, meta.Description)
	report := uc.analyzer.Analyze(ctx, transcript, req.Subtopics)
	l.Infof("视频 [%s] 分析完成，总分 %d", videoID, report.OverallScore)

	return &domain.AnalyzeResult{
		VideoInfo: domain.VideoInfo{
			VideoID:      videoID,
			Title:        meta.Title,
			ChannelTitle: meta.ChannelTitle,
			PublishedAt:  meta.PublishedAt,
			Thumbnail:    meta.Thumbnail,
			YoutubeURL:   req.YoutubeURL,
		},
		Transcript: transcript,
		Subtopics:  req.Subtopics,
		Analysis:   report,
	}, nil
}
