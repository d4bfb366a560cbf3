package coverage

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/topic_coverage/internal/domain"
	"github.com/iWorld-y/topic_coverage/internal/llm"
)

const (
	// MaxTranscriptChars 发送给模型的字幕最大字符数
	MaxTranscriptChars = 4000
	TruncatedMarker    = "... [truncated]"
	// MaxOutputTokens 模型最大输出 token 数
	MaxOutputTokens = 2000

	FailedSummary = "Failed to generate coverage analysis."
)

const systemPrompt = "You are an educational content analyst. You evaluate how well video transcripts cover requested subtopics and always answer in the requested format."

const analysisPrompt = `You are an educational analyst. Analyze the following video transcript and estimate how well it covers each of the listed subtopics.

For each subtopic, respond with exactly one block in this format:
Subtopic: <subtopic name>
Score: <integer from 0 to 100>
Evidence: <short quote or paraphrase from the transcript>

Transcript: "%s"

Subtopics: %s`

// Analyzer 子主题覆盖度分析
type Analyzer struct {
	completer llm.Completer
	log       *log.Helper
}

// NewAnalyzer 创建分析器
func NewAnalyzer(completer llm.Completer, logger log.Logger) *Analyzer {
	return &Analyzer{completer: completer, log: log.NewHelper(logger)}
}

// Analyze 生成覆盖度报告，不会返回错误：模型调用失败时返回全零报告
func (a *Analyzer) Analyze(ctx context.Context, transcript string, subtopics []string) *domain.CoverageReport {
	messages := []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(buildPrompt(transcript, subtopics)),
	}

	reply, err := a.completer.Complete(ctx, messages, MaxOutputTokens)
	if err != nil {
		a.log.WithContext(ctx).Errorf("覆盖度分析失败: %v", err)
		return failedReport(subtopics)
	}
	a.log.WithContext(ctx).Debugf("模型回复: %s", reply)

	results := ParseSubtopicScores(reply, subtopics)
	return &domain.CoverageReport{
		OverallScore:     OverallScore(results),
		SubtopicAnalysis: results,
		Summary:          fmt.Sprintf("Analyzed coverage for %d subtopics.", len(subtopics)),
	}
}

func buildPrompt(transcript string, subtopics []string) string {
	return fmt.Sprintf(analysisPrompt, truncate(transcript, MaxTranscriptChars), strings.Join(subtopics, ", "))
}

// truncate 按字符(rune)截断，截断时追加 TruncatedMarker
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + TruncatedMarker
}

func failedReport(subtopics []string) *domain.CoverageReport {
	results := make([]domain.SubtopicResult, 0, len(subtopics))
	for _, s := range subtopics {
		results = append(results, domain.SubtopicResult{
			Subtopic: s,
			Evidence: EvidenceFailed,
		})
	}
	return &domain.CoverageReport{
		OverallScore:     0,
		SubtopicAnalysis: results,
		Summary:          FailedSummary,
	}
}
