package coverage

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/iWorld-y/topic_coverage/internal/domain"
)

const (
	EvidenceFound    = "Evidence found in transcript."
	EvidenceNotFound = "No evidence found."
	EvidenceFailed   = "Failed to analyze coverage."

	// CoveredThreshold 分数不低于该值视为已覆盖
	CoveredThreshold = 50
)

// ParseSubtopicScores 从模型的自由文本回复中提取每个子主题的分数。
//
// 对每个子主题独立查找：子主题原文之后(不区分大小写，可跨行)第一个 "Score: <数字>"。
// 子主题互为子串或匹配区间重叠时可能取到其他子主题的分数，这里不做消歧；
// 分数也不截断到 0-100。模型给出的 Evidence 文本不会被采用。
func ParseSubtopicScores(reply string, subtopics []string) []domain.SubtopicResult {
	results := make([]domain.SubtopicResult, 0, len(subtopics))
	for _, subtopic := range subtopics {
		result := domain.SubtopicResult{
			Subtopic: subtopic,
			Evidence: EvidenceNotFound,
		}

		// regexp 不接受非法 UTF-8，QuoteMeta 又会原样保留这些字节
		label := strings.ToValidUTF8(subtopic, "\uFFFD")
		re := regexp.MustCompile(`(?is)` + regexp.QuoteMeta(label) + `.*?Score:\s*(\d+)`)
		if m := re.FindStringSubmatch(reply); len(m) == 2 {
			if score, err := strconv.Atoi(m[1]); err == nil {
				result.CoverageScore = score
				result.Covered = score >= CoveredThreshold
				result.Evidence = EvidenceFound
			}
		}
		results = append(results, result)
	}
	return results
}

// OverallScore 所有子主题分数的平均值，四舍五入 (33.5 -> 34)
func OverallScore(results []domain.SubtopicResult) int {
	if len(results) == 0 {
		return 0
	}
	total := 0
	for _, r := range results {
		total += r.CoverageScore
	}
	return int(math.Round(float64(total) / float64(len(results))))
}
