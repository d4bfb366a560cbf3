package domain

// VideoInfo 返回给调用方的视频信息
type VideoInfo struct {
	VideoID      string `json:"videoId"`
	Title        string `json:"title"`
	ChannelTitle string `json:"channelTitle"`
	PublishedAt  string `json:"publishedAt"`
	Thumbnail    string `json:"thumbnail"`
	YoutubeURL   string `json:"youtubeUrl"`
}

// VideoMetadata 视频元数据，Description 用作字幕缺失时的兜底文本
type VideoMetadata struct {
	VideoID      string
	Title        string
	Description  string
	ChannelTitle string
	PublishedAt  string
	Thumbnail    string
}

// SubtopicResult 单个子主题的覆盖度
type SubtopicResult struct {
	Subtopic      string `json:"subtopic"`
	CoverageScore int    `json:"coverageScore"`
	Covered       bool   `json:"covered"`
	Evidence      string `json:"evidence"`
}

// CoverageReport 覆盖度报告，SubtopicAnalysis 与请求中的子主题一一对应且顺序一致
type CoverageReport struct {
	OverallScore     int              `json:"overallScore"`
	SubtopicAnalysis []SubtopicResult `json:"subtopicAnalysis"`
	Summary          string           `json:"summary"`
}

// AnalyzeResult 一次完整分析的结果
type AnalyzeResult struct {
	VideoInfo  VideoInfo
	Transcript string
	Subtopics  []string
	Analysis   *CoverageReport
}
