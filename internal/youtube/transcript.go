package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-kratos/kratos/v2/log"
)

// NoTranscript 字幕与视频简介都为空时返回的文本
const NoTranscript = "No transcript available."

const (
	playerResponseMarker = "ytInitialPlayerResponse = "
	browserUA            = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	maxWatchPageSize     = 6 << 20
	maxTimedTextSize     = 512 << 10
)

// Transcriber 根据视频 ID 获取字幕文本
type Transcriber interface {
	FetchTranscript(ctx context.Context, videoID string) (string, error)
}

// CaptionClient 通过观看页面中的 ytInitialPlayerResponse 获取字幕轨道
type CaptionClient struct {
	watchURL  string
	languages []string
	client    *http.Client
}

var _ Transcriber = (*CaptionClient)(nil)

// NewCaptionClient 创建字幕客户端，languages 为字幕语言偏好
func NewCaptionClient(watchURL string, languages []string, client *http.Client) *CaptionClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &CaptionClient{
		watchURL:  watchURL,
		languages: languages,
		client:    client,
	}
}

type playerResponse struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" = 自动生成
}

type timedText struct {
	Lines []struct {
		Text string `xml:",chardata"`
	} `xml:"text"`
}

// FetchTranscript 抓取观看页面 -> 选择字幕轨道 -> 下载 timedtext XML
func (c *CaptionClient) FetchTranscript(ctx context.Context, videoID string) (string, error) {
	u, err := url.Parse(c.watchURL)
	if err != nil {
		return "", fmt.Errorf("invalid watch URL: %w", err)
	}
	q := u.Query()
	q.Set("v", videoID)
	u.RawQuery = q.Encode()

	page, err := c.get(ctx, u.String(), maxWatchPageSize)
	if err != nil {
		return "", fmt.Errorf("watch page: %w", err)
	}

	idx := bytes.Index(page, []byte(playerResponseMarker))
	if idx < 0 {
		return "", errors.New("ytInitialPlayerResponse not found in watch page")
	}
	raw := extractJSONObject(page[idx+len(playerResponseMarker):])
	if raw == nil {
		return "", errors.New("failed to extract ytInitialPlayerResponse JSON")
	}

	var player playerResponse
	if err := json.Unmarshal(raw, &player); err != nil {
		return "", fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	if player.Captions == nil {
		if player.PlayabilityStatus != nil && player.PlayabilityStatus.Reason != "" {
			return "", fmt.Errorf("captions unavailable: %s", player.PlayabilityStatus.Reason)
		}
		return "", errors.New("no captions in player response")
	}

	track, ok := pickTrack(player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks, c.languages)
	if !ok {
		return "", errors.New("no usable caption tracks")
	}

	body, err := c.get(ctx, track.BaseURL, maxTimedTextSize)
	if err != nil {
		return "", fmt.Errorf("fetch timedtext: %w", err)
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return "", fmt.Errorf("parse timedtext XML: %w", err)
	}

	parts := make([]string, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		// timedtext 中的实体是双重转义的
		text := strings.TrimSpace(html.UnescapeString(line.Text))
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " "), nil
}

func (c *CaptionClient) get(ctx context.Context, target string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("User-Agent", browserUA)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", res.StatusCode)
	}
	return io.ReadAll(io.LimitReader(res.Body, limit))
}

// needsPoToken 带 &exp=xpe 的字幕地址只能在浏览器中获取
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickTrack 字幕轨道选择：偏好语言的人工字幕 > 偏好语言的自动字幕 > 任意英文 > 第一个可用
func pickTrack(tracks []captionTrack, langs []string) (captionTrack, bool) {
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if t.BaseURL != "" && !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return captionTrack{}, false
	}
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t, true
			}
		}
	}
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang {
				return t, true
			}
		}
	}
	for _, t := range usable {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t, true
		}
	}
	return usable[0], true
}

// extractJSONObject 从 b[0] == '{' 开始按括号深度截取完整 JSON 对象
func extractJSONObject(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr, escaped := false, false
	for i, ch := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inStr = false
			}
			continue
		}
		switch ch {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}

// TranscriptResolver 字幕解析：字幕服务 -> 视频简介 -> NoTranscript
type TranscriptResolver struct {
	transcriber Transcriber
	log         *log.Helper
}

// NewTranscriptResolver 创建字幕解析器
func NewTranscriptResolver(t Transcriber, logger log.Logger) *TranscriptResolver {
	return &TranscriptResolver{transcriber: t, log: log.NewHelper(logger)}
}

// Resolve 总是返回可用文本，字幕获取失败时降级
func (r *TranscriptResolver) Resolve(ctx context.Context, videoID, description string) string {
	text, err := r.transcriber.FetchTranscript(ctx, videoID)
	if err == nil && strings.TrimSpace(text) != "" {
		return text
	}
	if err != nil {
		r.log.WithContext(ctx).Warnf("获取字幕失败，使用视频简介 [%s]: %v", videoID, err)
	}
	if description != "" {
		return description
	}
	return NoTranscript
}
