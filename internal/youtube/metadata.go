package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-kratos/kratos/v2/errors"

	"github.com/iWorld-y/topic_coverage/internal/domain"
)

// ReasonVideoNotFound 视频 ID 无法解析到视频
const ReasonVideoNotFound = "VIDEO_NOT_FOUND"

// MetadataClient YouTube Data API v3 客户端
type MetadataClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewMetadataClient 创建一个新的 YouTube Data API 客户端
func NewMetadataClient(baseURL, apiKey string, client *http.Client) *MetadataClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &MetadataClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
	}
}

type videosResponse struct {
	Items []videoItem `json:"items"`
}

type videoItem struct {
	ID      string       `json:"id"`
	Snippet videoSnippet `json:"snippet"`
}

type videoSnippet struct {
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	ChannelTitle string               `json:"channelTitle"`
	PublishedAt  string               `json:"publishedAt"`
	Thumbnails   map[string]thumbnail `json:"thumbnails"`
}

type thumbnail struct {
	URL string `json:"url"`
}

// 缩略图按清晰度优先级选取
var thumbnailPreference = []string{"maxres", "high", "medium", "default"}

func (s videoSnippet) bestThumbnail() string {
	for _, k := range thumbnailPreference {
		if t, ok := s.Thumbnails[k]; ok && t.URL != "" {
			return t.URL
		}
	}
	return ""
}

// FetchMetadata 获取视频元数据，视频不存在时返回 NotFound
func (c *MetadataClient) FetchMetadata(ctx context.Context, videoID string) (*domain.VideoMetadata, error) {
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("id", videoID)
	q.Set("key", c.apiKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/videos?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body failed: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube api error (status %d): %s", res.StatusCode, string(body))
	}

	var videosResp videosResponse
	if err := json.Unmarshal(body, &videosResp); err != nil {
		return nil, fmt.Errorf("unmarshal response failed: %w", err)
	}
	if len(videosResp.Items) == 0 {
		return nil, errors.NotFound(ReasonVideoNotFound, "Video not found")
	}

	snippet := videosResp.Items[0].Snippet
	return &domain.VideoMetadata{
		VideoID:      videoID,
		Title:        snippet.Title,
		Description:  snippet.Description,
		ChannelTitle: snippet.ChannelTitle,
		PublishedAt:  snippet.PublishedAt,
		Thumbnail:    snippet.bestThumbnail(),
	}, nil
}
