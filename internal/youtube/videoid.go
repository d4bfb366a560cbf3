package youtube

import "regexp"

// VideoIDLength YouTube 视频 ID 固定长度
const VideoIDLength = 11

// 支持 watch?v=、youtu.be/、embed/、v/、e/ 以及 user/频道 等形式
var videoIDRE = regexp.MustCompile(`(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?)/|.*[?&]v=)|youtu\.be/)([^"&?/\s]{11})`)

// ExtractVideoID 从 URL 中解析出 11 位视频 ID，解析失败返回 false
func ExtractVideoID(rawURL string) (string, bool) {
	m := videoIDRE.FindStringSubmatch(rawURL)
	if len(m) < 2 || len(m[1]) != VideoIDLength {
		return "", false
	}
	return m[1], true
}

// WatchURL 视频的标准观看地址
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
