package conf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAddr           = ":5000"
	DefaultLLMBaseURL     = "https://api.groq.com/openai/v1"
	DefaultLLMModel       = "llama-3.3-70b-versatile"
	DefaultYouTubeBaseURL = "https://www.googleapis.com/youtube/v3"
	DefaultWatchURL       = "https://www.youtube.com/watch"
)

// Bootstrap 服务启动配置，启动时构造一次，之后只读
type Bootstrap struct {
	Server  Server  `yaml:"server"`
	LLM     LLM     `yaml:"llm"`
	YouTube YouTube `yaml:"youtube"`
	Log     Log     `yaml:"log"`
}

// Server HTTP 服务配置
type Server struct {
	HTTP HTTP `yaml:"http"`
	CORS CORS `yaml:"cors"`
}

type HTTP struct {
	Addr string `yaml:"addr"`
	// Timeout 为空表示不设置请求超时
	Timeout string `yaml:"timeout"`
}

type CORS struct {
	AllowOrigin string `yaml:"allow_origin"`
}

// LLM 大模型相关配置 (OpenAI 兼容协议，默认 Groq)
type LLM struct {
	BaseURL     string  `yaml:"base_url"`
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
}

// YouTube 视频平台相关配置
type YouTube struct {
	APIKey    string   `yaml:"api_key"`
	BaseURL   string   `yaml:"base_url"`
	WatchURL  string   `yaml:"watch_url"`
	Languages []string `yaml:"languages"`
}

// Log 日志相关配置
type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default 返回默认配置
func Default() *Bootstrap {
	return &Bootstrap{
		Server: Server{
			HTTP: HTTP{Addr: DefaultAddr},
			CORS: CORS{AllowOrigin: "*"},
		},
		LLM: LLM{
			BaseURL:     DefaultLLMBaseURL,
			Model:       DefaultLLMModel,
			Temperature: 0.3,
		},
		YouTube: YouTube{
			BaseURL:   DefaultYouTubeBaseURL,
			WatchURL:  DefaultWatchURL,
			Languages: []string{"en"},
		},
		Log: Log{Level: "info"},
	}
}

// HasLLMKey 是否配置了大模型 API Key
func (b *Bootstrap) HasLLMKey() bool {
	return b.LLM.APIKey != ""
}

// HasYouTubeKey 是否配置了 YouTube API Key
func (b *Bootstrap) HasYouTubeKey() bool {
	return b.YouTube.APIKey != ""
}

// LoadConfig 加载配置：默认值 -> 配置文件(可选) -> .env -> 环境变量
func LoadConfig(path string) (*Bootstrap, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// .env 不存在时忽略，已存在的环境变量不会被覆盖
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if _, err := cfg.Server.HTTP.RequestTimeout(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RequestTimeout 解析请求超时，未配置时返回 0 (不限制)
func (h HTTP) RequestTimeout() (time.Duration, error) {
	if h.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(h.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid server.http.timeout %q: %w", h.Timeout, err)
	}
	return d, nil
}

func applyEnv(cfg *Bootstrap, lookup func(string) (string, bool)) error {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	set("GROQ_API_KEY", &cfg.LLM.APIKey)
	set("GROQ_BASE_URL", &cfg.LLM.BaseURL)
	set("GROQ_MODEL", &cfg.LLM.Model)
	set("YOUTUBE_API_KEY", &cfg.YouTube.APIKey)
	set("LOG_LEVEL", &cfg.Log.Level)
	set("LOG_FILE", &cfg.Log.File)
	set("CORS_ORIGIN", &cfg.Server.CORS.AllowOrigin)

	if port, ok := lookup("PORT"); ok && port != "" {
		if strings.Contains(port, ":") {
			cfg.Server.HTTP.Addr = port
		} else {
			if _, err := strconv.Atoi(port); err != nil {
				return fmt.Errorf("invalid PORT %q: %w", port, err)
			}
			cfg.Server.HTTP.Addr = ":" + port
		}
	}
	return nil
}
