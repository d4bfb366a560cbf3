// coverage 分析 YouTube 视频对指定子主题的覆盖程度。
//
// Usage:
//
//	coverage serve   [-c config.yaml]
//	coverage analyze --url <youtube-url> --topic <topic> --subtopic <a> --subtopic <b>
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name 是服务的名称
	Name = "topic-coverage"
	// Version 是服务的版本号
	Version = "dev"
	// flagconf 是配置文件的路径
	flagconf string
)

var rootCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Estimate how well a YouTube video covers a list of subtopics",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagconf, "conf", "c", "", "config path, eg: -c configs/config.yaml")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.Version = Version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
