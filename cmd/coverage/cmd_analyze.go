package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/spf13/cobra"

	"github.com/iWorld-y/topic_coverage/internal/service"
)

var analyzeFlags struct {
	url       string
	topic     string
	subtopics []string
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run one coverage analysis and print the JSON result",
	RunE:  runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeFlags.url, "url", "", "YouTube video URL (required)")
	f.StringVar(&analyzeFlags.topic, "topic", "", "Main topic (required)")
	f.StringArrayVarP(&analyzeFlags.subtopics, "subtopic", "s", nil, "Subtopic to check, repeatable (required)")
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	svc, err := newCoverageService(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	reply, err := svc.Analyze(cmd.Context(), &service.AnalyzeRequest{
		YoutubeURL:      analyzeFlags.url,
		Topic:           analyzeFlags.topic,
		CustomSubtopics: analyzeFlags.subtopics,
	})
	if err != nil {
		return fmt.Errorf("analyze failed: %s", errors.FromError(err).Message)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(reply)
}
