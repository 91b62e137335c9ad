package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/audiomesh/trackprint/features"
)

var (
	extractMaxDuration float64
	extractFeedback    string
	extractExclude     string
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract features and an embedding vector from an audio file",
	Long: `Extract decodes an audio file, separates harmonic and percussive
content, computes the global feature record, and prints it as JSON
together with the embedding vector.

The --feedback flag adds a regrouped view of selected feature
categories (eq, energy, rhythm) to the output.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().Float64Var(&extractMaxDuration, "max-duration", 150, "analyze at most this many seconds of audio")
	extractCmd.Flags().StringVar(&extractFeedback, "feedback", "", "comma-separated feedback categories (eq,energy,rhythm)")
	extractCmd.Flags().StringVar(&extractExclude, "exclude", "", "comma-separated feature categories to drop from the record")
	rootCmd.AddCommand(extractCmd)
}

type extractOutput struct {
	*features.Extraction
	Feedback features.FeedbackObject `json:"feedback,omitempty"`
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadExtractionConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	extractor := features.NewExtractor(cfg)

	extraction, err := extractor.Run(args[0], extractMaxDuration)
	if err != nil {
		return fmt.Errorf("extracting %s: %w", args[0], err)
	}

	if extractExclude != "" {
		extraction.Record = extraction.Record.Filter(splitList(extractExclude)...)
	}

	out := extractOutput{Extraction: extraction}
	if extractFeedback != "" {
		out.Feedback = features.BuildFeedback(extraction.Record, splitList(extractFeedback))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
