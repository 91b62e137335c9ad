package commands

import (
	"github.com/spf13/cobra"

	"github.com/audiomesh/trackprint/features/config"
	"github.com/audiomesh/trackprint/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "trackprint",
	Short: "Audio feature extraction and embedding toolkit",
	Long: `trackprint - extract global audio features and fixed-length
embedding vectors for similarity search.

Examples:
  # Extract features and an embedding from a track
  trackprint extract --max-duration 150 track.mp3

  # Include a regrouped feedback object in the output
  trackprint extract --max-duration 150 --feedback eq,energy,rhythm track.mp3

  # Compare two tracks
  trackprint compare --metric cosine a.mp3 b.mp3`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logging.SetLevel(logging.DebugLevel)
		}
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML extraction config")
}

// loadExtractionConfig resolves the analysis configuration from the
// --config flag or defaults
func loadExtractionConfig() (*config.ExtractionConfig, error) {
	if configPath == "" {
		return config.DefaultExtractionConfig(), nil
	}
	return config.LoadFile(configPath)
}
