// ABOUTME: Root command for the jobboard CLI
// ABOUTME: Handles global flags and API URL resolution

package cmd

import (
	"github.com/markalston/jobboard/internal/config"
	"github.com/spf13/cobra"
)

var (
	apiURL     string
	cfgFile    string
	jsonOutput bool
	verbose    bool
	noColor    bool
	noPersist  bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "jobboard",
	Short: "Terminal client for the job board",
	Long: `jobboard is a terminal client for the job board REST API.

Job posters publish postings and review applicants; job applicants browse
postings, apply and track their applications. Run 'jobboard tui' for the
interactive client.

Environment Variables:
  JOBBOARD_API_URL     Backend API URL (default: http://localhost:5000/api)
  JOBBOARD_CONFIG_DIR  Directory holding the saved login and debug.log
  JOBBOARD_LOG_LEVEL   debug, info, warn or error`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides JOBBOARD_API_URL)")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ./config.yaml or ~/.config/jobboard/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noPersist, "no-persist", false, "Keep the login in memory for this run only")
}

// GetAPIURL returns the API URL from flag, config, or default (in priority order)
func GetAPIURL(cfg *config.Config) string {
	if apiURL != "" {
		return apiURL
	}
	if cfg != nil && cfg.APIURL != "" {
		return cfg.APIURL
	}
	return config.DefaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}
