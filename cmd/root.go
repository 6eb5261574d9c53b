package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "santa",
	Short: "AI-powered gift recommendation assistant",
	Long: `Secret Santa helps you find gifts through a natural conversation.
Describe the person and your budget; it searches a live product
catalog, checks current prices, and explains why each suggestion
fits. It integrates with AI agents via MCP for direct catalog access.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".santa.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
