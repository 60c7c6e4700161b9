package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jfbenitezz/Tutorly-Backend/cmd/tutorly/cmd/export"
	"github.com/jfbenitezz/Tutorly-Backend/cmd/tutorly/cmd/reset"
	"github.com/jfbenitezz/Tutorly-Backend/cmd/tutorly/cmd/serve"
	"github.com/jfbenitezz/Tutorly-Backend/cmd/tutorly/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tutorly",
	Short: "Backend for the Tutorly study assistant",
	Long: `Backend for the Tutorly study assistant.

- Accepts audio uploads and forwards them to the transcription service
- Tracks every job locally through its lifecycle
- Stores per-user chats alongside the transcripts`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(reset.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
