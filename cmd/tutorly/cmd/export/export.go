package export

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jfbenitezz/Tutorly-Backend/internal/app"
	"github.com/jfbenitezz/Tutorly-Backend/internal/app/export"
	"github.com/jfbenitezz/Tutorly-Backend/internal/config"
)

var ownerID string
var outputFilePath string

func init() {
	Cmd.Flags().StringVarP(&ownerID, "owner", "u", "", "set the owner whose jobs are exported")
	Cmd.Flags().StringVarP(&outputFilePath, "outputFilePath", "o", "", "set outputFilePath")

	Cmd.MarkFlagRequired("owner")
	Cmd.MarkFlagRequired("outputFilePath")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the specified user's audio jobs to excel",
	Long: `Export the specified user's audio jobs to excel

- Exports every job of the user including its transcription result`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v\n", err)
		}

		store, err := app.NewStore(cfg)
		if err != nil {
			log.Fatalf("Failed to open database: %v\n", err)
		}
		defer store.Close()

		jobs, err := store.ListByOwner(context.Background(), ownerID)
		if err != nil {
			log.Fatal(err)
		}

		if err := export.ToExcel(jobs, outputFilePath); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("export finished, exported file path: %v\n", outputFilePath)
	},
}
