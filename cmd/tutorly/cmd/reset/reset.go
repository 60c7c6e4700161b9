package reset

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jfbenitezz/Tutorly-Backend/internal/app"
	"github.com/jfbenitezz/Tutorly-Backend/internal/config"
)

var confirmed bool

func init() {
	Cmd.Flags().BoolVarP(&confirmed, "yes", "y", false, "confirm the wipe without prompting")
}

// Cmd represents the reset command
var Cmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every audio job and chat from the database",
	Long: `Delete every audio job and chat from the database

- Same operation as DELETE /api/v1/admin/reset, but runnable from the shell
- Requires --yes, there is no undo`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmed {
			return fmt.Errorf("refusing to wipe the database without --yes")
		}

		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v\n", err)
		}

		store, err := app.NewStore(cfg)
		if err != nil {
			log.Fatalf("Failed to open database: %v\n", err)
		}
		defer store.Close()

		ctx := context.Background()
		jobs, err := store.DeleteAll(ctx)
		if err != nil {
			return err
		}
		chats, err := store.DeleteAllChats(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("reset finished, deleted %d audio jobs and %d chats\n", jobs, chats)
		return nil
	},
}
