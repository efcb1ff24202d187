package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/akozyreva/somnus/internal/repository"
)

func newExportCmd(app *App) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export <user-id>",
		Short: "Export a user's sleep records as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var userID int64
			if _, err := fmt.Sscanf(args[0], "%d", &userID); err != nil {
				return fmt.Errorf("parsing user id %q: %w", args[0], err)
			}

			data, err := app.Data.ExportCSV(context.Background(), userID)
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("user %d has no sleep records", userID)
			}
			if err != nil {
				return err
			}

			if outPath == "" {
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", outPath, err)
			}
			fmt.Printf("Wrote %d bytes to %s\n", len(data), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write CSV to a file instead of stdout")

	return cmd
}
