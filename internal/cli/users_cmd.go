package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akozyreva/somnus/internal/cli/formatter"
)

func newUsersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List registered users",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := app.Data.ListUsers(context.Background())
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatUsers(users))
			return nil
		},
	}
}
