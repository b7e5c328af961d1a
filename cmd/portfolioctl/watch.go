package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/noah-isme/portfolio-api/internal/dto"
	"github.com/noah-isme/portfolio-api/internal/models"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Manage watch-out-for items (competitions, journals, reads)",
}

func init() {
	lister := func(category string) func(ctx context.Context) ([]models.WatchItem, error) {
		return func(ctx context.Context) ([]models.WatchItem, error) {
			return newClient().WatchItems(ctx, category)
		}
	}

	list := &cobra.Command{
		Use:   "list <category>",
		Args:  cobra.ExactArgs(1),
		Short: "List a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printer(cmd.OutOrStdout(), lister(args[0]))(cmd.Context())
		},
	}

	add := &cobra.Command{
		Use:   "add <category>",
		Args:  cobra.ExactArgs(1),
		Short: "Add an item",
		RunE: func(cmd *cobra.Command, args []string) error {
			category := args[0]
			req := dto.CreateWatchItemRequest{Link: optionalFlag(cmd, "link")}
			req.Heading, _ = cmd.Flags().GetString("heading")
			return runForm(cmd.Context(), "", req, func(ctx context.Context, _ string, v dto.CreateWatchItemRequest) error {
				_, err := newClient().CreateWatchItem(ctx, category, v)
				return err
			}, printer(cmd.OutOrStdout(), lister(category)))
		},
	}
	add.Flags().String("heading", "", "Heading")
	add.Flags().String("link", "", "Link")

	update := &cobra.Command{
		Use:   "update <category> <id>",
		Args:  cobra.ExactArgs(2),
		Short: "Change fields of an item",
		RunE: func(cmd *cobra.Command, args []string) error {
			category := args[0]
			req := dto.UpdateWatchItemRequest{Heading: optionalFlag(cmd, "heading"), Link: optionalFlag(cmd, "link")}
			return runForm(cmd.Context(), args[1], req, func(ctx context.Context, id string, v dto.UpdateWatchItemRequest) error {
				_, err := newClient().UpdateWatchItem(ctx, category, id, v)
				return err
			}, printer(cmd.OutOrStdout(), lister(category)))
		},
	}
	update.Flags().String("heading", "", "Heading")
	update.Flags().String("link", "", "Link")

	remove := &cobra.Command{
		Use:   "delete <category> <id>",
		Args:  cobra.ExactArgs(2),
		Short: "Delete an item",
		RunE: func(cmd *cobra.Command, args []string) error {
			category := args[0]
			return runDelete(cmd, "item", args[1], func(ctx context.Context, id string) error {
				return newClient().DeleteWatchItem(ctx, category, id)
			}, printer(cmd.OutOrStdout(), lister(category)))
		},
	}

	watchCmd.AddCommand(list, add, update, remove)
}
