package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/noah-isme/portfolio-api/internal/dto"
	"github.com/noah-isme/portfolio-api/internal/models"
)

var publicationsCmd = &cobra.Command{
	Use:     "publications",
	Aliases: []string{"pub"},
	Short:   "Manage publications (journals, conferences, thesis, patents)",
}

func init() {
	list := &cobra.Command{
		Use:   "list <section>",
		Args:  cobra.ExactArgs(1),
		Short: "List a section",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := newClient().Publications(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), items)
		},
	}

	add := &cobra.Command{
		Use:   "add <section>",
		Args:  cobra.ExactArgs(1),
		Short: "Add a publication",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()
			section := args[0]
			req := dto.CreatePublicationRequest{Link: optionalFlag(cmd, "link")}
			req.Heading, _ = cmd.Flags().GetString("heading")
			req.Description, _ = cmd.Flags().GetString("description")
			return runForm(cmd.Context(), "", req, func(ctx context.Context, _ string, v dto.CreatePublicationRequest) error {
				_, err := c.CreatePublication(ctx, section, v)
				return err
			}, printer(cmd.OutOrStdout(), func(ctx context.Context) ([]models.Publication, error) {
				return c.Publications(ctx, section)
			}))
		},
	}
	add.Flags().String("heading", "", "Heading")
	add.Flags().String("description", "", "Description")
	add.Flags().String("link", "", "Link")

	update := &cobra.Command{
		Use:   "update <section> <id>",
		Args:  cobra.ExactArgs(2),
		Short: "Change fields of a publication",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()
			section := args[0]
			req := dto.UpdatePublicationRequest{
				Heading:     optionalFlag(cmd, "heading"),
				Description: optionalFlag(cmd, "description"),
				Link:        optionalFlag(cmd, "link"),
			}
			return runForm(cmd.Context(), args[1], req, func(ctx context.Context, id string, v dto.UpdatePublicationRequest) error {
				_, err := c.UpdatePublication(ctx, section, id, v)
				return err
			}, printer(cmd.OutOrStdout(), func(ctx context.Context) ([]models.Publication, error) {
				return c.Publications(ctx, section)
			}))
		},
	}
	update.Flags().String("heading", "", "Heading")
	update.Flags().String("description", "", "Description")
	update.Flags().String("link", "", "Link")

	remove := &cobra.Command{
		Use:   "delete <section> <id>",
		Args:  cobra.ExactArgs(2),
		Short: "Delete a publication",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()
			section := args[0]
			return runDelete(cmd, "publication", args[1], func(ctx context.Context, id string) error {
				return c.DeletePublication(ctx, section, id)
			}, printer(cmd.OutOrStdout(), func(ctx context.Context) ([]models.Publication, error) {
				return c.Publications(ctx, section)
			}))
		},
	}

	export := &cobra.Command{
		Use:   "export <section> <file>",
		Args:  cobra.ExactArgs(2),
		Short: "Download a section as csv or pdf",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			data, err := newClient().ExportPublications(cmd.Context(), args[0], format)
			if err != nil {
				return err
			}
			return os.WriteFile(args[1], data, 0o644)
		},
	}
	export.Flags().String("format", "csv", "csv or pdf")

	publicationsCmd.AddCommand(list, add, update, remove, export)
}
