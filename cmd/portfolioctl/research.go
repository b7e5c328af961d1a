package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/portfolio-api/internal/dto"
)

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Manage research interests and projects",
}

func init() {
	interests := &cobra.Command{
		Use:   "interests",
		Short: "Show research interests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := newClient().Interests(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), doc)
		},
	}

	setInterests := &cobra.Command{
		Use:   "set-interests",
		Short: "Replace research interests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req dto.SaveInterestsRequest
			req.Heading, _ = cmd.Flags().GetString("heading")
			req.Paragraph, _ = cmd.Flags().GetString("paragraph")
			raw, _ := cmd.Flags().GetString("items")
			if err := json.Unmarshal([]byte(raw), &req.Interests); err != nil {
				return fmt.Errorf(`--items must be a JSON array like [{"heading":"A","description":"B"}]: %w`, err)
			}
			c := newClient()
			return runForm(cmd.Context(), "", req, func(ctx context.Context, _ string, v dto.SaveInterestsRequest) error {
				_, err := c.SaveInterests(ctx, v)
				return err
			}, func(ctx context.Context) error {
				doc, err := c.Interests(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), doc)
			})
		},
	}
	setInterests.Flags().String("heading", "", "Heading")
	setInterests.Flags().String("paragraph", "", "Intro paragraph")
	setInterests.Flags().String("items", "[]", "Interest items as JSON")

	projects := &cobra.Command{
		Use:   "projects",
		Short: "List research projects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printer(cmd.OutOrStdout(), newClient().Projects)(cmd.Context())
		},
	}

	addProject := &cobra.Command{
		Use:   "add-project",
		Short: "Create a research project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req dto.CreateProjectRequest
			req.Heading, _ = cmd.Flags().GetString("heading")
			req.Description, _ = cmd.Flags().GetString("description")
			paths, _ := cmd.Flags().GetStringSlice("image")
			images, closeFiles, err := openFiles(paths)
			if err != nil {
				return err
			}
			defer closeFiles()
			c := newClient()
			return runForm(cmd.Context(), "", req, func(ctx context.Context, _ string, v dto.CreateProjectRequest) error {
				_, err := c.CreateProject(ctx, v, images)
				return err
			}, printer(cmd.OutOrStdout(), c.Projects))
		},
	}
	addProject.Flags().String("heading", "", "Heading")
	addProject.Flags().String("description", "", "Description")
	addProject.Flags().StringSlice("image", nil, "Image file (repeatable)")

	updateProject := &cobra.Command{
		Use:   "update-project <id>",
		Args:  cobra.ExactArgs(1),
		Short: "Edit a project, removing and appending images",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dto.UpdateProjectRequest{
				Heading:     optionalFlag(cmd, "heading"),
				Description: optionalFlag(cmd, "description"),
			}
			req.ImagesToDelete, _ = cmd.Flags().GetStringSlice("remove-image")
			paths, _ := cmd.Flags().GetStringSlice("image")
			images, closeFiles, err := openFiles(paths)
			if err != nil {
				return err
			}
			defer closeFiles()
			c := newClient()
			return runForm(cmd.Context(), args[0], req, func(ctx context.Context, id string, v dto.UpdateProjectRequest) error {
				_, err := c.UpdateProject(ctx, id, v, images)
				return err
			}, printer(cmd.OutOrStdout(), c.Projects))
		},
	}
	updateProject.Flags().String("heading", "", "Heading")
	updateProject.Flags().String("description", "", "Description")
	updateProject.Flags().StringSlice("image", nil, "Image to append (repeatable)")
	updateProject.Flags().StringSlice("remove-image", nil, "Storage path of an image to remove (repeatable)")

	deleteProject := &cobra.Command{
		Use:   "delete-project <id>",
		Args:  cobra.ExactArgs(1),
		Short: "Delete a project and its images",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()
			return runDelete(cmd, "project", args[0], c.DeleteProject, printer(cmd.OutOrStdout(), c.Projects))
		},
	}

	researchCmd.AddCommand(interests, setInterests, projects, addProject, updateProject, deleteProject)
}
