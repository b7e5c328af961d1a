package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/noah-isme/portfolio-api/internal/dto"
	"github.com/noah-isme/portfolio-api/pkg/client"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "Manage courses",
}

var lecturesCmd = &cobra.Command{
	Use:   "lectures",
	Short: "Manage the lectures of a course (addressed by index)",
}

type courseValues struct {
	req   dto.CreateCourseRequest
	cover *client.File
	pdfs  []client.File
}

func listCourses(cmd *cobra.Command) func(ctx context.Context) error {
	return printer(cmd.OutOrStdout(), newClient().Courses)
}

func stringList(cmd *cobra.Command, name string) (*[]string, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	values, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		return nil, err
	}
	return &values, nil
}

func init() {
	list := &cobra.Command{
		Use:   "list",
		Short: "List courses with their lectures",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listCourses(cmd)(cmd.Context())
		},
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Create a course",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var v courseValues
			v.req.CourseCode, _ = cmd.Flags().GetString("code")
			v.req.CourseName, _ = cmd.Flags().GetString("name")
			v.req.Description, _ = cmd.Flags().GetString("description")
			v.req.Venue, _ = cmd.Flags().GetString("venue")
			v.req.Prerequisites, _ = cmd.Flags().GetStringSlice("prerequisite")
			v.req.References, _ = cmd.Flags().GetStringSlice("reference")
			v.req.Resources, _ = cmd.Flags().GetStringSlice("resource")
			if raw, _ := cmd.Flags().GetString("lectures"); raw != "" {
				if err := json.Unmarshal([]byte(raw), &v.req.Lectures); err != nil {
					return fmt.Errorf("--lectures must be a JSON array: %w", err)
				}
			}

			coverPath, _ := cmd.Flags().GetString("cover")
			pdfPaths, _ := cmd.Flags().GetStringSlice("pdf")
			paths := pdfPaths
			if coverPath != "" {
				paths = append([]string{coverPath}, pdfPaths...)
			}
			files, closeFiles, err := openFiles(paths)
			if err != nil {
				return err
			}
			defer closeFiles()
			if coverPath != "" {
				v.cover, files = &files[0], files[1:]
			}
			v.pdfs = files

			c := newClient()
			return runForm(cmd.Context(), "", v, func(ctx context.Context, _ string, v courseValues) error {
				_, err := c.CreateCourse(ctx, v.req, v.cover, v.pdfs)
				return err
			}, listCourses(cmd))
		},
	}
	add.Flags().String("code", "", "Course code")
	add.Flags().String("name", "", "Course name")
	add.Flags().String("description", "", "Description")
	add.Flags().String("venue", "", "Venue")
	add.Flags().StringSlice("prerequisite", nil, "Prerequisite (repeatable)")
	add.Flags().StringSlice("reference", nil, "Reference (repeatable)")
	add.Flags().StringSlice("resource", nil, "Resource (repeatable)")
	add.Flags().String("lectures", "", `Lectures as JSON, e.g. [{"name":"Week 1"}]`)
	add.Flags().String("cover", "", "Cover image file")
	add.Flags().StringSlice("pdf", nil, "Lecture PDF, matched to --lectures by order (repeatable)")

	update := &cobra.Command{
		Use:   "update <id>",
		Args:  cobra.ExactArgs(1),
		Short: "Change fields of a course",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dto.UpdateCourseRequest{
				CourseCode:  optionalFlag(cmd, "code"),
				CourseName:  optionalFlag(cmd, "name"),
				Description: optionalFlag(cmd, "description"),
				Venue:       optionalFlag(cmd, "venue"),
			}
			var err error
			if req.Prerequisites, err = stringList(cmd, "prerequisite"); err != nil {
				return err
			}
			if req.References, err = stringList(cmd, "reference"); err != nil {
				return err
			}
			if req.Resources, err = stringList(cmd, "resource"); err != nil {
				return err
			}

			var cover *client.File
			if coverPath, _ := cmd.Flags().GetString("cover"); coverPath != "" {
				files, closeFiles, err := openFiles([]string{coverPath})
				if err != nil {
					return err
				}
				defer closeFiles()
				cover = &files[0]
			}

			c := newClient()
			return runForm(cmd.Context(), args[0], req, func(ctx context.Context, id string, v dto.UpdateCourseRequest) error {
				_, err := c.UpdateCourse(ctx, id, v, cover)
				return err
			}, listCourses(cmd))
		},
	}
	update.Flags().String("code", "", "Course code")
	update.Flags().String("name", "", "Course name")
	update.Flags().String("description", "", "Description")
	update.Flags().String("venue", "", "Venue")
	update.Flags().StringSlice("prerequisite", nil, "Replace prerequisites")
	update.Flags().StringSlice("reference", nil, "Replace references")
	update.Flags().StringSlice("resource", nil, "Replace resources")
	update.Flags().String("cover", "", "Replacement cover image")

	remove := &cobra.Command{
		Use:   "delete <id>",
		Args:  cobra.ExactArgs(1),
		Short: "Delete a course and all its files",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()
			return runDelete(cmd, "course", args[0], c.DeleteCourse, listCourses(cmd))
		},
	}

	coursesCmd.AddCommand(list, add, update, remove)

	addLecture := &cobra.Command{
		Use:   "add <course-id>",
		Args:  cobra.ExactArgs(1),
		Short: "Append a lecture",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dto.CreateLectureRequest{Video: optionalFlag(cmd, "video")}
			req.Name, _ = cmd.Flags().GetString("name")
			pdf, closeFiles, err := optionalFile(cmd, "pdf")
			if err != nil {
				return err
			}
			defer closeFiles()
			c := newClient()
			return runForm(cmd.Context(), args[0], req, func(ctx context.Context, courseID string, v dto.CreateLectureRequest) error {
				_, err := c.AddLecture(ctx, courseID, v, pdf)
				return err
			}, listCourses(cmd))
		},
	}
	addLecture.Flags().String("name", "", "Lecture name")
	addLecture.Flags().String("video", "", "Video link")
	addLecture.Flags().String("pdf", "", "Lecture PDF")

	updateLecture := &cobra.Command{
		Use:   "update <course-id> <index>",
		Args:  cobra.ExactArgs(2),
		Short: "Change the lecture at index",
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("index must be a number: %w", err)
			}
			req := dto.UpdateLectureRequest{
				Name:      optionalFlag(cmd, "name"),
				Video:     optionalFlag(cmd, "video"),
				LectureID: optionalFlag(cmd, "lecture-id"),
			}
			pdf, closeFiles, err := optionalFile(cmd, "pdf")
			if err != nil {
				return err
			}
			defer closeFiles()
			c := newClient()
			return runForm(cmd.Context(), args[0], req, func(ctx context.Context, courseID string, v dto.UpdateLectureRequest) error {
				_, err := c.UpdateLecture(ctx, courseID, index, v, pdf)
				return err
			}, listCourses(cmd))
		},
	}
	updateLecture.Flags().String("name", "", "Lecture name")
	updateLecture.Flags().String("video", "", "Video link")
	updateLecture.Flags().String("pdf", "", "Replacement PDF")
	updateLecture.Flags().String("lecture-id", "", "Fail if the lecture at index has a different id")

	deleteLecture := &cobra.Command{
		Use:   "delete <course-id> <index>",
		Args:  cobra.ExactArgs(2),
		Short: "Delete the lecture at index; later lectures shift down",
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("index must be a number: %w", err)
			}
			lectureID, _ := cmd.Flags().GetString("lecture-id")
			c := newClient()
			return runDelete(cmd, "lecture "+args[1]+" of course", args[0], func(ctx context.Context, courseID string) error {
				return c.DeleteLecture(ctx, courseID, index, lectureID)
			}, listCourses(cmd))
		},
	}
	deleteLecture.Flags().String("lecture-id", "", "Fail if the lecture at index has a different id")

	lecturesCmd.AddCommand(addLecture, updateLecture, deleteLecture)
}

func optionalFile(cmd *cobra.Command, name string) (*client.File, func(), error) {
	path, _ := cmd.Flags().GetString(name)
	if path == "" {
		return nil, func() {}, nil
	}
	files, closeFiles, err := openFiles([]string{path})
	if err != nil {
		return nil, func() {}, err
	}
	return &files[0], closeFiles, nil
}
