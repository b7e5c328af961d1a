// Command portfolioctl edits portfolio content from the terminal, mirroring
// the admin panel: every change goes through a form and deletes ask first.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/portfolio-api/internal/adminform"
	"github.com/noah-isme/portfolio-api/pkg/client"
)

var (
	baseURL   string
	token     string
	assumeYes bool
	timeout   time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "portfolioctl",
	Short:         "Manage portfolio content",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "api", envOr("PORTFOLIO_API", "http://localhost:3000/api"), "API base URL (or set PORTFOLIO_API)")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("PORTFOLIO_TOKEN"), "Bearer token (or set PORTFOLIO_TOKEN)")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Skip delete confirmation")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	rootCmd.AddCommand(loginCmd, logoutCmd, publicationsCmd, watchCmd, coursesCmd, lecturesCmd, researchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func newClient() *client.Client {
	return client.New(baseURL, client.WithToken(token), client.WithTimeout(timeout))
}

var loginCmd = &cobra.Command{
	Use:   "login <id-token>",
	Short: "Exchange a provider ID token and print the bearer token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tok, err := newClient().Login(cmd.Context(), args[0])
		if err != nil {
			return errors.New(adminform.Message(err))
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke the current session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := newClient().Logout(cmd.Context()); err != nil {
			return errors.New(adminform.Message(err))
		}
		fmt.Fprintln(cmd.OutOrStdout(), "logged out")
		return nil
	},
}

// printer returns a refetch callback writing the result of list as JSON.
func printer[T any](out io.Writer, list func(ctx context.Context) (T, error)) adminform.RefetchFunc {
	return func(ctx context.Context) error {
		items, err := list(ctx)
		if err != nil {
			return err
		}
		return printJSON(out, items)
	}
}

func printJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// runForm pushes values through an admin form so failures surface the same
// message the panel would show.
func runForm[T any](ctx context.Context, id string, values T, submit adminform.SubmitFunc[T], refetch adminform.RefetchFunc) error {
	form := adminform.NewForm(submit, refetch)
	if err := form.Open(id, values); err != nil {
		return err
	}
	if err := form.Submit(ctx); err != nil {
		if msg := form.Error(); msg != "" {
			return errors.New(msg)
		}
		return err
	}
	return nil
}

// runDelete asks for confirmation unless --yes was given.
func runDelete(cmd *cobra.Command, label string, id string, remove adminform.DeleteFunc, refetch adminform.RefetchFunc) error {
	d := adminform.NewDeleteConfirmation(remove, refetch)
	if err := d.Request(id); err != nil {
		return err
	}
	if !assumeYes {
		fmt.Fprintf(cmd.OutOrStdout(), "Delete %s %s? [y/N] ", label, id)
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			d.Cancel()
			fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
			return nil
		}
	}
	if err := d.Confirm(cmd.Context()); err != nil {
		if msg := d.Error(); msg != "" {
			return errors.New(msg)
		}
		return err
	}
	return nil
}

func openFiles(paths []string) ([]client.File, func(), error) {
	var files []client.File
	var handles []*os.File
	closeAll := func() {
		for _, h := range handles {
			_ = h.Close()
		}
	}
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		handles = append(handles, f)
		files = append(files, client.File{Name: baseName(p), Reader: f})
	}
	return files, closeAll, nil
}

func baseName(p string) string {
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		return p[i+1:]
	}
	return p
}

func optionalFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}
