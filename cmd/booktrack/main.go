package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/booktrack/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "booktrack: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:           "booktrack",
		Short:         "Track the books you read",
		Long:          "booktrack lists, shows and adds books stored behind a JSON books API.\nRun without a subcommand to open the terminal UI.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file path (default ~/.config/booktrack/config.toml)")
	flags.StringVar(&opts.EnvFile, "env-file", "", "dotenv file with BOOKTRACK_* overrides (default .env)")
	flags.StringVar(&opts.BaseURL, "base-url", "", "books API base URL, overrides config and environment")
	flags.StringVar(&opts.PrefsPath, "prefs", "", "preferences file path (default ~/.config/booktrack/prefs.toml)")
	root.Flags().StringVar(&opts.Route, "route", "/", "route to open: /, /book/<id> or /addnew")

	root.AddCommand(
		newListCmd(&opts),
		newShowCmd(&opts),
		newAddCmd(&opts),
		newLogsCmd(&opts),
	)
	return root
}

func newListCmd(opts *app.Options) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List books, optionally filtered by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.List(cmd.Context(), *opts, cmd.OutOrStdout(), filter)
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "case-insensitive name filter")
	return cmd
}

func newShowCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Show(cmd.Context(), *opts, cmd.OutOrStdout(), args[0])
		},
	}
}

func newAddCmd(opts *app.Options) *cobra.Command {
	var in app.AddInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Add(cmd.Context(), *opts, cmd.OutOrStdout(), in)
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Name, "name", "", "title")
	f.StringVar(&in.Author, "author", "", "author")
	f.StringVar(&in.Genres, "genres", "", "comma-separated genres")
	f.BoolVar(&in.Completed, "completed", false, "mark the book as finished")
	f.StringVar(&in.Start, "start", "", "date started (YYYY-MM-DD)")
	f.StringVar(&in.End, "end", "", "date finished (YYYY-MM-DD)")
	f.StringVar(&in.Stars, "stars", "", "rating from 0 to 5")
	f.StringVar(&in.Img, "img", "", "cover image URL (placeholder when empty)")
	f.StringVar(&in.Description, "description", "", "short description")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newLogsCmd(opts *app.Options) *cobra.Command {
	var lines int
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the tail of the booktrack log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Logs(*opts, cmd.OutOrStdout(), lines)
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of lines (0 for all)")
	return cmd
}
