package cli

import (
	"context"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/listenupapp/bookpage/internal/service"
)

type rulesReport struct {
	Mappings []mappingEntry `json:"mappings" yaml:"mappings"`
	Ignored  []string       `json:"ignored" yaml:"ignored"`
}

type mappingEntry struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

func newTagsCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Manage category mappings and ignored tags",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List category mappings and ignored tags",
		Args:  cobra.NoArgs,
		RunE:  rulesCommand(root, nil),
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "map <from> <to>",
		Short:   "Rewrite one category as another in every review",
		Example: `  bookpage tags map "sci-fi" "Science Fiction"`,
		Args:    cobra.ExactArgs(2),
		RunE: rulesCommand(root, func(ctx context.Context, svc *service.SettingsService, args []string) error {
			_, err := svc.MapTag(ctx, args[0], args[1])
			return err
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "unmap <tag>",
		Short: "Remove the mapping of a category",
		Args:  cobra.ExactArgs(1),
		RunE: rulesCommand(root, func(ctx context.Context, svc *service.SettingsService, args []string) error {
			return svc.UnmapTag(ctx, args[0])
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "ignore <tag>",
		Short: "Hide a category from every review",
		Args:  cobra.ExactArgs(1),
		RunE: rulesCommand(root, func(ctx context.Context, svc *service.SettingsService, args []string) error {
			return svc.IgnoreTag(ctx, args[0])
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "unignore <tag>",
		Short: "Stop ignoring a category",
		Args:  cobra.ExactArgs(1),
		RunE: rulesCommand(root, func(ctx context.Context, svc *service.SettingsService, args []string) error {
			return svc.UnignoreTag(ctx, args[0])
		}),
	})

	return cmd
}

// rulesCommand runs mutate (when set) and then prints the current rules.
func rulesCommand(root *rootOptions, mutate func(context.Context, *service.SettingsService, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e, err := root.open(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		svc := e.settings()
		if mutate != nil {
			if err := mutate(cmd.Context(), svc, args); err != nil {
				return err
			}
		}

		rules, err := svc.CategoryRules(cmd.Context())
		if err != nil {
			return err
		}

		report := rulesReport{
			Mappings: make([]mappingEntry, 0, len(rules.Mappings)),
			Ignored:  slices.Sorted(maps.Keys(rules.Ignored)),
		}
		if report.Ignored == nil {
			report.Ignored = []string{}
		}
		for _, from := range slices.Sorted(maps.Keys(rules.Mappings)) {
			report.Mappings = append(report.Mappings, mappingEntry{From: from, To: rules.Mappings[from]})
		}
		return writeOutput(cmd.OutOrStdout(), root.output, report)
	}
}
