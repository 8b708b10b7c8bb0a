package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/listenupapp/bookpage/internal/domain"
)

type defaultEntry struct {
	Field  string `json:"field" yaml:"field"`
	Source string `json:"source" yaml:"source"`
}

type defaultsReport struct {
	Fields                []defaultEntry `json:"fields" yaml:"fields"`
	PreferAudiobookCovers bool           `json:"prefer_audiobook_covers" yaml:"prefer_audiobook_covers"`
}

func newDefaultsCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Show or change remembered field sources",
	}

	cmd.AddCommand(newDefaultsListCmd(root))
	cmd.AddCommand(newDefaultsSetCmd(root))
	cmd.AddCommand(newDefaultsCoversCmd(root))

	return cmd
}

func newDefaultsListCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored field defaults and the covers preference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := root.open(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			return printDefaults(cmd, root, e)
		},
	}
}

func newDefaultsSetCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "set <field> <source>",
		Short:   "Remember a preferred source for a field",
		Example: "  bookpage defaults set publisher edition:1\n  bookpage defaults set release_date copyright",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := domain.ParseField(args[0])
			if err != nil {
				return err
			}
			source, err := domain.ParseSourceID(args[1])
			if err != nil {
				return err
			}

			e, err := root.open(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.settings().SetFieldDefault(cmd.Context(), field, source); err != nil {
				return err
			}
			return printDefaults(cmd, root, e)
		},
	}
}

func newDefaultsCoversCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "covers <true|false>",
		Short: "Prefer audiobook covers over print covers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefer, err := strconv.ParseBool(args[0])
			if err != nil {
				return fmt.Errorf("invalid covers preference %q: %w", args[0], err)
			}

			e, err := root.open(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.settings().SetPreferAudiobookCovers(cmd.Context(), prefer); err != nil {
				return err
			}
			return printDefaults(cmd, root, e)
		},
	}
}

func printDefaults(cmd *cobra.Command, root *rootOptions, e *env) error {
	svc := e.settings()

	defaults, err := svc.ListFieldDefaults(cmd.Context())
	if err != nil {
		return err
	}
	prefer, err := svc.PreferAudiobookCovers(cmd.Context())
	if err != nil {
		return err
	}

	report := defaultsReport{Fields: make([]defaultEntry, 0, len(defaults)), PreferAudiobookCovers: prefer}
	for _, d := range defaults {
		report.Fields = append(report.Fields, defaultEntry{Field: string(d.Field), Source: d.Source.String()})
	}
	return writeOutput(cmd.OutOrStdout(), root.output, report)
}
