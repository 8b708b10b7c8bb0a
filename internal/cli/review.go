package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/listenupapp/bookpage/internal/categories"
	"github.com/listenupapp/bookpage/internal/domain"
	"github.com/listenupapp/bookpage/internal/service"
)

type reviewOptions struct {
	selects   []string
	ignore    []string
	deselect  []string
	mappings  []string
	accept    bool
	threshold string
}

func newReviewCmd(root *rootOptions) *cobra.Command {
	opts := &reviewOptions{}

	cmd := &cobra.Command{
		Use:   "review <records-file>",
		Short: "Reconcile one set of provider records",
		Long: `Reads the primary record plus optional audiobook and edition records from a
JSON or YAML file ("-" reads JSON from stdin), applies the requested choices and
prints the per-field selections, the normalized categories and the record that
would be published.

Field choices made with --select are remembered as defaults for later reviews.
Tags passed to --ignore and --map update the shared category rules.`,
		Example: `  bookpage review book.yaml
  bookpage review book.json --select publisher=edition:1 --ignore Fiction -o yaml
  bookpage review book.json --map "Sci-Fi=Science Fiction" --deselect History`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReview(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().StringArrayVar(&opts.selects, "select", nil, "Choose a source for a field (field=source, repeatable)")
	cmd.Flags().StringArrayVar(&opts.ignore, "ignore", nil, "Ignore a category tag (repeatable)")
	cmd.Flags().StringArrayVar(&opts.deselect, "deselect", nil, "Leave a category out of this record only (repeatable)")
	cmd.Flags().StringArrayVar(&opts.mappings, "map", nil, "Map one category onto another (from=to, repeatable)")
	cmd.Flags().BoolVar(&opts.accept, "accept-suggestions", false, "Accept every similar-tag merge suggestion")
	cmd.Flags().StringVar(&opts.threshold, "similarity-threshold", "", "Tag similarity threshold (default: 0.8)")

	return cmd
}

func runReview(cmd *cobra.Command, root *rootOptions, opts *reviewOptions, path string) error {
	ctx := cmd.Context()

	records, err := readRecords(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	var extra []string
	if opts.threshold != "" {
		extra = append(extra, "-similarity-threshold", opts.threshold)
	}
	e, err := root.open(cmd, extra...)
	if err != nil {
		return err
	}
	defer e.Close()

	reviews := service.NewReviewService(e.store, categories.New(e.cfg.Review.SimilarityThreshold), e.cfg.Review.SessionTTL, e.log.Logger)

	view, err := reviews.Create(ctx, records)
	if err != nil {
		return err
	}
	id := view.ID
	log := e.log.WithReview(id)

	for _, raw := range opts.selects {
		field, source, err := parseSelect(raw)
		if err != nil {
			return err
		}
		if _, err := reviews.SelectSource(ctx, id, field, source); err != nil {
			return fmt.Errorf("select %s: %w", raw, err)
		}
	}

	for _, raw := range opts.mappings {
		from, to, ok := strings.Cut(raw, "=")
		if !ok {
			return fmt.Errorf("invalid mapping %q (expected from=to)", raw)
		}
		if _, err := reviews.MapCategory(ctx, id, from, to); err != nil {
			return fmt.Errorf("map %s: %w", raw, err)
		}
	}

	for _, tag := range opts.ignore {
		if _, err := reviews.IgnoreCategory(ctx, id, tag); err != nil {
			return fmt.Errorf("ignore %s: %w", tag, err)
		}
	}

	if opts.accept {
		if err := acceptAll(ctx, reviews, id); err != nil {
			return err
		}
	}

	for _, tag := range opts.deselect {
		if _, err := reviews.SetCategorySelected(ctx, id, tag, false); err != nil {
			return fmt.Errorf("deselect %s: %w", tag, err)
		}
	}

	view, err = reviews.Get(ctx, id)
	if err != nil {
		return err
	}
	record, err := reviews.Finalize(ctx, id)
	if err != nil {
		return err
	}
	log.Debug("review finalized",
		"user_choices", len(opts.selects),
		"categories", len(record.Categories),
	)

	return writeOutput(cmd.OutOrStdout(), root.output, newReviewReport(view, record))
}

// acceptAll folds the second tag of each suggestion into the first until no
// suggestions remain. Each merge can change the remaining suggestions.
func acceptAll(ctx context.Context, reviews *service.ReviewService, id string) error {
	view, err := reviews.Get(ctx, id)
	if err != nil {
		return err
	}
	for range len(view.Categories) {
		if len(view.Suggestions) == 0 {
			break
		}
		pair := view.Suggestions[0]
		if view, err = reviews.AcceptSuggestion(ctx, id, pair.B, pair.A); err != nil {
			return fmt.Errorf("accept %s -> %s: %w", pair.B, pair.A, err)
		}
	}
	return nil
}

func parseSelect(raw string) (domain.Field, domain.SourceID, error) {
	name, src, ok := strings.Cut(raw, "=")
	if !ok {
		return "", domain.SourceID{}, fmt.Errorf("invalid selection %q (expected field=source)", raw)
	}
	field, err := domain.ParseField(strings.TrimSpace(name))
	if err != nil {
		return "", domain.SourceID{}, err
	}
	source, err := domain.ParseSourceID(src)
	if err != nil {
		return "", domain.SourceID{}, err
	}
	return field, source, nil
}

// readRecords decodes YAML for .yaml/.yml files and JSON otherwise.
func readRecords(stdin io.Reader, path string) (service.ReviewRecords, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return service.ReviewRecords{}, fmt.Errorf("read records: %w", err)
	}

	var records service.ReviewRecords
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &records)
	default:
		err = json.Unmarshal(data, &records)
	}
	if err != nil {
		return service.ReviewRecords{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return records, nil
}
