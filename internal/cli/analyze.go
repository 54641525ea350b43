package cli

import (
	"context"
	"fmt"
	"strings"

	"casedesk/internal/bridge"
	"casedesk/internal/desktop"
	"casedesk/internal/logging"
	"casedesk/internal/model"
	"casedesk/internal/store"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const maxParallelAnalyses = 4

func newAnalyzeCmd(app *App) *cobra.Command {
	var caseName string

	cmd := &cobra.Command{
		Use:   "analyze <file>...",
		Short: "Upload files to a fresh desktop and print their AI analysis",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, closeAI, err := app.newService(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer func() { _ = closeAI() }()

			desk := desktop.New(store.New())
			if name := strings.TrimSpace(caseName); name != "" {
				if err := openNewCase(desk, name); err != nil {
					return writeErr(cmd, err)
				}
			}

			ups, err := bridge.ReadUploads(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			items, err := desk.AddUploads(ups)
			if err != nil {
				return writeErr(cmd, err)
			}
			ids := make([]string, 0, len(items))
			for _, it := range items {
				ids = append(ids, it.ID)
			}
			if err := analyzeAll(ctx, desk, svc, desk.BeginPendingAnalyses(ids)); err != nil {
				return writeErr(cmd, err)
			}

			out := make([]model.Item, 0, len(ids))
			for _, id := range ids {
				if it, ok := desk.Item(id); ok {
					out = append(out, it)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
	cmd.Flags().StringVar(&caseName, "case", "", "Upload into a new case-folder with this name")
	return cmd
}

func openNewCase(desk *desktop.Desktop, name string) error {
	c, err := desk.NewItem(model.ItemTypeSmartFolder, desktop.DropAnchor)
	if err != nil {
		return err
	}
	if _, err := desk.Rename(c.ID, name); err != nil {
		return err
	}
	if _, err := desk.Open(c.ID); err != nil {
		return err
	}
	return nil
}

// analyzeAll runs the requests in parallel. Results are applied by the calling goroutine
// only, so the desktop keeps a single writer.
func analyzeAll(ctx context.Context, desk *desktop.Desktop, svc *bridge.Service, reqs []bridge.AnalysisRequest) error {
	results := make(chan bridge.AnalysisResult, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelAnalyses)

	go func() {
		for _, req := range reqs {
			g.Go(func() error {
				results <- svc.Analyze(gctx, req)
				return nil
			})
		}
		_ = g.Wait()
		close(results)
	}()

	applied, failed := 0, 0
	for res := range results {
		if desk.ApplyAnalysis(res) {
			applied++
		}
		if res.Failed {
			failed++
		}
	}
	logging.For("cli").WithField("applied", applied).WithField("failed", failed).Info("analysis finished")
	if applied != len(reqs) {
		return fmt.Errorf("applied %d of %d analyses", applied, len(reqs))
	}
	return ctx.Err()
}
