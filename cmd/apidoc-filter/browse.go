package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/brizzai/apidoc-filter/internal/parser"
	"github.com/brizzai/apidoc-filter/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newBrowseCmd() *cobra.Command {
	var (
		flags    sourceFlags
		docsPath string
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse a filtered document and edit its adjustments",
		Long: `browse filters the document like the filter command and lists the remaining
operations. Operations can be dropped from the route selection and their
descriptions edited; the result is exported as an adjustments file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer func() {
				if r := recover(); r != nil {
					pterm.Error.Printf("\nCaught panic: %v\n", r)
					pterm.Error.Printf("%s\n", debug.Stack())
					os.Exit(2)
				}
			}()

			engine, err := flags.engine()
			if err != nil {
				return err
			}
			// the adjustments are edited here, not applied
			doc, idx, err := flags.load(cmd.Context(), false)
			if err != nil {
				return err
			}
			adjuster := parser.NewAdjuster()
			if err := adjuster.Load(flags.adjustmentsFile); err != nil {
				return fmt.Errorf("failed to load adjustments file: %w", err)
			}

			res, err := engine.Filter(flags.request(), doc, idx)
			if err != nil {
				return err
			}
			items := tui.BuildItems(doc, res, adjuster)
			if len(items) == 0 {
				return fmt.Errorf("no operation matches %q with tags %q", flags.path, flags.tags)
			}

			summary := tui.Summary{
				Request:     fmt.Sprintf("path=%q tags=%q", flags.path, flags.tags),
				Definitions: res.Document.Definitions.Len(),
				Synthesized: res.Synthesized,
			}
			if doc.Info != nil {
				summary.Title = doc.Info.Title
			}

			p := tea.NewProgram(tui.NewAppModel(items, summary, docsPath), tea.WithAltScreen())
			m, err := p.Run()
			if err != nil {
				return fmt.Errorf("error running program: %w", err)
			}

			// Only display summary if the user reached the export page
			finalModel := m.(tui.AppModel)
			if finalModel.IsFinished() {
				kept := 0
				for _, op := range finalModel.GetOperationUpdates() {
					if !op.IsRemoved {
						kept++
					}
				}
				pterm.Info.Printfln("Processing complete. Kept %s operations out of %s.",
					pterm.LightGreen(kept),
					pterm.White(len(items)))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&docsPath, "docs-path", "/v2/api-docs", "Docs endpoint linked from the detail page")
	return cmd
}
