package main

import (
	"fmt"
	"os"

	"github.com/brizzai/apidoc-filter/internal/docs"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newFilterCmd() *cobra.Command {
	var (
		flags    sourceFlags
		format   string
		openAPI3 bool
		output   string
	)

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Write one filtered document",
		Example: `  apidoc-filter filter --swagger-file swagger.json --path /pet --tags pet
  apidoc-filter filter --swagger-file swagger.json --path /store --format yaml --output store.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := docs.ParseFormat(format)
			if err != nil {
				return err
			}
			engine, err := flags.engine()
			if err != nil {
				return err
			}
			doc, idx, err := flags.load(cmd.Context(), true)
			if err != nil {
				return err
			}

			res, err := engine.Filter(flags.request(), doc, idx)
			if err != nil {
				return err
			}
			if res.Empty {
				return fmt.Errorf("no path matches %q with tags %q", flags.path, flags.tags)
			}

			data, err := docs.Encode(res.Document, f, openAPI3)
			if err != nil {
				return err
			}
			if output == "" {
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}

			pterm.Success.Printfln("Wrote %s", output)
			pterm.Info.Printfln("Kept %s paths and %s definitions.",
				pterm.LightGreen(res.Document.Paths.Len()),
				pterm.LightGreen(res.Document.Definitions.Len()))
			if len(res.Synthesized) > 0 {
				pterm.Info.Printfln("Write variants: %v", res.Synthesized)
			}
			if res.RemovedParameters > 0 {
				pterm.Info.Printfln("Hidden parameters removed: %d", res.RemovedParameters)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&format, "format", "json", "Output format (json|yaml)")
	cmd.Flags().BoolVar(&openAPI3, "openapi3", false, "Convert the result to OpenAPI 3")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, stdout when empty")
	return cmd
}
