package main

import (
	"context"
	"os"

	"github.com/brizzai/apidoc-filter/internal/config"
	"github.com/brizzai/apidoc-filter/internal/descriptor"
	"github.com/brizzai/apidoc-filter/internal/filter"
	"github.com/brizzai/apidoc-filter/internal/listing"
	"github.com/brizzai/apidoc-filter/internal/logger"
	"github.com/brizzai/apidoc-filter/internal/parser"
	"github.com/brizzai/apidoc-filter/internal/requester"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func main() {
	Execute()
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "apidoc-filter",
	Short: "Serve Swagger documents narrowed to a path and a set of tags",
	Long: `apidoc-filter serves Swagger 2.0 documents filtered per request: a path or path
prefix and a tag list select the operations, and only the definitions and tags
they use are kept. Hidden parameters are dropped and update operations get
write variants of their models.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Place version check in PreRun to ensure flags are parsed first
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		versionFlag, _ := cmd.Flags().GetBool("version")
		if versionFlag {
			pterm.Info.Println(config.GetVersionInfo())
			os.Exit(0)
		}
	}
	rootCmd.Run = func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	}

	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("version", "v", false, "Show version information")
	rootCmd.AddCommand(newServeCmd(), newFilterCmd(), newBrowseCmd())
}

// sourceFlags are the document flags shared by the offline commands.
type sourceFlags struct {
	swaggerFile     string
	listingsFile    string
	adjustmentsFile string
	path            string
	tags            string
	listingMatch    string
	logLevel        string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.swaggerFile, "swagger-file", "", "Path or URL of the swagger document")
	cmd.Flags().StringVar(&f.listingsFile, "listings-file", "", "Path or URL of the listings index, derived from the document when empty")
	cmd.Flags().StringVar(&f.adjustmentsFile, "adjustments-file", "", "Path to the adjustments file")
	cmd.Flags().StringVar(&f.path, "path", "", "Exact path or path prefix to keep")
	cmd.Flags().StringVar(&f.tags, "tags", "", "Comma separated operation tags to keep")
	cmd.Flags().StringVar(&f.listingMatch, "listing-match", string(listing.MatchFirst), "Listing match mode (first|all)")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "warn", "Log level")
}

func (f *sourceFlags) request() filter.Request {
	return filter.Request{Path: f.path, Tags: f.tags}
}

func (f *sourceFlags) engine() (*filter.Engine, error) {
	opts, err := filter.OptionsFromConfig(&config.FilterConfig{ListingMatch: f.listingMatch})
	if err != nil {
		return nil, err
	}
	return filter.New(opts, logger.Named("filter")), nil
}

// load reads the document and its listing index. Adjustments are applied
// only when applyAdjustments is set.
func (f *sourceFlags) load(ctx context.Context, applyAdjustments bool) (*descriptor.Document, *listing.Index, error) {
	if err := logger.InitLogger(&config.LoggingConfig{Level: f.logLevel, Format: "console", DisableStacktrace: true}); err != nil {
		return nil, nil, err
	}
	if f.swaggerFile == "" {
		return nil, nil, config.ErrNoSource
	}

	upstream := &config.UpstreamConfig{AuthType: config.AuthTypeNone}
	fetcher := requester.NewHTTPRequester(requester.HTTPRequesterParams{
		Upstream:    upstream,
		AuthManager: requester.NewHTTPAuthManager(upstream),
	})
	p := parser.NewSwaggerParser(fetcher)

	adjustmentsFile := ""
	if applyAdjustments {
		adjustmentsFile = f.adjustmentsFile
	}
	doc, err := p.Load(ctx, f.swaggerFile, adjustmentsFile)
	if err != nil {
		return nil, nil, err
	}
	if f.listingsFile == "" {
		return doc, nil, nil
	}
	idx, err := p.LoadListings(ctx, f.listingsFile)
	if err != nil {
		return nil, nil, err
	}
	return doc, idx, nil
}
