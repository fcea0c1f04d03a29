package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/noah-isme/studyabroad-api/internal/catalog"
	"github.com/noah-isme/studyabroad-api/pkg/catalogclient"
)

// NewRootCommand builds the catalogctl command tree writing to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	var (
		configPath string
		baseURL    string
		logLevel   string
	)

	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Browse the study-abroad catalog from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&configPath, "config", DefaultConfigPath(), "path to a TOML config file")
	root.PersistentFlags().StringVar(&baseURL, "base-url", "", "catalog API base URL (overrides config)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	var (
		opts    BrowseOptions
		filters []string
	)
	browseCmd := &cobra.Command{
		Use:   "browse <" + kindNames() + ">",
		Short: "Print one page of a catalog listing",
		Example: `  catalogctl browse colleges --sort rank-asc
  catalogctl browse courses --category Technology --filter duration=2
  catalogctl browse blogs --search visa --from 2024-01-01 --page 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := catalog.ParseKind(args[0])
			if !ok {
				return fmt.Errorf("unknown listing %q, want one of %s", args[0], kindNames())
			}

			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			if baseURL != "" {
				cfg.BaseURL = baseURL
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			if opts.PageSize == 0 {
				opts.PageSize = cfg.PageSize
			}

			parsed, err := parseFilterFlags(filters)
			if err != nil {
				return err
			}
			opts.Filters = parsed

			logger := newLogger(cfg.LogLevel)
			clientOpts := []catalogclient.Option{}
			if cfg.Token != "" {
				clientOpts = append(clientOpts, catalogclient.WithToken(cfg.Token))
			}
			if cfg.Rate > 0 {
				clientOpts = append(clientOpts, catalogclient.WithRate(cfg.Rate, 1))
			}
			client := catalogclient.New(cfg.BaseURL, clientOpts...)

			return NewBrowser(client, logger, cmd.OutOrStdout()).Browse(cmd.Context(), kind, opts)
		},
	}
	flags := browseCmd.Flags()
	flags.StringVarP(&opts.Search, "search", "s", "", "free-text query")
	flags.StringVarP(&opts.Category, "category", "c", "", "category to show")
	flags.StringVar(&opts.Sort, "sort", "", "sort option, e.g. title-asc")
	flags.IntVarP(&opts.Page, "page", "p", 1, "page number")
	flags.IntVar(&opts.PageSize, "page-size", 0, "items per page (default from config or listing)")
	flags.StringArrayVarP(&filters, "filter", "f", nil, "filter as key=value, repeatable")
	flags.StringVar(&opts.From, "from", "", "earliest publish date, YYYY-MM-DD")
	flags.StringVar(&opts.To, "to", "", "latest publish date, YYYY-MM-DD")

	root.AddCommand(browseCmd)
	return root
}

func parseFilterFlags(values []string) (map[string]string, error) {
	out := make(map[string]string, len(values))
	for _, v := range values {
		key, value, ok := strings.Cut(v, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid --filter %q, want key=value", v)
		}
		out[strings.TrimSpace(key)] = value
	}
	return out, nil
}

func newLogger(level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.WarnLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{Level: lvl, Prefix: "catalogctl"})
}

func kindNames() string {
	names := make([]string, 0, len(catalog.Kinds()))
	for _, k := range catalog.Kinds() {
		names = append(names, string(k))
	}
	return strings.Join(names, "|")
}
