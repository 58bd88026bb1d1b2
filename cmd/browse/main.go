package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/sweetshop-backend/internal/catalog"
	"github.com/angelmondragon/sweetshop-backend/pkg/config"
	"github.com/angelmondragon/sweetshop-backend/pkg/enums"
	"github.com/angelmondragon/sweetshop-backend/pkg/env"
	"github.com/angelmondragon/sweetshop-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "browse:", err)
		}
		os.Exit(1)
	}
}

type options struct {
	source   string
	baseURL  string
	token    string
	timeout  time.Duration
	latency  time.Duration
	category string
	search   string
	sort     string
	logLevel string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("browse", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.source, "source", env.Get(config.EnvCatalogSource, config.CatalogSourceMemory), "catalog source: memory|remote")
	fs.StringVar(&o.baseURL, "base-url", env.Get(config.EnvCatalogRemoteBaseURL, ""), "remote catalog base url, e.g. http://localhost:8000/api/v1")
	fs.StringVar(&o.token, "token", env.Get("SWEETSHOP_CATALOG_REMOTE_TOKEN", ""), "bearer token for the remote catalog")
	fs.DurationVar(&o.timeout, "timeout", 10*time.Second, "remote request timeout")
	fs.DurationVar(&o.latency, "latency", 0, "simulated latency for the memory source")
	fs.StringVar(&o.category, "category", catalog.AllCategoryID, "category name, or all")
	fs.StringVar(&o.search, "search", "", "free text search")
	fs.StringVar(&o.sort, "sort", string(enums.SortKeyName), "sort: name|price-low|price-high")
	fs.StringVar(&o.logLevel, "log-level", "warn", "log level")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return o, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	sortKey, err := enums.ParseSortKey(opts.sort)
	if err != nil {
		return err
	}

	logg := logger.New(logger.Options{ServiceName: "browse", Level: logger.ParseLevel(opts.logLevel), Output: stderr})

	source, err := newSource(opts)
	if err != nil {
		return err
	}

	loader, err := catalog.NewCategoryLoader(source, logg)
	if err != nil {
		return err
	}
	resolver, err := catalog.NewResolver(catalog.ResolverParams{Source: source, Logger: logg})
	if err != nil {
		return err
	}
	view := catalog.NewView(resolver)

	printCategories(stdout, loader.Load(ctx), opts.category)

	products, err := view.Refresh(ctx, catalog.Selection{
		SelectedCategory: opts.category,
		SearchQuery:      opts.search,
		SortBy:           sortKey,
	})
	if err != nil {
		return fmt.Errorf("load sweets: %w", err)
	}
	printProducts(stdout, products)
	return nil
}

func newSource(opts options) (catalog.Source, error) {
	switch opts.source {
	case config.CatalogSourceMemory:
		return catalog.NewMemorySource(catalog.MemoryOptions{ListLatency: opts.latency, GetLatency: opts.latency}), nil
	case config.CatalogSourceRemote:
		return catalog.NewHTTPSource(catalog.HTTPOptions{BaseURL: opts.baseURL, Token: opts.token, Timeout: opts.timeout})
	default:
		return nil, fmt.Errorf("unsupported source %q (want memory or remote)", opts.source)
	}
}

func printCategories(w io.Writer, categories []catalog.Category, selected string) {
	fmt.Fprintln(w, "Categories:")
	for _, c := range categories {
		marker := " "
		if c.ID == selected || c.Name == selected {
			marker = "*"
		}
		fmt.Fprintf(w, " %s %s (%d)\n", marker, c.Name, c.Count)
	}
	fmt.Fprintln(w)
}

func printProducts(w io.Writer, products []catalog.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No sweets found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE/KG\tSTOCK\tOFF")
	for _, p := range products {
		off := ""
		if pct := p.DiscountPercent(); pct > 0 {
			off = fmt.Sprintf("%d%%", pct)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\n", p.ID, p.Name, p.Category, p.PricePerKg.StringFixed(2), p.Stock, off)
	}
	_ = tw.Flush()
}
