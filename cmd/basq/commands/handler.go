package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/qbanex/basq/catalog"
	"github.com/qbanex/basq/config"
	"github.com/qbanex/basq/element"
	"github.com/qbanex/basq/errors"
	"github.com/qbanex/basq/internal/httpclient"
	"github.com/qbanex/basq/sources"
)

// session wires configuration, the shared HTTP client, the catalogue cache
// and the source registry for one command invocation.
type session struct {
	cfg   *config.Config
	cache *catalog.Cache
	reg   *sources.Registry
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := httpclient.New(httpclient.Options{
		Timeout:           cfg.HTTPTimeout(),
		RequestsPerMinute: cfg.HTTP.RequestsPerMinute,
		UserAgent:         cfg.HTTP.UserAgent,
	})
	reg, err := sources.Build(cfg, client)
	if err != nil {
		return nil, err
	}
	agg := catalog.NewAggregator(reg.Sources()...)

	return &session{
		cfg:   cfg,
		cache: catalog.NewCache(cfg.CacheFile(), cfg.CacheMaxAge(), agg),
		reg:   reg,
	}, nil
}

// loadConfig honours the root --config flag; without it the layered
// defaults, files and environment lookup applies.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if path, _ := cmd.Root().PersistentFlags().GetString("config"); path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// searchFlags is the filter surface search and fetch share.
type searchFlags struct {
	namePatterns []string
	descPatterns []string
	elements     []string
	ignoreCase   bool
	forceUpdate  bool
}

func (s *searchFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringArrayVarP(&s.namePatterns, "regexp", "e", nil, "Only sets whose name starts with this pattern (repeatable)")
	flags.StringArrayVarP(&s.descPatterns, "description", "d", nil, "Only sets whose description starts with this pattern (repeatable)")
	flags.BoolVarP(&s.ignoreCase, "ignore-case", "i", false, "Match patterns case-insensitively")
	flags.StringSliceVarP(&s.elements, "elements", "E", nil, "Only sets covering these elements (comma separated, repeatable)")
	flags.BoolVar(&s.forceUpdate, "force-update", false, "Rebuild the catalogue before matching")
}

// matchCatalogue loads the catalogue, honouring the freshness window, and
// applies the conjunction of all requested predicates. The returned symbols
// are the canonical required elements, used for highlighting.
func matchCatalogue(ctx context.Context, sess *session, args []string, flags *searchFlags) ([]catalog.Entry, []string, error) {
	filter := catalog.NewFilter(flags.ignoreCase)
	for _, pat := range args {
		if err := filter.MatchAny(pat); err != nil {
			return nil, nil, err
		}
	}
	for _, pat := range flags.namePatterns {
		if err := filter.MatchName(pat); err != nil {
			return nil, nil, err
		}
	}
	for _, pat := range flags.descPatterns {
		if err := filter.MatchDescription(pat); err != nil {
			return nil, nil, err
		}
	}
	required, err := element.NormalizeSymbols(flags.elements)
	if err != nil {
		return nil, nil, err
	}
	if err := filter.RequireElements(required); err != nil {
		return nil, nil, err
	}

	entries, err := sess.cache.Get(ctx, flags.forceUpdate)
	if err != nil {
		return nil, nil, err
	}

	matches := filter.Apply(entries)
	if len(matches) == 0 {
		return nil, nil, errors.WithHint(errors.ErrNoMatches,
			"Relax the pattern, try --ignore-case or require fewer elements.")
	}
	return matches, required, nil
}
