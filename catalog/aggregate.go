package catalog

import (
	"context"
	"fmt"

	"github.com/qbanex/basq/errors"
	"github.com/qbanex/basq/logger"
)

// Source lists the catalogue entries one origin offers. The concrete
// adapters carry the full download capability as well; the aggregator only
// needs listing.
type Source interface {
	// Origin is the short identifier entries get tagged with, e.g. "bse".
	Origin() string
	// List returns the origin's catalogue in its native order. Errors are
	// returned plain; the aggregator classifies them.
	List(ctx context.Context) ([]Entry, error)
}

// Aggregator concatenates the listings of every registered source into one
// catalogue, preserving registration order and each origin's listing order.
type Aggregator struct {
	sources []Source
}

func NewAggregator(sources ...Source) *Aggregator {
	return &Aggregator{sources: sources}
}

// Register appends a source. Entries of later registrations sort after
// earlier ones in the aggregated catalogue.
func (a *Aggregator) Register(src Source) {
	a.sources = append(a.sources, src)
}

// Origins returns the registered origin names in registration order.
func (a *Aggregator) Origins() []string {
	names := make([]string, len(a.sources))
	for i, src := range a.sources {
		names[i] = src.Origin()
	}
	return names
}

// Aggregate builds the full catalogue. If any source fails the whole
// aggregation fails; partial catalogues are never returned. Entries are
// tagged with their source's origin, duplicates across origins are kept.
func (a *Aggregator) Aggregate(ctx context.Context) ([]Entry, error) {
	var all []Entry
	for _, src := range a.sources {
		entries, err := src.List(ctx)
		if err != nil {
			return nil, errors.WrapSourceUnavailable(err,
				fmt.Sprintf("listing catalogue from %s", src.Origin()))
		}
		for i := range entries {
			entries[i].Origin = src.Origin()
		}
		logger.Debugw("listed catalogue source",
			"origin", src.Origin(),
			"entries", len(entries))
		all = append(all, entries...)
	}
	return all, nil
}
