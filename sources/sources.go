// Package sources implements the catalogue origins basq can talk to: the
// Basis Set Exchange JSON API, the ccRepo website and a local directory of
// Gaussian94 files. Every origin lists catalogue entries for the aggregated
// catalogue and fetches complete basis sets on demand.
package sources

import (
	"context"

	"github.com/qbanex/basq/basis"
	"github.com/qbanex/basq/catalog"
	"github.com/qbanex/basq/config"
	"github.com/qbanex/basq/errors"
	"github.com/qbanex/basq/internal/httpclient"
)

// Source is one catalogue origin. List feeds the aggregated catalogue and
// returns its errors plain; the aggregator classifies them. Fetch downloads
// the set named by an entry, restricted to the elements the entry records,
// and classifies its own failures: an entry the origin no longer knows is
// reported via errors.IsEntryNotFound, transport trouble via
// errors.IsSourceUnavailable.
type Source interface {
	catalog.Source
	Fetch(ctx context.Context, entry catalog.Entry) (*basis.Set, error)
}

// Registry holds the constructed sources in registration order, which is
// also the order their entries appear in the catalogue.
type Registry struct {
	sources []Source
}

// Build constructs the sources enabled in cfg, in the fixed origin order
// bse, ccrepo, local.
func Build(cfg *config.Config, client *httpclient.Client) (*Registry, error) {
	reg := &Registry{}
	if cfg.Sources.BSE.Enabled {
		reg.sources = append(reg.sources, NewBSE(cfg.Sources.BSE.BaseURL, client))
	}
	if cfg.Sources.Ccrepo.Enabled {
		reg.sources = append(reg.sources, NewCcrepo(cfg.Sources.Ccrepo.BaseURL, client))
	}
	if cfg.Sources.Local.Path != "" {
		reg.sources = append(reg.sources, NewLocal(cfg.Sources.Local.Path))
	}
	if len(reg.sources) == 0 {
		return nil, errors.New("no catalogue sources enabled")
	}
	return reg, nil
}

// Sources returns the origins in registration order, typed for the
// catalogue aggregator.
func (r *Registry) Sources() []catalog.Source {
	out := make([]catalog.Source, len(r.sources))
	for i, s := range r.sources {
		out[i] = s
	}
	return out
}

// Fetch routes the entry to the origin that produced it.
func (r *Registry) Fetch(ctx context.Context, entry catalog.Entry) (*basis.Set, error) {
	for _, s := range r.sources {
		if s.Origin() == entry.Origin {
			return s.Fetch(ctx, entry)
		}
	}
	return nil, errors.Newf("no source registered for origin %q", entry.Origin)
}
