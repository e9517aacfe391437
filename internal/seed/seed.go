// Package seed loads the individuals declared in ontology documents into a
// runtime store.
package seed

import (
	"context"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/redis/go-redis/v9"

	"github.com/conduit-lang/ontogen/internal/errors"
	"github.com/conduit-lang/ontogen/internal/logger"
	"github.com/conduit-lang/ontogen/internal/ontology"
	"github.com/conduit-lang/ontogen/pkg/runtime"
	"github.com/conduit-lang/ontogen/pkg/runtime/redisstore"
	"github.com/conduit-lang/ontogen/pkg/runtime/sqlstore"
)

// Stats counts what a seed wrote.
type Stats struct {
	Individuals int `json:"individuals"`
	Types       int `json:"types"`
	Objects     int `json:"objects"`
	Data        int `json:"data"`
}

// Load asserts every individual of set into store. Assertions are set
// semantics, so loading twice leaves the store unchanged. Data values of a
// property with a single declared datatype are stored as that datatype in
// canonical form, the same literal generated accessors write.
func Load(ctx context.Context, set ontology.Store, store runtime.Store) (Stats, error) {
	var stats Stats
	declared := declaredDatatypes(set)
	for _, ind := range set.Individuals() {
		if err := ctx.Err(); err != nil {
			return stats, errors.Wrap(err, "seed cancelled")
		}
		iri := string(ind.IRI)

		for _, t := range ind.Types {
			if err := store.AssertClass(ctx, iri, runtime.Class(t)); err != nil {
				return stats, errors.Wrapf(err, "asserting %s a %s", iri, t)
			}
			stats.Types++
		}
		for _, o := range ind.Objects {
			if err := store.AddObjectValue(ctx, iri, runtime.ObjectProperty(o.Property), string(o.Object)); err != nil {
				return stats, errors.Wrapf(err, "asserting %s %s %s", iri, o.Property, o.Object)
			}
			stats.Objects++
		}
		for _, d := range ind.Data {
			lit := runtime.Literal{Lexical: d.Value.Lexical, Datatype: string(d.Value.Datatype)}
			if dt, ok := declared[d.Property]; ok {
				lit = runtime.Canonical(runtime.Literal{Lexical: lit.Lexical, Datatype: string(dt)})
			}
			if err := store.AddDataValue(ctx, iri, runtime.DataProperty(d.Property), lit); err != nil {
				return stats, errors.Wrapf(err, "asserting %s %s %q", iri, d.Property, d.Value.Lexical)
			}
			stats.Data++
		}
		stats.Individuals++
		logger.Debugw("Seeded individual", "iri", iri, "types", len(ind.Types))
	}
	return stats, nil
}

// declaredDatatypes maps each data property whose ranges name exactly one
// datatype, and nothing else, to that datatype.
func declaredDatatypes(set ontology.Store) map[ontology.IRI]ontology.IRI {
	ranges := make(map[ontology.IRI][]ontology.DataRange)
	for _, dp := range set.DataProperties() {
		ranges[dp.IRI] = append(ranges[dp.IRI], dp.Ranges...)
	}

	out := make(map[ontology.IRI]ontology.IRI)
	for iri, rs := range ranges {
		var dt ontology.IRI
		single := len(rs) > 0
		for _, r := range rs {
			d, ok := r.(*ontology.Datatype)
			if !ok || (dt != "" && d.IRI != dt) {
				single = false
				break
			}
			dt = d.IRI
		}
		if single {
			out[iri] = dt
		}
	}
	return out
}

// Open returns the store for driver. The close function is never nil.
//
//	memory             in-process, discarded on exit
//	sqlite3            dsn is a file path
//	postgres, pgx      dsn is a connection string
//	redis              dsn is a redis:// URL or host:port
func Open(ctx context.Context, driver, dsn string) (runtime.Store, func() error, error) {
	noop := func() error { return nil }

	switch driver {
	case "", "memory":
		return runtime.NewMemoryStore(), noop, nil

	case "sqlite3", "postgres", "pgx":
		if dsn == "" {
			return nil, noop, errors.WithHint(errors.Newf("driver %s needs a dsn", driver), "pass --dsn or set seed.dsn")
		}
		s, err := sqlstore.Open(ctx, driver, dsn)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil

	case "redis":
		cfg, err := redisConfig(dsn)
		if err != nil {
			return nil, noop, err
		}
		s, err := redisstore.New(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	}
	return nil, noop, errors.Newf("unsupported seed driver %q", driver)
}

func redisConfig(dsn string) (redisstore.Config, error) {
	switch {
	case dsn == "":
		return redisstore.Config{Addr: "localhost:6379"}, nil
	case strings.Contains(dsn, "://"):
		opts, err := redis.ParseURL(dsn)
		if err != nil {
			return redisstore.Config{}, errors.Wrap(err, "parsing redis url")
		}
		return redisstore.Config{Addr: opts.Addr, Password: opts.Password, DB: opts.DB}, nil
	default:
		return redisstore.Config{Addr: dsn}, nil
	}
}
