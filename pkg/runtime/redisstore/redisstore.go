// Package redisstore is a runtime.Store on Redis. Value sets are sorted sets
// scored by a global counter so they keep insertion order.
package redisstore

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"

	"github.com/conduit-lang/ontogen/pkg/runtime"
)

// DefaultPrefix namespaces every key the store writes.
const DefaultPrefix = "ontogen:"

// Config holds Redis connection settings
type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Store implements runtime.Store with a go-redis client.
//
// Keys, all under the prefix:
//
//	seq                        insertion counter
//	type:<class>               zset of individuals
//	types:<individual>         set of classes
//	obj:<subject>\n<property>  zset of object IRIs
//	data:<subject>\n<property> zset of encoded literals
//	keys:<subject>             set of obj/data keys owned by subject
//	refs:<object>              set of "<subject>\n<property>" pointing at object
type Store struct {
	client *redis.Client
	prefix string
}

var _ runtime.Store = (*Store)(nil)

// New connects to Redis and pings it.
func New(ctx context.Context, cfg Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrapf(err, "connecting to redis at %s", cfg.Addr)
	}
	return NewWithClient(client, cfg.Prefix), nil
}

// NewWithClient wraps an existing client. An empty prefix means
// DefaultPrefix.
func NewWithClient(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

// Close closes the client.
func (s *Store) Close() error { return s.client.Close() }

func (s *Store) key(parts ...string) string {
	return s.prefix + strings.Join(parts, "")
}

func pair(a, b string) string { return a + "\n" + b }

func encodeLiteral(l runtime.Literal) string { return pair(l.Datatype, l.Lexical) }

func decodeLiteral(member string) runtime.Literal {
	datatype, lexical, _ := strings.Cut(member, "\n")
	return runtime.Literal{Lexical: lexical, Datatype: datatype}
}

// add inserts member into the sorted set at key unless it is present.
func (s *Store) add(ctx context.Context, key, member string, extra func(redis.Pipeliner)) error {
	seq, err := s.client.Incr(ctx, s.key("seq")).Result()
	if err != nil {
		return err
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAddNX(ctx, key, redis.Z{Score: float64(seq), Member: member})
		if extra != nil {
			extra(pipe)
		}
		return nil
	})
	return err
}

func (s *Store) AssertClass(ctx context.Context, individual string, class runtime.Class) error {
	err := s.add(ctx, s.key("type:", string(class)), individual, func(pipe redis.Pipeliner) {
		pipe.SAdd(ctx, s.key("types:", individual), string(class))
	})
	return errors.Wrapf(err, "asserting %s as %s", individual, class)
}

func (s *Store) Individuals(ctx context.Context, class runtime.Class) ([]string, error) {
	out, err := s.client.ZRange(ctx, s.key("type:", string(class)), 0, -1).Result()
	return out, errors.Wrapf(err, "listing %s individuals", class)
}

func (s *Store) ObjectValues(ctx context.Context, subject string, property runtime.ObjectProperty) ([]string, error) {
	out, err := s.client.ZRange(ctx, s.key("obj:", pair(subject, string(property))), 0, -1).Result()
	return out, errors.Wrapf(err, "reading %s of %s", property, subject)
}

func (s *Store) AddObjectValue(ctx context.Context, subject string, property runtime.ObjectProperty, object string) error {
	key := s.key("obj:", pair(subject, string(property)))
	err := s.add(ctx, key, object, func(pipe redis.Pipeliner) {
		pipe.SAdd(ctx, s.key("keys:", subject), key)
		pipe.SAdd(ctx, s.key("refs:", object), pair(subject, string(property)))
	})
	return errors.Wrapf(err, "adding %s to %s of %s", object, property, subject)
}

func (s *Store) RemoveObjectValue(ctx context.Context, subject string, property runtime.ObjectProperty, object string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRem(ctx, s.key("obj:", pair(subject, string(property))), object)
		pipe.SRem(ctx, s.key("refs:", object), pair(subject, string(property)))
		return nil
	})
	return errors.Wrapf(err, "removing %s from %s of %s", object, property, subject)
}

func (s *Store) DataValues(ctx context.Context, subject string, property runtime.DataProperty) ([]runtime.Literal, error) {
	members, err := s.client.ZRange(ctx, s.key("data:", pair(subject, string(property))), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s of %s", property, subject)
	}
	out := make([]runtime.Literal, 0, len(members))
	for _, m := range members {
		out = append(out, decodeLiteral(m))
	}
	return out, nil
}

func (s *Store) AddDataValue(ctx context.Context, subject string, property runtime.DataProperty, value runtime.Literal) error {
	key := s.key("data:", pair(subject, string(property)))
	err := s.add(ctx, key, encodeLiteral(value), func(pipe redis.Pipeliner) {
		pipe.SAdd(ctx, s.key("keys:", subject), key)
	})
	return errors.Wrapf(err, "adding %q to %s of %s", value.Lexical, property, subject)
}

func (s *Store) RemoveDataValue(ctx context.Context, subject string, property runtime.DataProperty, value runtime.Literal) error {
	err := s.client.ZRem(ctx, s.key("data:", pair(subject, string(property))), encodeLiteral(value)).Err()
	return errors.Wrapf(err, "removing %q from %s of %s", value.Lexical, property, subject)
}

func (s *Store) DeleteIndividual(ctx context.Context, iri string) error {
	classes, err := s.client.SMembers(ctx, s.key("types:", iri)).Result()
	if err != nil {
		return errors.Wrapf(err, "deleting %s", iri)
	}
	owned, err := s.client.SMembers(ctx, s.key("keys:", iri)).Result()
	if err != nil {
		return errors.Wrapf(err, "deleting %s", iri)
	}
	refs, err := s.client.SMembers(ctx, s.key("refs:", iri)).Result()
	if err != nil {
		return errors.Wrapf(err, "deleting %s", iri)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, class := range classes {
			pipe.ZRem(ctx, s.key("type:", class), iri)
		}
		for _, ref := range refs {
			pipe.ZRem(ctx, s.key("obj:", ref), iri)
		}
		pipe.Del(ctx, append(owned, s.key("types:", iri), s.key("keys:", iri), s.key("refs:", iri))...)
		return nil
	})
	return errors.Wrapf(err, "deleting %s", iri)
}
