package suggest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/colonyops/reswed/internal/core/kv"
	"github.com/colonyops/reswed/internal/core/logging"
	"github.com/rs/zerolog"
)

// CacheNamespace prefixes cached suggestion keys in the KV store.
const CacheNamespace = "suggest"

// Cached serves repeated requests from a KV store. Entries expire after ttl;
// a zero ttl keeps them forever. Cache failures are logged and fall through
// to the wrapped Suggester.
type Cached struct {
	next  Suggester
	cache *kv.TypedKV[Suggestion]
	ttl   time.Duration
	log   zerolog.Logger
}

var _ Suggester = (*Cached)(nil)

// NewCached wraps next with a cache stored in store.
func NewCached(next Suggester, store kv.KV, ttl time.Duration) *Cached {
	return &Cached{
		next:  next,
		cache: kv.Scoped[Suggestion](store, CacheNamespace),
		ttl:   ttl,
		log:   logging.Component("suggest-cache"),
	}
}

// CacheKey derives the cache key of req. Requests for the same file, key,
// source text and targets share a key.
func CacheKey(req Request) string {
	h := sha256.New()
	for _, part := range []string{req.File, req.Key, req.Source.Lang, req.Source.Text, strings.Join(req.Targets, ",")} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cached) Suggest(ctx context.Context, req Request) (Suggestion, error) {
	key := CacheKey(req)

	hit, err := c.cache.Get(ctx, key)
	switch {
	case err == nil:
		c.log.Debug().Str("key", req.Key).Msg("suggestion cache hit")
		return hit, nil
	case !kv.IsMiss(err):
		c.log.Warn().Err(err).Str("key", req.Key).Msg("suggestion cache read failed")
	}

	s, err := c.next.Suggest(ctx, req)
	if err != nil {
		return s, err
	}

	if err := c.cache.Put(ctx, key, s, c.ttl); err != nil {
		c.log.Warn().Err(err).Str("key", req.Key).Msg("suggestion cache write failed")
	}

	return s, nil
}

// Invalidate drops the cached answer for req.
func (c *Cached) Invalidate(ctx context.Context, req Request) error {
	return c.cache.Delete(ctx, CacheKey(req))
}

// Clear drops every cached suggestion.
func (c *Cached) Clear(ctx context.Context) (int, error) {
	return c.cache.Purge(ctx)
}
