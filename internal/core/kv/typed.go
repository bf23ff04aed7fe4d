package kv

import (
	"context"
	"strings"
	"time"
)

// TypedKV is a namespaced view of a KV holding values of type T.
type TypedKV[T any] struct {
	store  KV
	prefix string
}

// Scoped returns a TypedKV[T] that prefixes all keys with "namespace:".
func Scoped[T any](store KV, namespace string) *TypedKV[T] {
	return &TypedKV[T]{
		store:  store,
		prefix: namespace + ":",
	}
}

func (t *TypedKV[T]) Get(ctx context.Context, key string) (T, error) {
	var v T
	err := t.store.Get(ctx, t.prefix+key, &v)
	return v, err
}

// Put stores value with ttl, or without expiry when ttl is not positive.
func (t *TypedKV[T]) Put(ctx context.Context, key string, value T, ttl time.Duration) error {
	return t.store.Put(ctx, t.prefix+key, value, ttl)
}

func (t *TypedKV[T]) Delete(ctx context.Context, key string) error {
	return t.store.Delete(ctx, t.prefix+key)
}

func (t *TypedKV[T]) Has(ctx context.Context, key string) (bool, error) {
	return t.store.Has(ctx, t.prefix+key)
}

// Keys lists the keys of the namespace with the prefix removed.
func (t *TypedKV[T]) Keys(ctx context.Context) ([]string, error) {
	all, err := t.store.Keys(ctx, t.prefix)
	if err != nil {
		return nil, err
	}
	for i, k := range all {
		all[i] = strings.TrimPrefix(k, t.prefix)
	}
	return all, nil
}

// Purge deletes every key of the namespace and returns how many were removed.
func (t *TypedKV[T]) Purge(ctx context.Context) (int, error) {
	n, err := t.store.DeletePrefix(ctx, t.prefix)
	return int(n), err
}
