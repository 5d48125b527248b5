package query

import (
	"context"
	"fmt"

	"github.com/bobinette/fileshelf/errors"
)

// Fetch is Cache.Fetch for queries returning a T.
func Fetch[T any](ctx context.Context, c *Cache, key Key, enabled bool, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	v, err := c.Fetch(ctx, key, enabled, func(ctx context.Context) (interface{}, error) {
		return fn(ctx)
	})
	if err != nil {
		return zero, err
	}

	data, ok := v.(T)
	if !ok {
		return zero, errors.New(fmt.Sprintf("query %s holds %T, not %T", key, v, zero))
	}
	return data, nil
}

// PatchAll is Cache.Patch restricted to the entries holding a T. The others
// are left as they are.
func PatchAll[T any](c *Cache, prefix Key, fn func(Key, T) T) []Key {
	var patched []Key
	c.Patch(prefix, func(key Key, old interface{}) interface{} {
		data, ok := old.(T)
		if !ok {
			return old
		}
		patched = append(patched, key)
		return fn(key, data)
	})
	return patched
}
