package hooks

import (
	"context"
	"time"

	"github.com/go-kit/kit/endpoint"

	"github.com/bobinette/fileshelf/log"
	"github.com/bobinette/fileshelf/query"
)

// KeysFunc gives the keys a successful mutation invalidates.
type KeysFunc func(request, response interface{}) []query.Key

// Keys is a KeysFunc ignoring request and response.
func Keys(keys ...query.Key) KeysFunc {
	return func(interface{}, interface{}) []query.Key { return keys }
}

// Invalidating marks the keys of a successful call stale.
func Invalidating(cache *query.Cache, keys KeysFunc) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (interface{}, error) {
			response, err := next(ctx, request)
			if err != nil {
				return nil, err
			}
			for _, key := range keys(request, response) {
				cache.Invalidate(key)
			}
			return response, nil
		}
	}
}

// Optimistic applies a cache patch before the call. The patch is reverted
// when the call fails.
func Optimistic(apply func(request interface{}) (revert func())) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (interface{}, error) {
			revert := apply(request)
			response, err := next(ctx, request)
			if err != nil && revert != nil {
				revert()
			}
			return response, err
		}
	}
}

// Notifying reports failures to n. There is no retry.
func Notifying(n Notifier, op string) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (interface{}, error) {
			response, err := next(ctx, request)
			if err != nil {
				n.Notify(op, err)
			}
			return response, err
		}
	}
}

func Logging(logger log.Logger, op string) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (interface{}, error) {
			start := time.Now()
			response, err := next(ctx, request)
			logger.WithField("op", op).WithField("took", time.Since(start)).Debugf("mutation done (err: %v)", err)
			return response, err
		}
	}
}

// mutation wraps ep with logging, notification, invalidation and, when
// given, an optimistic patch, in that order from the outside.
func (d Deps) mutation(op string, ep endpoint.Endpoint, keys KeysFunc, optimistic ...endpoint.Middleware) endpoint.Endpoint {
	mws := []endpoint.Middleware{
		Notifying(d.Notifier, op),
	}
	if keys != nil {
		mws = append(mws, Invalidating(d.Cache, keys))
	}
	mws = append(mws, optimistic...)
	return endpoint.Chain(Logging(d.Logger, op), mws...)(ep)
}
