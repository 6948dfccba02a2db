// Package ratelimiter implements token bucket rate limiting with an in-memory
// store, a Redis store for multi-instance deployments and HTTP middleware.
//
// A bucket starts full with Capacity tokens and regains RefillRate tokens every
// RefillInterval. Each request takes one token; a request that does not fit is
// denied without draining the bucket further.
//
//	bucket, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), ratelimiter.Config{
//		Capacity:       5,
//		RefillRate:     1,
//		RefillInterval: time.Minute,
//	})
//	if err != nil {
//		return err
//	}
//	r.With(ratelimiter.Middleware(bucket, ratelimiter.Composite(
//		ratelimiter.Static("contact"),
//		func(r *http.Request) string { return clientip.FromContext(r.Context()) },
//	))).Post("/api/contact", handler)
//
// The middleware sets X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset on every limited route and Retry-After on denials.
package ratelimiter
