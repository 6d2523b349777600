// Package cache provides a generic, thread-safe LRU cache with per-entry expiry.
//
// The cache keeps at most a fixed number of items. Adding an item to a full
// cache evicts the least recently used one, and every item is considered
// missing once its TTL has passed:
//
//	docs := cache.New[string, *oidc.Document](64, time.Hour)
//	docs.Put(issuer, doc)
//
//	if doc, ok := docs.Get(issuer); ok {
//		// fresh enough to use
//	}
//
// Expired items are dropped lazily when they are looked up or pushed out by
// newer items; there is no background sweeper. Tests can control expiry with
// SetClock.
package cache
