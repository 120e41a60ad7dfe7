// Package cache provides time-boxed memoization of read results. Entries
// expire after the configured TTL (5 minutes by default) and a background
// sweep evicts them. It is never used for correctness-critical data; writers
// invalidate keys manually where staleness would be visible.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"fleetrental/config"
)

var store *gocache.Cache

// Init creates the cache with the configured default expiration and a
// periodic sweep at half that interval
func Init() {
	ttl := config.GetCacheTTL()
	store = gocache.New(ttl, ttl/2)
}

// Get returns the cached value for key, if present and not expired
func Get(key string) (interface{}, bool) {
	if store == nil {
		return nil, false
	}
	return store.Get(key)
}

// Set stores value under key with the default expiration
func Set(key string, value interface{}) {
	if store == nil {
		return
	}
	store.Set(key, value, gocache.DefaultExpiration)
}

// SetFor stores value under key with an explicit lifetime
func SetFor(key string, value interface{}, d time.Duration) {
	if store == nil {
		return
	}
	store.Set(key, value, d)
}

// Delete drops key from the cache
func Delete(key string) {
	if store == nil {
		return
	}
	store.Delete(key)
}

// Flush drops every entry
func Flush() {
	if store != nil {
		store.Flush()
	}
}
