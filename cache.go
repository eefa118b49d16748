// cache.go read-through cache for public list endpoints
package main

import (
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

var c = cache.New(5*time.Minute, 10*time.Minute)

func getCachedData(key string, fetchFunc func() (interface{}, error)) (interface{}, error) {
	if data, found := c.Get(key); found {
		return data, nil
	}

	data, err := fetchFunc()
	if err != nil {
		return nil, err
	}

	c.Set(key, data, cache.DefaultExpiration)
	return data, nil
}

// invalidateCache drops every cached entry for a resource. Called on every
// mutation so cached lists never outlive a write.
func invalidateCache(prefix string) {
	for key := range c.Items() {
		if strings.HasPrefix(key, prefix) {
			c.Delete(key)
		}
	}
}

func listCacheKey(resource, rawQuery string) string {
	return resource + "?" + rawQuery
}
