// Package cache provides the caching contract and key construction used by
// the repository layer.
//
// # Overview
//
// The package exports two interfaces and their default implementations:
//
//   - Service: read-through get-or-fetch caching with per-horizon expiry
//   - KeySerializer: deterministic cache keys scoped to a collection
//
// Values live on one of two expiry horizons. HorizonList holds list pages and
// defaults to a one-hour TTL; HorizonEntity holds single records and defaults
// to twenty-four hours. A fetch error is never cached, so absence always
// re-queries the source of truth.
//
// # Usage
//
//	svc, err := cache.NewService(cache.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	keys := cache.NewDefaultKeySerializer()
//
//	key := keys.SerializeKey("articles", "id", articleID)
//	article, err := cache.GetOrFetch(ctx, svc, key, cache.HorizonEntity,
//		func(ctx context.Context) (*Article, error) {
//			return store.QueryOne(ctx, entityrepo.Query{ID: articleID})
//		})
//
// # Key Construction
//
// Keys are collection-prefixed so that invalidation can target everything a
// collection has cached: articles::list::1::10::created_at::desc,
// articles::id::0197a3f2. The default serializer renders qualifiers
// deterministically: basic types by value, times in UTC RFC3339, maps in
// sorted key order, anything else as JSON.
//
// # Configuration
//
// Config carries capacity, sharding and eviction knobs besides the two TTLs,
// and can be loaded from a YAML file:
//
//	list_ttl: 30m
//	entity_ttl: 12h
//	capacity: 50000
//
// LoadConfig overlays the file on DefaultConfig, so only changed settings
// need to appear.
package cache
