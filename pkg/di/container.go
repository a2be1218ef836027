// Package di wires the cache service, key serializer and repositories
// together so applications construct everything from one place.
package di

import (
	"github.com/tarseld/go-entity-repository/cache"
	"github.com/tarseld/go-entity-repository/entity"
	"github.com/tarseld/go-entity-repository/entityrepo"
)

// Container manages the shared cache service and key serializer and acts as
// the factory root for repositories. Every repository built from the same
// container shares one cache backend.
type Container struct {
	cacheService  cache.Service
	keySerializer cache.KeySerializer
	config        cache.Config
}

// NewContainer creates a container from the provided cache configuration.
func NewContainer(cfg cache.Config) (*Container, error) {
	cacheService, err := cache.NewService(cfg)
	if err != nil {
		return nil, err
	}

	return &Container{
		cacheService:  cacheService,
		keySerializer: cache.NewDefaultKeySerializer(),
		config:        cfg,
	}, nil
}

// NewContainerWithDefaults creates a container with the default expiry
// horizons (one hour for list pages, twenty-four hours for single records).
func NewContainerWithDefaults() (*Container, error) {
	return NewContainer(cache.DefaultConfig())
}

// NewContainerFromFile creates a container from a YAML cache config file.
func NewContainerFromFile(path string) (*Container, error) {
	cfg, err := cache.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return NewContainer(cfg)
}

// CacheService returns the shared cache service instance.
func (c *Container) CacheService() cache.Service {
	return c.cacheService
}

// KeySerializer returns the shared key serializer instance.
func (c *Container) KeySerializer() cache.KeySerializer {
	return c.keySerializer
}

// Config returns a copy of the cache configuration used by this container.
func (c *Container) Config() cache.Config {
	return c.config
}

// NewRepository builds a cached repository over the named collection using
// the container's cache service and key serializer.
//
// Methods cannot have type parameters, so this is a package-level function:
// di.NewRepository[*User](container, "users", store).
func NewRepository[T entity.Entity](container *Container, collection string, store entityrepo.Store[T], opts ...entityrepo.Option[T]) *entityrepo.Repository[T] {
	return entityrepo.New(collection, store, container.cacheService, container.keySerializer, opts...)
}

// NewRepositoryFor is NewRepository with the collection name derived from the
// entity type: di.NewRepositoryFor[*UserProfile](container, store) backs the
// repository with the "user_profiles" collection.
func NewRepositoryFor[T entity.Entity](container *Container, store entityrepo.Store[T], opts ...entityrepo.Option[T]) *entityrepo.Repository[T] {
	return NewRepository(container, entity.CollectionName[T](), store, opts...)
}
