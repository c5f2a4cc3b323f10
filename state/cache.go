package state

import csmap "github.com/mhmtszr/concurrent-swiss-map"

// A single key to value cache
type Cache[K comparable, V any] struct {
	inner *csmap.CsMap[K, V]
}

func NewCache[K comparable, V any](size uint64) *Cache[K, V] {
	return &Cache[K, V]{
		inner: csmap.Create(
			csmap.WithSize[K, V](size),
		),
	}
}

func (c *Cache[K, V]) Load(key K) (value V, ok bool) {
	return c.inner.Load(key)
}

func (c *Cache[K, V]) Store(key K, value V) {
	c.inner.Store(key, value)
}

func (c *Cache[K, V]) Delete(key K) {
	c.inner.Delete(key)
}

// Update runs a function on a value in the cache, updating the value in cache based on returned value.
func (c *Cache[K, V]) Update(key K, fn func(value V) V) (value V, ok bool) {
	value, ok = c.inner.Load(key)
	if !ok {
		return
	}

	value = fn(value)

	c.inner.Store(key, value)

	return
}

// Range If the callback function returns true iteration will stop.
func (c *Cache[K, V]) Range(fn func(key K, value V) bool) {
	c.inner.Range(fn)
}

func (c *Cache[K, V]) Count() int {
	return c.inner.Count()
}

func (c *Cache[K, V]) Clear() {
	c.inner.Clear()
}

// A 2 key to value cache
type DoubleCache[KA comparable, KB comparable, V any] struct {
	inner     *Cache[KA, *Cache[KB, V]]
	sizeInner uint64
}

func NewDoubleCache[KA comparable, KB comparable, V any](sizeOuter uint64, sizeInner uint64) *DoubleCache[KA, KB, V] {
	return &DoubleCache[KA, KB, V]{
		inner:     NewCache[KA, *Cache[KB, V]](sizeOuter),
		sizeInner: sizeInner,
	}
}

func (c *DoubleCache[KA, KB, V]) Inner(key KA) (value *Cache[KB, V], ok bool) {
	return c.inner.Load(key)
}

func (c *DoubleCache[KA, KB, V]) Load(key KA, subKey KB) (value V, ok bool) {
	if inner, ok := c.inner.Load(key); ok {
		return inner.Load(subKey)
	}

	return
}

func (c *DoubleCache[KA, KB, V]) Store(key KA, subKey KB, value V) {
	if inner, ok := c.inner.Load(key); ok {
		inner.Store(subKey, value)

		return
	}

	// Another writer may create the inner cache first, store into whichever won.
	c.inner.inner.SetIfAbsent(key, NewCache[KB, V](c.sizeInner))

	if inner, ok := c.inner.Load(key); ok {
		inner.Store(subKey, value)
	}
}

func (c *DoubleCache[KA, KB, V]) Delete(key KA, subKey KB) {
	if inner, ok := c.inner.Load(key); ok {
		inner.Delete(subKey)
	}
}

// Values returns every value stored under key.
func (c *DoubleCache[KA, KB, V]) Values(key KA) (values []V, ok bool) {
	inner, ok := c.inner.Load(key)
	if !ok {
		return nil, false
	}

	values = make([]V, 0, inner.Count())

	inner.Range(func(_ KB, value V) bool {
		values = append(values, value)

		return false
	})

	return values, true
}

// Returns the total count of all values in the cache.
func (c *DoubleCache[KA, KB, V]) TotalCount() int {
	count := 0

	c.inner.Range(func(_ KA, inner *Cache[KB, V]) bool {
		count += inner.Count()

		return false
	})

	return count
}

// Returns the count of values in the cache for a specific key.
func (c *DoubleCache[KA, KB, V]) Count(key KA) int {
	if inner, ok := c.inner.Load(key); ok {
		return inner.Count()
	}

	return 0
}

// Clears the cache for a specific key.
func (c *DoubleCache[KA, KB, V]) ClearKey(key KA) {
	c.inner.Delete(key)
}
