package segment

// Cache memoizes ParsePath results for a single route generation run.
// Create one per run and drop it afterwards. A Cache is not safe for
// concurrent use; a nil *Cache parses without memoizing.
type Cache struct {
	paths map[string]string
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{paths: make(map[string]string)}
}

// ParsePath behaves like the package-level ParsePath but remembers
// successful conversions. Failed conversions are not cached.
func (c *Cache) ParsePath(path string) (string, error) {
	if c == nil {
		return ParsePath(path)
	}
	if out, ok := c.paths[path]; ok {
		return out, nil
	}

	out, err := ParsePath(path)
	if err != nil {
		return "", err
	}
	c.paths[path] = out
	return out, nil
}

// Len returns the number of cached paths.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return len(c.paths)
}
