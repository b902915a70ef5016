package engine

import (
	"io/fs"
	"sync"
)

type cachedTemplate struct {
	source string
	tmpl   *Template
}

// TemplateCache keeps parsed templates by path. A cached entry is reused only
// while the file content is unchanged.
type TemplateCache struct {
	mu        sync.RWMutex
	templates map[string]cachedTemplate
}

func NewTemplateCache() *TemplateCache {
	return &TemplateCache{
		templates: make(map[string]cachedTemplate),
	}
}

func (c *TemplateCache) Get(fsys fs.FS, path string) (*Template, error) {
	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}
	source := string(content)

	c.mu.RLock()
	cached, exists := c.templates[path]
	c.mu.RUnlock()
	if exists && cached.source == source {
		return cached.tmpl, nil
	}

	tmpl := Parse(path, source)

	c.mu.Lock()
	c.templates[path] = cachedTemplate{source: source, tmpl: tmpl}
	c.mu.Unlock()

	return tmpl, nil
}

func (c *TemplateCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.templates)
}

func (c *TemplateCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.templates = make(map[string]cachedTemplate)
}
