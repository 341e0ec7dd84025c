// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spf13/afero"

	"github.com/ik5/audmix/frame"
	"github.com/ik5/audmix/signal"
)

type sampleKey struct {
	path string
	rate int
}

// SampleCache keeps recently loaded files in memory. Loaded buffers are
// immutable, so one buffer can back any number of voices at once.
// SampleCache is safe for concurrent use.
type SampleCache struct {
	fs    afero.Fs
	cache *lru.Cache[sampleKey, *signal.Samples[frame.Mono]]
}

// NewSampleCache returns a cache holding up to size buffers read from fs.
// A nil fs reads from the operating system.
func NewSampleCache(fs afero.Fs, size int) (*SampleCache, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	cache, err := lru.New[sampleKey, *signal.Samples[frame.Mono]](size)
	if err != nil {
		return nil, fmt.Errorf("sample cache: %w", err)
	}

	return &SampleCache{fs: fs, cache: cache}, nil
}

// Load returns the file at path as mono samples at rate, decoding it only
// when it is not cached.
func (c *SampleCache) Load(path string, rate int) (*signal.Samples[frame.Mono], error) {
	key := sampleKey{path: path, rate: rate}
	if s, ok := c.cache.Get(key); ok {
		return s, nil
	}

	s, err := loadFS(c.fs, path, rate)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, s)

	return s, nil
}

// Forget drops every cached buffer of path.
func (c *SampleCache) Forget(path string) {
	for _, key := range c.cache.Keys() {
		if key.path == path {
			c.cache.Remove(key)
		}
	}
}

// Len returns the number of cached buffers.
func (c *SampleCache) Len() int { return c.cache.Len() }
