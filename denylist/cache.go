package denylist

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"code.cloudfoundry.org/lager"
)

// Cache is the set of passwords this installation has seen confirmed as
// breached. It is loaded lazily from a text store with one password per line
// and only ever appended to.
type Cache struct {
	path string

	mu      sync.Mutex
	loaded  bool
	entries map[string]struct{}
}

// NewCache returns a cache backed by the file at path. An empty path keeps the
// cache in memory only.
func NewCache(path string) *Cache {
	return &Cache{
		path:    path,
		entries: map[string]struct{}{},
	}
}

func (c *Cache) Path() string {
	return c.path
}

// Load reads the store into memory. A missing store is an empty cache.
// Calling Load again is a no-op.
func (c *Cache) Load(logger lager.Logger) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loadLocked(logger)
}

func (c *Cache) loadLocked(logger lager.Logger) error {
	if c.loaded {
		return nil
	}
	c.loaded = true

	if c.path == "" {
		return nil
	}

	logger = logger.Session("load-denylist-cache", lager.Data{"path": c.path})
	logger.Debug("starting")

	f, err := os.Open(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("no-store")
		return nil
	}
	if err != nil {
		logger.Error("failed", err)
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		c.entries[line] = struct{}{}
	}

	if err := scanner.Err(); err != nil {
		logger.Error("failed", err)
		return err
	}

	logger.Debug("done", lager.Data{"entries": len(c.entries)})
	return nil
}

// Contains reports whether password has been recorded. Load failures are
// logged and treated as an empty store.
func (c *Cache) Contains(logger lager.Logger, password string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.loadLocked(logger)

	_, found := c.entries[password]
	return found
}

// Add records password in memory and appends it to the store. The in-memory
// set is updated even when the append fails.
func (c *Cache) Add(logger lager.Logger, password string) error {
	if password == "" || strings.ContainsAny(password, "\r\n") {
		return fmt.Errorf("password cannot be stored in a line-oriented cache")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.loadLocked(logger)

	if _, found := c.entries[password]; found {
		return nil
	}
	c.entries[password] = struct{}{}

	if c.path == "" {
		return nil
	}

	logger = logger.Session("append-denylist-cache", lager.Data{"path": c.path})

	if dir := filepath.Dir(c.path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			logger.Error("failed", err)
			return err
		}
	}

	f, err := os.OpenFile(c.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		logger.Error("failed", err)
		return err
	}

	if _, err := f.WriteString(password + "\n"); err != nil {
		f.Close()
		logger.Error("failed", err)
		return err
	}

	if err := f.Close(); err != nil {
		logger.Error("failed", err)
		return err
	}

	logger.Debug("appended")
	return nil
}

// Len is the number of recorded passwords.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
