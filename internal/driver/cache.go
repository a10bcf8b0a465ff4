package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/workingjubilee/kani/internal/queries"
	"github.com/workingjubilee/kani/internal/snapshot"
)

// Current schema version - increment when ResultPayload format changes.
const resultSchemaVersion uint16 = 1

// DiskCache stores readiness verdicts on disk, keyed by snapshot digest and
// run arguments. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// ResultPayload is one cached verdict: whether the crate passed and the
// rendered diagnostic lines to replay on a hit.
type ResultPayload struct {
	// Schema version for safe invalidation when the format changes
	Schema uint16

	CrateName string
	Passed    bool
	Lines     []string
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// ResultKey derives the cache key from the snapshot digest and every
// argument that can change the verdict. Feature order must not matter.
func ResultKey(digest snapshot.Digest, args queries.Args) snapshot.Digest {
	h := sha256.New()
	h.Write(digest[:])
	fmt.Fprintf(h, "schema=%d;asm=%v;max=%d;", resultSchemaVersion, args.IgnoreGlobalAsm, args.MaxDiagnostics)
	features := append([]string(nil), args.UnstableFeatures...)
	sort.Strings(features)
	for _, f := range features {
		fmt.Fprintf(h, "feature=%s;", f)
	}
	return snapshot.Digest(h.Sum(nil))
}

func (c *DiskCache) pathFor(key snapshot.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "results", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key snapshot.Digest, payload *ResultPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload.Schema = resultSchemaVersion
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close() //nolint:errcheck
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	// Atomic replace
	return os.Rename(tmp, p)
}

// Get reads and deserializes a payload from the disk cache. A schema
// mismatch counts as a miss, not an error.
func (c *DiskCache) Get(key snapshot.Digest, out *ResultPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	raw, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := msgpack.Unmarshal(raw, out); err != nil {
		return false, err
	}
	if out.Schema != resultSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
