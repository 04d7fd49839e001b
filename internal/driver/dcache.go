package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"phpfront/internal/diag"
	"phpfront/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит итоги диагностики файлов на диске, ключ: cacheKey.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached outcome of diagnosing one file. Spans are stored
// as offsets only: the FileID is assigned again on every run.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Path        string
	ContentHash Digest
	Version     string

	Diagnostics []CachedDiagnostic
}

type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Notes    []CachedNote
	Fixes    []CachedFix
}

type CachedNote struct {
	Start, End uint32
	Msg        string
}

type CachedFix struct {
	Title string
	Edits []CachedEdit
}

type CachedEdit struct {
	Start, End uint32
	NewText    string
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
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens (creating if needed) a cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог по первому байту, чтобы не складывать всё в одну папку
	return filepath.Join(c.dir, "diags", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// после успешного Rename временного файла уже нет
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	enc := msgpack.NewEncoder(f)
	if err = enc.Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (ok bool, err error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// diagnosticsToPayload snapshots the diagnostics of one file.
func diagnosticsToPayload(file *source.File, version string, items []diag.Diagnostic) *DiskPayload {
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Path:        file.Path,
		ContentHash: file.Hash,
		Version:     version,
		Diagnostics: make([]CachedDiagnostic, len(items)),
	}
	for i, d := range items {
		cd := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		for _, fx := range d.Fixes {
			cf := CachedFix{Title: fx.Title}
			for _, e := range fx.Edits {
				cf.Edits = append(cf.Edits, CachedEdit{Start: e.Span.Start, End: e.Span.End, NewText: e.NewText})
			}
			cd.Fixes = append(cd.Fixes, cf)
		}
		payload.Diagnostics[i] = cd
	}
	return payload
}

// payloadToDiagnostics rebinds cached offsets to file.
func payloadToDiagnostics(file *source.File, payload *DiskPayload) []diag.Diagnostic {
	span := func(start, end uint32) source.Span {
		return source.Span{File: file.ID, Start: start, End: end}
	}
	out := make([]diag.Diagnostic, len(payload.Diagnostics))
	for i, cd := range payload.Diagnostics {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code), span(cd.Start, cd.End), cd.Message)
		for _, n := range cd.Notes {
			d.Notes = append(d.Notes, diag.Note{Span: span(n.Start, n.End), Msg: n.Msg})
		}
		for _, cf := range cd.Fixes {
			fx := diag.Fix{Title: cf.Title}
			for _, e := range cf.Edits {
				fx.Edits = append(fx.Edits, diag.FixEdit{Span: span(e.Start, e.End), NewText: e.NewText})
			}
			d.Fixes = append(d.Fixes, fx)
		}
		out[i] = d
	}
	return out
}
