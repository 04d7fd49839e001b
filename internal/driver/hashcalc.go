package driver

import (
	"crypto/sha256"
	"encoding/binary"
)

// Digest is a SHA-256 fingerprint used as a cache key.
type Digest [sha256.Size]byte

// combineDigest: H(content || part1 || part2 ...). Каждая часть с префиксом длины,
// чтобы ("ab","c") и ("a","bc") не совпадали.
func combineDigest(content Digest, parts ...[]byte) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	var n [8]byte
	for _, p := range parts {
		binary.LittleEndian.PutUint64(n[:], uint64(len(p)))
		_, _ = h.Write(n[:])
		_, _ = h.Write(p)
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// cacheKey covers everything that changes a file's diagnostics: its bytes,
// the target version and stage, the diagnostic limit, the lexer flags
// and the payload schema.
func cacheKey(content Digest, opts DiagnoseOptions) Digest {
	var flags byte
	if opts.ShortOpenTag {
		flags |= 1
	}
	var schema [2]byte
	binary.LittleEndian.PutUint16(schema[:], diskCacheSchemaVersion)
	var limit [8]byte
	binary.LittleEndian.PutUint64(limit[:], uint64(max(opts.MaxDiagnostics, 0)))
	return combineDigest(content,
		schema[:],
		limit[:],
		[]byte(opts.version().String()),
		[]byte(opts.stage()),
		[]byte{flags},
	)
}
