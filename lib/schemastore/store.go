// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schemastore

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bureau-foundation/wirebuf/lib/layout"
	"github.com/bureau-foundation/wirebuf/lib/schema"
)

// Extension is the file extension of stored descriptors.
const Extension = ".wbs"

// maxDescriptorSize bounds the uncompressed size read from a file
// header before any allocation.
const maxDescriptorSize = 16 << 20

var (
	// ErrNotFound is returned by [Store.Get] for an unknown fingerprint.
	ErrNotFound = errors.New("schemastore: schema not found")

	// ErrCorrupt is returned when a stored file cannot be decoded or no
	// longer matches its fingerprint.
	ErrCorrupt = errors.New("schemastore: corrupt descriptor file")
)

// Options configures a [Store].
type Options struct {
	// Compression is tried for every new file. Descriptors it does not
	// shrink are stored uncompressed.
	Compression CompressionTag

	// Logger receives debug records for writes. nil discards them.
	Logger *slog.Logger
}

// Store is a directory of content-addressed descriptor files. It is
// safe for concurrent use; writes are atomic renames.
type Store struct {
	root        string
	compression CompressionTag
	logger      *slog.Logger
}

// Open returns a store rooted at root, creating the directory if it
// does not exist.
func Open(root string, options Options) (*Store, error) {
	if root == "" {
		return nil, errors.New("schemastore: root directory is required")
	}
	if !options.Compression.known() {
		return nil, fmt.Errorf("schemastore: unsupported compression tag: %d", options.Compression)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("schemastore: creating root: %w", err)
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{root: root, compression: options.Compression, logger: logger}, nil
}

// Root returns the store directory.
func (s *Store) Root() string { return s.root }

// Put stores the descriptor of sc and returns its fingerprint. Storing
// a schema that is already present does not rewrite the file.
func (s *Store) Put(sc *schema.Schema) (layout.Hash, error) {
	descriptor, err := layout.Encode(sc)
	if err != nil {
		return layout.Hash{}, err
	}
	hash := layout.FingerprintBytes(descriptor)
	if s.Has(hash) {
		return hash, nil
	}

	payload, tag, err := compress(descriptor, s.compression)
	if err != nil {
		return layout.Hash{}, fmt.Errorf("schemastore: compressing %s: %w", hash.Short(), err)
	}

	header := make([]byte, 1+binary.MaxVarintLen64)
	header[0] = byte(tag)
	headerLength := 1 + binary.PutUvarint(header[1:], uint64(len(descriptor)))

	data := make([]byte, 0, headerLength+len(payload))
	data = append(data, header[:headerLength]...)
	data = append(data, payload...)

	if err := s.writeFile(s.path(hash), data); err != nil {
		return layout.Hash{}, err
	}
	s.logger.Debug("stored schema descriptor",
		"fingerprint", hash.String(),
		"fields", sc.Len(),
		"compression", tag.String(),
		"size", len(descriptor),
		"stored_size", len(data),
	)
	return hash, nil
}

// Get loads the schema stored under hash.
func (s *Store) Get(hash layout.Hash) (*schema.Schema, error) {
	data, err := os.ReadFile(s.path(hash))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, hash)
	}
	if err != nil {
		return nil, fmt.Errorf("schemastore: reading %s: %w", hash.Short(), err)
	}

	descriptor, err := decodeFile(data)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrCorrupt, hash.Short(), err)
	}
	if layout.FingerprintBytes(descriptor) != hash {
		return nil, fmt.Errorf("%w %s: content does not match fingerprint", ErrCorrupt, hash.Short())
	}

	sc, err := layout.Decode(descriptor)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrCorrupt, hash.Short(), err)
	}
	return sc, nil
}

// Has reports whether a descriptor is stored under hash.
func (s *Store) Has(hash layout.Hash) bool {
	_, err := os.Stat(s.path(hash))
	return err == nil
}

// List returns the fingerprints of every stored descriptor, sorted.
// Files that are not named like descriptors are ignored.
func (s *Store) List() ([]layout.Hash, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("schemastore: listing %s: %w", s.root, err)
	}

	var hashes []layout.Hash
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, Extension) {
			continue
		}
		hash, err := layout.ParseHash(strings.TrimSuffix(name, Extension))
		if err != nil {
			continue
		}
		hashes = append(hashes, hash)
	}
	slices.SortFunc(hashes, func(a, b layout.Hash) int {
		return strings.Compare(a.String(), b.String())
	})
	return hashes, nil
}

func (s *Store) path(hash layout.Hash) string {
	return filepath.Join(s.root, hash.String()+Extension)
}

func decodeFile(data []byte) ([]byte, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("file is %d bytes, too short for a header", len(data))
	}
	tag := CompressionTag(data[0])
	size, n := binary.Uvarint(data[1:])
	if n <= 0 {
		return nil, errors.New("malformed size header")
	}
	if size > maxDescriptorSize {
		return nil, fmt.Errorf("descriptor size %d exceeds limit %d", size, maxDescriptorSize)
	}
	return decompress(data[1+n:], tag, int(size))
}

// writeFile writes data to finalPath through a temporary file and a
// rename.
func (s *Store) writeFile(finalPath string, data []byte) error {
	tmpFile, err := os.CreateTemp(s.root, "schema-*.tmp")
	if err != nil {
		return fmt.Errorf("schemastore: creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("schemastore: writing descriptor: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("schemastore: closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		return fmt.Errorf("schemastore: renaming descriptor to %s: %w", finalPath, err)
	}

	success = true
	return nil
}
