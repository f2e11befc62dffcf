// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schemastore

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/bureau-foundation/wirebuf/lib/layout"
	"github.com/bureau-foundation/wirebuf/lib/schema"
)

// wideSchema has enough repetitive field definitions that lz4 and zstd
// both shrink its descriptor.
func wideSchema(fields int) *schema.Schema {
	values := make(map[string]schema.Value, fields)
	for i := range fields {
		values[fmt.Sprintf("field%03d", i)] = schema.Scalar{
			Field: schema.Field{Kind: schema.Optional},
			Of:    schema.TypeString,
		}
	}
	return schema.New(values)
}

func openStore(t *testing.T, compression CompressionTag) *Store {
	t.Helper()
	store, err := Open(t.TempDir(), Options{Compression: compression})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return store
}

func TestPutGetRoundtrip(t *testing.T) {
	for _, compression := range []CompressionTag{CompressionNone, CompressionLZ4, CompressionZstd} {
		t.Run(compression.String(), func(t *testing.T) {
			store := openStore(t, compression)
			original := wideSchema(64)

			hash, err := store.Put(original)
			if err != nil {
				t.Fatalf("Put: %v", err)
			}
			want, err := layout.Fingerprint(original)
			if err != nil {
				t.Fatal(err)
			}
			if hash != want {
				t.Errorf("Put returned %s, fingerprint is %s", hash, want)
			}

			data, err := os.ReadFile(filepath.Join(store.Root(), hash.String()+Extension))
			if err != nil {
				t.Fatalf("reading stored file: %v", err)
			}
			if CompressionTag(data[0]) != compression {
				t.Errorf("stored with %s, want %s", CompressionTag(data[0]), compression)
			}

			loaded, err := store.Get(hash)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if !reflect.DeepEqual(loaded.Document(), original.Document()) {
				t.Error("loaded schema differs from the stored one")
			}
		})
	}
}

func TestPutIsIdempotent(t *testing.T) {
	store := openStore(t, CompressionLZ4)
	first, err := store.Put(wideSchema(8))
	if err != nil {
		t.Fatal(err)
	}
	second, err := store.Put(wideSchema(8))
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("same schema stored under %s and %s", first, second)
	}

	hashes, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(hashes) != 1 {
		t.Errorf("List() = %v, want one entry", hashes)
	}
}

func TestHasAndList(t *testing.T) {
	store := openStore(t, CompressionNone)
	var stored []layout.Hash
	for _, width := range []int{1, 2, 3} {
		hash, err := store.Put(wideSchema(width))
		if err != nil {
			t.Fatal(err)
		}
		stored = append(stored, hash)
		if !store.Has(hash) {
			t.Errorf("Has(%s) = false after Put", hash.Short())
		}
	}

	// Unrelated files are ignored.
	for _, name := range []string{"README", "notahash" + Extension, "schema-123.tmp"} {
		if err := os.WriteFile(filepath.Join(store.Root(), name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(store.Root(), "nested"+Extension), 0o755); err != nil {
		t.Fatal(err)
	}

	listed, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	slices.SortFunc(stored, func(a, b layout.Hash) int { return strings.Compare(a.String(), b.String()) })
	if !slices.Equal(listed, stored) {
		t.Errorf("List() = %v, want %v", listed, stored)
	}
}

func TestGetNotFound(t *testing.T) {
	store := openStore(t, CompressionNone)
	if _, err := store.Get(layout.Hash{1}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get error = %v, want ErrNotFound", err)
	}
	if store.Has(layout.Hash{1}) {
		t.Error("Has reported a missing schema")
	}
}

func TestGetDetectsCorruption(t *testing.T) {
	store := openStore(t, CompressionZstd)
	hash, err := store.Put(wideSchema(32))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(store.Root(), hash.String()+Extension)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		mutate func([]byte) []byte
	}{
		{"truncated", func(data []byte) []byte { return data[:1] }},
		{"unknown compression", func(data []byte) []byte { data[0] = 9; return data }},
		{"payload flipped", func(data []byte) []byte { data[len(data)-1] ^= 0xff; return data }},
		{"size too large", func(data []byte) []byte {
			return append([]byte{0, 0xff, 0xff, 0xff, 0xff, 0x0f}, data[2:]...)
		}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			corrupted := test.mutate(bytes.Clone(data))
			if err := os.WriteFile(path, corrupted, 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := store.Get(hash); !errors.Is(err, ErrCorrupt) {
				t.Errorf("Get error = %v, want ErrCorrupt", err)
			}
		})
	}
}

func TestGetDetectsMisnamedFile(t *testing.T) {
	store := openStore(t, CompressionNone)
	first, err := store.Put(wideSchema(1))
	if err != nil {
		t.Fatal(err)
	}
	second, err := store.Put(wideSchema(2))
	if err != nil {
		t.Fatal(err)
	}

	// Overwrite the second file with the first's content.
	data, err := os.ReadFile(filepath.Join(store.Root(), first.String()+Extension))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(store.Root(), second.String()+Extension), data, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err = store.Get(second)
	if !errors.Is(err, ErrCorrupt) || !strings.Contains(err.Error(), "does not match fingerprint") {
		t.Errorf("Get error = %v", err)
	}
}

func TestOpenValidation(t *testing.T) {
	if _, err := Open("", Options{}); err == nil {
		t.Error("Open accepted an empty root")
	}
	if _, err := Open(t.TempDir(), Options{Compression: 7}); err == nil {
		t.Error("Open accepted an unknown compression tag")
	}

	root := filepath.Join(t.TempDir(), "a", "b")
	if _, err := Open(root, Options{}); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		t.Errorf("Open did not create %s", root)
	}
}

func TestPutLogsAtDebug(t *testing.T) {
	var output bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&output, &slog.HandlerOptions{Level: slog.LevelDebug}))
	store, err := Open(t.TempDir(), Options{Compression: CompressionZstd, Logger: logger})
	if err != nil {
		t.Fatal(err)
	}

	hash, err := store.Put(wideSchema(4))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(output.String(), `"fingerprint":"`+hash.String()+`"`) {
		t.Errorf("log output missing fingerprint: %s", output.String())
	}
	if !strings.Contains(output.String(), `"fields":4`) {
		t.Errorf("log output missing field count: %s", output.String())
	}
}

func TestCompressionTagNames(t *testing.T) {
	for _, tag := range []CompressionTag{CompressionNone, CompressionLZ4, CompressionZstd} {
		parsed, err := ParseCompressionTag(tag.String())
		if err != nil {
			t.Errorf("ParseCompressionTag(%q): %v", tag.String(), err)
		}
		if parsed != tag {
			t.Errorf("ParseCompressionTag(%q) = %d, want %d", tag.String(), parsed, tag)
		}
	}
	if _, err := ParseCompressionTag("brotli"); err == nil {
		t.Error("ParseCompressionTag accepted brotli")
	}
	if got := CompressionTag(5).String(); got != "unknown(5)" {
		t.Errorf("String() = %q", got)
	}
}

func TestCompressIncompressibleFallsBack(t *testing.T) {
	data := []byte{0x8f, 0x13, 0x42}
	for _, tag := range []CompressionTag{CompressionLZ4, CompressionZstd} {
		payload, used, err := compress(data, tag)
		if err != nil {
			t.Fatalf("compress(%s): %v", tag, err)
		}
		if used != CompressionNone || !bytes.Equal(payload, data) {
			t.Errorf("compress(%s) = %x with %s, want raw", tag, payload, used)
		}
	}
}
