// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package schemastore keeps layout descriptors in a content-addressed
// directory.
//
// Each schema is stored as one file named by the hex fingerprint of its
// encoded descriptor (see lib/layout) with a ".wbs" extension:
//
//	<root>/<fingerprint>.wbs
//
// File format:
//
//	[1 byte]  compression tag (0 none, 1 lz4, 2 zstd)
//	[uvarint] uncompressed descriptor size
//	[N bytes] payload
//
// Writes go to a temporary file in the root and are renamed into place,
// so readers never observe a partial file. Because names are content
// hashes, storing the same schema twice is a no-op, and [Store.Get]
// verifies that the decompressed descriptor still hashes to the name it
// was requested by.
package schemastore
