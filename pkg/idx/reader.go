// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package idx decodes and encodes the IDX binary files in which the MNIST handwritten-digit
// dataset is distributed.
//
// It specializes on two kinds of files: image files (rank-3 unsigned bytes: count, rows, cols)
// and label files (rank-1 unsigned bytes). Each file is a sequence of big-endian uint32 header
// fields, immediately followed by the raw records, without padding or separators.
//
// Decoding is shape-agnostic: the header fields are returned as read, and it is up to the
// caller to check them against the expected dataset shape (see package mnist).
package idx

import (
	"bufio"
	"compress/gzip"
	"encoding/binary"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

const (
	// ImagesMagic is the magic number of IDX image files (unsigned byte, 3 dimensions).
	ImagesMagic = 0x00000803

	// LabelsMagic is the magic number of IDX label files (unsigned byte, 1 dimension).
	LabelsMagic = 0x00000801

	// ImageHeaderSize is the number of bytes in the header of an image file.
	ImageHeaderSize = 16

	// LabelHeaderSize is the number of bytes in the header of a label file.
	LabelHeaderSize = 8

	// GzipSuffix marks files that are transparently (de)compressed with gzip.
	GzipSuffix = ".gz"
)

// maxPreallocatedRecords caps the capacity reserved from a header's declared count, so a
// corrupt header can't make us allocate more than what is actually read.
const maxPreallocatedRecords = 1 << 16

type imageFileHeader struct {
	Magic     uint32
	NumImages uint32
	Rows      uint32
	Cols      uint32
}

type labelFileHeader struct {
	Magic     uint32
	NumLabels uint32
}

// readHeader reads a big-endian header into the struct pointed to by header.
func readHeader(r io.Reader, header any) error {
	if err := binary.Read(r, binary.BigEndian, header); err != nil {
		return classifyReadError(err, TruncatedHeader)
	}
	return nil
}

// readRecord fills buf completely from r.
func readRecord(r io.Reader, buf []byte) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		return classifyReadError(err, TruncatedData)
	}
	return nil
}

// classifyReadError maps an end of input to truncatedKind, and anything else to
// MissingOrUnreadableFile.
func classifyReadError(err error, truncatedKind Kind) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return newError(truncatedKind, "", err)
	}
	return newError(MissingOrUnreadableFile, "", err)
}

// withPath sets the path of the *Error wrapped in err, if it is not set yet.
func withPath(err error, path string) error {
	if idxErr := AsError(err); idxErr != nil && idxErr.Path == "" {
		idxErr.Path = path
	}
	return err
}

// preallocate returns the capacity to reserve for count records.
func preallocate(count uint32) int {
	return int(min(count, maxPreallocatedRecords))
}

// fileReader is a buffered, optionally gunzipped, reader over an open file.
type fileReader struct {
	io.Reader
	file *os.File
	gz   *gzip.Reader
}

// openFile opens path read-only for decoding. Paths ending in GzipSuffix are decompressed.
// The caller must Close the returned reader.
func openFile(path string) (*fileReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newError(MissingOrUnreadableFile, path, err)
	}
	fr := &fileReader{Reader: bufio.NewReader(f), file: f}
	if strings.HasSuffix(path, GzipSuffix) {
		fr.gz, err = gzip.NewReader(fr.Reader)
		if err != nil {
			_ = f.Close()
			return nil, newError(MissingOrUnreadableFile, path, errors.Wrap(err, "gzip.NewReader"))
		}
		fr.Reader = fr.gz
	}
	return fr, nil
}

// finish reads a gzip stream to its end, so its checksum is verified. Data after the
// decoded records is otherwise ignored.
func (fr *fileReader) finish(path string) error {
	if fr.gz == nil {
		return nil
	}
	if _, err := io.Copy(io.Discard, fr.gz); err != nil {
		return newError(MissingOrUnreadableFile, path, errors.Wrap(err, "gzip stream"))
	}
	return nil
}

// Close releases the underlying file.
func (fr *fileReader) Close() error {
	if fr.gz != nil {
		_ = fr.gz.Close() // Only releases decompressor state.
	}
	return fr.file.Close()
}
