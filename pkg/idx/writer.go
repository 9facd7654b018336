// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package idx

import (
	"bufio"
	"compress/gzip"
	"encoding/binary"
	"io"
	"math"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// EncodeImages writes an image file with the given header values followed by the images.
// Every image must have exactly rows*cols bytes.
//
// It is the inverse of DecodeImages, mostly used to create synthetic datasets.
func EncodeImages(w io.Writer, magic uint32, rows, cols int, images [][]byte) error {
	if rows < 0 || cols < 0 || uint64(rows) > math.MaxUint32 || uint64(cols) > math.MaxUint32 {
		return errors.Errorf("invalid image dimensions %dx%d", rows, cols)
	}
	recordSize := rows * cols
	for i, img := range images {
		if len(img) != recordSize {
			return errors.Errorf("image #%d has %d bytes, but rows*cols=%d", i, len(img), recordSize)
		}
	}
	header := imageFileHeader{
		Magic:     magic,
		NumImages: uint32(len(images)),
		Rows:      uint32(rows),
		Cols:      uint32(cols),
	}
	if err := binary.Write(w, binary.BigEndian, &header); err != nil {
		return errors.Wrap(err, "failed to write images header")
	}
	for i, img := range images {
		if _, err := w.Write(img); err != nil {
			return errors.Wrapf(err, "failed to write image #%d", i)
		}
	}
	return nil
}

// EncodeLabels writes a label file with the given magic number followed by the labels.
func EncodeLabels(w io.Writer, magic uint32, labels []byte) error {
	header := labelFileHeader{
		Magic:     magic,
		NumLabels: uint32(len(labels)),
	}
	if err := binary.Write(w, binary.BigEndian, &header); err != nil {
		return errors.Wrap(err, "failed to write labels header")
	}
	if _, err := w.Write(labels); err != nil {
		return errors.Wrap(err, "failed to write labels")
	}
	return nil
}

// WriteImageFile creates (or truncates) path and encodes the images into it.
// If path ends with ".gz" the contents are gzip compressed.
func WriteImageFile(path string, magic uint32, rows, cols int, images [][]byte) error {
	return writeFile(path, func(w io.Writer) error {
		return EncodeImages(w, magic, rows, cols, images)
	})
}

// WriteLabelFile creates (or truncates) path and encodes the labels into it.
// If path ends with ".gz" the contents are gzip compressed.
func WriteLabelFile(path string, magic uint32, labels []byte) error {
	return writeFile(path, func(w io.Writer) error {
		return EncodeLabels(w, magic, labels)
	})
}

func writeFile(path string, encodeFn func(w io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed creating file %q", path)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = errors.Wrapf(closeErr, "failed closing %q", path)
		}
	}()

	buffered := bufio.NewWriter(f)
	var w io.Writer = buffered
	var gz *gzip.Writer
	if strings.HasSuffix(path, GzipSuffix) {
		gz = gzip.NewWriter(buffered)
		w = gz
	}
	if err = encodeFn(w); err != nil {
		return errors.WithMessagef(err, "encoding %q", path)
	}
	if gz != nil {
		if err = gz.Close(); err != nil {
			return errors.Wrapf(err, "failed to flush gzip stream of %q", path)
		}
	}
	if err = buffered.Flush(); err != nil {
		return errors.Wrapf(err, "failed to flush %q", path)
	}
	return nil
}
