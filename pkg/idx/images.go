// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package idx

import (
	"io"
	"math"
)

// ImageBlock is the decoded contents of an IDX image file.
type ImageBlock struct {
	Magic uint32
	Count uint32
	Rows  uint32
	Cols  uint32

	// Images holds Count pixel buffers, in file order, each with Rows*Cols bytes (row-major,
	// one intensity 0-255 per pixel).
	Images [][]byte
}

// MaxRecordSize is the largest image (rows*cols bytes) accepted by DecodeImages.
const MaxRecordSize = 1 << 30

// MaxEmptyImages is the largest count accepted by DecodeImages for images with rows*cols == 0,
// since those consume no input bytes that would otherwise bound the count.
const MaxEmptyImages = 1 << 24

// RecordSize is the number of bytes of each image.
func (b *ImageBlock) RecordSize() int {
	return int(b.Rows) * int(b.Cols)
}

// ReadImageFile opens and decodes the image file at path.
//
// If path ends with ".gz" it is decompressed on the fly. The file is always closed before
// returning. See DecodeImages for the errors returned.
func ReadImageFile(path string) (block *ImageBlock, err error) {
	fr, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := fr.Close(); closeErr != nil && err == nil {
			block, err = nil, newError(MissingOrUnreadableFile, path, closeErr)
		}
	}()
	block, err = DecodeImages(fr)
	if err == nil {
		err = fr.finish(path)
	}
	if err != nil {
		return nil, withPath(err, path)
	}
	return block, nil
}

// DecodeImages reads an image header (magic, count, rows, cols) followed by count pixel
// buffers of rows*cols bytes each.
//
// It fails with TruncatedHeader if r has fewer than ImageHeaderSize bytes, with TruncatedData
// if r ends before all images are read, and with MissingOrUnreadableFile on any other read
// error. A count of 0 always decodes to no images. Otherwise, images larger than MaxRecordSize,
// or more than MaxEmptyImages images of size 0, fail with FormatMismatch.
//
// No other validation of the header values is done: see package mnist for that.
func DecodeImages(r io.Reader) (*ImageBlock, error) {
	var header imageFileHeader
	if err := readHeader(r, &header); err != nil {
		return nil, err
	}
	block := &ImageBlock{
		Magic: header.Magic,
		Count: header.NumImages,
		Rows:  header.Rows,
		Cols:  header.Cols,
	}
	if header.NumImages == 0 {
		block.Images = [][]byte{}
		return block, nil
	}
	size := uint64(header.Rows) * uint64(header.Cols)
	if size > MaxRecordSize {
		return nil, Mismatch("", "rows*cols", MaxRecordSize, int64(min(size, math.MaxInt64)))
	}
	if size == 0 && header.NumImages > MaxEmptyImages {
		return nil, Mismatch("", "count", MaxEmptyImages, int64(header.NumImages))
	}
	recordSize := block.RecordSize()
	block.Images = make([][]byte, 0, preallocate(header.NumImages))
	for range header.NumImages {
		img := make([]byte, recordSize)
		if err := readRecord(r, img); err != nil {
			return nil, err
		}
		block.Images = append(block.Images, img)
	}
	return block, nil
}
