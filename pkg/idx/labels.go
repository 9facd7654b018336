// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package idx

import "io"

// LabelBlock is the decoded contents of an IDX label file.
type LabelBlock struct {
	Magic uint32
	Count uint32

	// Labels holds Count single-byte labels, in file order.
	Labels []byte
}

// ReadLabelFile opens and decodes the label file at path.
//
// If path ends with ".gz" it is decompressed on the fly. The file is always closed before
// returning. See DecodeLabels for the errors returned.
func ReadLabelFile(path string) (block *LabelBlock, err error) {
	fr, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := fr.Close(); closeErr != nil && err == nil {
			block, err = nil, newError(MissingOrUnreadableFile, path, closeErr)
		}
	}()
	block, err = DecodeLabels(fr)
	if err == nil {
		err = fr.finish(path)
	}
	if err != nil {
		return nil, withPath(err, path)
	}
	return block, nil
}

// DecodeLabels reads a label header (magic, count) followed by count single-byte labels.
//
// It fails with TruncatedHeader if r has fewer than LabelHeaderSize bytes, with TruncatedData
// if r ends before all labels are read, and with MissingOrUnreadableFile on any other read
// error. Label values are not checked.
func DecodeLabels(r io.Reader) (*LabelBlock, error) {
	var header labelFileHeader
	if err := readHeader(r, &header); err != nil {
		return nil, err
	}
	block := &LabelBlock{
		Magic: header.Magic,
		Count: header.NumLabels,
	}
	// Read in chunks, so memory only grows with the bytes actually present.
	block.Labels = make([]byte, 0, preallocate(header.NumLabels))
	remaining := uint64(header.NumLabels)
	for remaining > 0 {
		chunk := min(remaining, maxPreallocatedRecords)
		start := len(block.Labels)
		block.Labels = append(block.Labels, make([]byte, int(chunk))...)
		if err := readRecord(r, block.Labels[start:]); err != nil {
			return nil, err
		}
		remaining -= chunk
	}
	return block, nil
}
