// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package mnist

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Subset is either the train or the test part of the dataset.
type Subset int

const (
	Train Subset = iota
	Test
)

// String implements fmt.Stringer.
func (s Subset) String() string {
	switch s {
	case Train:
		return "train"
	case Test:
		return "test"
	default:
		return fmt.Sprintf("Subset(%d)", int(s))
	}
}

// Dataset holds the images and labels of the train and test subsets, as loaded by Load.
//
// It is read-only: the slices returned by its methods are shared and must not be modified.
// It holds no reference to the files it was loaded from.
type Dataset struct {
	rows, cols  int
	trainImages [][]byte
	testImages  [][]byte
	trainLabels []byte
	testLabels  []byte
}

// Rows returns the height of every image.
func (ds *Dataset) Rows() int { return ds.rows }

// Cols returns the width of every image.
func (ds *Dataset) Cols() int { return ds.cols }

// TrainImages returns the training images, each with Rows*Cols bytes.
func (ds *Dataset) TrainImages() [][]byte { return ds.trainImages }

// TestImages returns the test images, each with Rows*Cols bytes.
func (ds *Dataset) TestImages() [][]byte { return ds.testImages }

// TrainLabels returns the training labels, aligned with TrainImages.
func (ds *Dataset) TrainLabels() []byte { return ds.trainLabels }

// TestLabels returns the test labels, aligned with TestImages.
func (ds *Dataset) TestLabels() []byte { return ds.testLabels }

// Images of the given subset.
func (ds *Dataset) Images(subset Subset) [][]byte {
	if subset == Train {
		return ds.trainImages
	}
	return ds.testImages
}

// Labels of the given subset.
func (ds *Dataset) Labels(subset Subset) []byte {
	if subset == Train {
		return ds.trainLabels
	}
	return ds.testLabels
}

// Len returns the number of examples in the subset.
func (ds *Dataset) Len(subset Subset) int {
	return len(ds.Labels(subset))
}

// Example returns the image (as an image.Image view over the pixels) and label of
// example i of the subset. It panics if i is out of range, like a slice index.
func (ds *Dataset) Example(subset Subset, i int) (*Image, byte) {
	return ds.image(ds.Images(subset)[i]), ds.Labels(subset)[i]
}

func (ds *Dataset) image(pix []byte) *Image {
	return &Image{Pix: pix, Rows: ds.rows, Cols: ds.cols}
}

// Batch gathers the images and labels at the given indices of the subset.
// Indices out of range are skipped.
func (ds *Dataset) Batch(subset Subset, indices []int) (images [][]byte, labels []byte) {
	return Select(ds.Images(subset), indices), Select(ds.Labels(subset), indices)
}

// MemoryBytes returns the number of bytes of pixels and labels held.
func (ds *Dataset) MemoryBytes() int64 {
	numExamples := int64(ds.Len(Train) + ds.Len(Test))
	return numExamples * int64(ds.rows*ds.cols+1)
}

// Select returns items at the given indices, skipping the ones out of range.
func Select[T any, I constraints.Integer](items []T, idx []I) []T {
	selItems := make([]T, 0, len(idx))
	nItems := uint64(len(items))
	for _, i := range idx {
		if i >= 0 && uint64(i) < nItems {
			selItems = append(selItems, items[i])
		}
	}
	return selItems
}
