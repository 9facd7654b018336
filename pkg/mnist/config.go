// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package mnist

import (
	"fmt"
	"path/filepath"

	"github.com/gomlx/idxmnist/pkg/idx"
	"github.com/pkg/errors"
)

// Canonical names of the (uncompressed) MNIST files.
const (
	TrainImagesFilename = "train-images-idx3-ubyte"
	TrainLabelsFilename = "train-labels-idx1-ubyte"
	TestImagesFilename  = "t10k-images-idx3-ubyte"
	TestLabelsFilename  = "t10k-labels-idx1-ubyte"
)

// MNIST shape.
const (
	Width         = 28
	Height        = 28
	NumClasses    = 10
	TrainExamples = 60_000
	TestExamples  = 10_000
)

// Split is one of the four files that make up the dataset.
type Split int

const (
	TrainImages Split = iota
	TrainLabels
	TestImages
	TestLabels
)

// Splits lists all splits in the order they are loaded.
var Splits = []Split{TrainImages, TestImages, TrainLabels, TestLabels}

// String implements fmt.Stringer.
func (s Split) String() string {
	switch s {
	case TrainImages:
		return "train-images"
	case TrainLabels:
		return "train-labels"
	case TestImages:
		return "test-images"
	case TestLabels:
		return "test-labels"
	default:
		return fmt.Sprintf("Split(%d)", int(s))
	}
}

// IsImages returns whether the split holds images (as opposed to labels).
func (s Split) IsImages() bool { return s == TrainImages || s == TestImages }

// Subset returns whether the split belongs to the train or the test subset.
func (s Split) Subset() Subset {
	if s == TrainImages || s == TrainLabels {
		return Train
	}
	return Test
}

// Config holds the file names and the expected shape of a dataset stored as four IDX files.
//
// DefaultConfig returns the values for MNIST. Other values can be used for synthetic datasets
// (e.g. in tests) or datasets with the same layout.
type Config struct {
	// File names, relative to the dataset directory. If a file is missing, its ".gz"
	// compressed variant is used instead, if present.
	TrainImagesFile, TrainLabelsFile string
	TestImagesFile, TestLabelsFile   string

	// ImagesMagic and LabelsMagic are the expected magic numbers.
	ImagesMagic, LabelsMagic uint32

	// TrainSize and TestSize are the expected number of examples of each subset.
	TrainSize, TestSize int

	// Rows and Cols are the expected image dimensions.
	Rows, Cols int

	// NumClasses, if > 0, makes Load fail with idx.FormatMismatch on labels >= NumClasses.
	// When 0 (the default) label values are not checked.
	NumClasses int
}

// DefaultConfig returns the configuration for the MNIST dataset.
//
// Labels are not range checked: set NumClasses to enable that.
func DefaultConfig() Config {
	return Config{
		TrainImagesFile: TrainImagesFilename,
		TrainLabelsFile: TrainLabelsFilename,
		TestImagesFile:  TestImagesFilename,
		TestLabelsFile:  TestLabelsFilename,
		ImagesMagic:     idx.ImagesMagic,
		LabelsMagic:     idx.LabelsMagic,
		TrainSize:       TrainExamples,
		TestSize:        TestExamples,
		Rows:            Height,
		Cols:            Width,
	}
}

// Filename of the given split.
func (c Config) Filename(split Split) string {
	switch split {
	case TrainImages:
		return c.TrainImagesFile
	case TrainLabels:
		return c.TrainLabelsFile
	case TestImages:
		return c.TestImagesFile
	case TestLabels:
		return c.TestLabelsFile
	}
	return ""
}

// Size is the expected number of records of the split.
func (c Config) Size(split Split) int {
	if split.Subset() == Train {
		return c.TrainSize
	}
	return c.TestSize
}

// Paths returns the path of each split's file in dir, without checking they exist.
func (c Config) Paths(dir string) map[Split]string {
	paths := make(map[Split]string, len(Splits))
	for _, split := range Splits {
		paths[split] = filepath.Join(dir, c.Filename(split))
	}
	return paths
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	seen := make(map[string]Split, len(Splits))
	for _, split := range Splits {
		name := c.Filename(split)
		if name == "" {
			return errors.Errorf("mnist.Config: no file name for %s", split)
		}
		if other, found := seen[name]; found {
			return errors.Errorf("mnist.Config: %s and %s use the same file %q", other, split, name)
		}
		seen[name] = split
	}
	if c.TrainSize < 0 || c.TestSize < 0 {
		return errors.Errorf("mnist.Config: invalid sizes train=%d, test=%d", c.TrainSize, c.TestSize)
	}
	if c.Rows < 0 || c.Cols < 0 {
		return errors.Errorf("mnist.Config: invalid image dimensions %dx%d", c.Rows, c.Cols)
	}
	if c.NumClasses < 0 || c.NumClasses > 256 {
		return errors.Errorf("mnist.Config: NumClasses=%d must be in [0, 256]", c.NumClasses)
	}
	return nil
}
