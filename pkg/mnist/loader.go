// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package mnist loads the MNIST database of handwritten digits from its four IDX files
// into memory, checking that each file has the expected shape.
//
// Example:
//
//	ds, err := mnist.Load("~/tmp/mnist", mnist.DefaultConfig())
//	if err != nil {
//		klog.Fatalf("%+v", err)
//	}
//	img, label := ds.Example(mnist.Train, 5)
//	fmt.Print(mnist.Sprint(img, label))
package mnist

import (
	"fmt"

	"github.com/gomlx/idxmnist/pkg/idx"
	"github.com/gomlx/idxmnist/pkg/support/fsutil"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Load reads the four files of the dataset in dir, validates their headers against cfg,
// and returns the assembled Dataset.
//
// dir may start with "~" for the user's home directory. A missing file is also looked
// for with a ".gz" suffix, as distributed, and decompressed on the fly.
//
// Errors wrap an *idx.Error (see idx.KindOf), with Split and Path set:
//   - idx.MissingOrUnreadableFile: a file doesn't exist or can't be read.
//   - idx.TruncatedHeader, idx.TruncatedData: a file is shorter than its header promises.
//   - idx.FormatMismatch: a header field ("magic", "count", "rows", "cols") or, if
//     cfg.NumClasses > 0, a label ("labels[i]") disagrees with cfg.
//
// Loading stops at the first error, and no partial Dataset is returned.
func Load(dir string, cfg Config) (*Dataset, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	expandedDir, err := fsutil.ReplaceTildeInDir(dir)
	if err != nil {
		return nil, errors.WithStack(&idx.Error{Kind: idx.MissingOrUnreadableFile, Path: dir, Err: err})
	}

	l := &loader{cfg: cfg, ds: &Dataset{rows: cfg.Rows, cols: cfg.Cols}}
	for _, split := range Splits {
		if err := l.load(expandedDir, split); err != nil {
			if idxErr := idx.AsError(err); idxErr != nil {
				idxErr.Split = split.String()
			}
			return nil, errors.WithMessagef(err, "mnist.Load(%q)", dir)
		}
	}
	klog.V(1).Infof("Loaded %s: %d train and %d test examples of %dx%d",
		expandedDir, l.ds.Len(Train), l.ds.Len(Test), cfg.Rows, cfg.Cols)
	return l.ds, nil
}

// loader holds the state of one Load call.
type loader struct {
	cfg Config
	ds  *Dataset
}

// resolve returns the path of the split's file, preferring the uncompressed file.
func (l *loader) resolve(dir string, split Split) (string, error) {
	path := l.cfg.Paths(dir)[split]
	resolved, found, err := fsutil.ResolveVariant(path, idx.GzipSuffix)
	if err != nil {
		return "", errors.WithStack(&idx.Error{Kind: idx.MissingOrUnreadableFile, Path: path, Err: err})
	}
	if found && resolved != path {
		klog.V(2).Infof("Using %q for %s", resolved, split)
	}
	return resolved, nil
}

func (l *loader) load(dir string, split Split) error {
	path, err := l.resolve(dir, split)
	if err != nil {
		return err
	}
	klog.V(1).Infof("Reading MNIST %s from %q", split, path)
	if split.IsImages() {
		block, err := idx.ReadImageFile(path)
		if err != nil {
			return err
		}
		if err = l.validateImages(path, split, block); err != nil {
			return err
		}
		if split.Subset() == Train {
			l.ds.trainImages = block.Images
		} else {
			l.ds.testImages = block.Images
		}
		return nil
	}

	block, err := idx.ReadLabelFile(path)
	if err != nil {
		return err
	}
	if err = l.validateLabels(path, split, block); err != nil {
		return err
	}
	if split.Subset() == Train {
		l.ds.trainLabels = block.Labels
	} else {
		l.ds.testLabels = block.Labels
	}
	return nil
}

// headerField is one decoded header value and the value expected for it.
type headerField struct {
	name             string
	expected, actual int64
}

func checkFields(path string, fields ...headerField) error {
	for _, f := range fields {
		if f.expected != f.actual {
			return idx.Mismatch(path, f.name, f.expected, f.actual)
		}
	}
	return nil
}

func (l *loader) validateImages(path string, split Split, block *idx.ImageBlock) error {
	return checkFields(path,
		headerField{"magic", int64(l.cfg.ImagesMagic), int64(block.Magic)},
		headerField{"count", int64(l.cfg.Size(split)), int64(block.Count)},
		headerField{"rows", int64(l.cfg.Rows), int64(block.Rows)},
		headerField{"cols", int64(l.cfg.Cols), int64(block.Cols)},
	)
}

func (l *loader) validateLabels(path string, split Split, block *idx.LabelBlock) error {
	err := checkFields(path,
		headerField{"magic", int64(l.cfg.LabelsMagic), int64(block.Magic)},
		headerField{"count", int64(l.cfg.Size(split)), int64(block.Count)},
	)
	if err != nil || l.cfg.NumClasses == 0 {
		return err
	}
	for i, label := range block.Labels {
		if int(label) >= l.cfg.NumClasses {
			return idx.Mismatch(path, fmt.Sprintf("labels[%d]", i), int64(l.cfg.NumClasses-1), int64(label))
		}
	}
	return nil
}
