// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package mnist

import (
	"net/url"
	"path/filepath"

	"github.com/gomlx/idxmnist/pkg/idx"
	"github.com/gomlx/idxmnist/pkg/support/download"
	"github.com/gomlx/idxmnist/pkg/support/fsutil"
	"github.com/pkg/errors"
)

// DownloadURL is the mirror the gzipped MNIST files are fetched from.
var DownloadURL = "https://storage.googleapis.com/cvdf-datasets/mnist"

// sha256 of the gzipped files.
var checksums = map[Split]string{
	TrainImages: "440fcabf73cc546fa21475e81ea370265605f56be210a4024d2ca8f203523609",
	TrainLabels: "3552534a0a558bbed6aed32b30c495cca23d567ec52cac8be1a0730e8010255c",
	TestImages:  "8d422c7b0a1c1c79245a5bcf07fe86e33eeafee792b84584aec276f5a2dbc4e6",
	TestLabels:  "f7ae60f92e00ec6debd23a6088c31dbd2371eca3ffa0defaefb259924204aec6",
}

// Download fetches the gzipped MNIST files into baseDir, if they are not there yet, and
// validates their checksums. Load reads the ".gz" files directly.
//
// Files already present uncompressed are not downloaded.
func Download(baseDir string) error {
	baseDir, err := fsutil.ReplaceTildeInDir(baseDir)
	if err != nil {
		return err
	}
	cfg := DefaultConfig()
	for _, split := range Splits {
		uncompressed, err := fsutil.FileExists(filepath.Join(baseDir, cfg.Filename(split)))
		if err != nil {
			return err
		}
		if uncompressed {
			continue
		}
		name := cfg.Filename(split) + idx.GzipSuffix
		fileURL, err := url.JoinPath(DownloadURL, name)
		if err != nil {
			return errors.Wrapf(err, "invalid DownloadURL %q", DownloadURL)
		}
		if err = download.IfMissing(fileURL, filepath.Join(baseDir, name), checksums[split], true); err != nil {
			return errors.WithMessagef(err, "downloading MNIST %s", split)
		}
	}
	return nil
}
