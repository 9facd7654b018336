// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package download fetches dataset files over HTTP, with an optional progress bar and
// sha256 checksum validation.
package download

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gomlx/idxmnist/pkg/support/fsutil"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"
)

// Client used for downloads. Tests may replace it.
var Client = &http.Client{}

// ValidateChecksum verifies that the sha256 of the file in the given path matches checkHash.
// If it fails, it will remove the file (!) and return an error.
func ValidateChecksum(path, checkHash string) error {
	hasher := sha256.New()
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "failed to open %q for checksum", path)
	}
	defer func() {
		_ = f.Close() // Discard reading error on Close.
	}()

	if _, err = io.Copy(hasher, f); err != nil {
		return errors.Wrapf(err, "failed to read %q for checksum", path)
	}
	fileHash := hex.EncodeToString(hasher.Sum(nil))
	if fileHash != strings.ToLower(checkHash) {
		err = errors.Errorf("file %q sha256 hash is %q, but expected %q, deleting file.",
			path, fileHash, checkHash)
		if e2 := os.Remove(path); e2 != nil {
			klog.Errorf("Failed to remove %q, which failed checksum test. Please remove it. %+v", path, e2)
		}
		return err
	}
	return nil
}

// copyBytesBar copies bytes to an io.Writer while displaying a progressbar.
type copyBytesBar struct {
	w                             io.Writer
	bar                           *progressbar.ProgressBar
	amountWritten                 int64
	barUnit, numUnits, addedUnits int64
}

func newCopyBytesBar(w io.Writer, contentLength int64) *copyBytesBar {
	bar := &copyBytesBar{w: w, barUnit: 1}
	for contentLength > bar.barUnit*1024*1024 {
		bar.barUnit *= 1024
	}
	bar.numUnits = (contentLength + bar.barUnit - 1) / bar.barUnit
	bar.bar = progressbar.NewOptions64(bar.numUnits,
		progressbar.OptionSetDescription(humanize.IBytes(uint64(contentLength))),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: ".",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	return bar
}

// Write implements io.Writer, while updating the progress bar.
func (bar *copyBytesBar) Write(p []byte) (n int, err error) {
	n, err = bar.w.Write(p)
	bar.amountWritten += int64(n)
	toUnits := bar.amountWritten / bar.barUnit
	if toUnits > bar.addedUnits {
		_ = bar.bar.Add64(toUnits - bar.addedUnits)
		bar.addedUnits = toUnits
	}
	return
}

// copyWithProgressBar is similar to io.Copy, but displays a progress bar.
// It requires knowing the amount of data to copy up-front.
func copyWithProgressBar(dst io.Writer, src io.Reader, contentLength int64) (n int64, err error) {
	bar := newCopyBytesBar(dst, contentLength)
	n, err = io.Copy(bar, src)
	if bar.addedUnits < bar.numUnits {
		_ = bar.bar.Add64(bar.numUnits - bar.addedUnits)
	}
	_ = bar.bar.Close()
	fmt.Println()
	return
}

// File downloads url and saves it at filePath, creating the directory if needed.
//
// The progress bar is only shown if showProgressBar and the server reports the content length.
// On failure, the partially written file is removed.
func File(url, filePath string, showProgressBar bool) (size int64, err error) {
	if err = os.MkdirAll(filepath.Dir(filePath), 0777); err != nil {
		return 0, errors.Wrapf(err, "failed to create the directory for the path %q", filePath)
	}
	resp, err := Client.Get(url)
	if err != nil {
		return 0, errors.Wrapf(err, "failed downloading %q", url)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return 0, errors.Errorf("failed downloading %q: %s", url, resp.Status)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return 0, errors.Wrapf(err, "failed creating file %q", filePath)
	}
	defer func() {
		if err != nil {
			_ = file.Close()
			_ = os.Remove(filePath)
		}
	}()
	if showProgressBar && resp.ContentLength > 0 {
		size, err = copyWithProgressBar(file, resp.Body, resp.ContentLength)
	} else {
		size, err = io.Copy(file, resp.Body)
	}
	if err != nil {
		return 0, errors.Wrapf(err, "downloading %q to %q", url, filePath)
	}
	if err = file.Close(); err != nil {
		return 0, errors.Wrapf(err, "failed closing %q", filePath)
	}
	klog.V(1).Infof("Downloaded %s from %q to %q", humanize.IBytes(uint64(size)), url, filePath)
	return size, nil
}

// IfMissing checks whether filePath exists already, and if not downloads it from url.
//
// If checkHash is provided, it checks that the file has the sha256 hash or fails.
func IfMissing(url, filePath, checkHash string, showProgressBar bool) error {
	exists, err := fsutil.FileExists(filePath)
	if err != nil {
		return err
	}
	if !exists {
		klog.Infof("Downloading %s ...", url)
		if _, err = File(url, filePath, showProgressBar); err != nil {
			return err
		}
	}
	if checkHash == "" {
		return nil
	}
	return ValidateChecksum(filePath, checkHash)
}
