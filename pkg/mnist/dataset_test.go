// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package mnist

import (
	"image/color"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExampleAndBatch(t *testing.T) {
	dir := t.TempDir()
	cfg := smallConfig()
	f := newFixture(cfg)
	f.write(t, dir, cfg, "")
	ds, err := Load(dir, cfg)
	require.NoError(t, err)

	img, label := ds.Example(Test, 2)
	assert.Equal(t, f.testLabels[2], label)
	assert.Equal(t, f.testImages[2], img.Pix)
	assert.Equal(t, 28, img.Bounds().Dx())
	assert.Equal(t, 28, img.Bounds().Dy())
	assert.Equal(t, color.Gray{Y: f.testImages[2][28+4]}, img.At(4, 1))
	assert.Equal(t, color.Gray{}, img.At(28, 0), "out of bounds")

	images, labels := ds.Batch(Train, []int{5, 0, 17, -1, 3})
	assert.Equal(t, [][]byte{f.trainImages[5], f.trainImages[0], f.trainImages[3]}, images)
	assert.Equal(t, []byte{f.trainLabels[5], f.trainLabels[0], f.trainLabels[3]}, labels)

	assert.Equal(t, []string{"b", "a"}, Select([]string{"a", "b"}, []uint8{1, 0, 2}))
	assert.Equal(t, []int{20}, Select([]int{10, 20}, []uint64{math.MaxUint64, 1}))
	assert.Equal(t, []int{10}, Select([]int{10, 20}, []int64{-1, 0, math.MaxInt64}))
}

func TestSprint(t *testing.T) {
	img := &Image{Pix: []byte{0, 255, 3, 0, 0, 0}, Rows: 2, Cols: 3}
	want := "Label: 7\n" +
		"__####\n" +
		"______\n"
	assert.Equal(t, want, Sprint(img, 7))
	assert.Equal(t, "Label: 200\n", Sprint(&Image{}, 200))
}

func TestSavePNG(t *testing.T) {
	img := &Image{Pix: []byte{0, 255, 128, 0}, Rows: 2, Cols: 2}
	path := filepath.Join(t.TempDir(), "digit.png")
	require.NoError(t, SavePNG(img, path, 4))

	loaded, err := imaging.Open(path)
	require.NoError(t, err)
	assert.Equal(t, 8, loaded.Bounds().Dx())
	assert.Equal(t, 8, loaded.Bounds().Dy())
	r, _, _, _ := loaded.At(5, 1).RGBA()
	assert.Equal(t, uint32(0xFFFF), r, "pixel (1, 0) scaled by 4")

	require.Error(t, SavePNG(img, path, 0))
}

func TestDownloadSkipsExistingFiles(t *testing.T) {
	var mu sync.Mutex
	var requested []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requested = append(requested, r.URL.Path)
		mu.Unlock()
		http.NotFound(w, r)
	}))
	defer server.Close()
	oldURL := DownloadURL
	DownloadURL = server.URL
	defer func() { DownloadURL = oldURL }()

	dir := t.TempDir()
	for _, path := range DefaultConfig().Paths(dir) {
		require.NoError(t, os.WriteFile(path, nil, 0644))
	}
	require.NoError(t, Download(dir))
	assert.Empty(t, requested)

	// Missing files are requested, and the failure is reported.
	require.NoError(t, os.Remove(DefaultConfig().Paths(dir)[TestLabels]))
	require.Error(t, Download(dir))
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"/" + TestLabelsFilename + ".gz"}, requested)
}
