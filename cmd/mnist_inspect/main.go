// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// mnist_inspect loads the MNIST dataset, prints a summary and renders one example.
//
//  1. With `mnist_inspect --download`: downloads the gzipped files into --data first, if missing.
//  2. With `mnist_inspect --index=5 --test`: renders example 5 of the test subset.
//  3. With `mnist_inspect --png=/tmp/digit.png --scale=10`: also saves the example as an image.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/idxmnist/pkg/mnist"
	"github.com/gomlx/idxmnist/ui/commandline"
	"github.com/janpfeifer/must"
	"github.com/muesli/termenv"
	"k8s.io/klog/v2"
)

var (
	flagDataDir  = flag.String("data", "~/tmp/mnist", "Directory with the MNIST files.")
	flagDownload = flag.Bool("download", false, "Download the dataset files, if missing.")
	flagIndex    = flag.Int("index", 0, "Index of the example to render. Negative values disable rendering.")
	flagTest     = flag.Bool("test", false, "Render an example from the test subset, instead of the train subset.")
	flagPNG      = flag.String("png", "", "If set, save the rendered example to this file (format from the extension).")
	flagScale    = flag.Int("scale", 8, "Scale factor used with --png.")
	flagClasses  = flag.Int("classes", 0, "If > 0, fail on labels >= classes.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	err := exceptions.TryCatch[error](func() {
		if *flagDownload {
			must.M(mnist.Download(*flagDataDir))
			klog.Infof("Data downloaded in %s", *flagDataDir)
		}

		cfg := mnist.DefaultConfig()
		cfg.NumClasses = *flagClasses
		start := time.Now()
		ds := must.M1(mnist.Load(*flagDataDir, cfg))
		fmt.Println(commandline.SummaryTable(*flagDataDir, ds, time.Since(start)))

		if *flagIndex < 0 {
			return
		}
		subset := mnist.Train
		if *flagTest {
			subset = mnist.Test
		}
		if *flagIndex >= ds.Len(subset) {
			exceptions.Panicf("--index=%d out of range, %s subset has %d examples", *flagIndex, subset, ds.Len(subset))
		}
		img, label := ds.Example(subset, *flagIndex)
		fmt.Println(commandline.RenderExample(termenv.NewOutput(os.Stdout), img, label))
		if *flagPNG != "" {
			must.M(mnist.SavePNG(img, *flagPNG, *flagScale))
			klog.Infof("Example saved to %s", *flagPNG)
		}
	})
	if err != nil {
		klog.Errorf("Error:\n%+v", err)
		klog.Flush()
		os.Exit(1)
	}
}
