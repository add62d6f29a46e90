// Command t50print prints an image to a T50 Pro family printer.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"strings"
	"time"

	"github.com/halfbyte/t50pro/imgutil"
	"github.com/halfbyte/t50pro/printbuf"
	"github.com/halfbyte/t50pro/raster"
	"github.com/halfbyte/t50pro/t50"
)

var (
	device    = flag.String("device", "", "device URI, e.g. btrfcomm://AA:BB:CC:DD:EE:FF or usbhid:///dev/hidraw0")
	scale     = flag.Int("scale", 1, "integer upscaling")
	rotate    = flag.Bool("rotate", false, "print sideways")
	threshold = flag.Uint("threshold", 128, "grayscale threshold, 0-255")
	density   = flag.Int("density", 8, "print density, 0-15")
	marginTop = flag.Int("margin-top", 30, "top margin, dots")
	marginBot = flag.Int("margin-bottom", 30, "bottom margin, dots")
)

func openTransport(uri string) (t50.Transport, error) {
	switch {
	case strings.HasPrefix(uri, "btrfcomm://"):
		return t50.OpenBT(strings.TrimPrefix(uri, "btrfcomm://"), 0)
	case strings.HasPrefix(uri, "usbhid://"):
		return t50.OpenUSB(strings.TrimPrefix(uri, "usbhid://"))
	default:
		return nil, fmt.Errorf("%w: unrecognized device URI %q", t50.ErrInvalidParam, uri)
	}
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s -device URI IMAGE\n", flag.CommandLine.Name())
		flag.PrintDefaults()
	}
	flag.Parse()
	if *device == "" || flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatalln(err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		log.Fatalln(err)
	}
	if *scale > 1 {
		img = &imgutil.Scale{Image: img, Scale: *scale}
	}
	if *rotate {
		img = &imgutil.LeftRotate{Image: img}
	}
	img = imgutil.ScaleToDotWidth(img, t50.PrintheadDots)

	data, w, h := raster.FromImage(img, uint8(*threshold))

	job, err := t50.NewJob(w, h, printbuf.Options{
		MarginTopDots:    *marginTop,
		MarginBottomDots: *marginBot,
		Density:          *density,
	})
	if err != nil {
		log.Fatalln(err)
	}
	bpl := raster.BytesPerLine(w)
	for y := 0; y < h; y++ {
		if err := job.WriteLine(y, data[y*bpl:(y+1)*bpl]); err != nil {
			log.Fatalln(err)
		}
	}

	tr, err := openTransport(*device)
	if err != nil {
		log.Fatalln(err)
	}
	defer tr.Close()

	engine := t50.NewEngine(tr, log.Default())
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := engine.PrintPage(ctx, job); err != nil {
		log.Fatalln(err)
	}
}
