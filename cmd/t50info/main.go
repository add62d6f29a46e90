// Command t50info connects to a T50 Pro family printer and prints its
// status and loaded-material information.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/halfbyte/t50pro/t50"
)

var device = flag.String("device", "", "device URI, e.g. btrfcomm://AA:BB:CC:DD:EE:FF or usbhid:///dev/hidraw0")

func openTransport(uri string) (t50.Transport, error) {
	switch {
	case strings.HasPrefix(uri, "btrfcomm://"):
		addr := strings.TrimPrefix(uri, "btrfcomm://")
		return t50.OpenBT(addr, 0)
	case strings.HasPrefix(uri, "usbhid://"):
		path := strings.TrimPrefix(uri, "usbhid://")
		return t50.OpenUSB(path)
	default:
		return nil, fmt.Errorf("%w: unrecognized device URI %q", t50.ErrInvalidParam, uri)
	}
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s -device URI\n", flag.CommandLine.Name())
		flag.PrintDefaults()
	}
	flag.Parse()
	if *device == "" {
		flag.Usage()
		log.Fatalln("-device is required")
	}

	tr, err := openTransport(*device)
	if err != nil {
		log.Fatalln(err)
	}
	defer tr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if resp, err := tr.SendCmd(ctx, 0x12, 0); err != nil {
		log.Fatalln("CHECK_DEVICE:", err)
	} else if err := tr.ValidateResponse(resp, 0x12); err != nil {
		log.Fatalln(err)
	}

	resp, err := tr.SendCmd(ctx, 0x11, 0)
	if err != nil {
		log.Fatalln("INQUIRY_STA:", err)
	}
	status, err := tr.ParseStatus(resp)
	if err != nil {
		log.Fatalln(err)
	}

	fmt.Println("status:")
	fmt.Println("  printing:", status.Printing)
	fmt.Println("  device busy:", status.DeviceBusy)
	fmt.Println("  cover open:", status.CoverOpen)
	fmt.Println("  print count:", status.PrintCount)
	if status.HasError() {
		fmt.Println("  errors:", strings.Join(status.ErrorDescriptions(), ", "))
	}

	matResp, err := tr.SendCmd(ctx, 0x30, 0)
	if err != nil {
		log.Fatalln("RETURN_MAT:", err)
	}
	mi, err := tr.ParseMaterial(matResp)
	if err != nil {
		log.Fatalln(err)
	}

	fmt.Println("material:")
	fmt.Printf("  size: %d x %d mm, gap %d mm\n", mi.WidthMM, mi.HeightMM, mi.GapMM)
	fmt.Println("  label type:", mi.LabelType)
	if mi.Remaining != nil {
		fmt.Println("  remaining:", *mi.Remaining)
	}
	if mi.DeviceSN != nil {
		fmt.Println("  device serial:", *mi.DeviceSN)
	}

	// RD_DEV_NAME (0x16) exists only on the BT protocol.
	if _, isBT := tr.(*t50.TransportBT); isBT {
		if nameResp, err := tr.SendCmd(ctx, 0x16, 0); err == nil {
			if name, ok := tr.ParseDeviceName(nameResp); ok {
				fmt.Println("device name:", name)
			}
		}
	}
}
