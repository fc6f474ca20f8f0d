//go:build rp2040 || rp2350

package main

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ws2812"

	"sigreader/core"
)

var statusLED ws2812.Device

var (
	ledHealthy = color.RGBA{G: 0x10}
	ledOverrun = color.RGBA{R: 0x10, G: 0x08}
	ledIOError = color.RGBA{R: 0x10}
)

func initStatusLED() {
	statusLEDPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	statusLED = ws2812.NewWS2812(statusLEDPin)
}

// setStatusLED mirrors the most severe current condition on the LED.
func setStatusLED(r core.Report) {
	c := ledHealthy
	switch {
	case r.FatalIOError:
		c = ledIOError
	case r.Overrun:
		c = ledOverrun
	}
	statusLED.WriteColors([]color.RGBA{c})
}
