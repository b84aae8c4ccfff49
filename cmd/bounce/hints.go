package main

import (
	"fmt"

	"github.com/Faultbox/bounce/internal/controls"
)

func printHotkeys() {
	fmt.Println("Drag with the left mouse button to rotate, scroll to zoom, WASD/QE to move.")
	for _, h := range controls.Hotkeys {
		fmt.Printf("  %-9s %s\n", h.Key, h.Help)
	}
}
