package main

import (
	"fmt"
	"os"

	"GuardVision/stubserver"
)

func main() {
	r := stubserver.New(stubserver.DefaultPrediction())
	fmt.Println("Stub inference service listening on :8000")
	if err := r.Run(":8000"); err != nil {
		fmt.Fprintln(os.Stderr, "stub server failed:", err)
		os.Exit(1)
	}
}
