// Package main is the CityPulse server binary.
package main

import (
	"fmt"
	"os"
)

// @title CityPulse API
// @version 1.0
// @description Public transit rider comment collection and sentiment dashboard API.
// @BasePath /api
func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
