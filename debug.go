package main

import "log"

// dropError is the driver's diagnostic logger for cold paths (setup,
// persistence, teardown).
//
// Behavior:
//   - If `err != nil`, prints:   "<prefix>: <error>"
//   - If `err == nil`, prints:   "<prefix>" (used as a cheap phase trace)
//
// It is intentionally unformatted and minimal — avoid extending.
//
//go:nosplit
//go:inline
func dropError(prefix string, err error) {
	if err != nil {
		log.Printf("%s: %v", prefix, err)
	} else {
		log.Print(prefix)
	}
}

// dropMessage tags a phase trace with a short payload, avoiding fmt
// formatting on paths that run once per phase.
//
//go:nosplit
//go:inline
func dropMessage(prefix, message string) {
	log.Print(prefix + ": " + message)
}
