package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// setupSignalHandler returns a channel that is closed when SIGINT or SIGTERM arrives
func setupSignalHandler() <-chan struct{} {
	shutdown := make(chan struct{})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan

		fmt.Fprintf(os.Stderr, "\nReceived signal: %v\n", sig)
		close(shutdown)

		// a second signal terminates immediately
		signal.Stop(sigChan)
	}()

	return shutdown
}
