// Copyright 2026 The Spmcring Authors. All rights reserved.

// Command spmcring-writer demonstrates the Writer side of a named
// shared-memory ring buffer: it creates the region and pushes a
// monotonically increasing sequence of samples at a fixed rate until
// interrupted.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/otterlayer/spmcring"
)

var (
	name          = flag.String("name", "", "shared memory object name (required)")
	capacity      = flag.Uint("capacity", 4096, "ring buffer capacity, must be a power of two")
	interval      = flag.Duration("interval", 10*time.Millisecond, "time between pushes")
	removeOnClose = flag.Bool("remove-on-close", true, "unlink the shared memory object on exit")
)

const usage = `spmcring-writer creates a named ring buffer of timestamped sequence
samples and pushes to it at -interval until interrupted (Ctrl-C).

usage: spmcring-writer -name <shm-name> [-capacity N] [-interval D]
`

type sample struct {
	Seq uint64
	Ts  int64
}

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()
	if *name == "" {
		flag.Usage()
		os.Exit(2)
	}

	writer, err := spmcring.NewWriter[sample](*name, uint32(*capacity), *removeOnClose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "spmcring-writer: %v\n", err)
		os.Exit(1)
	}
	defer writer.Close()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	var seq uint64
	fmt.Printf("spmcring-writer: publishing to %q, capacity %d\n", *name, writer.Capacity())
	for {
		select {
		case <-ticker.C:
			writer.Emplace(func(s *sample) {
				s.Seq = seq
				s.Ts = time.Now().UnixNano()
			})
			seq++
		case <-sig:
			fmt.Printf("spmcring-writer: pushed %d records, exiting\n", seq)
			return
		}
	}
}
