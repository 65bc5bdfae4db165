// Copyright 2026 The Spmcring Authors. All rights reserved.

// Command spmcring-reader opens a ring buffer created by
// spmcring-writer and prints every record it observes, reporting any
// gap detected when the writer has lapped it.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/otterlayer/spmcring"
)

var (
	name           = flag.String("name", "", "shared memory object name (required)")
	underflowFixup = flag.Uint("underflow-fixup", 128, "records to skip past first on overrun")
)

const usage = `spmcring-reader opens a ring buffer created by spmcring-writer and
prints every record it observes until interrupted (Ctrl-C).

usage: spmcring-reader -name <shm-name> [-underflow-fixup N]
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

	reader, err := spmcring.NewReader[sample](*name, uint32(*underflowFixup))
	if err != nil {
		fmt.Fprintf(os.Stderr, "spmcring-reader: %v\n", err)
		os.Exit(1)
	}
	defer reader.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var lastSeq uint64
	haveLast := false
	for {
		s, err := reader.Get(ctx)
		if err != nil {
			fmt.Printf("spmcring-reader: stopping: %v\n", err)
			return
		}
		if haveLast && s.Seq != lastSeq+1 {
			fmt.Printf("spmcring-reader: gap detected: expected seq %d, got %d\n", lastSeq+1, s.Seq)
		}
		lastSeq, haveLast = s.Seq, true
		fmt.Printf("seq=%d ts=%d\n", s.Seq, s.Ts)
		reader.Next(1)
	}
}
