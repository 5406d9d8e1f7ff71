// Command dump is a forensic hex-dump-plus-interpretation tool for
// wire-format bytes of unknown provenance, grounded on
// original_source/pb/protobuf_dump.cc: it reads a file (or stdin),
// permissively scans it for plausible tag/value structure, and prints the
// rendered span tree.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/vedadiyan/wf"
	"github.com/vedadiyan/wf/inspect"
)

const readChunkSize = 4096

func main() {
	logger := log.New(os.Stderr, "", 0)

	data, err := readInput(os.Args[1:])
	if err != nil {
		logger.Println(err)
		os.Exit(1)
	}

	spans := inspect.ScanPermissive(data)
	for _, line := range inspect.Render(data, spans, inspect.DefaultContext()) {
		fmt.Println(line)
	}
}

// readInput reads from the named file, or from stdin when no argument is
// given, in readChunkSize chunks up to wf.MaxSerializedSize, matching
// protobuf_dump.cc's bounded incremental read loop.
func readInput(args []string) ([]byte, error) {
	r := io.Reader(os.Stdin)
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("dump: %w", err)
		}
		defer f.Close()
		r = f
	}

	var buf []byte
	chunk := make([]byte, readChunkSize)
	for len(buf) <= wf.MaxSerializedSize {
		n, err := r.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dump: read: %w", err)
		}
	}
	if len(buf) > wf.MaxSerializedSize {
		buf = buf[:wf.MaxSerializedSize]
	}
	return buf, nil
}
