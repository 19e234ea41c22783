package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/danmuck/cecscope/internal/capture"
	"github.com/danmuck/cecscope/internal/cec"
)

type outputOptions struct {
	JSON    bool
	Verbose bool
}

// printFrame writes one decoded frame as "<src> -> <dst>: <summary>", or as
// a JSON line.
func printFrame(w io.Writer, f *cec.DecodedFrame, meta capture.Frame, opts outputOptions) error {
	if opts.JSON {
		return json.NewEncoder(w).Encode(f)
	}
	if _, err := fmt.Fprintf(w, "%s -> %s: %s\n", f.Source(), f.Dest(), f.Summary); err != nil {
		return err
	}
	if !opts.Verbose {
		return nil
	}

	if !meta.Timestamp.IsZero() {
		fmt.Fprintf(w, "    at %s%s\n", meta.Timestamp.UTC().Format(time.RFC3339Nano), flagText(meta.Flags))
	}
	for _, field := range f.Fields {
		fmt.Fprintf(w, "    %s = %s\n", field.Name, field.Display())
	}
	for _, d := range f.Diagnostics {
		fmt.Fprintf(w, "    [%s] %s\n", d.Severity, d.Message)
	}
	return nil
}

func flagText(flags uint8) string {
	var s string
	if flags&capture.FlagOutgoing != 0 {
		s += " outgoing"
	}
	if flags&capture.FlagNacked != 0 {
		s += " nacked"
	}
	return s
}
