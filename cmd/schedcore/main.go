// Command schedcore is a thin CLI host: parse an XER, MSP-XML, or MPP
// file given as the sole argument and print the normalized Schedule as
// pretty-printed, sorted-key JSON to stdout. Useful for local testing;
// built entirely on the core's public API (detect.Parse).
package main

import (
	"fmt"
	"os"

	"github.com/xerschedule/core/internal/detect"
	"github.com/xerschedule/core/internal/entity"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: schedcore <path-to-export-file>")
		os.Exit(2)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}

	schedule, result, err := detect.Parse(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse failed: %v\n", err)
		os.Exit(1)
	}

	if result != nil && len(result.Messages) > 0 {
		fmt.Fprintf(os.Stderr, "%s\n", result.Summary())
	}

	out, err := entity.MarshalSortedJSON(schedule)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal schedule: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
