package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/arguslabs/argus/internal/cli"
	"github.com/arguslabs/argus/internal/fls"
	"github.com/arguslabs/argus/internal/fuzzy"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		switch {
		case errors.Is(err, fuzzy.ErrUnknownTNorm):
			os.Exit(2)
		case errors.Is(err, fls.ErrNonConvergence):
			os.Exit(3)
		default:
			os.Exit(1)
		}
	}
}
