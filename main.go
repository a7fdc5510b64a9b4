package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/forumkit/forumkit/cli"
	"github.com/forumkit/forumkit/engine/console"
)

func main() {
	if err := cli.RootCmd().Execute(); err != nil {
		if errors.Is(err, console.ErrCanceled) {
			fmt.Fprintln(os.Stderr, "Aborted.")
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
