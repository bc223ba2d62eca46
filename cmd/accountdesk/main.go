// Command accountdesk reviews Level 1 and Level 2 accounts and promotes a
// selection in bulk.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/accountdesk/internal/cli"
	"github.com/rshade/accountdesk/pkg/version"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the root command and returns the process exit code.
func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.GetVersion())
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
