// Command picamera is the interactive shell: a REPL over a Handle that can
// be opened locally, started as a listening service, or connected to one
// running elsewhere.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/feathercam/picamera/internal/cli"
)

func main() {
	root := &cobra.Command{
		Use:   "picamera",
		Short: "Interactive shell for controlling a Raspberry Pi camera",
		RunE: func(cmd *cobra.Command, args []string) error {
			repl := cli.New(cli.NewStdConsole(os.Stdin, os.Stdout))
			repl.Run()
			return nil
		},
	}

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
