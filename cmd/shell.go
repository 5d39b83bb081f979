package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"vncpilot/internal/script"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Run commands interactively, one line at a time",
	Long: `Reads command lines from stdin and executes each against the remote
display. A line ending inside a quoted string continues on the next line.
Errors are reported and the session continues with the next line.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := connect(cfgMgr.Get())
		if err != nil {
			return err
		}
		defer sess.close()

		in := bufio.NewScanner(os.Stdin)
		var pending string
		prompt := "vncpilot> "
		for {
			fmt.Print(prompt)
			if !in.Scan() {
				break
			}
			line := in.Text()

			if pending != "" {
				line = pending + "\n" + line
			}
			words, unclosed := script.Tokenize(line)
			if unclosed {
				pending = line
				prompt = "... "
				continue
			}
			pending = ""
			prompt = "vncpilot> "

			switch strings.TrimSpace(line) {
			case "exit", "quit":
				return nil
			case "help":
				commandsCmd.Run(cmd, nil)
				continue
			}

			cmds, err := script.Parse(words)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				continue
			}
			if err := sess.interp.Run(cmds); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
			}
		}
		if err := in.Err(); err != nil {
			return err
		}
		if pending != "" {
			return errors.New("unterminated quote at end of input")
		}
		return nil
	},
}
