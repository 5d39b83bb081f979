package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"vncpilot/internal/script"
)

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Execute a script file against the remote display",
	Long: `Parses the whole script up front, connects, and executes the commands
in order. The first failing command aborts the rest; events already sent
are not undone. Use "-" to read the script from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readScript(args[0])
		if err != nil {
			return err
		}

		words, unclosed := script.Tokenize(text)
		if unclosed {
			return fmt.Errorf("%s: unterminated quote", args[0])
		}
		cmds, err := script.Parse(words)
		if err != nil {
			return err
		}
		if len(cmds) == 0 {
			return nil
		}

		sess, err := connect(cfgMgr.Get())
		if err != nil {
			return err
		}
		defer sess.close()

		return sess.interp.Run(cmds)
	},
}

func readScript(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
