// vncpilot - scripted input automation for remote displays.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"vncpilot/internal/automation"
	"vncpilot/internal/config"
	"vncpilot/internal/keymap"
	"vncpilot/internal/remote"
	"vncpilot/internal/script"
)

var version = "0.1.0"

var cfgMgr *config.Manager

var rootCmd = &cobra.Command{
	Use:   "vncpilot",
	Short: "Script keyboard and mouse input against a remote display",
	Long: `vncpilot connects to a remote display over a websocket endpoint and
executes automation scripts: typed text, key combinations, clicks,
scrolling, pointer moves and screenshots, with reproducible timing.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return cfgMgr.Load()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vncpilot version %s\n", version)
	},
}

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the script commands",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range script.CommandNames() {
			spec, _ := script.LookupSpec(name)
			sig := name
			for _, at := range spec.Args {
				sig += fmt.Sprintf(" <%s>", at)
			}
			fmt.Printf("  %-28s %s\n", sig, spec.Description)
		}
	},
}

func main() {
	var err error
	cfgMgr, err = config.NewManager()
	if err != nil {
		log.Fatalf("Config: %v", err)
	}

	flags := rootCmd.PersistentFlags()
	flags.String("host", "", "websocket URL of the remote display")
	flags.String("keymap", "", "keysym translation layout (US, US-mac, direct)")
	flags.Int("toggle-delay", 0, "press-to-release delay in milliseconds")
	flags.Int("double-click-delay", 0, "delay between repeated clicks in milliseconds")
	flags.Int("key-interval", 0, "delay between typed characters in milliseconds")

	v := cfgMgr.Viper()
	for key, name := range map[string]string{
		"host":                  "host",
		"keymap":                "keymap",
		"toggle_delay_ms":       "toggle-delay",
		"double_click_delay_ms": "double-click-delay",
		"key_interval_ms":       "key-interval",
	} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			log.Fatalf("Config: bind --%s: %v", name, err)
		}
	}

	rootCmd.AddCommand(runCmd, shellCmd, commandsCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "vncpilot: %v\n", err)
		os.Exit(1)
	}
}

// session bundles the connected transport with its executor and
// interpreter.
type session struct {
	client *remote.Client
	interp *automation.Interpreter
}

// connect dials the configured endpoint and wires up the executor.
func connect(cfg *config.Config) (*session, error) {
	km, ok := keymap.Lookup(cfg.Keymap)
	if !ok {
		return nil, fmt.Errorf("unknown keymap %q", cfg.Keymap)
	}

	client := remote.NewClient(cfg.Host)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := client.Connect(ctx); err != nil {
		return nil, err
	}

	delays := automation.Delays{
		Toggle:      time.Duration(cfg.ToggleDelayMs) * time.Millisecond,
		DoubleClick: time.Duration(cfg.DoubleClickDelayMs) * time.Millisecond,
		BetweenKeys: time.Duration(cfg.KeyIntervalMs) * time.Millisecond,
	}
	exec := automation.New(client, keymap.New(km), delays)
	interp := automation.NewInterpreter(exec)
	interp.CaptureDir = cfg.CaptureDir
	return &session{client: client, interp: interp}, nil
}

func (s *session) close() {
	s.client.Close()
}
