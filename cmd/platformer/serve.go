package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the platformer SSH server",
	Long: `Start an SSH server that lets users connect and play levels.

Each SSH connection gets its own session with the level picker.
Runs are recorded under the SSH user name in the shared database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.platformer/host_key

Examples:
  platformer serve                           # Listen on :23234 with auto-generated key
  platformer serve --ssh :2222               # Listen on port 2222
  platformer serve --host-key ./my_host_key  # Use specific host key
  platformer serve --db ./runs.db            # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, preset, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	srvCfg := tui.DefaultSSHServerConfig()
	srvCfg.Address = flagSSHAddr
	srvCfg.HostKeyPath = flagHostKey
	srvCfg.DBPath = flagDBPath
	srvCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	srvCfg.Difficulty = preset
	srvCfg.TickRate = cfg.Gameplay.FPS
	if flagFPS > 0 {
		srvCfg.TickRate = flagFPS
	}

	server, err := tui.NewSSHServer(srvCfg, gameFactory(cfg, logger), logger.WithPrefix("platformer-ssh"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting platformer SSH server on %s\n", server.Addr())
	fmt.Printf("Connect with: ssh localhost -p %s\n", port(server.Addr()))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// port returns the port part of a listen address.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
