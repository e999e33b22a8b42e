package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/atvremote/atvremote-go/pkg/cert"
	"github.com/atvremote/atvremote-go/pkg/log"
)

// fileConfig is the optional YAML configuration file, read from
// <state-dir>/config.yaml or the path given with --config.
type fileConfig struct {
	ClientName  string `yaml:"client_name"`
	StateDir    string `yaml:"state_dir"`
	RemotePort  int    `yaml:"remote_port"`
	PairingPort int    `yaml:"pairing_port"`
	LogFile     string `yaml:"log_file"`
}

var (
	cfgPath     string
	stateDir    string
	clientName  string
	logFile     string
	remotePort  int
	pairingPort int
	verbose     bool
)

const defaultClientName = "atvremote-go"

func Execute() error {
	// Ctrl-C cancels cmd.Context(), which unwinds a pairing or
	// handshake stalled on an unresponsive device.
	ctx, stop := signalContext()
	defer stop()

	root := &cobra.Command{
		Use:           "atvremote",
		Short:         "Pair with and control Android TV devices",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return resolveConfig()
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default <state-dir>/config.yaml)")
	root.PersistentFlags().StringVar(&stateDir, "state-dir", "", "state directory (default ~/.atvremote)")
	root.PersistentFlags().StringVar(&clientName, "name", "", "client name shown on the TV during pairing")
	root.PersistentFlags().StringVar(&logFile, "protocol-log", "", "write protocol events to this .atvlog file")
	root.PersistentFlags().IntVar(&remotePort, "port", 0, "remote channel port (default 6466)")
	root.PersistentFlags().IntVar(&pairingPort, "pairing-port", 0, "pairing channel port (default 6467)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print protocol events to stderr")

	root.AddCommand(discoverCmd(), pairCmd(), controlCmd(), infoCmd(), logCmd())
	return root.ExecuteContext(ctx)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// resolveConfig merges flags over the config file over built-in defaults.
// Flags left at their zero value take the file's setting.
func resolveConfig() error {
	path := cfgPath
	if path == "" {
		base := stateDir
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			base = filepath.Join(home, ".atvremote")
		}
		path = filepath.Join(base, "config.yaml")
	}

	var file fileConfig
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	} else if cfgPath != "" {
		// An explicitly named config file must exist.
		return err
	}

	if stateDir == "" {
		stateDir = file.StateDir
	}
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		stateDir = filepath.Join(home, ".atvremote")
	}
	if err := os.MkdirAll(stateDir, 0o700); err != nil {
		return err
	}

	if clientName == "" {
		clientName = file.ClientName
	}
	if clientName == "" {
		clientName = defaultClientName
	}
	if remotePort == 0 {
		remotePort = file.RemotePort
	}
	if pairingPort == 0 {
		pairingPort = file.PairingPort
	}
	if logFile == "" {
		logFile = file.LogFile
	}
	return nil
}

// loadIdentity loads or creates the client certificate under the state dir.
func loadIdentity() (*cert.Identity, error) {
	store := cert.NewFileStore(stateDir, clientName)
	identity, created, err := store.LoadOrCreate()
	if err != nil {
		return nil, err
	}
	if created {
		fmt.Fprintf(os.Stderr, "generated new client identity in %s\n", stateDir)
	}
	return identity, nil
}

func peerStore() *cert.PeerStore {
	return cert.NewPeerStore(filepath.Join(stateDir, "peers.json"))
}

// protocolLogger builds the protocol event logger from --protocol-log and
// --verbose. The returned closer is a no-op when no file is involved.
func protocolLogger() (log.Logger, func(), error) {
	var loggers []log.Logger
	closer := func() {}

	if verbose {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		loggers = append(loggers, log.NewSlogAdapter(slog.New(handler)))
	}
	if logFile != "" {
		fl, err := log.NewFileLogger(logFile)
		if err != nil {
			return nil, nil, err
		}
		loggers = append(loggers, fl)
		closer = func() { fl.Close() }
	}

	switch len(loggers) {
	case 0:
		return log.NoopLogger{}, closer, nil
	case 1:
		return loggers[0], closer, nil
	default:
		return log.NewMultiLogger(loggers...), closer, nil
	}
}
