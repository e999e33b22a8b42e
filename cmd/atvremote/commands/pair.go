package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/atvremote/atvremote-go/pkg/pairing"
	"github.com/atvremote/atvremote-go/pkg/transport"
)

func pairCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pair <host>",
		Short: "Pair with a device using the code shown on its screen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			host := args[0]

			identity, err := loadIdentity()
			if err != nil {
				return err
			}
			logger, closeLogger, err := protocolLogger()
			if err != nil {
				return err
			}
			defer closeLogger()

			port := pairingPort
			if port == 0 {
				port = transport.DefaultPairingPort
			}
			cfg := pairing.Config{
				Port:       port,
				Identity:   identity,
				ClientName: clientName,
				Logger:     logger,
			}

			info, err := pairing.Probe(cmd.Context(), host, cfg)
			if err != nil {
				return err
			}
			if info.Name != "" {
				fmt.Printf("pairing with %s (%s)\n", info.Name, host)
			} else {
				fmt.Printf("pairing with %s\n", host)
			}

			trust, err := pairing.Pair(cmd.Context(), host, promptCode, cfg)
			if err != nil {
				return err
			}

			if err := peerStore().Put(*trust); err != nil {
				return fmt.Errorf("saving trust record: %w", err)
			}
			fmt.Printf("paired with %s (%.16s…)\n", trust.Name, trust.Fingerprint)
			return nil
		},
	}
}

// promptCode reads the code shown on the TV screen.
func promptCode(ctx context.Context) (string, error) {
	rl, err := readline.New("code shown on TV: ")
	if err != nil {
		return "", err
	}
	defer rl.Close()

	line, err := rl.Readline()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
