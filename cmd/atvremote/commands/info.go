package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atvremote/atvremote-go/pkg/pairing"
	"github.com/atvremote/atvremote-go/pkg/transport"
)

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <host>",
		Short: "Show a device's identity and pairing status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			host := args[0]

			identity, err := loadIdentity()
			if err != nil {
				return err
			}

			port := pairingPort
			if port == 0 {
				port = transport.DefaultPairingPort
			}
			info, err := pairing.Probe(cmd.Context(), host, pairing.Config{
				Port:       port,
				Identity:   identity,
				ClientName: clientName,
			})
			if err != nil {
				return err
			}

			fmt.Printf("host         %s\n", host)
			if info.Name != "" {
				fmt.Printf("name         %s\n", info.Name)
			}
			if info.MAC != "" {
				fmt.Printf("mac          %s\n", info.MAC)
			}
			fmt.Printf("fingerprint  %s\n", info.Fingerprint)

			trust, ok, err := peerStore().Get(host)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("paired       no")
				return nil
			}
			fmt.Printf("paired       %s\n", trust.PairedAt.Format("2006-01-02 15:04"))
			if trust.Fingerprint != info.Fingerprint {
				fmt.Println("warning: device certificate changed since pairing, re-pair required")
			}
			return nil
		},
	}
}
