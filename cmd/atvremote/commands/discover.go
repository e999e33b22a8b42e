package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/atvremote/atvremote-go/pkg/discovery"
)

func discoverCmd() *cobra.Command {
	var timeout time.Duration
	var iface string

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Find Android TV devices on the local network",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			browser := discovery.NewBrowser(discovery.Config{Interface: iface})
			results, errc := browser.Browse(ctx)

			found := 0
			for svc := range results {
				found++
				fmt.Printf("%-30s %s port %d", svc.InstanceName, svc.Address(), svc.RemotePort())
				if mac := svc.TXT["bt"]; mac != "" {
					fmt.Printf("  bt %s", mac)
				}
				fmt.Println()
			}
			if err := <-errc; err != nil {
				return err
			}
			if found == 0 {
				fmt.Println("no devices found")
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "how long to browse")
	cmd.Flags().StringVar(&iface, "interface", "", "browse on one network interface only")
	return cmd
}
