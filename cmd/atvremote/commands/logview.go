package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atvremote/atvremote-go/pkg/log"
)

func logCmd() *cobra.Command {
	var (
		layerName   string
		direction   string
		channelName string
		connID      string
	)

	cmd := &cobra.Command{
		Use:   "log <file.atvlog>",
		Short: "View a protocol log file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := buildFilter(layerName, direction, channelName, connID)
			if err != nil {
				return err
			}

			reader, err := log.NewFilteredReader(args[0], filter)
			if err != nil {
				return err
			}
			defer reader.Close()

			for {
				event, err := reader.Next()
				if err == io.EOF {
					return nil
				}
				if err != nil {
					return err
				}
				formatEvent(os.Stdout, event)
			}
		},
	}

	cmd.Flags().StringVar(&layerName, "layer", "", "filter by layer: transport, wire, pairing, session")
	cmd.Flags().StringVar(&direction, "direction", "", "filter by direction: in, out")
	cmd.Flags().StringVar(&channelName, "channel", "", "filter by channel: pairing, remote")
	cmd.Flags().StringVar(&connID, "conn", "", "filter by connection ID")
	return cmd
}

func buildFilter(layerName, direction, channelName, connID string) (log.Filter, error) {
	filter := log.Filter{ConnectionID: connID}

	switch strings.ToLower(layerName) {
	case "":
	case "transport":
		l := log.LayerTransport
		filter.Layer = &l
	case "wire":
		l := log.LayerWire
		filter.Layer = &l
	case "pairing":
		l := log.LayerPairing
		filter.Layer = &l
	case "session":
		l := log.LayerSession
		filter.Layer = &l
	default:
		return filter, fmt.Errorf("unknown layer %q", layerName)
	}

	switch strings.ToLower(direction) {
	case "":
	case "in":
		d := log.DirectionIn
		filter.Direction = &d
	case "out":
		d := log.DirectionOut
		filter.Direction = &d
	default:
		return filter, fmt.Errorf("unknown direction %q", direction)
	}

	switch strings.ToLower(channelName) {
	case "":
	case "pairing":
		c := log.ChannelPairing
		filter.Channel = &c
	case "remote":
		c := log.ChannelRemote
		filter.Channel = &c
	default:
		return filter, fmt.Errorf("unknown channel %q", channelName)
	}

	return filter, nil
}

// formatEvent writes a human-readable representation of one event.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	connID := event.ConnectionID
	if len(connID) > 8 {
		connID = connID[:8]
	}

	var label string
	switch {
	case event.Frame != nil:
		label = "Frame"
	case event.Message != nil:
		label = event.Message.Kind
	case event.StateChange != nil:
		label = "State"
	case event.KeepAlive != nil:
		label = event.KeepAlive.Type.String()
	case event.Error != nil:
		label = "Error"
	default:
		label = "Unknown"
	}

	fmt.Fprintf(w, "%s [conn:%s] %-3s %s %s %s\n",
		ts, connID, event.Direction, event.Channel, event.Layer, label)

	switch {
	case event.Frame != nil:
		fmt.Fprintf(w, "  size: %d bytes\n", event.Frame.Size)
		if len(event.Frame.Data) > 0 {
			fmt.Fprintf(w, "  data: %s", hex.EncodeToString(event.Frame.Data))
			if event.Frame.Truncated {
				fmt.Fprint(w, " (truncated)")
			}
			fmt.Fprintln(w)
		}
	case event.Message != nil:
		fmt.Fprintf(w, "  size: %d bytes\n", event.Message.Size)
		if event.Message.Status != nil {
			fmt.Fprintf(w, "  status: %d\n", *event.Message.Status)
		}
	case event.StateChange != nil:
		sc := event.StateChange
		if sc.OldState != "" {
			fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
		} else {
			fmt.Fprintf(w, "  -> %s\n", sc.NewState)
		}
		if sc.Reason != "" {
			fmt.Fprintf(w, "  reason: %s\n", sc.Reason)
		}
	case event.KeepAlive != nil:
		fmt.Fprintf(w, "  val: %d\n", event.KeepAlive.Val)
	case event.Error != nil:
		fmt.Fprintf(w, "  %s: %s\n", event.Error.Layer, event.Error.Message)
	}
}
