package commands

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/atvremote/atvremote-go/pkg/keycode"
	"github.com/atvremote/atvremote-go/pkg/remote"
	"github.com/atvremote/atvremote-go/pkg/transport"
	"github.com/atvremote/atvremote-go/pkg/wire"
)

func controlCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "control <host>",
		Short: "Open an interactive control session with a paired device",
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

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          host + "> ",
				InterruptPrompt: "^C",
				EOFPrompt:       "exit",
			})
			if err != nil {
				return err
			}
			defer rl.Close()

			port := remotePort
			if port == 0 {
				port = transport.DefaultRemotePort
			}
			session := remote.NewSession(remote.Config{
				Host:       host,
				Port:       port,
				ClientName: clientName,
				Identity:   identity,
				PeerStore:  peerStore(),
				Reconnect:  true,
				Logger:     logger,
				OnStateChange: func(old, new remote.State) {
					fmt.Fprintf(rl.Stdout(), "[%s]\n", new)
				},
				OnPowerChanged: func(on bool) {
					state := "off"
					if on {
						state = "on"
					}
					fmt.Fprintf(rl.Stdout(), "power %s\n", state)
				},
				OnCurrentApp: func(pkg string) {
					fmt.Fprintf(rl.Stdout(), "app %s\n", pkg)
				},
				OnVolumeChanged: func(v remote.Volume) {
					muted := ""
					if v.Muted {
						muted = " (muted)"
					}
					fmt.Fprintf(rl.Stdout(), "volume %d/%d%s\n", v.Level, v.Max, muted)
				},
				OnDisconnect: func(err error) {
					fmt.Fprintf(rl.Stderr(), "disconnected: %v\n", err)
				},
			})
			defer session.Stop()

			if err := session.Connect(cmd.Context()); err != nil {
				return err
			}

			runControlLoop(rl, session)
			return nil
		},
	}
}

func runControlLoop(rl *readline.Instance, session *remote.Session) {
	printControlHelp(rl)

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		var cmdErr error
		switch cmd {
		case "help", "?":
			printControlHelp(rl)

		case "key", "k":
			cmdErr = cmdKey(session, args)

		case "text", "t":
			cmdErr = session.SendText(strings.TrimSpace(strings.TrimPrefix(input, parts[0])))

		case "app", "a":
			if len(args) != 1 {
				cmdErr = fmt.Errorf("usage: app <link-or-package>")
				break
			}
			cmdErr = session.LaunchApp(args[0])

		case "status", "s":
			printStatus(rl, session)

		case "keys":
			printKeyNames(rl, args)

		case "quit", "exit", "q":
			return

		default:
			// A bare key name works as a shortcut for "key <name>".
			if _, err := keycode.Lookup(cmd); err == nil {
				cmdErr = cmdKey(session, []string{cmd})
			} else {
				fmt.Fprintf(rl.Stderr(), "unknown command %q, try help\n", cmd)
			}
		}

		if cmdErr != nil {
			fmt.Fprintf(rl.Stderr(), "error: %v\n", cmdErr)
		}
	}
}

func cmdKey(session *remote.Session, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: key <name> [long]")
	}
	code, err := keycode.Lookup(args[0])
	if err != nil {
		return err
	}
	if len(args) > 1 && strings.EqualFold(args[1], "long") {
		if err := session.SendKey(code, wire.DirectionStartLong); err != nil {
			return err
		}
		return session.SendKey(code, wire.DirectionEndLong)
	}
	return session.PressKey(code)
}

func printStatus(rl *readline.Instance, session *remote.Session) {
	w := rl.Stdout()
	fmt.Fprintf(w, "state   %s\n", session.State())
	power := "off"
	if session.IsOn() {
		power = "on"
	}
	fmt.Fprintf(w, "power   %s\n", power)
	if app := session.CurrentApp(); app != "" {
		fmt.Fprintf(w, "app     %s\n", app)
	}
	if v := session.Volume(); v.Max > 0 {
		fmt.Fprintf(w, "volume  %d/%d muted=%v\n", v.Level, v.Max, v.Muted)
	}
	if device := session.Device(); device.Model != "" {
		fmt.Fprintf(w, "device  %s %s\n", device.Vendor, device.Model)
	}
}

func printKeyNames(rl *readline.Instance, args []string) {
	filter := ""
	if len(args) > 0 {
		filter = strings.ToUpper(args[0])
	}
	for _, name := range keycode.Names() {
		if filter != "" && !strings.Contains(name, filter) {
			continue
		}
		fmt.Fprintln(rl.Stdout(), name)
	}
}

func printControlHelp(rl *readline.Instance) {
	fmt.Fprint(rl.Stdout(), `commands:
  key <name> [long]   press a key (e.g. key HOME, key POWER long)
  text <string>       type into the focused text field
  app <link>          launch a deep link or package name
  status              show device status
  keys [filter]       list key names
  quit                close the session
a bare key name also works, e.g. just "home"
`)
}
