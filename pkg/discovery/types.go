package discovery

import (
	"errors"
	"strings"

	"github.com/atvremote/atvremote-go/pkg/transport"
)

// mDNS service parameters for the Android TV remote protocol.
const (
	// ServiceType is the mDNS service type devices announce.
	ServiceType = "_androidtvremote2._tcp"

	// Domain is the mDNS browse domain.
	Domain = "local"
)

// ErrNotFound indicates no matching device was found before the deadline.
var ErrNotFound = errors.New("device not found")

// Service describes one discovered device.
type Service struct {
	// InstanceName is the device's announced name, e.g. "Living Room TV".
	InstanceName string

	// Host is the mDNS hostname.
	Host string

	// Port is the announced remote channel port.
	Port int

	// Addresses are the device's IPv4 and IPv6 addresses, deduplicated
	// across interfaces.
	Addresses []string

	// TXT holds the announcement's TXT records, e.g. "bt" for the
	// device's Bluetooth MAC.
	TXT map[string]string
}

// Address returns the first address, preferring IPv4, or "" if none.
func (s *Service) Address() string {
	if len(s.Addresses) == 0 {
		return ""
	}
	for _, addr := range s.Addresses {
		if !strings.Contains(addr, ":") {
			return addr
		}
	}
	return s.Addresses[0]
}

// RemotePort returns the announced remote channel port, falling back to
// the protocol default.
func (s *Service) RemotePort() int {
	if s.Port > 0 {
		return s.Port
	}
	return transport.DefaultRemotePort
}

// PairingPort returns the pairing channel port. Devices do not announce
// it; it sits one above the remote port by convention.
func (s *Service) PairingPort() int {
	return s.RemotePort() + 1
}

// parseTXT splits "key=value" records into a map. Records without "=" are
// stored with an empty value.
func parseTXT(records []string) map[string]string {
	if len(records) == 0 {
		return nil
	}
	txt := make(map[string]string, len(records))
	for _, record := range records {
		if record == "" {
			continue
		}
		key, value, _ := strings.Cut(record, "=")
		txt[key] = value
	}
	return txt
}

// mergeAddresses combines both address lists, avoiding duplicates. The
// result is a fresh slice: existing may share its backing array with a
// Service the caller has already handed out.
func mergeAddresses(existing, incoming []string) []string {
	merged := make([]string, len(existing), len(existing)+len(incoming))
	copy(merged, existing)

	seen := make(map[string]bool, len(existing))
	for _, addr := range existing {
		seen[addr] = true
	}
	for _, addr := range incoming {
		if !seen[addr] {
			merged = append(merged, addr)
			seen[addr] = true
		}
	}
	return merged
}
