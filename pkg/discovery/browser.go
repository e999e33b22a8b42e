package discovery

import (
	"context"
	"net"
	"strings"

	"github.com/enbility/zeroconf/v3"
)

// Config configures a Browser.
type Config struct {
	// Interface restricts browsing to one network interface by name.
	// Empty browses all multicast-capable interfaces.
	Interface string
}

// browseFunc feeds announcements into entries and removals into removed
// until ctx ends, returning the terminal browse error.
type browseFunc func(ctx context.Context, entries, removed chan *zeroconf.ServiceEntry) error

// Browser discovers devices over mDNS.
type Browser struct {
	config   Config
	browseFn browseFunc
}

// NewBrowser creates an mDNS browser.
func NewBrowser(config Config) *Browser {
	b := &Browser{config: config}
	b.browseFn = func(ctx context.Context, entries, removed chan *zeroconf.ServiceEntry) error {
		return zeroconf.Browse(ctx, ServiceType, Domain, entries, removed, b.clientOptions()...)
	}
	return b
}

// Browse searches for devices until ctx is cancelled. Announcements are
// aggregated by instance name and each device is emitted once; addresses
// announced later on other interfaces are merged into the browser's own
// record, never into a Service already handed to the consumer. The error
// channel yields the browse failure, if any, once the service channel has
// closed.
func (b *Browser) Browse(ctx context.Context) (<-chan *Service, <-chan error) {
	out := make(chan *Service)
	errc := make(chan error, 1)

	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)

	browseDone := make(chan error, 1)
	go func() {
		browseDone <- b.browseFn(ctx, entries, removed)
	}()

	go func() {
		defer close(errc)
		defer close(out)

		services := make(map[string]*Service)

		for {
			select {
			case err := <-browseDone:
				if err != nil && ctx.Err() == nil {
					errc <- err
				}
				return

			case entry, ok := <-entries:
				if !ok {
					return
				}
				svc := entryToService(entry)
				if svc == nil {
					continue
				}

				if existing, found := services[svc.InstanceName]; found {
					existing.Addresses = mergeAddresses(existing.Addresses, svc.Addresses)
					continue
				}
				services[svc.InstanceName] = svc

				// Deliver a copy so later merges cannot race a
				// consumer holding the emitted Service.
				emit := *svc
				select {
				case out <- &emit:
				case <-ctx.Done():
					return
				}

			case entry, ok := <-removed:
				if !ok {
					continue
				}
				delete(services, entry.Instance)

			case <-ctx.Done():
				return
			}
		}
	}()

	return out, errc
}

// FindFirst returns the first device found. It returns the browse error
// when browsing itself failed, otherwise ErrNotFound when ctx expires.
func (b *Browser) FindFirst(ctx context.Context) (*Service, error) {
	results, errc := b.Browse(ctx)

	select {
	case svc, ok := <-results:
		if !ok {
			if err := <-errc; err != nil {
				return nil, err
			}
			return nil, ErrNotFound
		}
		return svc, nil
	case <-ctx.Done():
		return nil, ErrNotFound
	}
}

// FindByName returns the device whose instance name matches name
// (case-insensitive). It returns the browse error when browsing itself
// failed, otherwise ErrNotFound when ctx expires.
func (b *Browser) FindByName(ctx context.Context, name string) (*Service, error) {
	results, errc := b.Browse(ctx)

	for {
		select {
		case svc, ok := <-results:
			if !ok {
				if err := <-errc; err != nil {
					return nil, err
				}
				return nil, ErrNotFound
			}
			if strings.EqualFold(svc.InstanceName, name) {
				return svc, nil
			}
		case <-ctx.Done():
			return nil, ErrNotFound
		}
	}
}

func (b *Browser) clientOptions() []zeroconf.ClientOption {
	var opts []zeroconf.ClientOption
	if b.config.Interface != "" {
		iface, err := net.InterfaceByName(b.config.Interface)
		if err == nil {
			opts = append(opts, zeroconf.SelectIfaces([]net.Interface{*iface}))
		}
	}
	return opts
}

// entryToService converts a zeroconf entry. Entries without any address
// are dropped.
func entryToService(entry *zeroconf.ServiceEntry) *Service {
	addrs := make([]string, 0, len(entry.AddrIPv4)+len(entry.AddrIPv6))
	for _, ip := range entry.AddrIPv4 {
		addrs = append(addrs, ip.String())
	}
	for _, ip := range entry.AddrIPv6 {
		addrs = append(addrs, ip.String())
	}
	if len(addrs) == 0 {
		return nil
	}

	return &Service{
		InstanceName: entry.Instance,
		Host:         entry.HostName,
		Port:         entry.Port,
		Addresses:    addrs,
		TXT:          parseTXT(entry.Text),
	}
}
