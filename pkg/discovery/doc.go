// Package discovery finds Android TV devices on the local network.
//
// Devices announce the remote service over mDNS as _androidtvremote2._tcp
// in the local domain. The advertised port is the remote channel port; the
// pairing channel conventionally sits one port above it. TXT records carry
// the device's Bluetooth MAC under the "bt" key on most firmwares.
//
// Browsing aggregates announcements by instance name, so a device visible
// on several interfaces appears once with all of its addresses.
package discovery
