// Package pairing implements the client side of the Android TV pairing
// protocol.
//
// Pairing runs once per device on the pairing channel (port 6467) and
// establishes mutual trust between the client certificate and the device.
// The exchange is strictly sequential:
//
//	client                      device
//	  | pairing_request           |
//	  |          pairing_request_ack
//	  | options                   |
//	  |                   options |
//	  | configuration             |
//	  |         configuration_ack |
//	  |  (user reads code off TV) |
//	  | secret                    |
//	  |                secret_ack |
//
// The device then shows a 6 character hexadecimal code on screen. The
// client hashes both certificates' RSA parameters together with the code
// to form the secret; the device verifies it knows the same inputs. The
// first two code characters are a check byte the client verifies locally
// before sending, so most typos are caught without a round trip.
//
// After secret_ack the device persists the client certificate and the
// remote control channel (port 6466) accepts connections from it.
package pairing
