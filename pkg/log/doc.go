// Package log provides structured protocol logging for the Android TV
// remote client.
//
// This package defines the Logger interface and Event types for capturing
// protocol-level events at multiple layers (transport, wire, pairing,
// session). It is separate from operational logging (slog) - protocol
// capture provides a complete machine-readable event trace for debugging
// and analysis.
//
// # Basic Usage
//
// Applications configure logging by providing a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.Logger = log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	cfg.Logger, _ = log.NewFileLogger("/var/log/atvremote/trace.atvlog")
//
//	// Both: use MultiLogger
//	cfg.Logger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    log.NewFileLogger("/var/log/atvremote/trace.atvlog"),
//	)
//
// # Event Types
//
// Events are captured at multiple layers:
//   - Transport: Raw frame bytes (FrameEvent)
//   - Wire: Decoded messages (MessageEvent)
//   - Pairing/Session: State changes (StateChangeEvent)
//
// Keep-alive traffic (ping/pong) and errors have dedicated event types.
//
// # File Format
//
// Log files use CBOR encoding with .atvlog extension. The atvremote CLI
// "log" command provides viewing and filtering.
package log
