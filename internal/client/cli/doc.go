// Package cli provides the interactive StockKeeper command-line client.
//
// It wires the gateway and services into a REPL. Typical flow: prompt for
// credentials unless a remembered session exists, start a background
// connectivity watcher, and execute user commands until "exit".
//
// Key features:
//   - Login / Register / Logout, with "remember me" choosing the durable tier
//   - Dashboard snapshot, item / category / warehouse / supplier listings
//   - Inbound, outbound and transfer operations
//   - Scan: resolve a barcode and book a quick inbound
//
// When the gateway gives up on a session it navigates to the LoginBoundary;
// the REPL notices before the next prompt and asks the user to log in again.
package cli
