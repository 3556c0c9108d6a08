// Package cli provides the interactive batiknft command-line client.
//
// It wires configuration, the local SQLite store, the wallet, the pinning
// backend, the ledger gateway and the marketplace service, then runs a
// read-eval-print loop. Typical flow: connect (or import) a wallet, upload
// an image, issue a certificate, create a token, and browse or trade
// listings.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
