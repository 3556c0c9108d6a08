package cli

import (
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. The real App
// satisfies it; tests provide a lightweight stub.
type execIface interface {
	Connect(ctx context.Context, args []string) error
	Account(ctx context.Context, args []string) error
	ImportKey(ctx context.Context, args []string) error
	GenerateKey(ctx context.Context, args []string) error
	Lock(ctx context.Context, args []string) error

	Fee(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
	Cert(ctx context.Context, args []string) error
	Create(ctx context.Context, args []string) error
	Mint(ctx context.Context, args []string) error

	Market(ctx context.Context, args []string) error
	Mine(ctx context.Context, args []string) error
	Listed(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error

	Buy(ctx context.Context, args []string) error
	Resell(ctx context.Context, args []string) error
	Cancel(ctx context.Context, args []string) error
}

const helpText = `Available commands:
  connect                  connect the wallet
  account                  show the active account
  import | generate | lock manage vault keys
  fee                      show the listing fee
  upload <path>            pin an image
  cert                     issue a serial number and barcode
  create                   create and list a token
  mint                     create a token without listing it
  market | mine | listed   browse tokens
  show <id>                token details
  buy <id>                 buy a listed token
  resell <id> <price>      list an owned token again
  cancel <id>              withdraw your listing
  exit | quit              leave the program`

// runREPL reads commands with readLine and dispatches them to a until EOF,
// "exit" or "quit". Command errors are reported and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, readLine func() (string, error)) {
	commands := map[string]func(context.Context, []string) error{
		"connect":  a.Connect,
		"account":  a.Account,
		"import":   a.ImportKey,
		"generate": a.GenerateKey,
		"lock":     a.Lock,
		"fee":      a.Fee,
		"upload":   a.Upload,
		"cert":     a.Cert,
		"create":   a.Create,
		"mint":     a.Mint,
		"market":   a.Market,
		"mine":     a.Mine,
		"listed":   a.Listed,
		"show":     a.Show,
		"buy":      a.Buy,
		"resell":   a.Resell,
		"cancel":   a.Cancel,
	}

	for {
		printlnFn(fmt.Sprintf("batik %s> ", statusFn()))
		line, err := readLine()
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		fn, ok := commands[cmd]
		if !ok {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if err := fn(ctx, args); err != nil {
			printlnFn("error:", err)
		}
		if ctx.Err() != nil {
			return
		}
	}
}
