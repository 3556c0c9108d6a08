package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/dmitrijs2005/batiknft/internal/client/services"
	"github.com/dmitrijs2005/batiknft/internal/logging"
	"github.com/dmitrijs2005/batiknft/internal/reconstruct"
	"github.com/dmitrijs2005/batiknft/internal/session"
)

// KeyVault is the part of wallet.Vault the key commands use. It is nil when
// the wallet is a single configured key.
type KeyVault interface {
	Import(ctx context.Context, hexKey string, passphrase []byte) (ethcommon.Address, error)
	Generate(ctx context.Context, passphrase []byte) (ethcommon.Address, error)
	Lock()
}

type App struct {
	market  services.MarketService
	vault   KeyVault
	session *session.Session
	logger  logging.Logger

	reader *bufio.Reader
	out    io.Writer
	closer func() error

	// remembered between commands
	lastImage string
	draft     *services.CertificateDraft
	records   []reconstruct.ListingRecord
}

func newApp(market services.MarketService, vault KeyVault, sess *session.Session, logger logging.Logger, in io.Reader, out io.Writer) *App {
	if sess == nil {
		sess = session.New()
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &App{
		market:  market,
		vault:   vault,
		session: sess,
		logger:  logger.With("module", "cli"),
		reader:  bufio.NewReader(in),
		out:     out,
	}
}

func (a *App) readLine() (string, error) {
	line, err := a.reader.ReadString('\n')
	return strings.TrimSpace(line), err
}

func (a *App) status() string {
	var parts []string
	if a.session.Connected() {
		parts = append(parts, shortAddress(a.session.Account()))
	}
	if a.session.Busy() {
		parts = append(parts, a.session.State().String())
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ") "
}

// Run silently restores the last account and starts the REPL. It blocks
// until the user exits or ctx ends.
func (a *App) Run(ctx context.Context) {
	if a.closer != nil {
		defer func() {
			if err := a.closer(); err != nil {
				a.logger.Warn(ctx, "close", "error", err)
			}
		}()
	}

	printlnFn("Welcome to Batik NFT marketplace (type 'help' for commands)")
	if account, err := a.market.CurrentAccount(ctx); err != nil {
		a.logger.Warn(ctx, "restore account", "error", err)
	} else if account != (ethcommon.Address{}) {
		printlnFn("Connected as", account.Hex())
	}

	runREPL(ctx, a, a.status, a.readLine)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func shortAddress(a ethcommon.Address) string {
	h := a.Hex()
	return h[:6] + "..." + h[len(h)-4:]
}
