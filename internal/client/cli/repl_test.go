package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	calls []string
	args  map[string][]string
	fail  map[string]error
}

func (f *fakeExec) rec(name string, args []string) error {
	f.calls = append(f.calls, name)
	if f.args == nil {
		f.args = map[string][]string{}
	}
	f.args[name] = args
	return f.fail[name]
}

func (f *fakeExec) Connect(_ context.Context, a []string) error     { return f.rec("connect", a) }
func (f *fakeExec) Account(_ context.Context, a []string) error     { return f.rec("account", a) }
func (f *fakeExec) ImportKey(_ context.Context, a []string) error   { return f.rec("import", a) }
func (f *fakeExec) GenerateKey(_ context.Context, a []string) error { return f.rec("generate", a) }
func (f *fakeExec) Lock(_ context.Context, a []string) error        { return f.rec("lock", a) }
func (f *fakeExec) Fee(_ context.Context, a []string) error         { return f.rec("fee", a) }
func (f *fakeExec) Upload(_ context.Context, a []string) error      { return f.rec("upload", a) }
func (f *fakeExec) Cert(_ context.Context, a []string) error        { return f.rec("cert", a) }
func (f *fakeExec) Create(_ context.Context, a []string) error      { return f.rec("create", a) }
func (f *fakeExec) Mint(_ context.Context, a []string) error        { return f.rec("mint", a) }
func (f *fakeExec) Market(_ context.Context, a []string) error      { return f.rec("market", a) }
func (f *fakeExec) Mine(_ context.Context, a []string) error        { return f.rec("mine", a) }
func (f *fakeExec) Listed(_ context.Context, a []string) error      { return f.rec("listed", a) }
func (f *fakeExec) Show(_ context.Context, a []string) error        { return f.rec("show", a) }
func (f *fakeExec) Buy(_ context.Context, a []string) error         { return f.rec("buy", a) }
func (f *fakeExec) Resell(_ context.Context, a []string) error      { return f.rec("resell", a) }
func (f *fakeExec) Cancel(_ context.Context, a []string) error      { return f.rec("cancel", a) }

func lines(input ...string) func() (string, error) {
	sc := bufio.NewScanner(strings.NewReader(strings.Join(input, "\n")))
	return func() (string, error) {
		if !sc.Scan() {
			return "", errors.New("eof")
		}
		return sc.Text(), nil
	}
}

func capture(t *testing.T) *[]string {
	t.Helper()
	var out []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		out = append(out, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &out
}

func TestRunREPL_Dispatch(t *testing.T) {
	out := capture(t)
	exec := &fakeExec{}

	runREPL(context.Background(), exec, func() string { return "" }, lines(
		"help",
		"connect",
		"",
		"upload ./kawung.png",
		"market",
		"show 7",
		"resell 7 1.25",
		"foobar",
		"exit",
		"buy 1",
	))

	assert.Equal(t, []string{"connect", "upload", "market", "show", "resell"}, exec.calls)
	assert.Equal(t, []string{"7", "1.25"}, exec.args["resell"])
	assert.Equal(t, []string{"./kawung.png"}, exec.args["upload"])

	joined := strings.Join(*out, "\n")
	assert.Contains(t, joined, "Available commands")
	assert.Contains(t, joined, "Unknown command: foobar")
	assert.Contains(t, joined, "Bye!")
}

func TestRunREPL_ErrorsDoNotStopLoop(t *testing.T) {
	out := capture(t)
	exec := &fakeExec{fail: map[string]error{"buy": errors.New("insufficient funds")}}

	runREPL(context.Background(), exec, func() string { return "" }, lines("buy 1", "mine"))

	assert.Equal(t, []string{"buy", "mine"}, exec.calls)
	assert.Contains(t, strings.Join(*out, "\n"), "error: insufficient funds")
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	capture(t)
	exec := &fakeExec{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runREPL(ctx, exec, func() string { return "" }, lines("market", "mine"))

	assert.Equal(t, []string{"market"}, exec.calls)
}

func TestRunREPL_PromptShowsStatus(t *testing.T) {
	out := capture(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "(0xf39F...2266) " }, lines("exit"))

	assert.Equal(t, "batik (0xf39F...2266) > ", (*out)[0])
}
