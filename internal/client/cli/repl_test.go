package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	expired  bool

	calls []string
	args  [][]string
	err   error
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) sessionExpired() bool {
	e := f.expired
	f.expired = false
	return e
}
func (f *fakeExec) Register(_ context.Context, a []string) error { return f.record("register", a) }
func (f *fakeExec) Login(_ context.Context, a []string) error {
	f.loggedIn = true
	return f.record("login", a)
}
func (f *fakeExec) Logout(_ context.Context, a []string) error {
	f.loggedIn = false
	return f.record("logout", a)
}
func (f *fakeExec) Status(_ context.Context, a []string) error     { return f.record("status", a) }
func (f *fakeExec) Dashboard(_ context.Context, a []string) error  { return f.record("dashboard", a) }
func (f *fakeExec) Items(_ context.Context, a []string) error      { return f.record("items", a) }
func (f *fakeExec) Item(_ context.Context, a []string) error       { return f.record("item", a) }
func (f *fakeExec) Image(_ context.Context, a []string) error      { return f.record("image", a) }
func (f *fakeExec) Categories(_ context.Context, a []string) error { return f.record("categories", a) }
func (f *fakeExec) Warehouses(_ context.Context, a []string) error { return f.record("warehouses", a) }
func (f *fakeExec) Suppliers(_ context.Context, a []string) error  { return f.record("suppliers", a) }
func (f *fakeExec) Operations(_ context.Context, a []string) error { return f.record("operations", a) }
func (f *fakeExec) Inbound(_ context.Context, a []string) error    { return f.record("inbound", a) }
func (f *fakeExec) Outbound(_ context.Context, a []string) error   { return f.record("outbound", a) }
func (f *fakeExec) Transfer(_ context.Context, a []string) error   { return f.record("transfer", a) }
func (f *fakeExec) Scan(_ context.Context, a []string) error       { return f.record("scan", a) }

func run(exec execIface, lines ...string) string {
	var out bytes.Buffer
	in := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	runREPL(context.Background(), exec, func() string { return "status" }, in, &out)
	return out.String()
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	exec := &fakeExec{}

	out := run(exec,
		"help",
		"login",
		"help",
		"dashboard",
		"items 螺栓 M8",
		"item 3",
		"scan 6901234567890",
		"foobar",
		"",
		"logout",
		"exit",
		"items",
	)

	assert.Equal(t, []string{"login", "dashboard", "items", "item", "scan", "logout"}, exec.calls)
	assert.Equal(t, []string{"螺栓", "M8"}, exec.args[2])
	assert.Contains(t, out, helpGuest)
	assert.Contains(t, out, helpMember)
	assert.Contains(t, out, "Unknown command: foobar")
	assert.Contains(t, out, "Bye!")
	assert.Contains(t, out, "sk status> ")
}

func TestRunREPL_GuardsMemberCommands(t *testing.T) {
	exec := &fakeExec{}

	out := run(exec, "items", "inbound", "status", "quit")

	assert.Equal(t, []string{"status"}, exec.calls)
	assert.Equal(t, 2, strings.Count(out, "请先登录"))
}

func TestRunREPL_PrintsHandlerErrors(t *testing.T) {
	exec := &fakeExec{loggedIn: true, err: errors.New("库存不足，当前库存：5")}

	out := run(exec, "outbound", "exit")

	assert.Contains(t, out, "错误: 库存不足，当前库存：5")
}

func TestRunREPL_AnnouncesExpiredSession(t *testing.T) {
	exec := &fakeExec{loggedIn: true, expired: true}

	out := run(exec, "exit")

	assert.Contains(t, out, "登录已过期")
	assert.Equal(t, 1, strings.Count(out, "登录已过期"))
}

func TestRunREPL_StopsAtEOF(t *testing.T) {
	exec := &fakeExec{loggedIn: true}
	var out bytes.Buffer

	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("items")), &out)

	assert.Equal(t, []string{"items"}, exec.calls, "a final line without newline still runs")
}
