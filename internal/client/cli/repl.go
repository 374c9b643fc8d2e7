package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	sessionExpired() bool

	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	Status(ctx context.Context, args []string) error

	Dashboard(ctx context.Context, args []string) error
	Items(ctx context.Context, args []string) error
	Item(ctx context.Context, args []string) error
	Image(ctx context.Context, args []string) error
	Categories(ctx context.Context, args []string) error
	Warehouses(ctx context.Context, args []string) error
	Suppliers(ctx context.Context, args []string) error
	Operations(ctx context.Context, args []string) error
	Inbound(ctx context.Context, args []string) error
	Outbound(ctx context.Context, args []string) error
	Transfer(ctx context.Context, args []string) error
	Scan(ctx context.Context, args []string) error
}

const (
	helpGuest  = "Available commands: register, login, status, exit"
	helpMember = "Available commands: dashboard, items [search], item <id>, image <id> <path>, categories, warehouses, suppliers, " +
		"operations, inbound, outbound, transfer, scan <code>, status, logout, exit"
)

// runREPL starts a read–eval–print loop for the StockKeeper CLI.
//
// It reads a line, parses the first token as the command and dispatches to
// a. Commands other than help/register/login/status/exit require a stored
// session. Handler errors are printed and the loop continues. The loop exits
// on EOF or when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if a.sessionExpired() {
			fmt.Fprintln(w, warnStyle.Render("登录已过期，请重新登录 (login)"))
		}

		fmt.Fprintf(w, "sk %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var handler func(context.Context, []string) error
		guest := false

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpMember)
			} else {
				fmt.Fprintln(w, helpGuest)
			}
			continue
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		case "register":
			handler, guest = a.Register, true
		case "login":
			handler, guest = a.Login, true
		case "status":
			handler, guest = a.Status, true
		case "logout":
			handler = a.Logout
		case "dashboard":
			handler = a.Dashboard
		case "items", "l":
			handler = a.Items
		case "item":
			handler = a.Item
		case "image":
			handler = a.Image
		case "categories":
			handler = a.Categories
		case "warehouses":
			handler = a.Warehouses
		case "suppliers":
			handler = a.Suppliers
		case "operations", "ops":
			handler = a.Operations
		case "inbound":
			handler = a.Inbound
		case "outbound":
			handler = a.Outbound
		case "transfer":
			handler = a.Transfer
		case "scan":
			handler = a.Scan
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
			continue
		}

		if !guest && !a.isLoggedIn() {
			fmt.Fprintln(w, "请先登录 (login)")
			continue
		}
		if err := handler(ctx, args); err != nil {
			fmt.Fprintln(w, errorLine(err))
		}
	}
}
