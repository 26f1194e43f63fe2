// Package console is a line-oriented front end for the back office. It reads
// one command per line and prints plain text results.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fekuna/omnipos-backoffice/internal/apperror"
	"github.com/fekuna/omnipos-backoffice/internal/auth"
	"github.com/fekuna/omnipos-backoffice/internal/auth/dto"
	"github.com/fekuna/omnipos-backoffice/internal/logger"
	"github.com/fekuna/omnipos-backoffice/internal/menu"
	"github.com/fekuna/omnipos-backoffice/internal/resource"
	"github.com/fekuna/omnipos-backoffice/internal/session"
	"go.uber.org/zap"
)

// Resource is the part of a resource manager the console drives.
type Resource interface {
	Descriptor() *resource.Descriptor
	Rows() []resource.Summary
	List(ctx context.Context) ([]resource.Summary, error)
	Load(ctx context.Context, id int64) error
	BeginCreate() resource.Form
	Edit(field, value string) error
	SaveCurrent(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id int64, confirm resource.Confirm) (bool, error)
	Search(ctx context.Context, term string) ([]resource.Match, error)
	State() resource.FormState
}

type Invoicer interface {
	Generate(ctx context.Context, customerID int64) (string, error)
}

type Deps struct {
	Auth      auth.UseCase
	Session   *session.Session
	Menu      *menu.Menu
	Resources map[menu.Destination]Resource
	Dashboard *menu.DashboardView
	Finance   *menu.FinancePanel
	Sales     *menu.SalesPanel
	Invoicer  Invoicer
	Logger    logger.ZapLogger
}

type Console struct {
	deps Deps
	in   *bufio.Scanner
	out  io.Writer
}

var errQuit = errors.New("quit")

var commands = map[string]bool{
	"help": true, "quit": true, "exit": true, "login": true, "register": true, "remember": true,
	"logout": true, "open": true, "summary": true, "invoice": true,
	"list": true, "show": true, "new": true, "set": true, "save": true, "delete": true, "search": true,
}

func New(deps Deps, in io.Reader, out io.Writer) *Console {
	return &Console{deps: deps, in: bufio.NewScanner(in), out: out}
}

// Run reads commands until quit or end of input.
func (c *Console) Run(ctx context.Context) error {
	c.printf("Business Management System. Type 'help' for commands.\n")
	if name, ok := c.deps.Auth.RememberedUsername(); ok {
		c.printf("Last user: %s\n", name)
	}

	for {
		c.printf("> ")
		line, ok := c.readLine()
		if !ok {
			return c.in.Err()
		}
		if line == "" {
			continue
		}
		err := c.Execute(ctx, line)
		if errors.Is(err, errQuit) {
			c.deps.Session.End()
			return nil
		}
		if err != nil {
			c.printError(err)
		}
	}
}

// Execute runs a single command line.
func (c *Console) Execute(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))
	if !commands[cmd] {
		return apperror.Validation("console", fmt.Sprintf("unknown command %q, type 'help'", cmd))
	}

	switch cmd {
	case "help":
		c.help()
		return nil
	case "quit", "exit":
		return errQuit
	case "login":
		return c.login(ctx, args)
	case "register":
		return c.register(ctx, args)
	case "remember":
		return c.remember(args)
	}

	if !c.deps.Session.Active() {
		return apperror.Auth("console."+cmd, "please log in first")
	}

	switch cmd {
	case "logout":
		c.deps.Session.End()
		c.printf("Logged out.\n")
		return nil
	case "open":
		return c.open(ctx, rest)
	case "summary":
		return c.summary()
	case "invoice":
		return c.invoice(ctx, args)
	}

	res, err := c.activeResource(cmd)
	if err != nil {
		return err
	}

	switch cmd {
	case "list":
		c.printRows(res.Descriptor(), res.Rows(), nil)
		return nil
	case "show":
		id, err := parseID(cmd, args)
		if err != nil {
			return err
		}
		if err := res.Load(ctx, id); err != nil {
			return err
		}
		c.printForm(res)
		return nil
	case "new":
		res.BeginCreate()
		c.printForm(res)
		return nil
	case "set":
		if len(args) < 1 {
			return apperror.Validation("console.set", "usage: set <field> <value>")
		}
		value := strings.TrimSpace(strings.TrimPrefix(rest, args[0]))
		return res.Edit(args[0], value)
	case "save":
		id, err := res.SaveCurrent(ctx)
		if err != nil {
			return err
		}
		c.printf("Saved %s %d.\n", res.Descriptor().Entity, id)
		return nil
	case "delete":
		id, err := parseID(cmd, args)
		if err != nil {
			return err
		}
		deleted, err := res.Delete(ctx, id, c.confirm)
		if err != nil {
			return err
		}
		if deleted {
			c.printf("Deleted %s %d.\n", res.Descriptor().Entity, id)
		}
		return nil
	case "search":
		matches, err := res.Search(ctx, rest)
		if err != nil {
			return err
		}
		rows := make([]resource.Summary, len(matches))
		marks := make([]bool, len(matches))
		for i, m := range matches {
			rows[i], marks[i] = m.Summary, m.Match
		}
		c.printRows(res.Descriptor(), rows, marks)
		return nil
	}

	return nil
}

func (c *Console) login(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return apperror.Validation("console.login", "usage: login <username> <password> [remember]")
	}
	identity, err := c.deps.Auth.Login(ctx, &dto.LoginInput{Username: args[0], Password: args[1]})
	if err != nil {
		return err
	}

	remember := len(args) > 2 && strings.EqualFold(args[2], "remember")
	if err := c.deps.Auth.Remember(identity.Username, remember); err != nil {
		c.deps.Logger.Warn("remember me not updated", zap.Error(err))
	}

	c.deps.Session.End()
	c.deps.Session.Start(identity)
	c.printf("Welcome, %s (%s).\n", identity.Username, identity.Role)
	return nil
}

func (c *Console) register(ctx context.Context, args []string) error {
	if len(args) < 4 {
		return apperror.Validation("console.register", "usage: register <username> <email> <password> <confirm> [agree]")
	}
	user, err := c.deps.Auth.Register(ctx, &dto.RegisterInput{
		Username:        args[0],
		Email:           args[1],
		Password:        args[2],
		ConfirmPassword: args[3],
		AcceptedTerms:   len(args) > 4 && strings.EqualFold(args[4], "agree"),
	})
	if err != nil {
		return err
	}
	c.printf("Account created for %s. You can now log in.\n", user.Username)
	return nil
}

func (c *Console) remember(args []string) error {
	if len(args) > 0 && strings.EqualFold(args[0], "off") {
		if err := c.deps.Auth.Remember("", false); err != nil {
			return apperror.Store("console.remember", "failed to forget username", err)
		}
		c.printf("Remembered username cleared.\n")
		return nil
	}
	if name, ok := c.deps.Auth.RememberedUsername(); ok {
		c.printf("Remembered username: %s\n", name)
	} else {
		c.printf("No username remembered.\n")
	}
	return nil
}

func (c *Console) open(ctx context.Context, name string) error {
	dest, ok := menu.ParseDestination(name)
	if !ok {
		names := make([]string, len(menu.Destinations))
		for i, d := range menu.Destinations {
			names[i] = d.String()
		}
		return apperror.Validation("console.open", "choose one of "+strings.Join(names, ", "))
	}
	if _, err := c.deps.Menu.Open(ctx, dest); err != nil {
		return err
	}

	c.printf("== %s ==\n", dest)
	if res, ok := c.deps.Resources[dest]; ok {
		c.printRows(res.Descriptor(), res.Rows(), nil)
	}
	if dest == menu.Dashboard || dest == menu.Finance || dest == menu.Sales {
		return c.summary()
	}
	return nil
}

func (c *Console) summary() error {
	dest, _, ok := c.deps.Menu.Active()
	switch {
	case ok && dest == menu.Dashboard && c.deps.Dashboard != nil && c.deps.Dashboard.Stats != nil:
		s := c.deps.Dashboard.Stats
		c.printf("Products: %d  Customers: %d  Employees: %d  Suppliers: %d\n",
			s.Products, s.Customers, s.Employees, s.Suppliers)
		c.printf("Sales: %d  Revenue: $%s\n", s.Sales, s.Revenue.StringFixed(2))
		for _, p := range c.deps.Dashboard.Trend {
			c.printf("  %s  $%s\n", p.Date, p.Amount.StringFixed(2))
		}
	case ok && dest == menu.Finance && c.deps.Finance != nil && c.deps.Finance.Summary != nil:
		s := c.deps.Finance.Summary
		c.printf("Income: $%s  Expense: $%s  Net: $%s\n",
			s.Income.StringFixed(2), s.Expense.StringFixed(2), s.Net.StringFixed(2))
		for _, e := range c.deps.Finance.Expenses {
			c.printf("  %s  $%s\n", e.Category, e.Amount.StringFixed(2))
		}
	case ok && dest == menu.Sales && c.deps.Sales != nil:
		for _, sh := range c.deps.Sales.Shares {
			c.printf("  %s  $%s  %s%%\n", sh.Date, sh.Amount.StringFixed(2), sh.Percent.StringFixed(1))
		}
	default:
		return apperror.Validation("console.summary", "open Dashboard, Sales or Finance first")
	}
	return nil
}

func (c *Console) invoice(ctx context.Context, args []string) error {
	if c.deps.Invoicer == nil {
		return apperror.Validation("console.invoice", "invoices are not available")
	}
	id, err := parseID("invoice", args)
	if err != nil {
		return err
	}
	path, err := c.deps.Invoicer.Generate(ctx, id)
	if err != nil {
		return err
	}
	c.printf("Invoice written to %s\n", path)
	return nil
}

func (c *Console) activeResource(cmd string) (Resource, error) {
	dest, _, ok := c.deps.Menu.Active()
	if !ok {
		return nil, apperror.Validation("console."+cmd, "open a screen first")
	}
	res, ok := c.deps.Resources[dest]
	if !ok {
		return nil, apperror.Validation("console."+cmd, fmt.Sprintf("%s has no records to edit", dest))
	}
	return res, nil
}

// confirm asks on the same input the commands come from.
func (c *Console) confirm(prompt string) bool {
	c.printf("%s (yes/no) ", prompt)
	answer, ok := c.readLine()
	if !ok {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

func (c *Console) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *Console) printRows(d *resource.Descriptor, rows []resource.Summary, marks []bool) {
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	header := d.Columns()
	if marks != nil {
		header = append([]string{""}, header...)
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for i, row := range rows {
		values := row.Values
		if marks != nil {
			mark := ""
			if marks[i] {
				mark = "*"
			}
			values = append([]string{mark}, values...)
		}
		fmt.Fprintln(tw, strings.Join(values, "\t"))
	}
	tw.Flush()
	if len(rows) == 0 {
		c.printf("(no %ss)\n", d.Entity)
	}
}

func (c *Console) printForm(res Resource) {
	st := res.State()
	d := res.Descriptor()
	id := "new"
	if st.ID != 0 {
		id = strconv.FormatInt(st.ID, 10)
	}
	c.printf("%s %s [%s]\n", d.Entity, id, st.Mode)

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	for _, f := range d.Fields {
		label := f.Label
		if f.Required {
			label += " *"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", f.Name, label, st.Values[f.Name])
	}
	tw.Flush()
}

func (c *Console) printError(err error) {
	c.printf("%s: %s\n", prefix(apperror.KindOf(err)), apperror.Message(err))
	var appErr *apperror.Error
	if errors.As(err, &appErr) && appErr.Kind == apperror.KindValidation {
		for _, cause := range appErr.Causes() {
			c.printf("  - %v\n", cause)
		}
	}
	if apperror.KindOf(err) == apperror.KindStore || apperror.KindOf(err) == apperror.KindUnknown {
		c.deps.Logger.Error("command failed", zap.Error(err))
	}
}

func (c *Console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) help() {
	c.printf(`Commands:
  login <username> <password> [remember]
  register <username> <email> <password> <confirm> [agree]
  remember [off]
  logout
  open <Dashboard|Products|Sales|Customers|Employees|Suppliers|Finance>
  list | search <term> | show <id> | new | set <field> <value> | save | delete <id>
  summary
  invoice <customer id>
  quit
`)
}

func prefix(k apperror.Kind) string {
	switch k {
	case apperror.KindValidation:
		return "Invalid input"
	case apperror.KindConversion:
		return "Invalid number"
	case apperror.KindConflict:
		return "Already exists"
	case apperror.KindNotFound:
		return "Not found"
	case apperror.KindAuth:
		return "Access denied"
	case apperror.KindStore:
		return "Database error"
	default:
		return "Error"
	}
}

func parseID(cmd string, args []string) (int64, error) {
	if len(args) < 1 {
		return 0, apperror.Validation("console."+cmd, fmt.Sprintf("usage: %s <id>", cmd))
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, apperror.Conversion("console."+cmd, "id", args[0], err)
	}
	return id, nil
}
