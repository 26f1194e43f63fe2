package console

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fekuna/omnipos-backoffice/internal/artifact"
	"github.com/fekuna/omnipos-backoffice/internal/auth/password"
	"github.com/fekuna/omnipos-backoffice/internal/auth/remember"
	authRepo "github.com/fekuna/omnipos-backoffice/internal/auth/repository"
	authUC "github.com/fekuna/omnipos-backoffice/internal/auth/usecase"
	"github.com/fekuna/omnipos-backoffice/internal/customer"
	"github.com/fekuna/omnipos-backoffice/internal/database"
	"github.com/fekuna/omnipos-backoffice/internal/database/dbtest"
	"github.com/fekuna/omnipos-backoffice/internal/finance"
	"github.com/fekuna/omnipos-backoffice/internal/logger"
	"github.com/fekuna/omnipos-backoffice/internal/menu"
	"github.com/fekuna/omnipos-backoffice/internal/product"
	reportRepo "github.com/fekuna/omnipos-backoffice/internal/report/repository"
	reportUC "github.com/fekuna/omnipos-backoffice/internal/report/usecase"
	"github.com/fekuna/omnipos-backoffice/internal/sale"
	"github.com/fekuna/omnipos-backoffice/internal/session"
	"go.uber.org/zap/zaptest"
)

func run(t *testing.T, script ...string) string {
	t.Helper()
	ctx := context.Background()
	log := logger.FromZap(zaptest.NewLogger(t))
	db := dbtest.New(t)
	dir := t.TempDir()

	hasher := password.SHA256{}
	hash, _ := hasher.Hash("admin123")
	if _, err := database.SeedAdmin(ctx, db, hash, "admin@example.com"); err != nil {
		t.Fatal(err)
	}

	writer := artifact.NewWriter(dir)
	authUseCase := authUC.NewAuthUseCase(authRepo.NewSQLiteRepository(db), hasher,
		remember.NewFile(filepath.Join(dir, "credentials.txt")), writer, log)
	reports := reportUC.NewReportUseCase(reportRepo.NewSQLiteRepository(db), log)

	sess := session.New(log)
	m := menu.New(sess, log)
	products := product.NewManager(db, log)
	customers := customer.NewManager(db, log)
	transactions := finance.NewManager(db, log)
	dashboard := menu.NewDashboardView(reports)
	panel := menu.NewFinancePanel(reports)
	transactions.OnChange(func(ctx context.Context) { _ = panel.Refresh(ctx) })
	sales := sale.NewManager(db, log)
	salesPanel := menu.NewSalesPanel(reports)
	sales.OnChange(func(ctx context.Context) { _ = salesPanel.Refresh(ctx) })

	m.Register(menu.Dashboard, dashboard)
	m.Register(menu.Products, products)
	m.Register(menu.Sales, sales, salesPanel)
	m.Register(menu.Customers, customers)
	m.Register(menu.Finance, transactions, panel)

	var out bytes.Buffer
	c := New(Deps{
		Auth:    authUseCase,
		Session: sess,
		Menu:    m,
		Resources: map[menu.Destination]Resource{
			menu.Products:  products,
			menu.Sales:     sales,
			menu.Customers: customers,
			menu.Finance:   transactions,
		},
		Dashboard: dashboard,
		Finance:   panel,
		Sales:     salesPanel,
		Invoicer:  customer.NewInvoicer(db, writer, log),
		Logger:    log,
	}, strings.NewReader(strings.Join(script, "\n")+"\n"), &out)

	if err := c.Run(ctx); err != nil {
		t.Fatal(err)
	}
	return out.String()
}

func assertContains(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCommandsNeedLogin(t *testing.T) {
	out := run(t, "open products", "list", "frobnicate", "login admin wrong", "quit")
	assertContains(t, out,
		"Invalid input: unknown command \"frobnicate\"",
		"Access denied: please log in first",
		"Access denied: invalid username or password",
	)
}

func TestProductSession(t *testing.T) {
	out := run(t,
		"login admin admin123",
		"open products",
		"new",
		"set name Blue Widget",
		"set category Tools",
		"set price 9.99",
		"set stock abc",
		"save",
		"set stock 3",
		"save",
		"list",
		"search blue",
		"delete 1",
		"no",
		"delete 1",
		"yes",
		"logout",
		"list",
		"quit",
	)
	assertContains(t, out,
		"Welcome, admin (admin).",
		"Invalid number: invalid stock value \"abc\"",
		"Saved product 1.",
		"Blue Widget",
		"Are you sure you want to delete this product? (yes/no)",
		"Deleted product 1.",
		"Logged out.",
	)
	if strings.Count(out, "Deleted product") != 1 {
		t.Errorf("declined delete should not delete:\n%s", out)
	}
	if strings.Count(out, "Access denied: please log in first") != 1 {
		t.Errorf("list after logout should be refused:\n%s", out)
	}
}

func TestValidationCausesArePrinted(t *testing.T) {
	out := run(t, "login admin admin123", "open customers", "new", "set name Ann", "save", "quit")
	assertContains(t, out,
		"Invalid input: please fill in all required fields",
		"  - Email is required",
		"  - Phone is required",
	)
}

func TestFinanceSummaryAndInvoice(t *testing.T) {
	out := run(t,
		"login admin admin123",
		"open finance",
		"new",
		"set category Sales",
		"set amount 100",
		"save",
		"new",
		"set type Expense",
		"set category Rent",
		"set amount 40",
		"save",
		"summary",
		"open customers",
		"new",
		"set name Ann",
		"set email ann@x.com",
		"set phone 555",
		"save",
		"invoice 1",
		"invoice 9",
		"open dashboard",
		"quit",
	)
	assertContains(t, out,
		"Income: $100.00  Expense: $40.00  Net: $60.00",
		"Rent  $40.00",
		"Invoice written to",
		"Not found: customer not found",
		"Customers: 1",
	)
}

func TestSalesSummaryFollowsSaves(t *testing.T) {
	addSale := func(date, amount string) []string {
		return []string{"new", "set date " + date, "set customer_name Ann", "set items Lamp",
			"set total_amount " + amount, "save"}
	}
	script := []string{"login admin admin123", "open sales", "summary"}
	script = append(script, addSale("2024-01-01", "100")...)
	script = append(script, addSale("2024-01-02", "300")...)
	script = append(script, "summary", "quit")

	out := run(t, script...)
	assertContains(t, out,
		"Saved sale 2.",
		"  2024-01-01  $100.00  25.0%",
		"  2024-01-02  $300.00  75.0%",
	)
	if strings.Contains(out, "open Dashboard, Sales or Finance first") {
		t.Errorf("summary should be available on the sales view:\n%s", out)
	}
}

func TestRegisterAndRemember(t *testing.T) {
	out := run(t,
		"register alice alice@x.com password1 password1",
		"register alice alice@x.com password1 password1 agree",
		"register alice other@x.com password1 password1 agree",
		"login alice password1 remember",
		"remember",
		"remember off",
		"remember",
		"quit",
	)
	assertContains(t, out,
		"Invalid input: please agree to the terms and conditions",
		"Account created for alice.",
		"Already exists: username already exists",
		"Welcome, alice (user).",
		"Remembered username: alice",
		"No username remembered.",
	)
}
