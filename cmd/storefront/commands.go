package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/nikolayk812/storefront/internal/catalog"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/session"
	"github.com/shopspring/decimal"
)

var errUsage = errors.New("usage")

const usage = `usage: storefront <command> [arguments]

catalog:
  products [-category a,b] [-min 0] [-max 0] [-sort popularity|price-asc|price-desc]
  product <id>
  featured [-n 4]

session:
  login <email> <password>
  signup <email> <password> <first name> <last name> [profile image url]
  logout
  whoami
  reset-password <email>
  profile [-email e] [-first f] [-last l] [-image url]

cart:
  cart
  add <product id> [quantity]
  remove <product id>
  set-qty <product id> <quantity>
  clear
  checkout

owner:
  admin [-search term] [-page 1] [-delete id]`

func (a *app) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	cmd, rest := args[0], args[1:]

	switch cmd {
	case "products":
		return a.products(ctx, rest)
	case "product":
		return a.product(ctx, rest)
	case "featured":
		return a.featured(ctx, rest)
	case "login":
		return a.login(ctx, rest)
	case "signup":
		return a.signup(ctx, rest)
	case "logout":
		if err := a.session.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "anonymous")
		return nil
	case "whoami":
		return a.whoami()
	case "reset-password":
		return a.resetPassword(ctx, rest)
	case "profile":
		return a.profile(ctx, rest)
	case "cart":
		return a.printCart()
	case "add":
		return a.add(ctx, rest)
	case "remove":
		return a.remove(ctx, rest)
	case "set-qty":
		return a.setQuantity(ctx, rest)
	case "clear":
		if err := a.cart.ClearCart(ctx); err != nil {
			return err
		}
		return a.printCart()
	case "checkout":
		return a.checkout(ctx)
	case "admin":
		return a.admin(ctx, rest)
	default:
		return errUsage
	}
}

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func (a *app) products(ctx context.Context, args []string) error {
	fs := newFlags("products")
	categories := fs.String("category", string(domain.CategoryAll), "comma separated categories")
	minPrice := fs.String("min", "0", "minimum price")
	maxPrice := fs.String("max", "0", "maximum price, 0 for none")
	sortBy := fs.String("sort", string(domain.SortPopularity), "sort order")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	lo, err := decimal.NewFromString(*minPrice)
	if err != nil {
		return fmt.Errorf("min: %w", err)
	}
	hi, err := decimal.NewFromString(*maxPrice)
	if err != nil {
		return fmt.Errorf("max: %w", err)
	}

	var q catalog.Query
	for _, c := range strings.Split(*categories, ",") {
		if c = strings.TrimSpace(c); c != "" {
			q.Categories = append(q.Categories, domain.Category(c))
		}
	}
	q.MinPrice, q.MaxPrice, q.SortBy = lo, hi, domain.SortOption(*sortBy)

	all, err := a.catalog.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("catalog.FetchAll: %w", err)
	}

	return a.printProducts(catalog.Filter(all, q))
}

func (a *app) product(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	p, err := a.catalog.FetchByID(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s\n%s\n%s %s · %s · popularity %d/10\n%s\n",
		p.Name, p.Description, p.Price.StringFixed(2), domain.StoreCurrency, p.Category, p.Popularity, p.ImageURL)

	return nil
}

func (a *app) featured(ctx context.Context, args []string) error {
	fs := newFlags("featured")
	n := fs.Int("n", 4, "number of products")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	all, err := a.catalog.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("catalog.FetchAll: %w", err)
	}

	r := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))

	return a.printProducts(catalog.Featured(all, *n, r))
}

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}

	identity, err := a.session.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}

	return a.printIdentity(identity)
}

func (a *app) signup(ctx context.Context, args []string) error {
	if len(args) < 4 || len(args) > 5 {
		return errUsage
	}

	req := session.SignupRequest{
		Email:     args[0],
		Password:  args[1],
		FirstName: args[2],
		LastName:  args[3],
	}
	if len(args) == 5 {
		req.ProfileImage = args[4]
	}

	identity, err := a.session.Signup(ctx, req)
	if err != nil {
		return err
	}

	return a.printIdentity(identity)
}

func (a *app) whoami() error {
	identity, ok := a.session.Current()
	if !ok {
		fmt.Fprintln(a.out, "anonymous")
		return nil
	}

	return a.printIdentity(identity)
}

func (a *app) resetPassword(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	if err := a.session.ResetPassword(ctx, args[0]); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "reset instructions sent to %s\n", args[0])

	return nil
}

func (a *app) profile(ctx context.Context, args []string) error {
	fs := newFlags("profile")
	var update domain.ProfileUpdate
	fs.Func("email", "new email", func(v string) error { update.Email = &v; return nil })
	fs.Func("first", "new first name", func(v string) error { update.FirstName = &v; return nil })
	fs.Func("last", "new last name", func(v string) error { update.LastName = &v; return nil })
	fs.Func("image", "new profile image url", func(v string) error { update.ProfileImage = &v; return nil })
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	identity, ok, err := a.session.UpdateProfile(ctx, update)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "anonymous")
		return nil
	}

	return a.printIdentity(identity)
}

func (a *app) add(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errUsage
	}

	quantity := 1
	if len(args) == 2 {
		q, err := strconv.Atoi(args[1])
		if err != nil {
			return errUsage
		}
		quantity = q
	}

	if err := a.cart.AddProduct(ctx, a.catalog, args[0], quantity); err != nil {
		return err
	}

	return a.printCart()
}

func (a *app) remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	if err := a.cart.RemoveFromCart(ctx, args[0]); err != nil {
		return err
	}

	return a.printCart()
}

func (a *app) setQuantity(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}

	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		return errUsage
	}

	if err := a.cart.UpdateQuantity(ctx, args[0], quantity); err != nil {
		return err
	}

	return a.printCart()
}

func (a *app) checkout(ctx context.Context) error {
	ordered, err := a.cart.Checkout(ctx, a.session)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "order placed: %d items, %s\n", ordered.TotalItems(), ordered.TotalPrice())

	return nil
}

func (a *app) admin(ctx context.Context, args []string) error {
	fs := newFlags("admin")
	search := fs.String("search", "", "search term")
	page := fs.Int("page", 1, "page number")
	del := fs.String("delete", "", "product id to delete")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	all, err := a.catalog.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("catalog.FetchAll: %w", err)
	}

	identity, ok := a.session.Current()
	table, err := catalog.NewAdminTable(identity, ok, all)
	if err != nil {
		return err
	}

	if *del != "" {
		if !table.Delete(*del) {
			return fmt.Errorf("product[%s]: %w", *del, domain.ErrProductNotFound)
		}
		fmt.Fprintf(a.out, "product %s deleted\n", *del)
	}

	table.SetSearch(*search)
	p := table.Page(*page)

	if err := a.printProducts(p.Items); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "page %d/%d\n", p.Page, p.TotalPages)

	return nil
}

func (a *app) printProducts(products []domain.Product) error {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tPOPULARITY")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", p.ID, p.Name, p.Category, p.Price.StringFixed(2), p.Popularity)
	}

	return w.Flush()
}

func (a *app) printIdentity(identity domain.Identity) error {
	fmt.Fprintf(a.out, "%s %s <%s> role=%s id=%s\n",
		identity.FirstName, identity.LastName, identity.Email, identity.Role, identity.ID)

	return nil
}

func (a *app) printCart() error {
	snapshot := a.cart.Snapshot()
	if len(snapshot.Items) == 0 {
		fmt.Fprintln(a.out, "cart is empty")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tQTY\tUNIT\tSUBTOTAL")
	for _, item := range snapshot.Items {
		subtotal := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			item.Product.ID, item.Product.Name, item.Quantity, item.Product.Price.StringFixed(2), subtotal.StringFixed(2))
	}
	fmt.Fprintf(w, "\t\t%d\t\t%s\n", snapshot.TotalItems(), snapshot.TotalPrice())

	return w.Flush()
}
