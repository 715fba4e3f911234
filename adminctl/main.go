// adminctl is a terminal companion to the console service: it talks to the
// restaurant platform directly for the operations an operator needs when no
// browser is at hand.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/AffanWajid12/resturant-console/backend"
)

var (
	baseURL          = pflag.String("base-url", "http://localhost:5000/api", "Base URL of the restaurant platform API")
	email            = pflag.String("email", "", "Login email")
	password         = pflag.String("password", "", "Login password (falls back to ADMINCTL_PASSWORD)")
	timeoutInSeconds = pflag.Int("timeout-in-seconds", 15, "HTTP timeout for platform requests")
	restaurantID     = pflag.String("restaurant", "", "Restaurant id for menu and analytics commands")
	status           = pflag.String("status", "", "Target status for set-status")
	period           = pflag.String("period", "week", "Sales report period: day, week or month")
	format           = pflag.String("format", "csv", "Export format: csv or json")
	yes              = pflag.Bool("yes", false, "Confirm destructive commands without prompting")
	verbose          = pflag.Bool("verbose", false, "Enable debug logging")
)

const usage = `Usage: adminctl [flags] <command> [args]

Commands:
  orders                     list every visible order
  set-status <order-id>      move an order to --status
  cancel <order-id>          cancel an order (requires --yes)
  restaurants                list the owner's restaurants
  menu                       list the menu of --restaurant
  delete-menu-item <item-id> delete a menu item (requires --yes)
  sales-report               aggregated sales for --restaurant over --period
  popular-items              top sellers for --restaurant
  export                     download the sales export for --restaurant
`

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()
	retcode := 0
	defer func() {
		os.Exit(retcode)
	}()

	pflag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		pflag.PrintDefaults()
	}
	pflag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	command := pflag.Arg(0)
	if command == "" {
		pflag.Usage()
		retcode = 2
		return
	}

	client, err := login(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "login failed", slog.Any("err", err))
		retcode = 1
		return
	}

	if err := run(ctx, client, command); err != nil {
		slog.ErrorContext(ctx, "command failed", slog.String("command", command), slog.Any("err", err))
		retcode = 1
	}
}

func login(ctx context.Context) (*backend.Client, error) {
	pass := *password
	if pass == "" {
		pass = os.Getenv("ADMINCTL_PASSWORD")
	}
	if *email == "" || pass == "" {
		return nil, fmt.Errorf("both --email and a password are required")
	}

	client := backend.New(*baseURL, time.Duration(*timeoutInSeconds)*time.Second)
	result, err := client.Login(ctx, backend.Credentials{Email: *email, Password: pass})
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "logged in", slog.String("username", result.Username), slog.String("role", result.Role))
	return client.WithToken(result.Token), nil
}

func run(ctx context.Context, client *backend.Client, command string) error {
	switch command {
	case "orders":
		return listOrders(ctx, client)
	case "set-status":
		return setStatus(ctx, client, pflag.Arg(1), *status)
	case "cancel":
		if !*yes {
			return fmt.Errorf("cancelling an order requires --yes")
		}
		return setStatus(ctx, client, pflag.Arg(1), string(backend.StatusCancelled))
	case "restaurants":
		return listRestaurants(ctx, client)
	case "menu":
		return listMenu(ctx, client)
	case "delete-menu-item":
		if !*yes {
			return fmt.Errorf("deleting a menu item requires --yes")
		}
		itemID := pflag.Arg(1)
		if itemID == "" {
			return fmt.Errorf("delete-menu-item needs an item id")
		}
		return client.DeleteMenuItem(ctx, itemID)
	case "sales-report":
		return salesReport(ctx, client)
	case "popular-items":
		return popularItems(ctx, client)
	case "export":
		return export(ctx, client)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func listOrders(ctx context.Context, client *backend.Client) error {
	orders, err := client.ListOrders(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCUSTOMER\tRESTAURANT\tTOTAL\tSTATUS\tNEXT")
	for _, order := range orders {
		customer, restaurant := "-", "-"
		if order.User != nil {
			customer = order.User.Username
		}
		if order.Restaurant != nil {
			restaurant = order.Restaurant.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%s\t%v\n",
			order.ID, customer, restaurant, order.FinalTotal,
			order.OrderStatus, backend.NextStatuses(order.OrderStatus))
	}
	return w.Flush()
}

func setStatus(ctx context.Context, client *backend.Client, orderID, rawStatus string) error {
	if orderID == "" {
		return fmt.Errorf("set-status needs an order id")
	}

	target, err := backend.ParseOrderStatus(rawStatus)
	if err != nil {
		return err
	}

	// The lifecycle is checked here too, so a typo fails before any request
	// reaches the platform.
	orders, err := client.ListOrders(ctx)
	if err != nil {
		return err
	}
	var current *backend.Order
	for i := range orders {
		if orders[i].ID == orderID {
			current = &orders[i]
			break
		}
	}
	if current == nil {
		return fmt.Errorf("order %s not found", orderID)
	}
	if !backend.Allowed(current.OrderStatus, target) {
		return fmt.Errorf("cannot move order from %s to %s", current.OrderStatus, target)
	}

	updated, err := client.UpdateOrderStatus(ctx, orderID, target)
	if err != nil {
		return err
	}

	fmt.Printf("order %s is now %s\n", updated.ID, updated.OrderStatus)
	return nil
}

func listRestaurants(ctx context.Context, client *backend.Client) error {
	restaurants, err := client.OwnerRestaurants(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCUISINE\tACTIVE")
	for _, restaurant := range restaurants {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\n",
			restaurant.ID, restaurant.Name, restaurant.Cuisine, restaurant.IsActive)
	}
	return w.Flush()
}

func listMenu(ctx context.Context, client *backend.Client) error {
	if *restaurantID == "" {
		return fmt.Errorf("menu needs --restaurant")
	}

	items, err := client.ListMenuItems(ctx, *restaurantID)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tAVAILABLE")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%t\n",
			item.ID, item.Name, item.Category, item.Price, item.IsAvailable)
	}
	return w.Flush()
}

func salesReport(ctx context.Context, client *backend.Client) error {
	if *restaurantID == "" {
		return fmt.Errorf("sales-report needs --restaurant")
	}

	report, err := client.GetSalesReport(ctx, *restaurantID, *period)
	if err != nil {
		return err
	}

	fmt.Printf("total sales:   %.2f\n", report.TotalSales)
	fmt.Printf("total orders:  %d\n", report.TotalOrders)
	fmt.Printf("average order: %.2f\n", report.AverageOrderValue())
	return nil
}

func popularItems(ctx context.Context, client *backend.Client) error {
	if *restaurantID == "" {
		return fmt.Errorf("popular-items needs --restaurant")
	}

	items, err := client.GetPopularItems(ctx, *restaurantID)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ITEM\tSOLD")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%d\n", item.Name, item.TotalSold)
	}
	return w.Flush()
}

func export(ctx context.Context, client *backend.Client) error {
	if *restaurantID == "" {
		return fmt.Errorf("export needs --restaurant")
	}
	if *format != "csv" && *format != "json" {
		return fmt.Errorf("unknown export format %q", *format)
	}

	body, _, err := client.ExportData(ctx, *restaurantID, *format)
	if err != nil {
		return err
	}
	defer body.Close()

	_, err = io.Copy(os.Stdout, body)
	return err
}
