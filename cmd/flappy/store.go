package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/commerce"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/shop"
)

var flagSessionToken string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List store items",
	Long: `Fetch the store catalog from the commerce service and print it.

Examples:
  flappy catalog
  ONCADE_API_KEY=... ONCADE_GAME_ID=... flappy catalog`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

var purchasesCmd = &cobra.Command{
	Use:   "purchases",
	Short: "List your purchases",
	Long: `Print the purchase history of the signed-in player.

Examples:
  flappy purchases --session-token <token>`,
	Args: cobra.NoArgs,
	RunE: runPurchases,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Print the sign-in link",
	Args:  cobra.NoArgs,
	RunE:  runLogin,
}

func init() {
	for _, cmd := range []*cobra.Command{catalogCmd, purchasesCmd, loginCmd} {
		cmd.Flags().StringVar(&flagSessionToken, "session-token", "", "Player session token (overrides the config file)")
	}
}

// newClient builds a commerce client from the configuration and flags.
func newClient() (*commerce.HTTPClient, config.FlappyConfig, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, nil, err
	}
	logger, closeLog, err := newLogger("flappy", os.Stderr)
	if err != nil {
		return nil, cfg, nil, err
	}

	var opts []commerce.Option
	if flagSessionToken != "" {
		opts = append(opts, commerce.WithSessionToken(flagSessionToken))
	}
	client := commerce.New(cfg.Commerce, logger, opts...)
	if !client.Configured() {
		closeLog()
		return nil, cfg, nil, fmt.Errorf("commerce is not configured: set %s and %s", config.EnvAPIKey, config.EnvGameID)
	}
	log.SetDefault(logger)
	return client, cfg, closeLog, nil
}

func runCatalog(_ *cobra.Command, _ []string) error {
	client, cfg, closeLog, err := newClient()
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Commerce.Timeout)
	defer cancel()

	items, err := client.StoreCatalog(ctx)
	if err != nil {
		return fmt.Errorf("error fetching catalog: %w", err)
	}
	if len(items) == 0 {
		fmt.Println(shop.TextEmpty)
		return nil
	}

	fmt.Printf("  %-24s  %-28s  %s\n", "ID", "Name", "Price")
	fmt.Printf("  %-24s  %-28s  %s\n", "--", "----", "-----")
	for _, item := range items {
		fmt.Printf("  %-24s  %-28s  %s\n", item.ID, shop.ItemName(item), shop.FormatPrice(item.Price))
	}
	return nil
}

func runPurchases(_ *cobra.Command, _ []string) error {
	client, cfg, closeLog, err := newClient()
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Commerce.Timeout)
	defer cancel()

	purchases, err := client.PurchaseHistory(ctx)
	if err != nil {
		return fmt.Errorf("error fetching purchases: %w", err)
	}
	if len(purchases) == 0 {
		fmt.Println("No purchases yet.")
		return nil
	}

	for _, p := range purchases {
		name := p.Name
		if name == "" {
			name = p.ItemID
		}
		when := "-"
		if !p.CreatedAt.IsZero() {
			when = humanize.Time(p.CreatedAt)
		}
		fmt.Printf("  %-28s  %-8s  %s\n", name, shop.FormatPrice(p.Price), when)
	}
	return nil
}

func runLogin(_ *cobra.Command, _ []string) error {
	client, cfg, closeLog, err := newClient()
	if err != nil {
		return err
	}
	defer closeLog()

	url, err := client.LoginURL(commerce.LoginParams{
		RedirectURL: commerce.RedirectURL(cfg.Commerce.RedirectOrigin, commerce.PathLoginDone),
	})
	if err != nil {
		return fmt.Errorf("error building login link: %w", err)
	}
	fmt.Println(url)
	return nil
}
