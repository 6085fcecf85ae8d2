package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/AzizovM-doder/Rent-A-Room/internal/app"
	"github.com/AzizovM-doder/Rent-A-Room/internal/app/config"
)

func main() {
	cfg := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to build application: %v", err)
	}
	defer a.Close(context.Background())

	if err := a.Store.FetchIfStale(ctx, cfg.CacheTTL); err != nil {
		a.Log.Fatalf("failed to fetch listings: %v", err)
	}

	if stats, err := a.API.Stats(ctx); err == nil {
		fmt.Printf("%d listings in %d cities, %d property types, $%.0f-$%.0f per night\n\n",
			stats.Total, len(stats.Cities), len(stats.Types), stats.MinPrice, stats.MaxPrice)
	}

	page := a.Browser.Results()
	fmt.Printf("Page %d/%d (%d results)\n", page.Page, page.TotalPages, page.Total)
	for _, item := range page.Items {
		fav := " "
		if a.Favorites.IsFavorite(ctx, item.ID) {
			fav = "*"
		}
		fmt.Printf("%s %-30s %-12s %d rooms  $%.0f/night\n",
			fav,
			item.Name.Resolve(cfg.Language),
			item.Location.Resolve(cfg.Language),
			item.Rooms,
			item.Price)
	}

	if a.Session.IsAuthenticated(ctx) {
		if user, ok := a.Session.CurrentUser(ctx); ok {
			fmt.Printf("\nLogged in as %s (%d saved)\n", user.Email, a.Favorites.Count(ctx))
		}
	}
}
