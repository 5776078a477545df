package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/propwatch/propwatch/internal/listing"
	"github.com/propwatch/propwatch/internal/watch"
)

func newWatchCmd() *cobra.Command {
	var (
		query    string
		minPrice int64
		maxPrice int64
		bedsMin  int
		bathsMin int
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the live listing feed",
		Long:  "Connect to the listing event stream and print updates that match the given filter. Reconnects automatically until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := watch.Filter{Query: query}
			if cmd.Flags().Changed("min-price") {
				f.MinPrice = &minPrice
			}
			if cmd.Flags().Changed("max-price") {
				f.MaxPrice = &maxPrice
			}
			if cmd.Flags().Changed("beds") {
				f.BedsMin = &bedsMin
			}
			if cmd.Flags().Changed("baths") {
				f.BathsMin = &bathsMin
			}
			return runWatch(f)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "address substring to match")
	cmd.Flags().Int64Var(&minPrice, "min-price", 0, "minimum price in AED")
	cmd.Flags().Int64Var(&maxPrice, "max-price", 0, "maximum price in AED")
	cmd.Flags().IntVar(&bedsMin, "beds", 0, "minimum bedrooms")
	cmd.Flags().IntVar(&bathsMin, "baths", 0, "minimum bathrooms")

	return cmd
}

func runWatch(f watch.Filter) error {
	url := getStreamURL()

	c := watch.NewClient(watch.Config{
		URL:    url,
		Filter: f,
		OnMatch: func(l *listing.Listing) {
			fmt.Printf("[%s] %s  AED %s  %db/%dba  (%s)\n",
				time.Now().Format("15:04:05"), l.Address, formatPrice(l.Price), l.Beds, l.Baths, l.ID)
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching %s (ctrl-c to stop)\n", url)
	return c.Run(ctx)
}
