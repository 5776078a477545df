package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/propwatch/propwatch/internal/listing"
	"github.com/propwatch/propwatch/internal/savedsearch"
)

// printJSON marshals v as indented JSON and writes it to stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printListingTable prints listings as a formatted table. total is the
// full match count, which may exceed the page shown.
func printListingTable(items []*listing.Listing, total int) error {
	if len(items) == 0 {
		fmt.Println("No listings found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tADDRESS\tPRICE\tBED\tBATH\tSTATUS\tUPDATED"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t-------\t-----\t---\t----\t------\t-------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, l := range items {
		if _, err := fmt.Fprintf(w, "%s\t%s\tAED %s\t%d\t%d\t%s\t%s\n",
			l.ID, truncate(l.Address, 40), formatPrice(l.Price), l.Beds, l.Baths,
			l.Status, l.UpdatedAt.Format("2006-01-02")); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Printf("\nShowing %d of %d listings\n", len(items), total)
	return nil
}

// printListingDetail prints a single listing in text format.
func printListingDetail(l *listing.Listing) {
	fmt.Printf("Listing %s\n", l.ID)
	fmt.Printf("  Address:  %s\n", l.Address)
	fmt.Printf("  City:     %s\n", l.City)
	fmt.Printf("  Price:    AED %s\n", formatPrice(l.Price))
	fmt.Printf("  Beds:     %d\n", l.Beds)
	fmt.Printf("  Baths:    %d\n", l.Baths)
	fmt.Printf("  Status:   %s\n", l.Status)
	fmt.Printf("  Location: %.4f, %.4f\n", l.Lat, l.Lng)
	fmt.Printf("  Updated:  %s\n", l.UpdatedAt.Format("2006-01-02 15:04"))
}

// printSavedSearches prints saved searches in text format.
func printSavedSearches(items []*savedsearch.SavedSearch) {
	if len(items) == 0 {
		fmt.Println("No saved searches.")
		return
	}

	for _, s := range items {
		fmt.Printf("%s  %s\n", s.ID, s.Name)
		if s.Query != nil && *s.Query != "" {
			fmt.Printf("  query: %q\n", *s.Query)
		}
		if s.MinPrice != nil || s.MaxPrice != nil {
			fmt.Printf("  price: %s - %s\n", formatOptPrice(s.MinPrice), formatOptPrice(s.MaxPrice))
		}
		if s.BedsMin != nil {
			fmt.Printf("  beds:  %d+\n", *s.BedsMin)
		}
		if s.BathsMin != nil {
			fmt.Printf("  baths: %d+\n", *s.BathsMin)
		}
		if s.CenterLat != nil && s.CenterLng != nil {
			fmt.Printf("  near:  %.4f, %.4f", *s.CenterLat, *s.CenterLng)
			if s.RadiusKm != nil {
				fmt.Printf(" within %g km", *s.RadiusKm)
			}
			fmt.Println()
		}
		fmt.Println()
	}
}

// formatOptPrice renders an optional price bound, "-" when unset.
func formatOptPrice(p *int64) string {
	if p == nil {
		return "-"
	}
	return "AED " + formatPrice(*p)
}

// formatPrice formats an AED amount as a string with commas.
func formatPrice(amount int64) string {
	s := fmt.Sprintf("%d", amount)

	// Add commas
	if len(s) <= 3 {
		return s
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	return strings.Join(parts, ",")
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
