package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/evcraddock/estate-finder/internal/property"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printPropertyDetail prints a single property in text format.
func printPropertyDetail(w io.Writer, p *property.Property) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Property %s\n", p.ID)
	fmt.Fprintf(&b, "  Type:      %s\n", p.Type)
	fmt.Fprintf(&b, "  Price:     %s\n", property.FormatPrice(p.Price))
	fmt.Fprintf(&b, "  Bedrooms:  %d\n", p.Bedrooms)
	fmt.Fprintf(&b, "  Location:  %s\n", p.Location)
	if p.Tenure != "" {
		fmt.Fprintf(&b, "  Tenure:    %s\n", p.Tenure)
	}
	if added := p.Added.String(); added != "" {
		fmt.Fprintf(&b, "  Added:     %s\n", added)
	}
	if p.URL != "" {
		fmt.Fprintf(&b, "  URL:       %s\n", p.URL)
	}
	if len(p.Images) > 0 {
		fmt.Fprintf(&b, "  Images:    %d\n", len(p.Images))
	}
	if p.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", p.Description)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing property: %w", err)
	}
	return nil
}

// printPropertyTable prints a list of properties as a formatted table.
func printPropertyTable(out io.Writer, props []*property.Property, noun string) error {
	if len(props) == 0 {
		_, err := fmt.Fprintf(out, "No %s found.\n", noun)
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tTYPE\tPRICE\tBED\tADDED\tLOCATION"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t----\t-----\t---\t-----\t--------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, p := range props {
		added := p.Added.String()
		if added == "" {
			added = "-"
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			p.ID, p.Type, property.FormatPrice(p.Price), p.Bedrooms, added, truncate(p.Location, 40)); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	_, err := fmt.Fprintf(out, "\nTotal: %d %s\n", len(props), noun)
	return err
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
