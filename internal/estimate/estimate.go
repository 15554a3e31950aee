// Package estimate holds the fixed monthly cost table displayed before a deployment.
package estimate

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/corporate-website/deployctl/internal/config"
)

// LineItem is one service row in the cost estimate table.
type LineItem struct {
	// Service is the Azure service name.
	Service string
	// SKU is the pricing tier the environment provisions.
	SKU string
	// MonthlyUSD is the estimated monthly cost in US dollars.
	MonthlyUSD float64
}

// ForEnvironment returns the hardcoded estimate rows for an environment.
// The numbers are informational only and never affect control flow.
func ForEnvironment(env config.Environment) []LineItem {
	switch env {
	case config.EnvProd:
		return []LineItem{
			{Service: "App Service plan", SKU: "P1v3", MonthlyUSD: 124.10},
			{Service: "Function App", SKU: "Consumption", MonthlyUSD: 0},
			{Service: "Storage account", SKU: "Standard GRS", MonthlyUSD: 4.80},
			{Service: "Application Insights", SKU: "Pay-as-you-go", MonthlyUSD: 14.40},
			{Service: "CDN profile", SKU: "Standard Microsoft", MonthlyUSD: 8.50},
		}
	default:
		return []LineItem{
			{Service: "App Service plan", SKU: "B1", MonthlyUSD: 13.14},
			{Service: "Function App", SKU: "Consumption", MonthlyUSD: 0},
			{Service: "Storage account", SKU: "Standard LRS", MonthlyUSD: 2.30},
			{Service: "Application Insights", SKU: "Pay-as-you-go", MonthlyUSD: 2.88},
		}
	}
}

// Total sums the monthly cost of all line items.
func Total(items []LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.MonthlyUSD
	}
	return total
}

// Render writes the estimate table for an environment to w.
func Render(w io.Writer, env config.Environment, items []LineItem) {
	header := color.New(color.FgCyan, color.Bold)
	_, _ = header.Fprintf(w, "Estimated monthly cost (%s)\n", env)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SERVICE\tSKU\tUSD/MONTH")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\n", item.Service, item.SKU, item.MonthlyUSD)
	}
	fmt.Fprintf(tw, "TOTAL\t\t%.2f\n", Total(items))
	_ = tw.Flush()
}
