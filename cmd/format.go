package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lukman83/naverscrap/internal/models"
)

// printProductsTable prints products in a human-friendly card layout.
func printProductsTable(w io.Writer, products []models.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products found.")
		return
	}
	for i, p := range products {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, " %d. %s\n", i+1, truncate(p.Name, 80))
		fmt.Fprintf(w, "    Price: %s  |  Mall: %s\n", formatPrice(p.Price), p.MallName)
		fmt.Fprintf(w, "    %s\n", p.Link)
	}
}

// formatPrice formats a price as "1,234,567원".
func formatPrice(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return sign + strings.Join(parts, ",") + "원"
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
