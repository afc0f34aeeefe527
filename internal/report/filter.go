package report

import (
	"regexp"
	"strings"

	"github.com/lukman83/naverscrap/internal/models"
)

// ExcludePattern builds one case-insensitive pattern matching any of the
// substrings literally. Empty substrings are ignored; nil means no pattern.
func ExcludePattern(substrings []string) *regexp.Regexp {
	var alts []string
	for _, s := range substrings {
		if s != "" {
			alts = append(alts, regexp.QuoteMeta(s))
		}
	}
	if len(alts) == 0 {
		return nil
	}
	return regexp.MustCompile("(?i)" + strings.Join(alts, "|"))
}

// Exclude drops products whose name contains any of the substrings,
// ignoring case. The input slice is not modified.
func Exclude(products []models.Product, substrings []string) []models.Product {
	re := ExcludePattern(substrings)
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if re != nil && re.MatchString(p.Name) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Dedupe keeps the first product for every link, in arrival order.
func Dedupe(products []models.Product) []models.Product {
	seen := make(map[string]struct{}, len(products))
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if _, ok := seen[p.Link]; ok {
			continue
		}
		seen[p.Link] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Clean applies Exclude and then Dedupe.
func Clean(products []models.Product, exclude []string) []models.Product {
	return Dedupe(Exclude(products, exclude))
}
