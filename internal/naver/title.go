package naver

import (
	"strings"

	"golang.org/x/net/html"
)

// CleanTitle removes markup from a listing title. The search API wraps
// matched terms in <b></b>; entities such as &amp; are decoded.
func CleanTitle(title string) string {
	if !strings.ContainsAny(title, "<&") {
		return title
	}
	z := html.NewTokenizer(strings.NewReader(title))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}
