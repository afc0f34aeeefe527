package httputil

import "net/http"

// BrowserHeaders returns the navigation headers every desktop browser sends
// for a top-level page load. Fingerprints layer their own values on top.
func BrowserHeaders() http.Header {
	h := http.Header{}
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	h.Set("Accept-Language", "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7")
	h.Set("Accept-Encoding", "gzip, deflate, br")
	h.Set("Upgrade-Insecure-Requests", "1")
	h.Set("Sec-Fetch-Dest", "document")
	h.Set("Sec-Fetch-Mode", "navigate")
	h.Set("Sec-Fetch-Site", "none")
	h.Set("Sec-Fetch-User", "?1")
	return h
}

// NaverAPIHeaders returns the application credential headers for Naver Open API.
func NaverAPIHeaders(clientID, clientSecret string) http.Header {
	h := http.Header{}
	h.Set("Accept", "application/json")
	h.Set("Accept-Encoding", "gzip")
	h.Set("X-Naver-Client-Id", clientID)
	h.Set("X-Naver-Client-Secret", clientSecret)
	return h
}
