package mcp

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/lukman83/naverscrap/internal/logger"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// ServeHTTP starts the MCP server over HTTP with optional Bearer token auth.
func ServeHTTP(addr, apiKey string, opts Options) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      newHTTPHandler(apiKey, opts),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // a full search runs inside one tool call
		IdleTimeout:  120 * time.Second,
	}

	logger.OrNop(opts.Logger).Info("MCP HTTP server listening", zap.String("addr", addr))
	return srv.ListenAndServe()
}

func newHTTPHandler(apiKey string, opts Options) http.Handler {
	httpServer := server.NewStreamableHTTPServer(newServer(opts), server.WithStateLess(true))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	var mcpHandler http.Handler = httpServer
	if apiKey != "" {
		mcpHandler = bearerAuth(apiKey, httpServer)
	}
	mux.Handle("/mcp", mcpHandler)
	return mux
}

func bearerAuth(apiKey string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" {
			w.Header().Set("WWW-Authenticate", `Bearer realm="mcp"`)
			http.Error(w, `{"error":"missing Authorization header"}`, http.StatusUnauthorized)
			return
		}
		token, found := strings.CutPrefix(auth, "Bearer ")
		if !found || subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) != 1 {
			w.Header().Set("WWW-Authenticate", `Bearer realm="mcp", error="invalid_token"`)
			http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
