package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/lukman83/naverscrap/internal/models"
	"github.com/lukman83/naverscrap/internal/platform"
	"github.com/lukman83/naverscrap/internal/report"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearcher struct {
	products []models.Product
	gotOpts  platform.SearchOpts
	shipping int
}

func (s *stubSearcher) Collect(_ context.Context, _ string, opts platform.SearchOpts) ([]models.Product, error) {
	s.gotOpts = opts
	return s.products, nil
}

func (s *stubSearcher) ShippingCost(context.Context, string) int { return s.shipping }

func newStubTools(t *testing.T, name string, stub *stubSearcher) *tools {
	t.Helper()
	platform.Register(name, stub)
	return &tools{opts: Options{
		Platform:       name,
		PageSize:       100,
		MaxResults:     1000,
		Exclude:        []string{"양갈비"},
		OutputPathHint: filepath.Join(t.TempDir(), "naver_products.xlsx"),
	}}
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func sampleProducts() []models.Product {
	return []models.Product{
		{Name: "한돈 목살", Price: 12000, MallName: "A몰", Link: "https://example.com/1"},
		{Name: "한돈 목살 2", Price: 13000, MallName: "B몰", Link: "https://example.com/1"},
		{Name: "양갈비 세트", Price: 30000, MallName: models.MallNameUnknown, Link: "https://example.com/2"},
	}
}

func TestSearchProductsAppliesDefaultsAndCleans(t *testing.T) {
	stub := &stubSearcher{products: sampleProducts()}
	tl := newStubTools(t, "stub-search", stub)

	res, err := tl.handleSearchProducts(context.Background(), callRequest(map[string]any{
		"keyword":     "돼지고기",
		"max_results": 200,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	var got []models.Product
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "한돈 목살", got[0].Name)
	assert.Equal(t, platform.SearchOpts{PageSize: 100, MaxResults: 200}, stub.gotOpts)
}

func TestSearchProductsExcludeArgumentOverridesDefault(t *testing.T) {
	stub := &stubSearcher{products: sampleProducts()}
	tl := newStubTools(t, "stub-exclude", stub)

	res, err := tl.handleSearchProducts(context.Background(), callRequest(map[string]any{
		"keyword": "돼지고기",
		"exclude": "목살, ",
	}))
	require.NoError(t, err)

	var got []models.Product
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "양갈비 세트", got[0].Name)
}

func TestToolsRejectMissingArguments(t *testing.T) {
	tl := newStubTools(t, "stub-missing", &stubSearcher{})

	res, err := tl.handleSearchProducts(context.Background(), callRequest(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = tl.handleShippingCost(context.Background(), callRequest(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	tl.opts.Platform = "not-registered"
	res, err = tl.handleSearchProducts(context.Background(), callRequest(map[string]any{"keyword": "x"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestExportReportWritesWorkbook(t *testing.T) {
	tl := newStubTools(t, "stub-export", &stubSearcher{products: sampleProducts()})

	res, err := tl.handleExportReport(context.Background(), callRequest(map[string]any{"keyword": "돼지고기"}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	var got report.Result
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	assert.Equal(t, tl.opts.OutputPathHint, got.Path)
	assert.Equal(t, 3, got.Collected)
	assert.Equal(t, 1, got.Excluded)
	assert.Equal(t, 1, got.Duplicates)
	assert.Equal(t, 1, got.Rows)
	assert.FileExists(t, got.Path)
}

func TestExportReportKeepsOutputInConfiguredDirectory(t *testing.T) {
	tl := newStubTools(t, "stub-output", &stubSearcher{products: sampleProducts()})
	dir := filepath.Dir(tl.opts.OutputPathHint)
	outside := t.TempDir()

	for _, output := range []string{
		filepath.Join(dir, "elsewhere", "..", "escaped.xlsx"),
		filepath.Join(outside, "abs.xlsx"),
		"../escaped.xlsx",
		"sub/r.xlsx",
		"..",
	} {
		res, err := tl.handleExportReport(context.Background(), callRequest(map[string]any{
			"keyword": "돼지고기",
			"output":  output,
		}))
		require.NoError(t, err)
		assert.True(t, res.IsError, output)
	}
	assert.NoFileExists(t, filepath.Join(dir, "escaped.xlsx"))
	assert.NoFileExists(t, filepath.Join(filepath.Dir(dir), "escaped.xlsx"))
	assert.NoFileExists(t, filepath.Join(outside, "abs.xlsx"))

	res, err := tl.handleExportReport(context.Background(), callRequest(map[string]any{
		"keyword": "돼지고기",
		"output":  "pork.xlsx",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	var got report.Result
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	assert.Equal(t, filepath.Join(dir, "pork.xlsx"), got.Path)
	assert.FileExists(t, got.Path)
}

func TestExportReportSkipsEmptyCollection(t *testing.T) {
	tl := newStubTools(t, "stub-empty", &stubSearcher{})

	res, err := tl.handleExportReport(context.Background(), callRequest(map[string]any{"keyword": "돼지고기"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.NoFileExists(t, tl.opts.OutputPathHint)
}

func TestShippingCost(t *testing.T) {
	tl := newStubTools(t, "stub-shipping", &stubSearcher{shipping: 3000})

	res, err := tl.handleShippingCost(context.Background(), callRequest(map[string]any{"url": "https://example.com/1"}))
	require.NoError(t, err)
	assert.Equal(t, "3000", resultText(t, res))
}

func TestHTTPHandlerAuth(t *testing.T) {
	h := newHTTPHandler("secret", Options{Platform: "naver"})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/mcp", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")

	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
}
