package report

import (
	"archive/zip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lukman83/naverscrap/internal/models"
	"github.com/lukman83/naverscrap/internal/opener"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func product(name string, price int64, link string) models.Product {
	return models.Product{Name: name, Price: price, MallName: models.MallNameUnknown, Link: link}
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestAvailablePath(t *testing.T) {
	dir := t.TempDir()
	hint := filepath.Join(dir, "report.xlsx")

	got, err := AvailablePath(hint)
	require.NoError(t, err)
	assert.Equal(t, hint, got)

	touch(t, hint)
	touch(t, filepath.Join(dir, "report_1.xlsx"))

	got, err = AvailablePath(hint)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report_2.xlsx"), got)
	assert.NoFileExists(t, got)

	_, err = AvailablePath("")
	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestDedupeKeepsFirstInOrder(t *testing.T) {
	in := []models.Product{
		product("a1", 1, "A"),
		product("a2", 2, "A"),
		product("b", 3, "B"),
		product("a3", 4, "A"),
	}
	out := Dedupe(in)
	require.Len(t, out, 2)
	assert.Equal(t, "a1", out[0].Name)
	assert.Equal(t, "b", out[1].Name)
	assert.Len(t, in, 4, "input untouched")
}

func TestExcludeIsCaseInsensitiveSubstring(t *testing.T) {
	in := []models.Product{
		product("양갈비 선물세트", 1, "u1"),
		product("한돈 목살", 2, "u2"),
		product("Free SHIPPED box", 3, "u3"),
		product("price (1+1)", 4, "u4"),
	}

	out := Exclude(in, []string{"양갈비", "shipped", "(1+1)", ""})
	require.Len(t, out, 1)
	assert.Equal(t, "한돈 목살", out[0].Name)

	assert.Equal(t, in, Exclude(in, nil))
	assert.Equal(t, in, Exclude(in, []string{""}))
	assert.Nil(t, ExcludePattern(nil))
}

func TestCleanIsIdempotent(t *testing.T) {
	in := []models.Product{
		product("A", 100, "u1"),
		product("A", 100, "u1"),
		product("B Shipped", 50, "u2"),
		product("C", 10, "u3"),
		product("c again", 10, "u3"),
	}
	exclude := []string{"shipped"}
	once := Clean(in, exclude)
	assert.Equal(t, once, Clean(once, exclude))
	assert.Len(t, once, 2)
}

func readSheetXML(t *testing.T, path string) string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()
	for _, f := range zr.File {
		if f.Name == "xl/worksheets/sheet1.xml" {
			rc, err := f.Open()
			require.NoError(t, err)
			defer rc.Close()
			b, err := io.ReadAll(rc)
			require.NoError(t, err)
			// cell references may be written absolute
			return strings.ReplaceAll(string(b), "$", "")
		}
	}
	t.Fatalf("sheet1.xml not found in %s", path)
	return ""
}

func TestExportEndToEnd(t *testing.T) {
	dir := t.TempDir()
	var opened []string
	e := &Exporter{Opener: opener.Func(func(p string) error {
		opened = append(opened, p)
		return nil
	})}

	in := []models.Product{
		product("A", 100, "u1"),
		product("A", 100, "u1"),
		product("B Shipped", 50, "u2"),
	}
	res, err := e.Export(in, filepath.Join(dir, "naver_products.xlsx"), []string{"Shipped"})
	require.NoError(t, err)

	assert.Equal(t, &Result{
		Path:       filepath.Join(dir, "naver_products.xlsx"),
		Collected:  3,
		Excluded:   1,
		Duplicates: 1,
		Rows:       1,
	}, res)
	assert.Equal(t, []string{res.Path}, opened)

	f, err := excelize.OpenFile(res.Path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"name", "price", "mall_name", "link"},
		{"A", "100", "N/A", "u1"},
	}, rows)

	ok, target, err := f.GetCellHyperLink(SheetName, "A2")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "u1", target)

	styleID, err := f.GetCellStyle(SheetName, "A2")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.Equal(t, "single", style.Font.Underline)
	assert.Equal(t, "0000FF", strings.TrimPrefix(strings.ToUpper(style.Font.Color), "FF"))

	// widths: longest value + 2
	for col, want := range map[string]float64{"A": 6, "B": 7, "C": 11, "D": 6} {
		w, err := f.GetColWidth(SheetName, col)
		require.NoError(t, err)
		assert.Equal(t, want, w, col)
	}

	assert.Contains(t, readSheetXML(t, res.Path), `<autoFilter ref="A1:D2"`)
}

func TestExportNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	hint := filepath.Join(dir, "report.xlsx")
	touch(t, hint)

	e := &Exporter{}
	res, err := e.Export([]models.Product{product("A", 1, "u1")}, hint, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report_1.xlsx"), res.Path)

	info, err := os.Stat(hint)
	require.NoError(t, err)
	assert.Zero(t, info.Size(), "existing file untouched")

	res, err = e.Export(nil, filepath.Join(dir, "noext"), nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "noext.xlsx"), res.Path)
}

func TestExportWritesHeaderOnlyWhenEverythingIsFiltered(t *testing.T) {
	dir := t.TempDir()
	e := &Exporter{}
	res, err := e.Export([]models.Product{product("양갈비", 1, "u1")}, filepath.Join(dir, "r.xlsx"), []string{"양갈비"})
	require.NoError(t, err)
	assert.Zero(t, res.Rows)

	f, err := excelize.OpenFile(res.Path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"name", "price", "mall_name", "link"}}, rows)
	assert.Contains(t, readSheetXML(t, res.Path), `<autoFilter ref="A1:D1"`)
}

func TestExportLogsOpenFailure(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	e := &Exporter{
		Opener: opener.Func(func(string) error { return errors.New("no viewer") }),
		Logger: zap.New(core),
	}
	res, err := e.Export([]models.Product{product("A", 1, "u1")}, filepath.Join(t.TempDir(), "r.xlsx"), nil)
	require.NoError(t, err)
	assert.FileExists(t, res.Path)
	assert.Equal(t, 1, logs.FilterMessage("failed to open the report").Len())
}

func TestExportRejectsEmptyPath(t *testing.T) {
	t.Chdir(t.TempDir())
	e := &Exporter{}
	for _, hint := range []string{"", "   "} {
		_, err := e.Export([]models.Product{product("A", 1, "u1")}, hint, nil)
		assert.ErrorIs(t, err, ErrEmptyPath, "%q", hint)
	}
	assert.NoFileExists(t, DefaultExtension)
}

func TestExportFailsOnUnwritableDirectory(t *testing.T) {
	e := &Exporter{}
	_, err := e.Export(nil, filepath.Join(t.TempDir(), "missing", "dir", "r.xlsx"), nil)
	assert.Error(t, err)
}
