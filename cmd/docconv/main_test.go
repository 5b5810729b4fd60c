package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	docconv "github.com/porticus-lab/go-docconv"
)

// run executes the CLI with args inside a fresh working directory.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func workdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return dir
}

func TestConvertCmd(t *testing.T) {
	dir := workdir(t)
	require.NoError(t, os.WriteFile("note.txt", []byte("Hello World"), 0o644))

	out, err := run(t, "convert", "note.txt", "--to", "html")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote note.html (text/html")

	data, err := os.ReadFile(filepath.Join(dir, "note.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<title>note</title>")
}

func TestConvertCmd_Stdout(t *testing.T) {
	workdir(t)
	require.NoError(t, os.WriteFile("page.html", []byte("<p>Fish &amp; chips</p>"), 0o644))

	out, err := run(t, "convert", "page.html", "-t", "txt", "-o", "-")
	require.NoError(t, err)
	assert.Equal(t, "Fish & chips", out)
}

func TestConvertCmd_Errors(t *testing.T) {
	workdir(t)
	require.NoError(t, os.WriteFile("note.txt", []byte("x"), 0o644))
	require.NoError(t, os.WriteFile("data.json", []byte(`{"a":1}`), 0o644))

	_, err := run(t, "convert", "note.txt", "--to", "txt")
	assert.ErrorContains(t, err, "refusing to overwrite")

	_, err = run(t, "convert", "note.txt", "--to", "gif")
	assert.ErrorIs(t, err, docconv.ErrUnknownFormat)

	_, err = run(t, "convert", "data.json", "--to", "pdf")
	assert.ErrorIs(t, err, docconv.ErrUnsupportedSource)

	_, err = run(t, "convert", "missing.txt", "--to", "pdf")
	assert.Error(t, err)
}

func TestPDFCommands(t *testing.T) {
	workdir(t)

	_, err := run(t, "tasklist", "Buy", "milk", "-o", "a.pdf")
	require.NoError(t, err)
	_, err = run(t, "tasklist", "Call Bob", "-o", "b.pdf")
	require.NoError(t, err)

	out, err := run(t, "merge", "a.pdf", "b.pdf")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote merged.pdf")

	out, err = run(t, "info", "merged.pdf")
	require.NoError(t, err)
	assert.Contains(t, out, "Pages:   2")
	assert.Contains(t, out, "Page 2: 595 x 842 pt")

	out, err = run(t, "extract", "-p", "2", "-f", "json", "merged.pdf")
	require.NoError(t, err)
	var pages []docconv.PDFPage
	require.NoError(t, json.Unmarshal([]byte(out), &pages))
	require.Len(t, pages, 1)
	assert.Equal(t, 2, pages[0].Number)
	assert.Contains(t, pages[0].Text, "Call Bob")

	_, err = run(t, "extract", "-p", "3", "merged.pdf")
	assert.ErrorContains(t, err, "out of bounds")

	require.NoError(t, os.WriteFile("keep.txt", []byte("previous contents"), 0o644))
	_, err = run(t, "extract", "-o", "keep.txt", "-f", "bogus", "merged.pdf")
	assert.ErrorContains(t, err, `unknown output format "bogus"`)
	kept, err := os.ReadFile("keep.txt")
	require.NoError(t, err)
	assert.Equal(t, "previous contents", string(kept))
}

func TestFormatsCmd(t *testing.T) {
	workdir(t)
	out, err := run(t, "formats")
	require.NoError(t, err)
	assert.Contains(t, out, "docx  Word Document (stub)")

	out, err = run(t, "formats", "--json")
	require.NoError(t, err)
	var catalog []docconv.FormatInfo
	require.NoError(t, json.Unmarshal([]byte(out), &catalog))
	assert.Len(t, catalog, 7)
}

func TestConfigCmd(t *testing.T) {
	workdir(t)
	require.NoError(t, os.WriteFile("docconv.yaml", []byte("server:\n  port: 9999\n"), 0o644))
	t.Setenv("DOCCONV_IMAGE_JPEG_QUALITY", "70")

	out, err := run(t, "config", "--page-size", "letter")
	require.NoError(t, err)
	assert.Contains(t, out, "size: letter")
	assert.Contains(t, out, "port: 9999")
	assert.Contains(t, out, "jpeg_quality: 70")
}

func TestConfigCmd_Invalid(t *testing.T) {
	workdir(t)
	_, err := run(t, "config", "--orientation", "sideways")
	assert.ErrorContains(t, err, "invalid config")

	_, err = run(t, "config", "--config", "nope.yaml")
	assert.ErrorContains(t, err, "reading config")
}

func TestVersionCmd(t *testing.T) {
	workdir(t)
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "docconv dev\n", out)
}
