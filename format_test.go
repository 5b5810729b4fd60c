package docconv

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"pdf", FormatPDF},
		{"PDF", FormatPDF},
		{".docx", FormatDOCX},
		{" txt ", FormatTXT},
		{"text", FormatTXT},
		{"html", FormatHTML},
		{"htm", FormatHTML},
		{"png", FormatPNG},
		{"jpg", FormatJPG},
		{"jpeg", FormatJPG},
		{".JPEG", FormatJPG},
		{"zip", FormatZIP},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil {
			t.Errorf("ParseFormat(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat_Unknown(t *testing.T) {
	for _, in := range []string{"", "gif", "pdfx", "."} {
		if _, err := ParseFormat(in); !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("ParseFormat(%q) error = %v, want ErrUnknownFormat", in, err)
		}
	}
}

func TestFormatMetadata(t *testing.T) {
	tests := []struct {
		f                    Format
		name, mediaType, ext string
	}{
		{FormatPDF, "pdf", "application/pdf", ".pdf"},
		{FormatTXT, "txt", "text/plain", ".txt"},
		{FormatHTML, "html", "text/html", ".html"},
		{FormatDOCX, "docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", ".docx"},
		{FormatPNG, "png", "image/png", ".png"},
		{FormatJPG, "jpg", "image/jpeg", ".jpg"},
		{FormatZIP, "zip", "application/zip", ".zip"},
	}
	for _, tt := range tests {
		if !tt.f.Valid() {
			t.Errorf("%v.Valid() = false", tt.f)
		}
		if got := tt.f.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
		if got := tt.f.MediaType(); got != tt.mediaType {
			t.Errorf("%s.MediaType() = %q, want %q", tt.name, got, tt.mediaType)
		}
		if got := tt.f.Extension(); got != tt.ext {
			t.Errorf("%s.Extension() = %q, want %q", tt.name, got, tt.ext)
		}
	}
}

func TestFormat_Invalid(t *testing.T) {
	f := Format(99)
	if f.Valid() {
		t.Error("Format(99).Valid() = true")
	}
	if got := f.String(); got != "Format(99)" {
		t.Errorf("String() = %q", got)
	}
	if f.MediaType() != "" || f.Extension() != "" {
		t.Error("invalid format has metadata")
	}
}

func TestCatalog_IsCopy(t *testing.T) {
	c := Catalog()
	c[0].Name = "changed"
	if Catalog()[0].Name != "pdf" {
		t.Error("Catalog returned shared backing array")
	}
	stubs := 0
	for _, fi := range Catalog() {
		if fi.Stub {
			stubs++
		}
	}
	if stubs != 2 {
		t.Errorf("stub formats = %d, want 2", stubs)
	}
}
