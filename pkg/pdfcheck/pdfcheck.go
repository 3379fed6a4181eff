// Package pdfcheck decides whether an uploaded file is a PDF we can work with.
package pdfcheck

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Validate inspects the file at path and reports whether it is a usable PDF.
// When it is not, the second return value carries a human-readable reason
// suitable for storing alongside the file record.
func Validate(path string) (ok bool, reason string) {
	info, err := os.Stat(path)
	if err != nil {
		return false, "file not found"
	}
	if info.IsDir() {
		return false, "not a regular file"
	}
	if info.Size() == 0 {
		return false, "file is empty"
	}
	if strings.ToLower(filepath.Ext(path)) != ".pdf" {
		return false, "not a .pdf file"
	}

	numPages, err := pageCount(path)
	if err != nil {
		return false, fmt.Sprintf("not a valid PDF: %v", err)
	}
	if numPages == 0 {
		return false, "PDF has no pages"
	}
	return true, ""
}

// pageCount opens the PDF and returns its page count. The pdf library can
// panic on malformed files, so treat a panic as a parse error.
func pageCount(path string) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed document: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return r.NumPage(), nil
}
