// Package ocrtext turns a receipt PDF into plain text. It prefers the PDF's
// embedded text layer and falls back to rendering each page and running
// Tesseract when the document is a scan.
package ocrtext

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
	"github.com/otiai10/gosseract/v2"
)

// FromPDF extracts the text of the PDF at path. Returns ErrNoText when the
// document has no readable text layer and OCR produces nothing usable either.
func FromPDF(path string) (string, error) {
	pages, err := textLayer(path)
	if err == nil && readable(pages) {
		return strings.Join(pages, "\n"), nil
	}
	if err != nil {
		log.Printf("text layer extraction failed for %s: %v; falling back to OCR", path, err)
	}

	pages, err = ocrPages(path)
	if err != nil {
		return "", fmt.Errorf("ocr fallback: %w", err)
	}
	if !readable(pages) {
		return "", ErrNoText
	}
	return strings.Join(pages, "\n"), nil
}

// textLayer pulls the embedded text of each page. The pdf library can panic
// on malformed or exotic files, so a panic is reported as an error.
func textLayer(path string) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf library crashed: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages, nil
}

// ocrPages renders every page to an image and runs it through Tesseract.
func ocrPages(path string) ([]string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf for rendering: %w", err)
	}
	defer doc.Close()

	client := gosseract.NewClient()
	defer client.Close()
	_ = client.SetLanguage("eng")
	_ = client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK)

	var pages []string
	for i := 0; i < doc.NumPage(); i++ {
		img, err := doc.Image(i)
		if err != nil {
			log.Printf("render page %d of %s: %v", i, path, err)
			continue
		}

		gray := imaging.Grayscale(img)
		if gray.Bounds().Dy() < 800 {
			gray = imaging.Resize(gray, 0, 1200, imaging.Lanczos)
		}

		tmpFile, err := os.CreateTemp("", "ocrtext-*.png")
		if err != nil {
			return nil, fmt.Errorf("temp file: %w", err)
		}
		tmp := tmpFile.Name()
		_ = tmpFile.Close()
		if err := imaging.Save(gray, tmp); err != nil {
			_ = os.Remove(tmp)
			return nil, fmt.Errorf("save page image: %w", err)
		}

		client.SetImage(tmp)
		text, err := client.Text()
		_ = os.Remove(tmp)
		if err != nil {
			return nil, fmt.Errorf("tesseract: %w", err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// readable decides whether extracted pages are usable text rather than the
// garbage that custom font encodings produce. Requires a minimum amount of
// text and a high ratio of plain ASCII characters.
func readable(pages []string) bool {
	total := 0
	good := 0
	for _, page := range pages {
		for _, r := range page {
			total++
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
				(r >= '0' && r <= '9') || r == ' ' || r == '\n' || r == '\t' ||
				r == '.' || r == ',' || r == '-' || r == '/' || r == ':' ||
				r == '$' || r == '#' || r == '%' || r == '(' || r == ')' ||
				r == '*' || r == '@' || r == '&' {
				good++
			}
		}
	}
	if total < 20 {
		return false
	}
	return float64(good)/float64(total) > 0.6
}
