package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"receiptscan/models"
	"receiptscan/pkg/ocrtext"
	"receiptscan/pkg/pdfcheck"

	"github.com/fsnotify/fsnotify"
)

// startInboxWatcher watches dir for dropped PDFs and runs the full
// validate/extract/persist pipeline on each. Files picked up this way are
// attributed to the seeded admin user.
func startInboxWatcher(dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}

	// Sweep anything already sitting in the inbox before watching for new files.
	entries, err := os.ReadDir(dir)
	if err == nil {
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if strings.ToLower(filepath.Ext(e.Name())) == ".pdf" {
				ingestInboxFile(filepath.Join(dir, e.Name()))
			}
		}
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&fsnotify.Create == 0 {
					continue
				}
				if strings.ToLower(filepath.Ext(event.Name)) != ".pdf" {
					continue
				}
				// Give the writer a moment to finish before reading.
				time.Sleep(500 * time.Millisecond)
				ingestInboxFile(event.Name)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("inbox watcher error: %v", err)
			}
		}
	}()
	log.Printf("watching inbox directory %s", dir)
	return nil
}

// ingestInboxFile runs one inbox PDF through the same pipeline the API exposes.
func ingestInboxFile(path string) {
	var admin models.User
	if err := db.Where("username = ?", "admin").First(&admin).Error; err != nil {
		log.Printf("inbox: no admin user to attribute %s to: %v", path, err)
		return
	}

	fileName := filepath.Base(path)
	var rf models.ReceiptFile
	if err := db.Where("user_id = ? AND file_name = ?", admin.ID, fileName).First(&rf).Error; err != nil {
		rf = models.ReceiptFile{UserID: admin.ID, FileName: fileName, StorePath: path, ContentType: "application/pdf"}
		if err := db.Create(&rf).Error; err != nil {
			log.Printf("inbox: create record for %s: %v", path, err)
			return
		}
	} else {
		rf.StorePath = path
		rf.IsProcessed = false
	}

	valid, reason := pdfcheck.Validate(path)
	rf.IsValid = &valid
	rf.InvalidReason = reason
	if err := db.Save(&rf).Error; err != nil {
		log.Printf("inbox: save verdict for %s: %v", path, err)
		return
	}
	if !valid {
		log.Printf("inbox: %s rejected: %s", path, reason)
		return
	}

	text, err := ocrtext.FromPDF(path)
	if err != nil {
		log.Printf("inbox: text extraction for %s: %v", path, err)
		return
	}
	rec := extractor.Run(text)
	if _, err := persistExtraction(&rf, rec); err != nil {
		log.Printf("inbox: persist %s: %v", path, err)
		return
	}
	log.Printf("inbox: processed %s (merchant=%s items=%d)", fileName, rec.MerchantName, len(rec.Items))
}
