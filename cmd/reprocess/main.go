// Command reprocess re-runs validation and field extraction over stored
// receipt files. Useful after improving the extraction vocabularies or when
// earlier runs failed.
package main

import (
	"flag"
	"log"
	"os"

	"receiptscan/models"
	"receiptscan/pkg/extract"
	"receiptscan/pkg/ocrtext"
	"receiptscan/pkg/pdfcheck"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	all := flag.Bool("all", false, "reprocess every file, not just unprocessed ones")
	dry := flag.Bool("dry", false, "print what would change without writing")
	flag.Parse()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN not set in env")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}

	q := db.Model(&models.ReceiptFile{})
	if !*all {
		q = q.Where("is_processed = ?", false)
	}
	var files []models.ReceiptFile
	if err := q.Order("id").Find(&files).Error; err != nil {
		log.Fatalf("query receipt files: %v", err)
	}
	log.Printf("reprocessing %d files (all=%v dry=%v)", len(files), *all, *dry)

	engine := extract.NewEngine(extract.DefaultConfig())
	for i := range files {
		rf := &files[i]
		valid, reason := pdfcheck.Validate(rf.StorePath)
		if !valid {
			log.Printf("skip %s: %s", rf.FileName, reason)
			if !*dry {
				rf.IsValid = &valid
				rf.InvalidReason = reason
				db.Save(rf)
			}
			continue
		}
		text, err := ocrtext.FromPDF(rf.StorePath)
		if err != nil {
			log.Printf("skip %s: %v", rf.FileName, err)
			continue
		}
		rec := engine.Run(text)
		if *dry {
			log.Printf("would update %s: merchant=%q items=%d total=%v", rf.FileName, rec.MerchantName, len(rec.Items), rec.TotalAmount)
			continue
		}
		if err := save(db, rf, rec); err != nil {
			log.Printf("save %s: %v", rf.FileName, err)
			continue
		}
		log.Printf("updated %s: merchant=%q items=%d", rf.FileName, rec.MerchantName, len(rec.Items))
	}
}

// save upserts the receipt for a file and replaces its items, mirroring what
// the HTTP process endpoint does.
func save(db *gorm.DB, rf *models.ReceiptFile, rec extract.Receipt) error {
	valid := true
	rf.IsValid = &valid
	rf.InvalidReason = ""

	var receipt models.Receipt
	if err := db.Where("receipt_file_id = ?", rf.ID).First(&receipt).Error; err != nil {
		receipt = models.Receipt{ReceiptFileID: rf.ID, UserID: rf.UserID}
	}
	receipt.MerchantName = rec.MerchantName
	receipt.PurchasedAt = rec.PurchasedAt
	receipt.DateFound = rec.DateFound
	receipt.TotalAmount = rec.TotalAmount
	receipt.TaxAmount = rec.TaxAmount
	receipt.PaymentMethod = rec.PaymentMethod
	receipt.Currency = rec.Currency
	receipt.RawText = rec.RawText
	if err := db.Save(&receipt).Error; err != nil {
		return err
	}
	if err := db.Where("receipt_id = ?", receipt.ID).Delete(&models.ReceiptItem{}).Error; err != nil {
		return err
	}
	for _, it := range rec.Items {
		item := models.ReceiptItem{
			ReceiptID:  receipt.ID,
			ItemName:   it.Description,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
		}
		if err := db.Create(&item).Error; err != nil {
			return err
		}
	}
	rf.IsProcessed = true
	return db.Save(rf).Error
}
