package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"receiptscan/models"
	"receiptscan/pkg/extract"
	"receiptscan/pkg/ocrtext"
	"receiptscan/pkg/pdfcheck"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// extractor is the shared field extraction engine. It is stateless apart from
// its vocabularies, so one instance serves all requests.
var extractor = extract.NewEngine(extract.DefaultConfig())

func setupRoutes(r *gin.Engine) {
	r.POST("/register", registerHandler)
	r.POST("/login", loginHandler)
	r.POST("/refresh", refreshHandler)
	r.POST("/revoke_refresh", revokeRefreshHandler)

	api := r.Group("/api")
	api.GET("", indexHandler)
	authGroup := api.Group("")
	authGroup.Use(jwtAuthMiddleware())
	authGroup.GET("/me", meHandler)
	authGroup.POST("/upload", uploadReceiptHandler)
	authGroup.POST("/validate/:id", validateReceiptHandler)
	authGroup.POST("/process/:id", processReceiptHandler)
	authGroup.GET("/receipt-files", listReceiptFilesHandler)
	authGroup.GET("/receipts", listReceiptsHandler)
	authGroup.GET("/receipts/:id", getReceiptHandler)
	authGroup.GET("/download/:id", downloadReceiptFileHandler)
}

// indexHandler lists the available endpoints so the API is discoverable.
func indexHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "receiptscan",
		"endpoints": []string{
			"POST /register",
			"POST /login",
			"POST /refresh",
			"POST /api/upload",
			"POST /api/validate/:id",
			"POST /api/process/:id",
			"GET  /api/receipt-files",
			"GET  /api/receipts",
			"GET  /api/receipts/:id",
			"GET  /api/download/:id",
		},
	})
}

func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			c.Abort()
			return
		}
		tokenString := authHeader[7:]
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}
		username, _ := claims["username"].(string)
		role, _ := claims["role"].(string)
		c.Set("username", username)
		if role != "" {
			c.Set("role", role)
		}
		c.Next()
	}
}

func meHandler(c *gin.Context) {
	usernameVal, _ := c.Get("username")
	if usernameVal == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "context missing username"})
		return
	}
	username := usernameVal.(string)
	c.JSON(http.StatusOK, gin.H{"username": username})
}

// getUserFromContext fetches the currently authenticated user using the username set by jwtAuthMiddleware
func getUserFromContext(c *gin.Context) (*models.User, bool) {
	unameVal, _ := c.Get("username")
	if unameVal == nil {
		return nil, false
	}
	uname := unameVal.(string)
	var user models.User
	if err := db.Where("username = ?", uname).First(&user).Error; err != nil {
		return nil, false
	}
	return &user, true
}

func registerHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := RegisterUser(req.Username, req.Password); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user registered successfully"})
}

func loginHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := Authenticate(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	tokenString, err := signAccessToken(user, 24*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	// create refresh token
	refreshToken, err := createAndStoreRefreshToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "login successful", "token": tokenString, "refresh_token": refreshToken})
}

// signAccessToken builds an HS256 JWT carrying the username and role name.
func signAccessToken(user models.User, ttl time.Duration) (string, error) {
	roleName := ""
	if user.RoleID != nil {
		var r models.Role
		if err := db.First(&r, *user.RoleID).Error; err == nil {
			roleName = r.Name
		}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": user.Username,
		"role":     roleName,
		"exp":      time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(jwtSecret)
}

// createAndStoreRefreshToken generates a random refresh token, stores its hash with expiry and returns the raw token string
func createAndStoreRefreshToken(userID uint) (string, error) {
	// generate random 32-byte token (hex)
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := hex.EncodeToString(b)
	// hash for storage
	h := sha256.Sum256([]byte(token))
	th := hex.EncodeToString(h[:])
	rt := models.RefreshToken{UserID: userID, TokenHash: th, ExpiresAt: time.Now().Add(30 * 24 * time.Hour)}
	if err := db.Create(&rt).Error; err != nil {
		return "", err
	}
	return token, nil
}

// helper to find refresh token record by raw token string
func findRefreshTokenByRaw(token string) (*models.RefreshToken, error) {
	h := sha256.Sum256([]byte(token))
	th := hex.EncodeToString(h[:])
	var rt models.RefreshToken
	if err := db.Where("token_hash = ?", th).First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

// refreshHandler exchanges a refresh token for a new access token and rotates the refresh token
func refreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rt, err := findRefreshTokenByRaw(req.RefreshToken)
	if err != nil || rt.Revoked || time.Now().After(rt.ExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired refresh token"})
		return
	}
	var user models.User
	if err := db.First(&user, rt.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	tokenString, err := signAccessToken(user, 15*time.Minute)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	// rotate refresh token: revoke existing and create new one
	db.Model(&models.RefreshToken{}).Where("id = ?", rt.ID).Update("revoked", true)
	newRT, err := createAndStoreRefreshToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rotate refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tokenString, "refresh_token": newRT})
}

// revokeRefreshHandler revokes a given refresh token (useful on logout)
func revokeRefreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rt, err := findRefreshTokenByRaw(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "refresh token not found"})
		return
	}
	rt.Revoked = true
	if err := db.Save(rt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "refresh token revoked"})
}

// uploadReceiptHandler accepts a multipart PDF upload, stores it under a
// year subdirectory with a uuid-prefixed name, and upserts the ReceiptFile
// record keyed by the original file name.
func uploadReceiptHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file missing"})
		return
	}
	if file.Size > 10*1024*1024 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large (max 10MB)"})
		return
	}
	if strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only .pdf files are accepted"})
		return
	}

	year := fmt.Sprintf("%d", time.Now().Year())
	storedName := uuid.NewString() + "_" + filepath.Base(file.Filename)
	relPath := filepath.Join(year, storedName)
	fullPath := filepath.Join(uploadBaseDir(), relPath)
	if err := os.MkdirAll(filepath.Join(uploadBaseDir(), year), 0755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mkdir failed"})
		return
	}
	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	ct := file.Header.Get("Content-Type")

	// Re-uploading the same file name replaces the stored copy and resets
	// the validation/processing state instead of creating a second record.
	var existing models.ReceiptFile
	if err := db.Where("user_id = ? AND file_name = ?", user.ID, file.Filename).First(&existing).Error; err == nil {
		existing.StorePath = fullPath
		existing.ContentType = ct
		existing.IsValid = nil
		existing.InvalidReason = ""
		existing.IsProcessed = false
		if err := db.Save(&existing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db save failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": existing.ID, "file_name": existing.FileName, "store_path": existing.StorePath})
		return
	}

	rf := models.ReceiptFile{UserID: user.ID, FileName: file.Filename, StorePath: fullPath, ContentType: ct}
	if err := db.Create(&rf).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db save failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": rf.ID, "file_name": rf.FileName, "store_path": rf.StorePath})
}

// getOwnedReceiptFile loads a receipt file by path param and enforces ownership
// (admins can reach any file).
func getOwnedReceiptFile(c *gin.Context) (*models.ReceiptFile, bool) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return nil, false
	}
	role, _ := c.Get("role")
	var rf models.ReceiptFile
	if err := db.First(&rf, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return nil, false
	}
	if role != "administrator" && rf.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return nil, false
	}
	return &rf, true
}

// validateReceiptHandler runs the PDF check against a stored file and persists the verdict.
func validateReceiptHandler(c *gin.Context) {
	rf, ok := getOwnedReceiptFile(c)
	if !ok {
		return
	}
	valid, reason := pdfcheck.Validate(rf.StorePath)
	rf.IsValid = &valid
	rf.InvalidReason = reason
	if err := db.Save(rf).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db save failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": rf.ID, "is_valid": valid, "invalid_reason": reason})
}

// processReceiptHandler extracts text from a validated file, runs field
// extraction and persists the resulting receipt with its items.
func processReceiptHandler(c *gin.Context) {
	rf, ok := getOwnedReceiptFile(c)
	if !ok {
		return
	}
	if rf.IsValid == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file has not been validated yet"})
		return
	}
	if !*rf.IsValid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file failed validation: " + rf.InvalidReason})
		return
	}

	text, err := ocrtext.FromPDF(rf.StorePath)
	if err != nil {
		if errors.Is(err, ocrtext.ErrNoText) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no readable text in document"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "text extraction failed: " + err.Error()})
		return
	}

	rec := extractor.Run(text)
	receipt, err := persistExtraction(rf, rec)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db save failed"})
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// persistExtraction upserts the Receipt for a file (one receipt per file) and
// replaces its line items. Also marks the file processed.
func persistExtraction(rf *models.ReceiptFile, rec extract.Receipt) (*models.Receipt, error) {
	var receipt models.Receipt
	err := db.Where("receipt_file_id = ?", rf.ID).First(&receipt).Error
	if err != nil {
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
		return nil, err
	}

	// Replace items wholesale; partial updates are not worth the bookkeeping.
	if err := db.Where("receipt_id = ?", receipt.ID).Delete(&models.ReceiptItem{}).Error; err != nil {
		return nil, err
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
			return nil, err
		}
		receipt.Items = append(receipt.Items, item)
	}

	rf.IsProcessed = true
	if err := db.Save(rf).Error; err != nil {
		return nil, err
	}
	return &receipt, nil
}

// listReceiptFilesHandler returns receipt files; admin sees all, user only their own.
func listReceiptFilesHandler(c *gin.Context) {
	role, _ := c.Get("role")
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var files []models.ReceiptFile
	q := db.Model(&models.ReceiptFile{})
	if role != "administrator" {
		q = q.Where("user_id = ?", user.ID)
	}
	if err := q.Order("id desc").Limit(200).Find(&files).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, files)
}

// listReceiptsHandler lists processed receipts with their items.
func listReceiptsHandler(c *gin.Context) {
	role, _ := c.Get("role")
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var receipts []models.Receipt
	q := db.Model(&models.Receipt{}).Preload("Items")
	if role != "administrator" {
		q = q.Where("user_id = ?", user.ID)
	}
	if err := q.Order("id desc").Limit(200).Find(&receipts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, receipts)
}

// getReceiptHandler returns a single receipt with items if admin or owner.
func getReceiptHandler(c *gin.Context) {
	role, _ := c.Get("role")
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var receipt models.Receipt
	if err := db.Preload("Items").First(&receipt, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if role != "administrator" && receipt.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// downloadReceiptFileHandler streams the stored PDF back to its owner.
func downloadReceiptFileHandler(c *gin.Context) {
	rf, ok := getOwnedReceiptFile(c)
	if !ok {
		return
	}
	if _, err := os.Stat(rf.StorePath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "stored file missing"})
		return
	}
	c.FileAttachment(rf.StorePath, rf.FileName)
}
