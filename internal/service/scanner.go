package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/balanceai/wellness-backend/internal/models"
)

var (
	ErrMissingImage    = errors.New("image data is required")
	ErrInvalidScanType = errors.New(`invalid scan type, use "food" or "selfie"`)
)

const foodScanPrompt = `You are an expert nutrition analyst. Analyze the provided image of food and return a detailed nutritional breakdown.

Respond with a JSON object in the following format:
{
  "type": "food",
  "analysis": {
    "calories": <estimated_calories_number>,
    "nutrients": [
      { "name": "Carbohydrates", "amount": "<amount_in_grams>g" },
      { "name": "Protein", "amount": "<amount_in_grams>g" },
      { "name": "Fat", "amount": "<amount_in_grams>g" },
      { "name": "Fiber", "amount": "<amount_in_grams>g" }
    ],
    "recommendations": [
      "<recommendation_1_string>",
      "<recommendation_2_string>",
      "<recommendation_3_string>"
    ]
  }
}

Be as accurate as possible based on the visual information.`

const selfieScanPrompt = `You are a holistic wellness analyst. Analyze the provided selfie to identify visible health indicators. Focus on sleep, hydration, and stress. Be encouraging and supportive.

Respond with a JSON object in the following format:
{
  "type": "selfie",
  "analysis": {
    "healthMetrics": [
      { "name": "Sleep Quality", "status": "<status_string>", "advice": "<advice_string>" },
      { "name": "Hydration", "status": "<status_string>", "advice": "<advice_string>" },
      { "name": "Stress Levels", "status": "<status_string>", "advice": "<advice_string>" }
    ],
    "recommendations": [
      "<recommendation_1_string>",
      "<recommendation_2_string>",
      "<recommendation_3_string>"
    ]
  }
}

Provide constructive and kind feedback. Do not make medical diagnoses.`

// ScannerService classifies uploaded images under one of the fixed analysis
// modes and persists the resulting scan record.
type ScannerService struct {
	db      *gorm.DB
	ai      *OpenAIService
	storage *StorageService
}

// NewScannerService creates a new ScannerService instance. storage may be
// nil, in which case scan images are not archived.
func NewScannerService(db *gorm.DB, ai *OpenAIService, storage *StorageService) *ScannerService {
	return &ScannerService{db: db, ai: ai, storage: storage}
}

// PromptForScanType returns the instruction template for a scan mode.
func PromptForScanType(scanType string) (string, error) {
	switch scanType {
	case models.ScanTypeFood:
		return foodScanPrompt, nil
	case models.ScanTypeSelfie:
		return selfieScanPrompt, nil
	default:
		return "", ErrInvalidScanType
	}
}

// Analyze runs one image-analysis call and stores the result. The scan type
// is validated before any external call is made.
func (s *ScannerService) Analyze(ctx context.Context, userID uuid.UUID, image, scanType string) (models.JSONBMap, error) {
	if strings.TrimSpace(image) == "" {
		return nil, ErrMissingImage
	}
	prompt, err := PromptForScanType(scanType)
	if err != nil {
		return nil, err
	}

	result, err := s.ai.ChatCompletionJSON(ctx, []Message{
		{Role: "system", Content: prompt},
		{Role: "user", Content: ImageContent(image)},
	}, 500, 0.7)
	if err != nil {
		return nil, fmt.Errorf("failed to get AI response: %w", err)
	}

	var analysis models.JSONBMap
	if err := json.Unmarshal([]byte(result.Content), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse analysis JSON: %w", err)
	}

	imageURL := ""
	if s.storage != nil {
		if url, err := s.archiveImage(ctx, image); err != nil {
			log.Printf("[ScannerService] Failed to archive scan image: %v", err)
		} else {
			imageURL = url
		}
	}

	scan := models.ScanResult{
		UserID:          userID,
		ScanType:        scanType,
		AnalysisData:    analysis,
		Recommendations: extractRecommendations(analysis),
		ImageURL:        imageURL,
	}
	if err := s.db.WithContext(ctx).Create(&scan).Error; err != nil {
		return nil, fmt.Errorf("failed to store scan result: %w", err)
	}

	return analysis, nil
}

// History returns the most recent scan results for a user, newest first.
func (s *ScannerService) History(ctx context.Context, userID uuid.UUID, limit int) ([]models.ScanResult, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	var scans []models.ScanResult
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&scans).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load scan history: %w", err)
	}
	return scans, nil
}

// archiveImage decodes a data-URI image and uploads it to object storage.
func (s *ScannerService) archiveImage(ctx context.Context, image string) (string, error) {
	contentType, data, err := decodeDataURI(image)
	if err != nil {
		return "", err
	}
	return s.storage.UploadScanImage(ctx, data, contentType)
}

// decodeDataURI splits a "data:<type>;base64,<payload>" string into its
// content type and decoded bytes.
func decodeDataURI(uri string) (string, []byte, error) {
	if !strings.HasPrefix(uri, "data:") {
		return "", nil, fmt.Errorf("not a data URI")
	}
	rest := strings.TrimPrefix(uri, "data:")
	parts := strings.SplitN(rest, ",", 2)
	if len(parts) != 2 {
		return "", nil, fmt.Errorf("malformed data URI")
	}
	meta := parts[0]
	contentType := strings.TrimSuffix(meta, ";base64")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	data, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode image payload: %w", err)
	}
	return contentType, data, nil
}

func extractRecommendations(analysis models.JSONBMap) models.JSONBStringArray {
	inner, ok := analysis["analysis"].(map[string]interface{})
	if !ok {
		return models.JSONBStringArray{}
	}
	raw, ok := inner["recommendations"].([]interface{})
	if !ok {
		return models.JSONBStringArray{}
	}
	recs := make(models.JSONBStringArray, 0, len(raw))
	for _, r := range raw {
		if text, ok := r.(string); ok {
			recs = append(recs, text)
		}
	}
	return recs
}
