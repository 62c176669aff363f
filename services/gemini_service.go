package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const geminiModel = "gemini-3-flash-preview"

const analyzePrompt = `Analyze this food image and estimate its nutritional content.
Return ONLY a valid JSON object with no markdown, no code fences, and no extra text.
Schema: { "name": string, "calories": number, "protein_g": number, "carbs_g": number, "fat_g": number, "confidence": "high" | "medium" | "low", "notes": string }
- calories must be a whole number
- protein_g, carbs_g, fat_g are numbers rounded to one decimal place
- confidence reflects how certain you are given image clarity and portion visibility
- notes should mention any assumptions made about portion size or ingredients`

// FoodAnalysis is the normalized result of one model call. Every field has
// been through coercion, so downstream code never sees a missing or
// mistyped value.
type FoodAnalysis struct {
	Name       string  `json:"name"`
	Calories   int     `json:"calories"`
	ProteinG   float64 `json:"protein_g"`
	CarbsG     float64 `json:"carbs_g"`
	FatG       float64 `json:"fat_g"`
	Confidence string  `json:"confidence"`
	Notes      string  `json:"notes"`
}

// FoodAnalyzer is what the analyze controller depends on.
type FoodAnalyzer interface {
	AnalyzeFood(ctx context.Context, base64Image, mimeType, userText string) (*FoodAnalysis, error)
}

// GeminiService submits an image plus a fixed instruction prompt to the
// Gemini API and parses the textual response into a FoodAnalysis.
type GeminiService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewGeminiService(apiKey string) *GeminiService {
	return &GeminiService{
		apiKey:  apiKey,
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type generateContentRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// AnalyzeFood sends one synchronous generateContent call. base64Image must be
// the raw payload with any data-URI prefix already stripped.
func (s *GeminiService) AnalyzeFood(ctx context.Context, base64Image, mimeType, userText string) (*FoodAnalysis, error) {
	prompt := analyzePrompt
	if userText != "" {
		prompt = fmt.Sprintf("%s\n\nUser note: %s", analyzePrompt, userText)
	}

	payload := generateContentRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{Text: prompt},
				{InlineData: &geminiInlineData{MimeType: mimeType, Data: base64Image}},
			},
		}},
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal Gemini request: %w", err)
	}

	u := fmt.Sprintf("%s/models/%s:generateContent", s.baseURL, geminiModel)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Gemini API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Gemini response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini API error %d: %s", resp.StatusCode, string(body))
	}

	var gr generateContentResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return nil, fmt.Errorf("failed to parse Gemini envelope: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	return parseAnalysis(gr.Candidates[0].Content.Parts[0].Text)
}

var (
	fenceOpen  = regexp.MustCompile("(?i)^```(?:json)?\\s*")
	fenceClose = regexp.MustCompile("\\s*```$")
)

// parseAnalysis decodes the model's text into a FoodAnalysis. The model is
// told to emit bare JSON but occasionally wraps it in code fences; strip and
// retry once before giving up.
func parseAnalysis(text string) (*FoodAnalysis, error) {
	text = strings.TrimSpace(text)

	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		cleaned := fenceClose.ReplaceAllString(fenceOpen.ReplaceAllString(text, ""), "")
		cleaned = strings.TrimSpace(cleaned)
		if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
			return nil, fmt.Errorf("gemini response is not valid JSON: %w", err)
		}
	}
	return normalizeAnalysis(raw), nil
}

// normalizeAnalysis is the single place where the untrusted model output is
// coerced into typed fields. Missing or mistyped values degrade to zero
// values rather than failing the request.
func normalizeAnalysis(raw map[string]interface{}) *FoodAnalysis {
	a := &FoodAnalysis{
		Name:       asString(raw["name"]),
		ProteinG:   asNumber(raw["protein_g"]),
		CarbsG:     asNumber(raw["carbs_g"]),
		FatG:       asNumber(raw["fat_g"]),
		Confidence: "medium",
		Notes:      asString(raw["notes"]),
	}

	cal := int(math.Round(asNumber(raw["calories"])))
	if cal > 0 {
		a.Calories = cal
	}

	switch raw["confidence"] {
	case "high", "medium", "low":
		a.Confidence = raw["confidence"].(string)
	}
	return a
}

func asString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}

func asNumber(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) {
			return 0
		}
		return f
	default:
		return 0
	}
}
