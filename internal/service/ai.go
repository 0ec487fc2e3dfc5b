package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/nutriday/backend/internal/model"
)

const systemInstruction = `You are a professional nutritionist assistant.
The user has strict daily diet targets: 1350 kcal total, carbs >50% of energy, protein below 80g.

Key requirements:
1. Cooked weight: every recommended food weight must be the cooked weight in grams.
2. Precise breakdown: split each meal into concrete ingredients (e.g. rice, beef, greens) and give exact nutrition data for every single ingredient.
3. Oil and cooking analysis: estimate the extra fat introduced by the cooking method (stir-fry, deep-fry, braise) or by the ingredient itself (e.g. pork belly).
   - Call it out explicitly in the cookingNote field (e.g. "stir-fry used about 10g oil" or "brisket carries its own fat").
   - Make sure macros.fat includes the calories from that oil.`

// AIService calls the Gemini API on behalf of the tracking flows. The
// upstream is treated as an untrusted oracle: every call is attempted once
// and any failure surfaces as a single wrapped error, never a partial
// domain object.
type AIService struct {
	apiKey string
	apiURL string
	client *http.Client
}

// NewAIService creates a new AIService instance. An empty apiKey falls back
// to GEMINI_API_KEY_FILE for file-mounted secrets; an empty apiURL selects
// the default Gemini endpoint.
func NewAIService(apiKey, apiURL string) (*AIService, error) {
	if apiKey == "" {
		apiKeyFile := os.Getenv("GEMINI_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY or GEMINI_API_KEY_FILE must be set")
		}

		apiKeyBytes, err := os.ReadFile(apiKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read API key file: %w", err)
		}

		apiKey = strings.TrimSpace(string(apiKeyBytes))
		if apiKey == "" {
			return nil, fmt.Errorf("API key file is empty")
		}
	}

	if apiURL == "" {
		apiURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent"
	}

	return &AIService{
		apiKey: apiKey,
		apiURL: apiURL,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

type geminiPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *geminiBlob `json:"inline_data,omitempty"`
}

type geminiBlob struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string   `json:"response_mime_type,omitempty"`
	Temperature      *float64 `json:"temperature,omitempty"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent          `json:"system_instruction,omitempty"`
	Contents          []geminiContent         `json:"contents"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

// generateContent posts one request to the Gemini API and returns the text
// of the first candidate.
func (s *AIService) generateContent(ctx context.Context, req geminiRequest) (string, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[AIService] API request failed with status %d: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from API")
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}

// GetMealRecommendation asks for a meal suggestion against the remaining
// budget. With user options present the model decides among them; without,
// it suggests freely.
func (s *AIService) GetMealRecommendation(ctx context.Context, req model.RecommendationRequest, currentIntake model.Macros) (*model.AiResponse, error) {
	remainingStr := fmt.Sprintf(
		"Current intake: %.0f kcal, %.1fg protein, %.1fg carbs, %.1fg fat.\nRemaining budget: %.0f kcal, %.1fg protein, %.1fg carbs.",
		currentIntake.Calories, currentIntake.Protein, currentIntake.Carbs, currentIntake.Fat,
		req.RemainingMacros.Calories, req.RemainingMacros.Protein, req.RemainingMacros.Carbs,
	)

	var prompt string
	if req.Type == model.RecommendationDecision && len(req.UserOptions) > 0 {
		prompt = fmt.Sprintf(`The user cannot decide between: %s.
%s
Pick the most suitable option.
Compute the exact cooked weight and individual nutrition data for every main ingredient.
Analyze oil: for stir-fried or fatty dishes, note the estimated oil in the ingredient cookingNote field.
Protein has a hard daily ceiling of 80g; if little protein budget remains, cut down the meat.`,
			strings.Join(req.UserOptions, ", "), remainingStr)
	} else {
		prompt = fmt.Sprintf(`The user needs a recommendation for %s.
%s
Suggest a simple, healthy and tasty meal.
Compute exact portions (cooked weight) and nutrition data for every single ingredient.
Analyze oil: note the fat introduced by the cooking method in the ingredient cookingNote field.`,
			req.TargetMealName, remainingStr)
	}

	prompt += `

Respond only with JSON of this exact shape:
{"selectedOption":"...","reason":"...","ingredients":[{"name":"...","grams":0,"macros":{"calories":0,"protein":0,"carbs":0,"fat":0},"cookingNote":"..."}],"estimatedMacros":{"calories":0,"protein":0,"carbs":0,"fat":0}}`

	temp := 0.7
	text, err := s.generateContent(ctx, geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: systemInstruction}}},
		Contents:          []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: &geminiGenerationConfig{
			ResponseMimeType: "application/json",
			Temperature:      &temp,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("recommendation request failed: %w", err)
	}

	var response model.AiResponse
	if err := json.Unmarshal([]byte(text), &response); err != nil {
		return nil, fmt.Errorf("failed to parse recommendation: %w", err)
	}
	if response.Ingredients == nil {
		return nil, fmt.Errorf("malformed recommendation: missing ingredients array")
	}
	return &response, nil
}

// AnalyzeManualEntry breaks a free-text (and optionally photographed) food
// log into concrete food items with estimated macros.
func (s *AIService) AnalyzeManualEntry(ctx context.Context, text, imageBase64 string) ([]model.FoodItem, error) {
	source := "Analyze from the text description."
	if imageBase64 != "" {
		source = "Analyze from the photo (estimate portions visually) together with the user's text notes (e.g. 'only ate half')."
	}

	prompt := fmt.Sprintf(`The user logged a food intake.
%s
Text description: %q.

Break it down into a list of concrete ingredients (cooked weight) and estimate the macros of every item.
Important: if the user describes a cooking method (stir-fry, deep-fry, pan-fry), the food is fatty by nature (e.g. fatty beef), or the photo looks glossy with oil,
write the estimated oil amount into the cookingNote field (e.g. "stir-fry, about 10g oil") and count those calories in fat and calories.

Respond only with a JSON array of this exact shape:
[{"name":"...","weight":0,"macros":{"calories":0,"protein":0,"carbs":0,"fat":0},"cookingNote":"..."}]`, source, text)

	parts := []geminiPart{}
	if imageBase64 != "" {
		parts = append(parts, geminiPart{InlineData: &geminiBlob{MimeType: "image/jpeg", Data: imageBase64}})
	}
	parts = append(parts, geminiPart{Text: prompt})

	out, err := s.generateContent(ctx, geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: systemInstruction}}},
		Contents:          []geminiContent{{Parts: parts}},
		GenerationConfig:  &geminiGenerationConfig{ResponseMimeType: "application/json"},
	})
	if err != nil {
		return nil, fmt.Errorf("manual entry analysis failed: %w", err)
	}

	var foods []model.FoodItem
	if err := json.Unmarshal([]byte(out), &foods); err != nil {
		return nil, fmt.Errorf("failed to parse food items: %w", err)
	}
	if foods == nil {
		return nil, fmt.Errorf("malformed analysis: missing food array")
	}
	return foods, nil
}

// GetDailySummary returns a short free-form verdict on one day's intake.
func (s *AIService) GetDailySummary(ctx context.Context, dayLog model.Macros) (string, error) {
	prompt := fmt.Sprintf(`The user consumed today:
Calories: %.0f (target: 1350)
Protein: %.1fg (ceiling 80g)
Carbs: %.1fg (target: >50%% of energy)
Fat: %.1fg

Give a short summary (2-3 sentences) judging whether the targets were met.`,
		dayLog.Calories, dayLog.Protein, dayLog.Carbs, dayLog.Fat)

	text, err := s.generateContent(ctx, geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("daily summary failed: %w", err)
	}
	return text, nil
}

// GenerateWeeklyReport condenses a week of records into per-day summary
// lines and asks for a combined diet and body-trend report.
func (s *AIService) GenerateWeeklyReport(ctx context.Context, records []model.DailyRecord) (string, error) {
	var sb strings.Builder
	for _, r := range records {
		totals := r.Totals()
		fmt.Fprintf(&sb, "Date: %s\nIntake: %.0f kcal, %.0fg protein, %.0fg carbs, %.0fg fat\nBody: weight %skg, waist %scm, thigh %scm, calf %scm\n\n",
			r.Date, totals.Calories, totals.Protein, totals.Carbs, totals.Fat,
			formatMetric(r.Metrics.Weight), formatMetric(r.Metrics.Waist),
			formatMetric(r.Metrics.Thigh), formatMetric(r.Metrics.Calf))
	}

	prompt := fmt.Sprintf(`Generate a weekly report from the user's diet and body measurement data for the past week.

User targets: 1350 kcal, carbs >50%%, protein <80g.

Data:
%s
Tasks:
1. Diet analysis: judge adherence to the calorie and macro limits.
2. Body changes: analyze weight and girth trends where data exists.
3. Correlation: look for links between diet and body changes (e.g. overeating one day causing a weight bump the next).
4. Next week: give short actionable advice.

Keep the format clean, the tone professional and encouraging. Do not use Markdown headings (#); bold (**) is fine.`, sb.String())

	text, err := s.generateContent(ctx, geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("weekly report failed: %w", err)
	}
	return text, nil
}

func formatMetric(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *v)
}
