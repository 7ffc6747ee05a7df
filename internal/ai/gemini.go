package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"capsicum/internal/models"

	"google.golang.org/genai"
)

// Gemini implements Generator against the Gemini API. The client is created
// per call, matching the single round trip each operation makes; no retries,
// timeouts or caching.
type Gemini struct {
	apiKey string
	model  string
}

func NewGemini(apiKey, model string) *Gemini {
	return &Gemini{apiKey: apiKey, model: model}
}

var diagnosisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"diseaseName": {Type: genai.TypeString, Description: "The common name of the disease or pest."},
		"description": {Type: genai.TypeString, Description: "A detailed description of the issue, its causes, and symptoms."},
		"organicTreatment": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "A list of organic treatment options.",
		},
		"chemicalTreatment": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "A list of chemical treatment options.",
		},
	},
	Required: []string{"diseaseName", "description", "organicTreatment", "chemicalTreatment"},
}

var chiliDataSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"varietyName":   {Type: genai.TypeString, Description: "The name of the chili variety."},
		"species":       {Type: genai.TypeString, Description: "The species of the chili (e.g., Capsicum annuum)."},
		"shu":           {Type: genai.TypeString, Description: "The Scoville Heat Unit (SHU) range."},
		"origin":        {Type: genai.TypeString, Description: "The geographical origin of the chili pepper."},
		"flavorProfile": {Type: genai.TypeString, Description: "A brief description of its flavor."},
	},
	Required: []string{"varietyName", "species", "shu", "origin", "flavorProfile"},
}

func (g *Gemini) DiagnosePlant(ctx context.Context, imageBase64, mimeType string) (models.Diagnosis, error) {
	imageData, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return models.Diagnosis{}, fmt.Errorf("failed to decode image data: %w", err)
	}

	parts := []*genai.Part{
		{InlineData: &genai.Blob{MIMEType: mimeType, Data: imageData}},
		{Text: `You are "Dr. Chili", an expert AI specializing in diagnosing diseases and pests affecting chili pepper plants. Analyze this image and provide a diagnosis. If the image is not a chili plant or the issue is unclear, state that clearly.`},
	}

	var diagnosis models.Diagnosis
	if err := g.generateStructured(ctx, parts, diagnosisSchema, &diagnosis); err != nil {
		return models.Diagnosis{}, err
	}
	return diagnosis, nil
}

func (g *Gemini) VarietyProfile(ctx context.Context, name string) (models.ChiliData, error) {
	parts := []*genai.Part{
		{Text: fmt.Sprintf("Provide a detailed profile for the %s chili pepper.", name)},
	}

	var data models.ChiliData
	if err := g.generateStructured(ctx, parts, chiliDataSchema, &data); err != nil {
		return models.ChiliData{}, err
	}
	return data, nil
}

func (g *Gemini) WeatherTip(ctx context.Context, weather models.WeatherData) (string, error) {
	prompt := fmt.Sprintf(`You are an expert chili pepper gardener. Based on the following weather conditions, provide a short, actionable tip for a chili grower.
Keep the tip concise and easy to understand (2-3 sentences).

Weather Data:
- Location: %s
- Temperature: %.1f°C
- Condition: %s
- Humidity: %.0f%%
- Wind Speed: %.1f km/h`,
		weather.City, weather.Temperature, weather.Condition, weather.Humidity, weather.WindSpeed)

	return g.generateText(ctx, prompt)
}

// generateStructured asks the model for JSON constrained to the schema and
// unmarshals the response into out.
func (g *Gemini) generateStructured(ctx context.Context, parts []*genai.Part, schema *genai.Schema, out interface{}) error {
	text, err := g.generate(ctx, parts, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("failed to parse structured response: %w", err)
	}
	return nil
}

func (g *Gemini) generateText(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, []*genai.Part{{Text: prompt}}, nil)
}

func (g *Gemini) generate(ctx context.Context, parts []*genai.Part, config *genai.GenerateContentConfig) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}

	contents := []*genai.Content{{Role: "user", Parts: parts}}
	resp, err := client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}

	part := resp.Candidates[0].Content.Parts[0]
	if part.Text == "" {
		return "", fmt.Errorf("empty response from Gemini")
	}
	return part.Text, nil
}
