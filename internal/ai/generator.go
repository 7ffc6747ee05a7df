package ai

import (
	"context"

	"capsicum/internal/models"
)

// Generator is the narrow surface handlers talk to. The vendor-specific
// prompt and schema wiring stays behind it, so swapping providers does not
// touch the HTTP contracts.
type Generator interface {
	// DiagnosePlant analyzes a base64-encoded plant photo and returns a
	// structured diagnosis.
	DiagnosePlant(ctx context.Context, imageBase64, mimeType string) (models.Diagnosis, error)

	// VarietyProfile returns a structured profile for a named chili variety.
	VarietyProfile(ctx context.Context, name string) (models.ChiliData, error)

	// WeatherTip returns a short free-text gardening tip for the given
	// weather observation.
	WeatherTip(ctx context.Context, weather models.WeatherData) (string, error)
}
