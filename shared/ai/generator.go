package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"cliphunt/shared/config"

	"google.golang.org/genai"
)

// Generator wraps the Gemini client behind the three capabilities the
// pipeline consumes: free text generation, JSON-constrained generation,
// and multimodal video understanding.
type Generator struct {
	client     *genai.Client
	textModel  string
	videoModel string
}

func NewGenerator(cfg *config.AIConfig) (*Generator, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.GeminiAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Generator{
		client:     client,
		textModel:  cfg.TextModel,
		videoModel: cfg.VideoModel,
	}, nil
}

// GenerateText runs one prompt through the text model and returns the
// raw response text.
func (g *Generator) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(userPrompt)}, genai.RoleUser),
	}

	cfg := &genai.GenerateContentConfig{}
	if systemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	result, err := g.client.Models.GenerateContent(ctx, g.textModel, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("text generation failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model %s", g.textModel)
	}
	return text, nil
}

// GenerateJSON asks the text model for a JSON response and unmarshals it
// into out. The expected shape is described in the prompts; the model is
// additionally pinned to a JSON MIME type. Responses that refuse to be
// JSON are a hard failure for the caller.
func (g *Generator) GenerateJSON(ctx context.Context, systemPrompt, userPrompt string, out any) error {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(userPrompt)}, genai.RoleUser),
	}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
	if systemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	result, err := g.client.Models.GenerateContent(ctx, g.textModel, contents, cfg)
	if err != nil {
		return fmt.Errorf("structured generation failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return fmt.Errorf("empty structured response from model %s", g.textModel)
	}

	return UnmarshalResponse(text, out)
}

// AnalyzeVideo runs the multimodal model over a video URL with the given
// instruction and returns whatever text comes back. The output shape is
// best-effort; callers own the parsing.
func (g *Generator) AnalyzeVideo(ctx context.Context, videoURL, instruction string) (string, error) {
	if videoURL == "" {
		return "", fmt.Errorf("video URL is required")
	}

	parts := []*genai.Part{
		genai.NewPartFromURI(videoURL, "video/mp4"),
		genai.NewPartFromText(instruction),
	}

	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := g.client.Models.GenerateContent(ctx, g.videoModel, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to analyze video %s: %w", videoURL, err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("no analysis response received for video %s", videoURL)
	}
	return text, nil
}

// UnmarshalResponse extracts the JSON payload from a model response and
// unmarshals it into out, sanitizing common formatting slip-ups on a
// second attempt.
func UnmarshalResponse(response string, out any) error {
	jsonStr, err := extractJSON(response)
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(jsonStr), out); err != nil {
		sanitized := sanitizeJSON(jsonStr)
		if sanitizedErr := json.Unmarshal([]byte(sanitized), out); sanitizedErr != nil {
			return fmt.Errorf("failed to unmarshal model JSON: %w (sanitized version also failed: %v)", err, sanitizedErr)
		}
		log.Printf("Warning: Had to sanitize malformed JSON from model response")
	}

	return nil
}

// extractJSON locates the outermost JSON value (object or array) inside
// a model response that may carry leading/trailing prose.
func extractJSON(response string) (string, error) {
	objIdx := strings.Index(response, "{")
	arrIdx := strings.Index(response, "[")

	start, closer := objIdx, "}"
	if arrIdx != -1 && (objIdx == -1 || arrIdx < objIdx) {
		start, closer = arrIdx, "]"
	}

	if start == -1 {
		return "", fmt.Errorf("no JSON found in response: %s", truncateString(response, 200))
	}

	end := strings.LastIndex(response, closer)
	if end <= start {
		return "", fmt.Errorf("unterminated JSON in response: %s", truncateString(response, 200))
	}

	return response[start : end+1], nil
}

// sanitizeJSON fixes unescaped quotes inside string values, which is the
// most common way model output breaks json.Unmarshal.
func sanitizeJSON(jsonStr string) string {
	lines := strings.Split(jsonStr, "\n")
	var sanitizedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.Contains(line, ":") && strings.Contains(line, "\"") {
			colonIdx := strings.Index(line, ":")
			beforeColon := line[:colonIdx+1]
			afterColon := strings.TrimSpace(line[colonIdx+1:])

			if strings.HasPrefix(afterColon, "\"") {
				lastQuoteIdx := strings.LastIndex(afterColon, "\"")
				if lastQuoteIdx > 0 {
					stringContent := afterColon[1:lastQuoteIdx]
					stringContent = strings.ReplaceAll(stringContent, "\\\"", "\"")
					stringContent = strings.ReplaceAll(stringContent, "\"", "\\\"")
					remainder := afterColon[lastQuoteIdx+1:]
					line = beforeColon + " \"" + stringContent + "\"" + remainder
				}
			}
		}

		sanitizedLines = append(sanitizedLines, line)
	}

	return strings.Join(sanitizedLines, "\n")
}

func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength] + "..."
}
