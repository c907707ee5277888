package wordgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/robalobadob/brainplay/apps/go-server/internal/words"
)

const (
	defaultRegion = "europe-west1"
	defaultModel  = "gemini-2.5-flash"
)

const systemPrompt = `You create word lists for word search puzzles. ` +
	`Every word must be a single common word written in uppercase A-Z letters only.`

// contentGenerator is the slice of genai.Models we call.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiConfig selects the backend: APIKey for the Gemini API, Project (and
// Region) for Vertex AI with Application Default Credentials.
type GeminiConfig struct {
	APIKey  string
	Project string
	Region  string
	Model   string
}

// Gemini generates themed words with a Gemini model.
type Gemini struct {
	models contentGenerator
	model  string
}

// NewGemini creates a Gemini generator for cfg.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	cc := &genai.ClientConfig{}
	switch {
	case cfg.APIKey != "":
		cc.APIKey = cfg.APIKey
		cc.Backend = genai.BackendGeminiAPI
	case cfg.Project != "":
		cc.Project = cfg.Project
		cc.Location = cfg.Region
		if cc.Location == "" {
			cc.Location = defaultRegion
		}
		cc.Backend = genai.BackendVertexAI
	default:
		return nil, fmt.Errorf("gemini: neither API key nor project configured")
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return newGemini(client.Models, cfg.Model), nil
}

func newGemini(models contentGenerator, model string) *Gemini {
	if model == "" {
		model = defaultModel
	}
	return &Gemini{models: models, model: model}
}

// wordsSchema constrains the model output to {"words": [string]}.
var wordsSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"words": {
			Type:        genai.TypeArray,
			Description: "Uppercase words for the puzzle",
			Items:       &genai.Schema{Type: genai.TypeString},
		},
	},
	Required: []string{"words"},
}

func prompt(theme string, count int) string {
	return fmt.Sprintf("List exactly %d words about the theme %q. Each word must be %d to %d letters long. "+
		"Reply with JSON of the form {\"words\": [\"WORD\", ...]}.",
		count, theme, words.GeneratedMinLen, words.GeneratedMaxLen)
}

// Generate asks the model for count words on theme and keeps the ones that
// fit a puzzle.
func (g *Gemini) Generate(ctx context.Context, theme string, count int) ([]string, error) {
	theme, count, err := CheckRequest(theme, count)
	if err != nil {
		return nil, err
	}

	resp, err := g.models.GenerateContent(ctx, g.model,
		[]*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt(theme, count)}},
		}},
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}},
			Temperature:       genai.Ptr(float32(0.7)),
			ResponseMIMEType:  "application/json",
			ResponseSchema:    wordsSchema,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("empty gemini response")
	}
	raw, err := parseWords(text)
	if err != nil {
		return nil, err
	}
	out := words.Generated(raw, count)
	if len(out) == 0 {
		return nil, fmt.Errorf("%w in %q", ErrNoWords, text)
	}
	return out, nil
}

// parseWords accepts {"words": [...]} or a bare JSON array, optionally wrapped
// in a markdown code fence.
func parseWords(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var obj struct {
		Words []string `json:"words"`
	}
	if err := json.Unmarshal([]byte(text), &obj); err == nil {
		return obj.Words, nil
	}
	var arr []string
	if err := json.Unmarshal([]byte(text), &arr); err != nil {
		return nil, fmt.Errorf("parse words JSON: %w\nraw response: %s", err, text)
	}
	return arr, nil
}
