package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/yungbote/studycards-backend/internal/logger"
)

// ImageGeneration is one generated raster image.
type ImageGeneration struct {
	Bytes    []byte
	MimeType string
}

// Client is the Google AI client used by the rest of the backend. Both
// calls are blocking and honor ctx deadlines; callers own the timeout
// policy and the fallback behavior when a call fails.
type Client interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateImage(ctx context.Context, prompt string) (ImageGeneration, error)
}

type client struct {
	log        *logger.Logger
	apiKey     string
	baseURL    string
	model      string
	imageModel string
	httpClient *http.Client
}

func NewClient(log *logger.Logger) (Client, error) {
	apiKey := strings.TrimSpace(os.Getenv("GOOGLE_AI_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("missing GOOGLE_AI_API_KEY")
	}

	baseURL := strings.TrimSpace(os.Getenv("GOOGLE_AI_BASE_URL"))
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	baseURL = strings.TrimRight(baseURL, "/")

	model := strings.TrimSpace(os.Getenv("GOOGLE_AI_MODEL"))
	if model == "" {
		model = "gemini-2.0-flash"
	}

	imageModel := strings.TrimSpace(os.Getenv("GOOGLE_AI_IMAGE_MODEL"))
	if imageModel == "" {
		imageModel = "gemini-2.0-flash-preview-image-generation"
	}

	timeoutSec := 60
	if v := os.Getenv("GOOGLE_AI_TIMEOUT_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}

	return &client{
		log:        log.With("client", "gemini"),
		apiKey:     apiKey,
		baseURL:    baseURL,
		model:      model,
		imageModel: imageModel,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}, nil
}

func (c *client) GenerateText(ctx context.Context, prompt string) (string, error) {
	cl, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return "", fmt.Errorf("gemini client: %w", err)
	}
	defer cl.Close()

	m := cl.GenerativeModel(c.model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:     ptrFloat32(0.4),
		TopK:            ptrInt32(32),
		TopP:            ptrFloat32(1),
		MaxOutputTokens: ptrInt32(2048),
	}

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini generate: empty response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	out := sb.String()
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("gemini generate: no text parts")
	}
	return out, nil
}

// REST payloads for the image-generation modality; the SDK does not
// expose responseModalities yet.
type generateRequest struct {
	Contents         []restContent        `json:"contents"`
	GenerationConfig restGenerationConfig `json:"generationConfig"`
}

type restContent struct {
	Parts []restPart `json:"parts"`
}

type restPart struct {
	Text       string          `json:"text,omitempty"`
	InlineData *restInlineData `json:"inlineData,omitempty"`
}

type restInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type restGenerationConfig struct {
	Temperature        float64  `json:"temperature"`
	ResponseModalities []string `json:"responseModalities"`
}

type generateResponse struct {
	Candidates []struct {
		Content *restContent `json:"content"`
	} `json:"candidates"`
}

func (c *client) GenerateImage(ctx context.Context, prompt string) (ImageGeneration, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []restContent{{Parts: []restPart{{Text: prompt}}}},
		GenerationConfig: restGenerationConfig{
			Temperature:        0.3,
			ResponseModalities: []string{"TEXT", "IMAGE"},
		},
	})
	if err != nil {
		return ImageGeneration{}, fmt.Errorf("marshal image request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.imageModel, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return ImageGeneration{}, fmt.Errorf("build image request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ImageGeneration{}, fmt.Errorf("image request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return ImageGeneration{}, fmt.Errorf("read image response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return ImageGeneration{}, fmt.Errorf("image request: status %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return ImageGeneration{}, fmt.Errorf("decode image response: %w", err)
	}
	for _, cand := range parsed.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData == nil || part.InlineData.Data == "" {
				continue
			}
			data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
			if err != nil {
				return ImageGeneration{}, fmt.Errorf("decode inline image: %w", err)
			}
			return ImageGeneration{Bytes: data, MimeType: part.InlineData.MimeType}, nil
		}
	}
	return ImageGeneration{}, fmt.Errorf("image request: no image in response")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func ptrFloat32(v float32) *float32 { return &v }
func ptrInt32(v int32) *int32       { return &v }
