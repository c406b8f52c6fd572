// Package ollama implements the FaceFinder boundary over a local or remote
// Ollama server running a vision model.
package ollama

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/creativemagic/thumbstudio/pkg/geometry"
)

// FacePrompt instructs the model to report face bounding boxes as
// percentages of the image dimensions.
const FacePrompt = `You are a face locator. Analyze this image and detect all human faces.

Return JSON only:
{
  "faces": [
    { "x": 0.0, "y": 0.0, "width": 0.0, "height": 0.0 }
  ]
}

HARD RULES
- All values are percentages of the image dimensions in [0,100] (NOT pixels).
- x, y are the top-left corner of each face box.
- width, height are the face box size.
- If no faces are found, return {"faces": []}.
- JSON only. No markdown, no code fences, no comments, no trailing commas.`

// Default request timeout; vision models on CPU are slow.
const requestTimeout = 300 * time.Second

// Client wraps the Ollama API client.
type Client struct {
	client *api.Client
}

// NewClient creates a client for the given server URL. Any path component
// (like /api/chat) is stripped.
func NewClient(serverURL string) (*Client, error) {
	parsed, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	base := &url.URL{Scheme: parsed.Scheme, Host: parsed.Host}
	return &Client{client: api.NewClient(base, http.DefaultClient)}, nil
}

type facesPayload struct {
	Faces []geometry.PercentBox `json:"faces"`
}

// FindFaces asks the vision model for face boxes as percentages of the image
// it was shown. A response that cannot be parsed yields an empty result, not
// an error; detection is best-effort and the manual picker backstops it.
func (c *Client) FindFaces(ctx context.Context, model, imgB64 string) ([]geometry.PercentBox, error) {
	raw, err := c.chat(ctx, model, FacePrompt, imgB64, true)
	if err != nil {
		return nil, err
	}

	return parseFaces(raw), nil
}

// parseFaces extracts face boxes from a raw model reply. Unparseable replies
// yield an empty result, and degenerate or out-of-range boxes are dropped
// rather than surfaced.
func parseFaces(raw string) []geometry.PercentBox {
	raw = sanitizeModelJSON(raw)
	var payload facesPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		start := strings.Index(raw, "{")
		end := strings.LastIndex(raw, "}")
		if start < 0 || end <= start {
			return nil
		}
		if err := json.Unmarshal([]byte(raw[start:end+1]), &payload); err != nil {
			return nil
		}
	}

	out := payload.Faces[:0]
	for _, f := range payload.Faces {
		if f.Width <= 0 || f.Height <= 0 {
			continue
		}
		if f.X < 0 || f.Y < 0 || f.X > 100 || f.Y > 100 {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Describe performs a freeform query with an image, useful for checking that
// the model can actually see.
func (c *Client) Describe(ctx context.Context, model, prompt, imgB64 string) (string, error) {
	return c.chat(ctx, model, prompt, imgB64, false)
}

func (c *Client) chat(ctx context.Context, model, prompt, imgB64 string, jsonFormat bool) (string, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, requestTimeout)
		defer cancel()
	}

	imgBytes, err := base64.StdEncoding.DecodeString(imgB64)
	if err != nil {
		return "", fmt.Errorf("failed to decode base64 image: %w", err)
	}

	streamFalse := false
	req := &api.ChatRequest{
		Model: model,
		Messages: []api.Message{
			{
				Role:    "user",
				Content: prompt,
				Images:  []api.ImageData{api.ImageData(imgBytes)},
			},
		},
		Stream: &streamFalse,
	}
	if jsonFormat {
		req.Format = json.RawMessage(`"json"`)
	}

	var content string
	err = c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		content = resp.Message.Content
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat error: %w", err)
	}
	if content == "" {
		return "", fmt.Errorf("empty response from ollama")
	}
	return content, nil
}

var codeFenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// sanitizeModelJSON strips markdown code fences some models wrap around JSON.
func sanitizeModelJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if m := codeFenceRe.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	return raw
}
