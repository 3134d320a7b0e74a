// Package vision tags clothing photos: category, dominant colors and a style vector.
package vision

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/yanqian/ai-wardrobe/internal/domain/wardrobe"
	"github.com/yanqian/ai-wardrobe/internal/infra/llm/chatgpt"
)

const classifyPrompt = "You label photos of single clothing items. Reply with exactly one label from this list and nothing else: %s."

// completer is the subset of the ChatGPT client the classifier needs.
type completer interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

// ChatGPTClassifier asks a vision-capable chat model to pick a garment label.
type ChatGPTClassifier struct {
	client      completer
	model       string
	temperature float32
	logger      *slog.Logger
}

// NewChatGPTClassifier constructs the classifier.
func NewChatGPTClassifier(client *chatgpt.Client, model string, temperature float32, logger *slog.Logger) *ChatGPTClassifier {
	return newChatGPTClassifier(client, model, temperature, logger)
}

func newChatGPTClassifier(client completer, model string, temperature float32, logger *slog.Logger) *ChatGPTClassifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatGPTClassifier{
		client:      client,
		model:       strings.TrimSpace(model),
		temperature: temperature,
		logger:      logger.With("component", "vision.classifier.chatgpt"),
	}
}

// Classify implements wardrobe.Classifier.
func (c *ChatGPTClassifier) Classify(ctx context.Context, photo wardrobe.Photo) (wardrobe.Category, error) {
	req := chatgpt.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   10,
		Messages: []chatgpt.Message{
			{Role: "system", Content: fmt.Sprintf(classifyPrompt, strings.Join(wardrobe.Labels, ", "))},
			{Role: "user", Parts: []chatgpt.ContentPart{
				chatgpt.TextPart("Which clothing item is this?"),
				chatgpt.ImagePart(photo.MimeType, photo.Data),
			}},
		},
	}
	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("classify %s: %w", photo.Filename, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("classify %s: empty response", photo.Filename)
	}
	answer := resp.Choices[0].Message.Content
	label, ok := MatchLabel(answer)
	if !ok {
		c.logger.Warn("unrecognised label, treating as one-piece", "filename", photo.Filename, "answer", answer)
		return wardrobe.CategoryOnePiece, nil
	}
	c.logger.Debug("photo classified", "filename", photo.Filename, "label", label)
	return wardrobe.CategoryForLabel(label), nil
}

// labelsByLength lists labels longest first so "t-shirt" wins over "shirt".
var labelsByLength = func() []string {
	out := append([]string(nil), wardrobe.Labels...)
	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}()

// MatchLabel finds the garment label named in free text.
func MatchLabel(text string) (string, bool) {
	normalized := strings.ToLower(strings.Trim(strings.TrimSpace(text), ".\"'"))
	for _, label := range wardrobe.Labels {
		if normalized == label {
			return label, true
		}
	}
	for _, label := range labelsByLength {
		if strings.Contains(normalized, label) {
			return label, true
		}
	}
	return "", false
}

// keywordLabels maps filename words to garment labels.
var keywordLabels = map[string]string{
	"tee":      "t-shirt",
	"tshirt":   "t-shirt",
	"top":      "shirt",
	"jumper":   "sweater",
	"pullover": "sweater",
	"trouser":  "pants",
	"trousers": "pants",
	"chinos":   "pants",
	"denim":    "jeans",
	"parka":    "coat",
	"raincoat": "coat",
	"trainer":  "sneakers",
	"trainers": "sneakers",
	"sneaker":  "sneakers",
	"shoe":     "sneakers",
	"shoes":    "sneakers",
	"boot":     "boots",
	"sandal":   "sandals",
	"heel":     "heels",
}

// KeywordClassifier tags by words in the filename. Used when no vision model is configured.
type KeywordClassifier struct{}

// Classify implements wardrobe.Classifier.
func (KeywordClassifier) Classify(_ context.Context, photo wardrobe.Photo) (wardrobe.Category, error) {
	name := strings.ToLower(strings.TrimSuffix(photo.Filename, path.Ext(photo.Filename)))
	words := strings.FieldsFunc(name, func(r rune) bool {
		return !(r == '-' || (r >= 'a' && r <= 'z'))
	})
	for _, word := range words {
		if label, ok := keywordLabel(word); ok {
			return wardrobe.CategoryForLabel(label), nil
		}
		for _, part := range strings.Split(word, "-") {
			if label, ok := keywordLabel(part); ok {
				return wardrobe.CategoryForLabel(label), nil
			}
		}
	}
	if label, ok := MatchLabel(name); ok {
		return wardrobe.CategoryForLabel(label), nil
	}
	return wardrobe.CategoryOnePiece, nil
}

func keywordLabel(word string) (string, bool) {
	if label, ok := keywordLabels[word]; ok {
		return label, true
	}
	for _, label := range wardrobe.Labels {
		if word == label {
			return label, true
		}
	}
	return "", false
}

var (
	_ wardrobe.Classifier = (*ChatGPTClassifier)(nil)
	_ wardrobe.Classifier = KeywordClassifier{}
)
