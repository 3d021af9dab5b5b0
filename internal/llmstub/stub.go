// Package llmstub serves a small OpenAI-compatible API that answers
// comparison prompts with a deterministic document. It backs the
// openai-stub command and the end-to-end tests.
package llmstub

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

// Topics mirrors the headings the stub writes, one per prompt topic.
var Topics = []string{
	"Company Overview",
	"Market Position",
	"Key Products/Services",
	"Business Model",
	"Competitive Advantages",
	"Recent Performance",
	"Future Outlook",
}

var namesRe = regexp.MustCompile(`(?m)^Compare (.+?) and (.+?)\. Provide`)

// Handler answers /v1/models and /v1/chat/completions.
type Handler struct {
	// Model is the single id listed by /v1/models.
	Model string
	// Blank makes completions return empty content.
	Blank bool

	mux *http.ServeMux
}

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

// New returns a Handler listing model.
func New(model string) *Handler {
	if strings.TrimSpace(model) == "" {
		model = "test-model"
	}
	h := &Handler{Model: model, mux: http.NewServeMux()}
	h.mux.HandleFunc("/v1/models", h.models)
	h.mux.HandleFunc("/v1/chat/completions", h.completions)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) models(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"object": "list",
		"data":   []map[string]any{{"id": h.Model, "object": "model"}},
	})
}

func (h *Handler) completions(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	user := ""
	for _, m := range req.Messages {
		if m.Role == "user" {
			user = m.Content
		}
	}
	m := namesRe.FindStringSubmatch(user)
	if m == nil {
		http.Error(w, "unexpected prompt", http.StatusBadRequest)
		return
	}
	content := ""
	if !h.Blank {
		content = Document(m[1], m[2], strings.Contains(user, "\nFormat:"))
	}
	log.Debug().Str("model", req.Model).Str("a", m[1]).Str("b", m[2]).Msg("stub completion")

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":     "stub-1",
		"object": "chat.completion",
		"model":  req.Model,
		"choices": []map[string]any{
			{"index": 0, "finish_reason": "stop", "message": map[string]string{"role": "assistant", "content": content}},
		},
	})
}

// Document writes the canned comparison of a and b. Structured documents use
// "Highlights: A: x; B: y" bullets, others use "x vs y".
func Document(a, b string, structured bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s vs %s\n\nA short comparison of both companies.\n", a, b)
	for _, t := range Topics {
		va := a + " " + strings.ToLower(t)
		vb := b + " " + strings.ToLower(t)
		fmt.Fprintf(&sb, "\n## %s\n", t)
		if structured {
			fmt.Fprintf(&sb, "- Highlights: %s: %s; %s: %s\n", a, va, b, vb)
		} else {
			fmt.Fprintf(&sb, "- Highlights: %s vs %s\n", va, vb)
		}
		sb.WriteString("Both companies keep investing here.\n")
	}
	return sb.String()
}
