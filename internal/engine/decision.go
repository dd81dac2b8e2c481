package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"selectd/pkg/types"
)

// Decider is the external decision-making collaborator: it receives the
// ranked candidate brief and answers with a JSON selection. Its output is
// untrusted until validated against the candidate set.
type Decider interface {
	Decide(ctx context.Context, brief string) (string, error)
}

// ChatDecider asks an OpenAI-style chat-completions endpoint to make the
// final pick.
type ChatDecider struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

// NewChatDecider builds a decider against {baseURL}/chat/completions
// using the given selector model id.
func NewChatDecider(baseURL, apiKey, model string) *ChatDecider {
	return &ChatDecider{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (d *ChatDecider) Decide(ctx context.Context, brief string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       d.model,
		Messages:    []chatMessage{{Role: "user", Content: brief}},
		Temperature: 0,
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+d.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("decision call: status %d", resp.StatusCode)
	}
	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("decision call: decode: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", errors.New("decision call: empty choices")
	}
	return cr.Choices[0].Message.Content, nil
}

// buildDecisionBrief renders the ranked candidates and requirements into
// the structured prompt sent to the decider.
func buildDecisionBrief(prompt string, category types.PromptCategory, props types.PromptProperties, candidates []types.ModelProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Select the single best model for the task below. Respond with ONLY a JSON object: {\"model\": \"<id>\", \"reason\": \"<short reason>\", \"confidence\": <0..1>}.\n\n")
	fmt.Fprintf(&b, "Task category: %s (confidence %.2f)\n", category.Type, category.Confidence)
	fmt.Fprintf(&b, "Requirements: accuracy importance %.2f, cost tolerance %.2f (higher means budget matters less), speed importance %.2f, completion budget %d tokens, reasoning required: %v\n\n",
		props.Accuracy, props.Cost, props.Speed, props.TokenLimit, props.Reasoning)
	b.WriteString("Candidates, best category fit first:\n")
	for i, p := range candidates {
		fmt.Fprintf(&b, "%d. %s: %s score %.0f/100, speed %s, cost %s (prompt $%s/tok, completion $%s/tok), accuracy %s, context %d, provider %s, reasoning %v, profile confidence %.0f/100\n",
			i+1,
			p.Descriptor.ID,
			category.Type,
			p.Scores.ForCategory(category.Type)*100,
			p.Characteristics.Speed,
			p.Characteristics.Cost,
			p.Descriptor.Pricing.Prompt,
			p.Descriptor.Pricing.Completion,
			p.Characteristics.Accuracy,
			p.Descriptor.ContextLength,
			p.Characteristics.Provider,
			p.Characteristics.IsReasoning,
			p.ProfileConfidence*100,
		)
	}
	fmt.Fprintf(&b, "\nPrompt:\n%s\n", prompt)
	return b.String()
}

// decisionAnswer is the schema the collaborator must produce.
type decisionAnswer struct {
	Model      string  `json:"model"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
}

// parseDecision validates the collaborator's raw reply against the
// candidate id set. Any failure here routes the caller to the
// deterministic fallback; unvalidated fields are never trusted.
func parseDecision(raw string, candidateIDs map[string]bool) (decisionAnswer, error) {
	jsonPart := extractJSONObject(raw)
	if jsonPart == "" {
		return decisionAnswer{}, errors.New("no JSON object in decision reply")
	}
	var ans decisionAnswer
	dec := json.NewDecoder(strings.NewReader(jsonPart))
	if err := dec.Decode(&ans); err != nil {
		return decisionAnswer{}, fmt.Errorf("decision reply parse: %w", err)
	}
	if ans.Model == "" {
		return decisionAnswer{}, errors.New("decision reply missing model")
	}
	if !candidateIDs[ans.Model] {
		return decisionAnswer{}, fmt.Errorf("decision reply model %q not in candidate set", ans.Model)
	}
	if ans.Confidence < 0 || ans.Confidence > 1 {
		return decisionAnswer{}, fmt.Errorf("decision reply confidence %v out of range", ans.Confidence)
	}
	return ans, nil
}

// extractJSONObject returns the first balanced {...} span in s, tolerating
// markdown fences and prose around the object.
func extractJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
