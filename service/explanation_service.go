package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"debt-sync/domain"
)

// ExplanationService generates an optional plain-language payoff outlook for
// a debt summary. It is disabled without an OPENAI_API_KEY and every failure
// degrades to an empty explanation; the engine's results never depend on it.
type ExplanationService struct {
	apiKey     string
	apiURL     string
	enabled    bool
	httpClient *http.Client
}

type openAIRequest struct {
	Model     string          `json:"model"`
	Messages  []openAIMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens,omitempty"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
}

func NewExplanationService() *ExplanationService {
	apiKey := os.Getenv("OPENAI_API_KEY")

	return &ExplanationService{
		apiKey:  apiKey,
		apiURL:  "https://api.openai.com/v1/chat/completions",
		enabled: apiKey != "",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GeneratePayoffExplanation returns a short explanation of where a debt
// stands, or "" when the service is disabled or the call fails.
func (s *ExplanationService) GeneratePayoffExplanation(name string, summary domain.DebtSummary) string {
	if !s.enabled {
		return ""
	}

	var outlook string
	switch {
	case summary.IsPaidOff:
		outlook = "the debt is fully repaid"
	case summary.MonthsToPayoff != nil:
		outlook = fmt.Sprintf("at the current repayment it clears in %d months", *summary.MonthsToPayoff)
	default:
		outlook = "the current repayment does not cover the accruing interest, so the debt will not clear under these terms"
	}

	prompt := fmt.Sprintf(
		"Explain in two sentences, for a personal finance app user, the state of the debt %q: "+
			"outstanding balance %.2f, %.1f%% of the original principal repaid, total interest paid %.2f; %s. "+
			"Be factual, no advice.",
		name, summary.Balance, summary.PercentRepaid, summary.TotalInterest, outlook,
	)

	explanation, err := s.callOpenAI(prompt)
	if err != nil {
		log.Printf("Warning: explanation generation failed: %v", err)
		return ""
	}
	return explanation
}

func (s *ExplanationService) callOpenAI(prompt string) (string, error) {
	reqBody := openAIRequest{
		Model: "gpt-4o-mini",
		Messages: []openAIMessage{
			{Role: "user", Content: prompt},
		},
		MaxTokens: 200,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, s.apiURL, bytes.NewBuffer(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai status %d: %s", resp.StatusCode, string(body))
	}

	var parsed openAIResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
