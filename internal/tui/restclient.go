package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// timeout for agent requests (generation includes simulated latency)
const agentRequestTimeout = 30 * time.Second

// manages HTTP requests to the agent REST API
type AgentClient struct {
	endpoint   string
	httpClient *http.Client
}

// creates a new agent REST client
func NewAgentClient() *AgentClient {
	endpoint := os.Getenv("VIBECODE_API_ENDPOINT")
	if endpoint == "" {
		endpoint = "http://localhost:8080"
	}

	return &AgentClient{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: agentRequestTimeout,
		},
	}
}

// sends a build request to the agent
func (c *AgentClient) Process(ctx context.Context, message, sessionID string) (*apiAgentResponse, error) {
	payload := map[string]string{
		"message": message,
	}
	if sessionID != "" {
		payload["session_id"] = sessionID
	}

	var result apiAgentResponse
	if err := c.post(ctx, "/api/v1/agent/process", payload, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// submits a single answer for the session's active question flow
func (c *AgentClient) Answer(ctx context.Context, sessionID, questionID, answer string) (*apiFlowResponse, error) {
	payload := map[string]string{
		"session_id":  sessionID,
		"question_id": questionID,
		"answer":      answer,
	}

	var result apiFlowResponse
	if err := c.post(ctx, "/api/v1/agent/answer", payload, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// finishes the active flow and requests generation
func (c *AgentClient) Complete(ctx context.Context, sessionID string) (*apiAgentResponse, error) {
	payload := map[string]string{
		"session_id": sessionID,
	}

	var result apiAgentResponse
	if err := c.post(ctx, "/api/v1/agent/complete", payload, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// skips the remaining skipable questions and requests generation
func (c *AgentClient) Skip(ctx context.Context, sessionID string) (*apiAgentResponse, error) {
	payload := map[string]string{
		"session_id": sessionID,
	}

	var result apiAgentResponse
	if err := c.post(ctx, "/api/v1/agent/skip", payload, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *AgentClient) post(ctx context.Context, path string, payload, result any) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.endpoint + path

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payloadBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp apiErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("%s: %s", errResp.Error, errResp.Message)
		}

		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}

// tea.Cmd wrappers

func (c *AgentClient) ProcessCmd(message, sessionID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), agentRequestTimeout)
		defer cancel()

		resp, err := c.Process(ctx, message, sessionID)
		if err != nil {
			return AgentErrorMsg{userQuery: message, err: err}
		}

		return AgentResponseMsg{userQuery: message, response: resp}
	}
}

func (c *AgentClient) AnswerCmd(sessionID, questionID, answer string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), agentRequestTimeout)
		defer cancel()

		resp, err := c.Answer(ctx, sessionID, questionID, answer)
		if err != nil {
			return AgentErrorMsg{err: err}
		}

		return FlowProgressMsg{response: resp}
	}
}

func (c *AgentClient) CompleteCmd(sessionID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), agentRequestTimeout)
		defer cancel()

		resp, err := c.Complete(ctx, sessionID)
		if err != nil {
			return AgentErrorMsg{err: err}
		}

		return AgentResponseMsg{response: resp}
	}
}

func (c *AgentClient) SkipCmd(sessionID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), agentRequestTimeout)
		defer cancel()

		resp, err := c.Skip(ctx, sessionID)
		if err != nil {
			return AgentErrorMsg{err: err}
		}

		return AgentResponseMsg{response: resp}
	}
}
