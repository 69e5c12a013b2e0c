package filesearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Client talks to an OpenAI-compatible file-search API: POST /files for raw
// bytes, POST /vector_stores/{id}/files to attach a file to the index, and
// POST /responses with the file_search tool for ranked passage search.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	apiKey        string
	vectorStoreId string
	model         string
}

func NewClient(baseURL, apiKey, vectorStoreId, model string, timeout time.Duration) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: timeout},
		baseURL:       baseURL,
		apiKey:        apiKey,
		vectorStoreId: vectorStoreId,
		model:         model,
	}
}

type storeFileResponse struct {
	Id string `json:"id"`
}

type indexFileRequest struct {
	FileId     string            `json:"file_id"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

type fileSearchTool struct {
	Type           string   `json:"type"`
	VectorStoreIds []string `json:"vector_store_ids"`
	MaxNumResults  int      `json:"max_num_results"`
}

type searchRequest struct {
	Model   string           `json:"model"`
	Input   string           `json:"input"`
	Tools   []fileSearchTool `json:"tools"`
	Include []string         `json:"include"`
}

func (c *Client) StoreDocument(ctx context.Context, r io.Reader, filename string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", err
	}
	if err := writer.WriteField("purpose", "assistants"); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/files", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resBytes, err := c.do(req)
	if err != nil {
		return "", err
	}

	var stored storeFileResponse
	if err := json.Unmarshal(resBytes, &stored); err != nil {
		return "", fmt.Errorf("unexpected store response: %w", err)
	}
	if stored.Id == "" {
		return "", fmt.Errorf("store response carried no document id")
	}
	return stored.Id, nil
}

func (c *Client) IndexDocument(ctx context.Context, documentID string, attributes map[string]string) error {
	payload, err := json.Marshal(indexFileRequest{
		FileId:     documentID,
		Attributes: attributes,
	})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/vector_stores/%s/files", c.baseURL, c.vectorStoreId)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	_, err = c.do(req)
	return err
}

func (c *Client) Search(ctx context.Context, query string, maxResults int) (*SearchResponse, error) {
	payload, err := json.Marshal(searchRequest{
		Model: c.model,
		Input: query,
		Tools: []fileSearchTool{
			{
				Type:           "file_search",
				VectorStoreIds: []string{c.vectorStoreId},
				MaxNumResults:  maxResults,
			},
		},
		// Without this the engine reports the tool call but omits the raw
		// match records.
		Include: []string{"file_search_call.results"},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/responses", bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resBytes, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var response SearchResponse
	if err := json.Unmarshal(resBytes, &response); err != nil {
		return nil, fmt.Errorf("unexpected search response: %w", err)
	}
	return &response, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resBytes, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("engine returned %d: %s", res.StatusCode, engineMessage(resBytes))
	}
	return resBytes, nil
}

type engineError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// engineMessage pulls the engine's own diagnostic out of an error body so it
// can be surfaced to the caller; unparseable bodies are surfaced raw.
func engineMessage(body []byte) string {
	var parsed engineError
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return string(body)
}
