package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const DefaultBaseURL = "https://sheets.googleapis.com"

type Client interface {
	AppendRow(ctx context.Context, row []string) error
}

// HTTPClient appends rows through the spreadsheet values:append endpoint.
type HTTPClient struct {
	baseURL       string
	spreadsheetID string
	sheetRange    string
	token         string
	httpClient    *http.Client
}

func NewHTTPClient(baseURL, spreadsheetID, sheetRange, token string) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPClient{
		baseURL:       baseURL,
		spreadsheetID: spreadsheetID,
		sheetRange:    sheetRange,
		token:         token,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
	}
}

type appendRequest struct {
	Values [][]string `json:"values"`
}

func (c *HTTPClient) doReq(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("sheets %s %s: %d %s", method, path, resp.StatusCode, string(data))
	}
	return data, nil
}

func (c *HTTPClient) AppendRow(ctx context.Context, row []string) error {
	path := "/v4/spreadsheets/" + url.PathEscape(c.spreadsheetID) +
		"/values/" + url.PathEscape(c.sheetRange) + ":append?valueInputOption=RAW"
	_, err := c.doReq(ctx, http.MethodPost, path, appendRequest{Values: [][]string{row}})
	return err
}
