package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"quizzle/internal/domain"
)

// HTTPSource fetches {baseURL}/{YYYY-MM-DD}.json.
type HTTPSource struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSource uses client, or http.DefaultClient when nil.
func NewHTTPSource(baseURL string, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// URL returns the question file location for date.
func (s *HTTPSource) URL(date time.Time) string {
	return s.baseURL + "/" + date.Format(domain.DateLayout) + ".json"
}

func (s *HTTPSource) FetchQuestions(ctx context.Context, date time.Time) (domain.QuestionFile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL(date), nil)
	if err != nil {
		return domain.QuestionFile{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.QuestionFile{}, fmt.Errorf("fetch %s: %w", s.URL(date), err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.QuestionFile{}, domain.ErrQuestionSetNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return domain.QuestionFile{}, fmt.Errorf("fetch %s: unexpected status %d", s.URL(date), resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.QuestionFile{}, fmt.Errorf("read %s: %w", s.URL(date), err)
	}
	var file domain.QuestionFile
	if err := json.Unmarshal(body, &file); err != nil {
		return domain.QuestionFile{}, fmt.Errorf("%w: %v", domain.ErrMalformedQuestionSet, err)
	}
	return file, nil
}
