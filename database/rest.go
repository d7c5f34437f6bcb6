package database

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"village-profile/models"
)

// RESTStore talks to a PostgREST endpoint such as Supabase's /rest/v1.
type RESTStore struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewRESTStore(baseURL, apiKey string, client *http.Client) *RESTStore {
	if client == nil {
		client = http.DefaultClient
	}
	return &RESTStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
	}
}

func (s *RESTStore) ListArticles(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article
	if err := s.selectAll(ctx, models.Article{}.TableName(), "created_at.desc", &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

func (s *RESTStore) ListTourismSpots(ctx context.Context) ([]models.TourismSpot, error) {
	var spots []models.TourismSpot
	if err := s.selectAll(ctx, models.TourismSpot{}.TableName(), "", &spots); err != nil {
		return nil, err
	}
	return spots, nil
}

func (s *RESTStore) ListBusinesses(ctx context.Context) ([]models.Business, error) {
	var businesses []models.Business
	if err := s.selectAll(ctx, models.Business{}.TableName(), "", &businesses); err != nil {
		return nil, err
	}
	return businesses, nil
}

func (s *RESTStore) InsertFeedback(ctx context.Context, fb *models.Feedback) error {
	jsonData, err := json.Marshal([]*models.Feedback{fb})
	if err != nil {
		return err
	}

	req, err := s.newRequest(ctx, http.MethodPost, models.Feedback{}.TableName(), nil, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Prefer", "return=minimal")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("inserting feedback: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("inserting feedback: status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

func (s *RESTStore) selectAll(ctx context.Context, table, order string, out interface{}) error {
	q := url.Values{}
	q.Set("select", "*")
	if order != "" {
		q.Set("order", order)
	}

	req, err := s.newRequest(ctx, http.MethodGet, table, q, nil)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("listing %s: %w", table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("listing %s: status %d: %s", table, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s: %w", table, err)
	}
	return nil
}

func (s *RESTStore) newRequest(ctx context.Context, method, table string, q url.Values, body io.Reader) (*http.Request, error) {
	u := s.baseURL + "/rest/v1/" + table
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.apiKey != "" {
		req.Header.Set("apikey", s.apiKey)
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}
	return req, nil
}

func (s *RESTStore) Close() error {
	s.client.CloseIdleConnections()
	return nil
}
