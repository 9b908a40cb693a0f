// Package translate translates post bodies with the Microsoft Translator v3
// API.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

const DefaultEndpoint = "https://api.cognitive.microsofttranslator.com"

var (
	ErrNotConfigured     = errors.New("the translation service is not configured")
	ErrTranslationFailed = errors.New("the translation service failed")
)

type Translator interface {
	Translate(ctx context.Context, text string, source string, dest string) (string, error)
}

// HTTPDoer is satisfied by *http.Client and the zipkin traced client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type MicrosoftTranslator struct {
	client   HTTPDoer
	endpoint string
	key      string
	region   string
}

func NewMicrosoftTranslator(client HTTPDoer, endpoint string, key string, region string) *MicrosoftTranslator {
	if client == nil {
		client = http.DefaultClient
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return &MicrosoftTranslator{
		client:   client,
		endpoint: endpoint,
		key:      key,
		region:   region,
	}
}

type translateRequestItem struct {
	Text string `json:"Text"`
}

type translateResponseItem struct {
	Translations []struct {
		Text string `json:"text"`
		To   string `json:"to"`
	} `json:"translations"`
}

func (t *MicrosoftTranslator) Translate(ctx context.Context, text string, source string, dest string) (string, error) {
	if t.key == "" {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal([]translateRequestItem{{Text: text}})
	if err != nil {
		return "", err
	}

	query := url.Values{}
	query.Set("api-version", "3.0")
	query.Set("to", dest)
	if source != "" {
		query.Set("from", source)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint+"/translate?"+query.Encode(), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	req.Header.Set("Ocp-Apim-Subscription-Key", t.key)
	if t.region != "" {
		req.Header.Set("Ocp-Apim-Subscription-Region", t.region)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrTranslationFailed, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrTranslationFailed, resp.StatusCode)
	}

	var items []translateResponseItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return "", fmt.Errorf("%w: %s", ErrTranslationFailed, err.Error())
	}
	if len(items) == 0 || len(items[0].Translations) == 0 {
		return "", ErrTranslationFailed
	}

	return items[0].Translations[0].Text, nil
}
