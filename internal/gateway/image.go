package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"doc-research-fe/internal/pkg/logger"
)

// ErrNoImage means neither the document image nor the configured default
// could be fetched; the caller renders a textual placeholder instead.
var ErrNoImage = errors.New("no image available")

// ImageResolver fetches cover images with a fixed per-attempt timeout and
// a single fallback to the configured default image.
type ImageResolver struct {
	DefaultURL string
	HTTP       *http.Client
	log        logger.ILogger
}

func NewImageResolver(defaultURL string, log logger.ILogger) *ImageResolver {
	return &ImageResolver{
		DefaultURL: defaultURL,
		HTTP: &http.Client{
			Timeout: 5 * time.Second,
		},
		log: log,
	}
}

// Resolve returns the image bytes and content type for the given URL,
// substituting the default image on any failure. No retry beyond that one
// substitution.
func (r *ImageResolver) Resolve(ctx context.Context, imageURL string) ([]byte, string, error) {
	if data, ctype, err := r.fetch(ctx, imageURL); err == nil {
		return data, ctype, nil
	} else {
		r.log.Warn("image", "image not available, falling back to default", map[string]interface{}{
			"url":   imageURL,
			"error": err.Error(),
		})
	}

	if r.DefaultURL == "" {
		return nil, "", ErrNoImage
	}
	data, ctype, err := r.fetch(ctx, r.DefaultURL)
	if err != nil {
		r.log.Error("image", "default image not available", map[string]interface{}{
			"url":   r.DefaultURL,
			"error": err.Error(),
		})
		return nil, "", ErrNoImage
	}
	return data, ctype, nil
}

func (r *ImageResolver) fetch(ctx context.Context, imageURL string) ([]byte, string, error) {
	if imageURL == "" {
		return nil, "", errors.New("empty url")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := r.HTTP.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	ctype := resp.Header.Get("Content-Type")
	if ctype == "" {
		ctype = http.DetectContentType(data)
	}
	return data, ctype, nil
}
