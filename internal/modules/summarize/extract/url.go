package extract

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
)

const (
	fetchTimeout    = 15 * time.Second
	maxRedirects    = 5
	minArticleChars = 100
	userAgent       = "NeuroBriefBot/1.0 (+article summarization; respects robots exclusions)"
)

// URL fetches a web page and extracts its readable article text.
type URL struct {
	client *http.Client
}

// NewURL builds an extractor with the default fetch policy. Pass a client to
// override transport or timeout, mainly for tests.
func NewURL(client *http.Client) *URL {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	if client.CheckRedirect == nil {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		}
	}
	return &URL{client: client}
}

// Extract fetches target and returns the readable text of the page.
func (u *URL) Extract(ctx context.Context, target string) (string, *Error) {
	parsed, err := url.Parse(strings.TrimSpace(target))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", newError(CodeInvalidSource, http.StatusBadRequest,
			"A valid http(s) URL is required.", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return "", newError(CodeInvalidSource, http.StatusBadRequest,
			"A valid http(s) URL is required.", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := u.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", newError(CodeTimeout, http.StatusRequestTimeout,
				"Fetching the URL timed out.", err)
		}
		return "", newError(CodeUnreachable, http.StatusBadGateway,
			"Could not reach the URL.", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", newError(CodeRemoteRejected, resp.StatusCode,
			fmt.Sprintf("The remote site responded with status %d.", resp.StatusCode), nil)
	}

	article, err := readability.FromReader(resp.Body, parsed)
	if err != nil {
		return "", newError(CodeInsufficientContent, http.StatusUnprocessableEntity,
			"Could not extract a readable article from the page.", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if len(text) < minArticleChars {
		return "", newError(CodeInsufficientContent, http.StatusUnprocessableEntity,
			"The page does not contain enough readable text to summarize.", nil)
	}
	return text, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
