package extract

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head><title>Deep Sea Mining</title></head>
<body>
<article>
<h1>Deep Sea Mining</h1>
<p>Mining companies are turning their attention to the ocean floor, where polymetallic
nodules rich in nickel, cobalt and manganese carpet vast abyssal plains several
kilometres below the surface.</p>
<p>Environmental scientists warn that sediment plumes kicked up by collector vehicles
could smother filter-feeding organisms far beyond the mined area, and that the
ecosystems involved recover on timescales measured in centuries.</p>
<p>Regulators at the International Seabed Authority are still negotiating the rules
that would govern commercial extraction in international waters.</p>
</article>
</body>
</html>`

func TestURLExtractSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, articleHTML)
	}))
	defer srv.Close()

	text, xerr := NewURL(nil).Extract(context.Background(), srv.URL)
	require.Nil(t, xerr)
	assert.GreaterOrEqual(t, len(text), minArticleChars)
	assert.Contains(t, text, "polymetallic")
}

func TestURLExtractSendsUserAgent(t *testing.T) {
	var gotUA atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA.Store(r.UserAgent())
		fmt.Fprint(w, articleHTML)
	}))
	defer srv.Close()

	_, xerr := NewURL(nil).Extract(context.Background(), srv.URL)
	require.Nil(t, xerr)
	assert.Equal(t, userAgent, gotUA.Load())
}

func TestURLExtractRejectsInvalidSource(t *testing.T) {
	for _, target := range []string{"", "   ", "not a url", "ftp://example.com/file", "//missing-scheme"} {
		_, xerr := NewURL(nil).Extract(context.Background(), target)
		require.NotNil(t, xerr, "target %q", target)
		assert.Equal(t, CodeInvalidSource, xerr.Code, "target %q", target)
		assert.Equal(t, http.StatusBadRequest, xerr.Status)
	}
}

func TestURLExtractRemoteRejected(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusForbidden, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		_, xerr := NewURL(nil).Extract(context.Background(), srv.URL)
		srv.Close()

		require.NotNil(t, xerr, "status %d", status)
		assert.Equal(t, CodeRemoteRejected, xerr.Code)
		assert.Equal(t, status, xerr.Status)
	}
}

func TestURLExtractInsufficientContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><p>too short</p></body></html>")
	}))
	defer srv.Close()

	_, xerr := NewURL(nil).Extract(context.Background(), srv.URL)
	require.NotNil(t, xerr)
	assert.Equal(t, CodeInsufficientContent, xerr.Code)
	assert.Equal(t, http.StatusUnprocessableEntity, xerr.Status)
}

func TestURLExtractTimeout(t *testing.T) {
	var fetches atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		time.Sleep(500 * time.Millisecond)
		fmt.Fprint(w, articleHTML)
	}))
	defer srv.Close()

	u := NewURL(&http.Client{Timeout: 50 * time.Millisecond})
	_, xerr := u.Extract(context.Background(), srv.URL)

	require.NotNil(t, xerr)
	assert.Equal(t, CodeTimeout, xerr.Code)
	assert.Equal(t, http.StatusRequestTimeout, xerr.Status)
	assert.Equal(t, int32(1), fetches.Load())
}

func TestURLExtractUnreachable(t *testing.T) {
	// closed server: connection refused
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	target := srv.URL
	srv.Close()

	_, xerr := NewURL(nil).Extract(context.Background(), target)
	require.NotNil(t, xerr)
	assert.Equal(t, CodeUnreachable, xerr.Code)
	assert.Equal(t, http.StatusBadGateway, xerr.Status)
}

func TestURLExtractStopsAfterTooManyRedirects(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, srv.URL+r.URL.Path+"x", http.StatusFound)
	}))
	defer srv.Close()

	_, xerr := NewURL(nil).Extract(context.Background(), srv.URL)
	require.NotNil(t, xerr)
	assert.Equal(t, CodeUnreachable, xerr.Code)
	assert.True(t, strings.Contains(xerr.Error(), "redirect"))
}
