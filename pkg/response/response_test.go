package response_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-tplhttp/pkg/mimetype"
	"github.com/goliatone/go-tplhttp/pkg/response"
)

func TestNewBody_DefaultsToPlainText(t *testing.T) {
	body := response.NewBody("hello")

	if body.Mime() != mimetype.Plain {
		t.Fatalf("expected plain text mime, got %q", body.Mime())
	}
	if body.MediaType() != "text/plain" {
		t.Fatalf("unexpected media type %q", body.MediaType())
	}
	if body.Len() != 5 || body.String() != "hello" {
		t.Fatalf("unexpected payload %q (%d)", body.String(), body.Len())
	}
}

func TestBody_SetMime(t *testing.T) {
	body := response.NewBody("<p>hi</p>")
	body.SetMime(mimetype.HTML)
	if body.MediaType() != "text/html" {
		t.Fatalf("expected text/html, got %q", body.MediaType())
	}

	body.SetMime("")
	if body.Mime() != mimetype.Plain {
		t.Fatalf("expected empty mime to reset to plain, got %q", body.Mime())
	}
}

func TestBody_ReaderAndBytesDoNotAlias(t *testing.T) {
	body := response.NewBody("abc")

	raw := body.Bytes()
	raw[0] = 'z'

	data, err := io.ReadAll(body.Reader())
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(data) != "abc" {
		t.Fatalf("expected body to be unchanged, got %q", data)
	}
}

func TestResponse_WriteTo(t *testing.T) {
	body := response.NewBody("hello tide!\n")
	body.SetMime(mimetype.HTML)

	res := response.New(http.StatusOK)
	res.Header().Set("X-Render", "1")
	res.SetBody(body)

	if res.ContentType() != mimetype.HTML {
		t.Fatalf("expected content type from body, got %q", res.ContentType())
	}

	rec := httptest.NewRecorder()
	if err := res.WriteTo(rec); err != nil {
		t.Fatalf("write: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != mimetype.HTML {
		t.Fatalf("unexpected content type %q", got)
	}
	if got := rec.Header().Get("Content-Length"); got != "12" {
		t.Fatalf("unexpected content length %q", got)
	}
	if got := rec.Header().Get("X-Render"); got != "1" {
		t.Fatalf("expected custom header to be copied, got %q", got)
	}
	if rec.Body.String() != "hello tide!\n" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestResponse_ExplicitContentTypeWins(t *testing.T) {
	res := response.New(http.StatusAccepted)
	res.Header().Set("Content-Type", "application/vnd.custom")
	res.SetBody(response.NewBody("{}"))

	rec := httptest.NewRecorder()
	if err := res.WriteTo(rec); err != nil {
		t.Fatalf("write: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/vnd.custom" {
		t.Fatalf("unexpected content type %q", got)
	}
}

func TestResponse_NoBody(t *testing.T) {
	res := response.New(http.StatusNoContent)
	if res.ContentType() != "" {
		t.Fatalf("expected empty content type, got %q", res.ContentType())
	}

	rec := httptest.NewRecorder()
	if err := res.WriteTo(rec); err != nil {
		t.Fatalf("write: %v", err)
	}
	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Body.String())
	}
}

func TestNew_InvalidStatusPanics(t *testing.T) {
	for _, status := range []int{0, 99, 1000, -1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected New(%d) to panic", status)
				}
			}()
			response.New(status)
		}()
	}

	if got := response.New(http.StatusTeapot).Status(); got != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", got)
	}
}
