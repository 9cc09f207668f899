package challenges

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/RowanDark/cryptokit/internal/bindata"
	"github.com/RowanDark/cryptokit/internal/logging"
)

func newChallengeServer(t *testing.T, files map[string]string) (*httptest.Server, *int) {
	t.Helper()
	hits := 0
	mux := http.NewServeMux()
	for name, body := range files {
		body := body
		mux.HandleFunc("/data/"+name, func(w http.ResponseWriter, r *http.Request) {
			hits++
			if !strings.HasPrefix(r.Header.Get("User-Agent"), "cryptokit") {
				t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
			}
			w.Write([]byte(body))
		})
	}
	mux.HandleFunc("/data/500.txt", func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &hits
}

func TestFetch(t *testing.T) {
	server, hits := newChallengeServer(t, map[string]string{"4.txt": "00ff\n"})
	client := &Client{HTTPClient: server.Client(), BaseURL: server.URL + "/data/"}

	text, err := client.Fetch(context.Background(), 4)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if text != "00ff\n" {
		t.Fatalf("unexpected body %q", text)
	}
	if _, err := client.Fetch(context.Background(), 4); err != nil {
		t.Fatal(err)
	}
	if *hits != 2 {
		t.Fatalf("expected every fetch to reach the server, got %d hits", *hits)
	}
}

func TestFetchErrors(t *testing.T) {
	server, hits := newChallengeServer(t, nil)
	client := &Client{HTTPClient: server.Client(), BaseURL: server.URL + "/data"}
	ctx := context.Background()

	if _, err := client.Fetch(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := client.Fetch(ctx, 500); !errors.Is(err, ErrRequest) {
		t.Fatalf("expected ErrRequest for 503, got %v", err)
	}
	before := *hits
	if _, err := client.Fetch(ctx, 0); !errors.Is(err, ErrRequest) {
		t.Fatalf("expected ErrRequest for id 0, got %v", err)
	}
	if *hits != before {
		t.Fatal("invalid id should not reach the server")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := client.Fetch(cancelled, 1); !errors.Is(err, ErrRequest) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected ErrRequest wrapping context.Canceled, got %v", err)
	}

	bad := &Client{BaseURL: "http://[::1"}
	if _, err := bad.Fetch(ctx, 1); !errors.Is(err, ErrRequest) {
		t.Fatalf("expected ErrRequest for bad base URL, got %v", err)
	}
}

func TestFetchBase64(t *testing.T) {
	want := bindata.MustText("Mary had a little lamb")
	encoded := want.Base64()
	body := encoded[:10] + "\n" + encoded[10:] + "\n"
	server, _ := newChallengeServer(t, map[string]string{"6.txt": body, "7.txt": "not base64!\n"})
	client := &Client{HTTPClient: server.Client(), BaseURL: server.URL + "/data"}

	got, err := client.FetchBase64(context.Background(), 6)
	if err != nil {
		t.Fatalf("FetchBase64: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if _, err := client.FetchBase64(context.Background(), 7); !errors.Is(err, bindata.ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}

func TestFetchHexLines(t *testing.T) {
	server, _ := newChallengeServer(t, map[string]string{
		"4.txt": "00ff\r\n\n1b37\n",
		"8.txt": "00ff\nzz\n",
	})
	client := &Client{HTTPClient: server.Client(), BaseURL: server.URL + "/data"}

	lines, err := client.FetchHexLines(context.Background(), 4)
	if err != nil {
		t.Fatalf("FetchHexLines: %v", err)
	}
	if len(lines) != 2 || lines[0].Hex() != "00FF" || lines[1].Hex() != "1B37" {
		t.Fatalf("unexpected lines %v", lines)
	}
	_, err = client.FetchHexLines(context.Background(), 8)
	if !errors.Is(err, bindata.ErrFormat) || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected ErrFormat on line 2, got %v", err)
	}
}

func TestFetchAudit(t *testing.T) {
	server, _ := newChallengeServer(t, map[string]string{"1.txt": "49276d"})
	buf := &bytes.Buffer{}
	audit, err := logging.NewAuditLogger("challenges", buf)
	if err != nil {
		t.Fatal(err)
	}
	client := &Client{HTTPClient: server.Client(), BaseURL: server.URL + "/data", Audit: audit}
	if _, err := client.Fetch(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if _, err := client.Fetch(context.Background(), 2); err == nil {
		t.Fatal("expected missing file to fail")
	}
	out := buf.String()
	if strings.Count(out, `"event_type":"fetch"`) != 2 {
		t.Fatalf("expected two fetch events, got %q", out)
	}
	if !strings.Contains(out, `"outcome":"failure"`) {
		t.Fatalf("expected a failure event, got %q", out)
	}
}

func TestDefaultURL(t *testing.T) {
	got, err := (&Client{}).urlFor(6)
	if err != nil {
		t.Fatal(err)
	}
	if got != DefaultBaseURL+"/6.txt" {
		t.Fatalf("unexpected url %q", got)
	}
}
