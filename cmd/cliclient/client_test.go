package main

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	mandel "github.com/malfet/Mandelbrot"
)

// fakeServer answers every request with the given messages followed by img
// when img is not nil.
func fakeServer(t *testing.T, msgs []mandel.Message, img []byte) (string, <-chan mandel.Request) {
	t.Helper()
	got := make(chan mandel.Request, 1)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, nil)
		if err != nil {
			t.Errorf("Accept: %v", err)
			return
		}
		defer c.CloseNow()
		var req mandel.Request
		if err := wsjson.Read(r.Context(), c, &req); err != nil {
			t.Errorf("read request: %v", err)
			return
		}
		got <- req
		for _, m := range msgs {
			if err := wsjson.Write(r.Context(), c, m); err != nil {
				return
			}
		}
		if img != nil {
			_ = c.Write(r.Context(), websocket.MessageBinary, img)
		}
		c.Close(websocket.StatusNormalClosure, "")
	}))
	t.Cleanup(ts.Close)
	return "ws" + strings.TrimPrefix(ts.URL, "http"), got
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 4, 3))
	for x := range 4 {
		img.SetGray(x, 1, color.Gray{Y: uint8(85 * x)})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestFetch(t *testing.T) {
	img := testPNG(t)
	url, reqs := fakeServer(t, []mandel.Message{
		{Type: mandel.MessageProgress, Progress: &mandel.Progress{Tile: image.Rect(0, 0, 2, 3), Finished: 0.5}},
		{Type: mandel.MessageProgress, Progress: &mandel.Progress{Tile: image.Rect(2, 0, 4, 3), Finished: 1}},
		{Type: mandel.MessageSummary, Summary: &mandel.Summary{Kind: "julia", Mode: "escape", Width: 4, Height: 3}},
	}, img)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	var progress []float64
	sum, data, err := fetch(ctx, url, mandel.Request{Kind: "julia", C: [2]float64{-0.8, 0.156}}, func(p mandel.Progress) {
		progress = append(progress, p.Finished)
	})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if req := <-reqs; req.Kind != "julia" || req.C != [2]float64{-0.8, 0.156} {
		t.Errorf("server saw %+v", req)
	}
	if len(progress) != 2 || progress[1] != 1 {
		t.Errorf("progress %v", progress)
	}
	if sum.Kind != "julia" || !bytes.Equal(data, img) {
		t.Errorf("summary %+v, %d image bytes", sum, len(data))
	}
}

func TestFetchRejected(t *testing.T) {
	url, _ := fakeServer(t, []mandel.Message{{Type: mandel.MessageError, Error: "bad request: unknown system"}}, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, _, err := fetch(ctx, url, mandel.Request{Kind: "burning-ship"}, nil)
	if !errors.Is(err, errRejected) || !strings.Contains(err.Error(), "unknown system") {
		t.Errorf("err = %v, want a rejection", err)
	}
}

func TestFetchImageWithoutSummary(t *testing.T) {
	url, _ := fakeServer(t, nil, testPNG(t))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, _, err := fetch(ctx, url, mandel.Request{}, nil); err == nil {
		t.Errorf("fetch accepted an image without a summary")
	}
}

func TestRowProfile(t *testing.T) {
	img, err := png.Decode(bytes.NewReader(testPNG(t)))
	if err != nil {
		t.Fatal(err)
	}
	row := rowProfile(img, 1)
	want := []float64{0, 1.0 / 3, 2.0 / 3, 1}
	for i, w := range want {
		if d := row[i] - w; d > 1e-9 || d < -1e-9 {
			t.Errorf("row[%d] = %g, want %g", i, row[i], w)
		}
	}
	if rowProfile(img, 7) != nil {
		t.Errorf("row outside the image should be nil")
	}
	if plot := plotProfile(img, 20); !strings.Contains(plot, "middle row") {
		t.Errorf("plot lacks its caption:\n%s", plot)
	}
}
