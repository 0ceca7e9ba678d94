package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/guptarohit/asciigraph"

	mandel "github.com/malfet/Mandelbrot"
)

const readLimit = 64 << 20

var errRejected = errors.New("server rejected request")

// fetch sends req to the server at url and returns the summary and PNG.
// onProgress sees every partition the server reports.
func fetch(ctx context.Context, url string, req mandel.Request, onProgress func(mandel.Progress)) (mandel.Summary, []byte, error) {
	c, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return mandel.Summary{}, nil, fmt.Errorf("dial %s: %w", url, err)
	}
	defer c.CloseNow()
	c.SetReadLimit(readLimit)

	if err := wsjson.Write(ctx, c, req); err != nil {
		return mandel.Summary{}, nil, fmt.Errorf("send request: %w", err)
	}

	var sum *mandel.Summary
	for {
		typ, data, err := c.Read(ctx)
		if err != nil {
			return mandel.Summary{}, nil, fmt.Errorf("read: %w", err)
		}
		if typ == websocket.MessageBinary {
			if sum == nil {
				return mandel.Summary{}, nil, errors.New("image arrived without a summary")
			}
			c.Close(websocket.StatusNormalClosure, "")
			return *sum, data, nil
		}

		var msg mandel.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			return mandel.Summary{}, nil, fmt.Errorf("decode message: %w", err)
		}
		switch msg.Type {
		case mandel.MessageProgress:
			if msg.Progress != nil && onProgress != nil {
				onProgress(*msg.Progress)
			}
		case mandel.MessageSummary:
			sum = msg.Summary
		case mandel.MessageError:
			return mandel.Summary{}, nil, fmt.Errorf("%w: %s", errRejected, msg.Error)
		}
	}
}

// rowProfile returns the luminance of row y of img in [0,1].
func rowProfile(img image.Image, y int) []float64 {
	b := img.Bounds()
	if y < b.Min.Y || y >= b.Max.Y {
		return nil
	}
	out := make([]float64, 0, b.Dx())
	for x := b.Min.X; x < b.Max.X; x++ {
		g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
		out = append(out, float64(g.Y)/math.MaxUint8)
	}
	return out
}

// plotProfile draws the middle row of img.
func plotProfile(img image.Image, width int) string {
	b := img.Bounds()
	row := rowProfile(img, b.Min.Y+b.Dy()/2)
	if len(row) == 0 {
		return ""
	}
	return asciigraph.Plot(row,
		asciigraph.Height(8),
		asciigraph.Width(width),
		asciigraph.Caption("luminance of the middle row"),
	)
}
