package mandel

import "image"

// Wire protocol of the render server. The client sends one Request as JSON,
// the server answers with JSON Messages and finally the PNG as a binary
// message.

// MandelRegion is a Region on the wire.
type MandelRegion struct {
	Xmin float64 `json:"xmin"`
	Ymin float64 `json:"ymin"`
	Xmax float64 `json:"xmax"`
	Ymax float64 `json:"ymax"`
}

// Region converts r.
func (r MandelRegion) Region() Region {
	return Rect(r.Xmin, r.Ymin, r.Xmax, r.Ymax)
}

// Request is the first message a client sends.
type Request struct {
	// Kind is mandelbrot, julia, multibrot or newton. Empty means mandelbrot.
	Kind string `json:"kind,omitempty"`
	// Mode is escape or attraction. Newton defaults to attraction, the
	// others to escape.
	Mode string `json:"mode,omitempty"`
	// Region wins over Preset. Neither selects DefaultRegion.
	Region *MandelRegion `json:"region,omitempty"`
	Preset string        `json:"preset,omitempty"`

	Width      int  `json:"width,omitempty"`
	Height     int  `json:"height,omitempty"`
	Iterations int  `json:"iterations,omitempty"`
	Partitions *int `json:"partitions,omitempty"`

	// C is the fixed parameter of julia as [re, im].
	C [2]float64 `json:"c,omitempty"`
	// Power is the multibrot exponent, 2 when unset.
	Power float64 `json:"power,omitempty"`
	// K and N select the Misiurewicz polynomial newton iterates on. Zero
	// selects x^3-1.
	K int `json:"k,omitempty"`
	N int `json:"n,omitempty"`
}

// Message types.
const (
	MessageProgress = "progress"
	MessageSummary  = "summary"
	MessageError    = "error"
)

// Message is a JSON message from the server.
type Message struct {
	Type     string    `json:"type"`
	Progress *Progress `json:"progress,omitempty"`
	Summary  *Summary  `json:"summary,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// Progress is sent once per finished partition of an escape-time render.
type Progress struct {
	Tile image.Rectangle `json:"tile"`
	Area float64         `json:"area"`
	// Finished is the fraction of pixels rendered so far.
	Finished float64 `json:"finished"`
}

// Summary is sent after the render, right before the PNG.
type Summary struct {
	Kind      string       `json:"kind"`
	Mode      string       `json:"mode"`
	Region    string       `json:"region"`
	Width     int          `json:"width"`
	Height    int          `json:"height"`
	ElapsedMS int64        `json:"elapsed_ms"`
	Area      float64      `json:"area,omitempty"`
	Points    [][2]float64 `json:"points,omitempty"`
}
