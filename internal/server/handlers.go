package server

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/ironsheep/image8bit/internal/pgm"
	"github.com/ironsheep/image8bit/internal/raster"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_blur").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// OperationResult describes the image an operation produced.
type OperationResult struct {
	// Output is the PGM file the result was written to.
	Output string `json:"output"`

	Width  int `json:"width"`
	Height int `json:"height"`
	Maxval int `json:"maxval"`

	// Accesses counts the pixel accesses the operation itself performed,
	// excluding loading and saving.
	Accesses raster.AccessCounts `json:"accesses"`
}

// StatsResult reports the gray level range of an image.
type StatsResult struct {
	Width    int                 `json:"width"`
	Height   int                 `json:"height"`
	Maxval   int                 `json:"maxval"`
	Min      int                 `json:"min"`
	Max      int                 `json:"max"`
	Accesses raster.AccessCounts `json:"accesses"`
}

// LocateResult reports where a sub-image was found.
type LocateResult struct {
	Found    bool                `json:"found"`
	X        int                 `json:"x"`
	Y        int                 `json:"y"`
	Accesses raster.AccessCounts `json:"accesses"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate raster or pgm function
//  5. Saves the result and returns a summary
//
// raster reports broken preconditions (a window radius below zero, a crop
// rectangle outside the image) by panicking. Those panics come back as
// errors.
func (s *Server) executeTool(name string, args json.RawMessage) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Tool %s rejected: %v", name, r)
			result, err = nil, fmt.Errorf("%v", r)
		}
	}()

	switch name {
	// Inspection
	case "image_load":
		return s.handleImageLoad(args)
	case "image_stats":
		return s.handleImageStats(args)
	case "image_locate":
		return s.handleImageLocate(args)

	// Filters
	case "image_blur":
		return s.handleImageBlur(args)
	case "image_negative":
		return s.handleImageNegative(args)
	case "image_threshold":
		return s.handleImageThreshold(args)
	case "image_brighten":
		return s.handleImageBrighten(args)

	// Geometry
	case "image_rotate":
		return s.handleImageRotate(args)
	case "image_mirror":
		return s.handleImageMirror(args)
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_paste":
		return s.handleImagePaste(args)
	case "image_blend":
		return s.handleImageBlend(args)

	// Files
	case "image_create":
		return s.handleImageCreate(args)
	case "image_import":
		return s.handleImageImport(args)
	case "image_export":
		return s.handleImageExport(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// load returns a private copy of the image at path with its access counters
// cleared, so that whatever the caller does next is all that gets counted.
func (s *Server) load(path string) (*raster.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}
	img.ResetAccesses()
	return img, nil
}

// store saves img to output and drops any cached copy of that file.
// The reported accesses are those of counted, which may include images
// other than img (the source of a rotation, for instance).
func (s *Server) store(img *raster.Image, output string, counted ...*raster.Image) (*OperationResult, error) {
	var acc raster.AccessCounts
	for _, c := range counted {
		acc = acc.Add(c.Accesses())
	}
	if err := pgm.Save(img, output); err != nil {
		return nil, err
	}
	s.cache.Evict(output)
	return &OperationResult{
		Output:   output,
		Width:    img.Width(),
		Height:   img.Height(),
		Maxval:   int(img.Maxval()),
		Accesses: acc,
	}, nil
}

// outputArgs is embedded by every tool that writes a PGM file.
type outputArgs struct {
	Path   string `json:"path"`
	Output string `json:"output"`
}

// target returns where the result goes: output, or path itself.
func (a outputArgs) target() string {
	if a.Output == "" {
		return a.Path
	}
	return a.Output
}

// === Inspection Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	return pgm.Info(s.cache, a.Path)
}

func (s *Server) handleImageStats(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	lo, hi := img.Stats()
	return &StatsResult{
		Width:    img.Width(),
		Height:   img.Height(),
		Maxval:   int(img.Maxval()),
		Min:      int(lo),
		Max:      int(hi),
		Accesses: img.Accesses(),
	}, nil
}

type imageLocateArgs struct {
	Path     string `json:"path"`
	SubImage string `json:"subimage"`
}

func (s *Server) handleImageLocate(args json.RawMessage) (interface{}, error) {
	var a imageLocateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	sub, err := s.load(a.SubImage)
	if err != nil {
		return nil, fmt.Errorf("subimage: %w", err)
	}
	x, y, found := img.LocateSubImage(sub)
	return &LocateResult{
		Found:    found,
		X:        x,
		Y:        y,
		Accesses: img.Accesses().Add(sub.Accesses()),
	}, nil
}

// === Filter Handlers ===

type imageBlurArgs struct {
	outputArgs
	DX      int `json:"dx"`
	DY      int `json:"dy"`
	Workers int `json:"workers"`
}

func (s *Server) handleImageBlur(args json.RawMessage) (interface{}, error) {
	var a imageBlurArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Workers <= 0 {
		a.Workers = s.cfg.BlurWorkers
	}
	img, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	if err := raster.Blur(img, a.DX, a.DY, raster.WithWorkers(a.Workers)); err != nil {
		return nil, err
	}
	return s.store(img, a.target(), img)
}

func (s *Server) handleImageNegative(args json.RawMessage) (interface{}, error) {
	var a outputArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	img.Negative()
	return s.store(img, a.target(), img)
}

type imageThresholdArgs struct {
	outputArgs
	Threshold int `json:"threshold"`
}

func (s *Server) handleImageThreshold(args json.RawMessage) (interface{}, error) {
	var a imageThresholdArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Threshold < 0 || a.Threshold > raster.PixMax {
		return nil, fmt.Errorf("threshold %d out of range [0, %d]", a.Threshold, raster.PixMax)
	}
	img, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	img.Threshold(uint8(a.Threshold))
	return s.store(img, a.target(), img)
}

type imageBrightenArgs struct {
	outputArgs
	Factor *float64 `json:"factor"`
}

func (s *Server) handleImageBrighten(args json.RawMessage) (interface{}, error) {
	var a imageBrightenArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Factor == nil {
		return nil, fmt.Errorf("factor is required")
	}
	img, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	img.Brighten(*a.Factor)
	return s.store(img, a.target(), img)
}

// === Geometry Handlers ===

func (s *Server) handleImageRotate(args json.RawMessage) (interface{}, error) {
	var a outputArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	rotated, err := img.Rotate()
	if err != nil {
		return nil, err
	}
	return s.store(rotated, a.target(), img, rotated)
}

func (s *Server) handleImageMirror(args json.RawMessage) (interface{}, error) {
	var a outputArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	mirrored, err := img.Mirror()
	if err != nil {
		return nil, err
	}
	return s.store(mirrored, a.target(), img, mirrored)
}

type imageCropArgs struct {
	outputArgs
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	cropped, err := img.Crop(a.X, a.Y, a.Width, a.Height)
	if err != nil {
		return nil, err
	}
	return s.store(cropped, a.target(), img, cropped)
}

type imagePasteArgs struct {
	outputArgs
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Source string `json:"source"`
}

func (s *Server) handleImagePaste(args json.RawMessage) (interface{}, error) {
	var a imagePasteArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	src, err := s.load(a.Source)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	img.Paste(a.X, a.Y, src)
	return s.store(img, a.target(), img, src)
}

type imageBlendArgs struct {
	outputArgs
	X      int      `json:"x"`
	Y      int      `json:"y"`
	Source string   `json:"source"`
	Alpha  *float64 `json:"alpha"`
}

func (s *Server) handleImageBlend(args json.RawMessage) (interface{}, error) {
	var a imageBlendArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	alpha := 0.5
	if a.Alpha != nil {
		alpha = *a.Alpha
	}
	img, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	src, err := s.load(a.Source)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	img.Blend(a.X, a.Y, src, alpha)
	return s.store(img, a.target(), img, src)
}

// === File Handlers ===

type imageCreateArgs struct {
	Output string `json:"output"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Maxval int    `json:"maxval"`
}

func (s *Server) handleImageCreate(args json.RawMessage) (interface{}, error) {
	var a imageCreateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Output == "" {
		return nil, fmt.Errorf("output is required")
	}
	if a.Maxval == 0 {
		a.Maxval = raster.PixMax
	}
	if a.Maxval < 0 || a.Maxval > raster.PixMax {
		return nil, fmt.Errorf("maxval %d out of range [1, %d]", a.Maxval, raster.PixMax)
	}
	img, err := raster.New(a.Width, a.Height, uint8(a.Maxval))
	if err != nil {
		return nil, err
	}
	return s.store(img, a.Output, img)
}

type imageImportArgs struct {
	Source string `json:"source"`
	Output string `json:"output"`
	Method string `json:"method"`
}

func (s *Server) handleImageImport(args json.RawMessage) (interface{}, error) {
	var a imageImportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Source == "" || a.Output == "" {
		return nil, fmt.Errorf("source and output are required")
	}
	img, err := pgm.Import(a.Source, pgm.GrayMethod(a.Method))
	if err != nil {
		return nil, err
	}
	return s.store(img, a.Output, img)
}

type imageExportArgs struct {
	Path   string  `json:"path"`
	Output string  `json:"output"`
	Scale  float64 `json:"scale"`
}

func (s *Server) handleImageExport(args json.RawMessage) (interface{}, error) {
	var a imageExportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Output == "" {
		return nil, fmt.Errorf("output is required")
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	if a.Scale < 0 {
		return nil, fmt.Errorf("scale must be positive, got %g", a.Scale)
	}
	img, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	if err := pgm.Export(img, a.Output, a.Scale); err != nil {
		return nil, err
	}
	return &OperationResult{
		Output:   a.Output,
		Width:    int(float64(img.Width()) * a.Scale),
		Height:   int(float64(img.Height()) * a.Scale),
		Maxval:   raster.PixMax,
		Accesses: img.Accesses(),
	}, nil
}
