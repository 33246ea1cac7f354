package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	path := map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to a binary PGM (P5) file",
	}
	output := map[string]interface{}{
		"type":        "string",
		"description": "Where to write the resulting PGM file. Defaults to overwriting path",
	}
	coord := func(desc string) map[string]interface{} {
		return map[string]interface{}{
			"type":        "integer",
			"description": desc,
			"minimum":     0,
		}
	}

	return []Tool{
		// Inspection
		{
			Name:        "image_load",
			Description: "Load a PGM image and return its dimensions, maxval, gray level range and file size.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{"path": path},
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_stats",
			Description: "Return the darkest and brightest gray levels of a PGM image together with the pixel accesses needed to find them.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{"path": path},
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_locate",
			Description: "Find the first position, in row-major order, where another PGM image occurs exactly inside this one.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": path,
					"subimage": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the PGM image to search for",
					},
				},
				"required": []string{"path", "subimage"},
			},
		},

		// Filters
		{
			Name:        "image_blur",
			Description: "Replace every pixel by the rounded mean of the (2dx+1) x (2dy+1) window around it, clipped at the image borders. Runs in time independent of the window size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   path,
					"output": output,
					"dx":     coord("Horizontal window radius"),
					"dy":     coord("Vertical window radius"),
					"workers": map[string]interface{}{
						"type":        "integer",
						"description": "Number of goroutines to use. Defaults to IMAGE8BIT_BLUR_WORKERS or the CPU count",
					},
				},
				"required": []string{"path", "dx", "dy"},
			},
		},
		{
			Name:        "image_negative",
			Description: "Invert the gray levels: each level becomes maxval minus level.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   path,
					"output": output,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_threshold",
			Description: "Turn levels below the threshold black and all others white (maxval).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   path,
					"output": output,
					"threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Gray level separating black from white",
						"minimum":     0,
						"maximum":     255,
					},
				},
				"required": []string{"path", "threshold"},
			},
		},
		{
			Name:        "image_brighten",
			Description: "Multiply every level by a factor, rounding and saturating at maxval. Factors below 1 darken.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   path,
					"output": output,
					"factor": map[string]interface{}{
						"type":        "number",
						"description": "Non-negative multiplier",
						"minimum":     0,
					},
				},
				"required": []string{"path", "factor"},
			},
		},

		// Geometry
		{
			Name:        "image_rotate",
			Description: "Rotate the image 90 degrees clockwise.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   path,
					"output": output,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_mirror",
			Description: "Flip the image left to right.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   path,
					"output": output,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_crop",
			Description: "Copy a rectangle that lies entirely inside the image into a new image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   path,
					"output": output,
					"x":      coord("Left edge X coordinate (0-based)"),
					"y":      coord("Top edge Y coordinate (0-based)"),
					"width":  coord("Rectangle width in pixels"),
					"height": coord("Rectangle height in pixels"),
				},
				"required": []string{"path", "x", "y", "width", "height"},
			},
		},
		{
			Name:        "image_paste",
			Description: "Copy another PGM image into this one with its top-left corner at (x, y). The source must fit.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   path,
					"output": output,
					"x":      coord("Left edge X coordinate (0-based)"),
					"y":      coord("Top edge Y coordinate (0-based)"),
					"source": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the PGM image to paste",
					},
				},
				"required": []string{"path", "x", "y", "source"},
			},
		},
		{
			Name:        "image_blend",
			Description: "Mix another PGM image into this one at (x, y): level becomes (1-alpha)*level + alpha*source, saturated to [0, maxval].",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   path,
					"output": output,
					"x":      coord("Left edge X coordinate (0-based)"),
					"y":      coord("Top edge Y coordinate (0-based)"),
					"source": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the PGM image to blend in",
					},
					"alpha": map[string]interface{}{
						"type":        "number",
						"description": "Weight of the source. Default 0.5",
						"default":     0.5,
					},
				},
				"required": []string{"path", "x", "y", "source"},
			},
		},

		// Files
		{
			Name:        "image_create",
			Description: "Create a black PGM image of the given size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Where to write the new PGM file",
					},
					"width":  coord("Width in pixels"),
					"height": coord("Height in pixels"),
					"maxval": map[string]interface{}{
						"type":        "integer",
						"description": "Gray level representing white. Default 255",
						"minimum":     1,
						"maximum":     255,
						"default":     255,
					},
				},
				"required": []string{"output", "width", "height"},
			},
		},
		{
			Name:        "image_import",
			Description: "Convert a PNG, JPEG, GIF, BMP or TIFF image to an 8-bit PGM with maxval 255.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"source": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image to convert",
					},
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Where to write the PGM file",
					},
					"method": map[string]interface{}{
						"type":        "string",
						"description": "Gray conversion: bt601 (luma) or lab (CIE L* lightness). Default bt601",
						"enum":        []string{"bt601", "lab"},
						"default":     "bt601",
					},
				},
				"required": []string{"source", "output"},
			},
		},
		{
			Name:        "image_export",
			Description: "Write a PGM image as PNG or JPEG, chosen by the output extension. Levels are rescaled to [0, 255].",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": path,
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Destination file ending in .png, .jpg or .jpeg",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "output"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
