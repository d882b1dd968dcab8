package mcp

// ResponseEnvelope wraps every tool result with the dataset it was computed from
// and hints for the calling agent.
type ResponseEnvelope struct {
	Context  ResponseContext `json:"context"`
	Data     any             `json:"data"`
	Guidance []string        `json:"_guidance,omitempty"`
}

// ResponseContext identifies the analysed dataset.
type ResponseContext struct {
	Project  string `json:"project"`
	DataPath string `json:"data_path"`
	Weeks    int    `json:"weeks"`
	AsOf     string `json:"as_of,omitempty"`
}

// WrapResponse builds the envelope for a tool result.
func WrapResponse(data any, ctx ResponseContext, guidance []string) ResponseEnvelope {
	return ResponseEnvelope{Context: ctx, Data: data, Guidance: guidance}
}
