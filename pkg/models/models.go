/*
Package models defines the JSON wire types shared by the HTTP API, the CLI's
-json output and the batch runner.

A conversion that does not resolve to a value is not an API error: the
response carries Valid=false, the edited field echoes the raw input and every
other field is empty, mirroring what an interactive session displays.
*/
package models

// BaseRequest asks for a value typed in one base to be projected into others.
type BaseRequest struct {
	Value  string `json:"value"`            // Raw text of the edited field.
	Base   int    `json:"base"`             // Base of the edited field (2 to 36).
	Prefix string `json:"prefix,omitempty"` // Literal prefix to strip before parsing, e.g. "0x".
	Bases  []int  `json:"bases,omitempty"`  // Target bases; empty means the simple view.
}

// BaseField is one projected representation.
type BaseField struct {
	Base int    `json:"base"`
	Name string `json:"name"`
	Text string `json:"text"`
}

// BaseResponse is the result of a base conversion.
type BaseResponse struct {
	Input   string      `json:"input"`
	Base    int         `json:"base"`
	Valid   bool        `json:"valid"`
	Decimal string      `json:"decimal,omitempty"` // Canonical value in base 10 when Valid.
	Fields  []BaseField `json:"fields"`
	Error   string      `json:"error,omitempty"` // Why the input did not resolve, when !Valid.
}

// ByteRequest asks for a magnitude typed in one unit to be projected into
// every unit of the ladder.
type ByteRequest struct {
	Value string `json:"value"` // Decimal or scientific literal.
	Unit  string `json:"unit"`  // Unit name or alias of the edited field.
}

// UnitField is the magnitude in one unit, with up to two decimals.
type UnitField struct {
	Unit     string `json:"unit"`
	Exponent uint   `json:"exponent"`
	Text     string `json:"text"`
}

// ByteResponse is the result of a magnitude conversion.
type ByteResponse struct {
	Input  string      `json:"input"`
	Unit   string      `json:"unit"`
	Valid  bool        `json:"valid"`
	Bits   string      `json:"bits,omitempty"` // Canonical bit count when Valid.
	Best   string      `json:"best,omitempty"` // Best unit expression, e.g. "1.5 MB".
	Fields []UnitField `json:"fields"`
	Error  string      `json:"error,omitempty"`
}

// BaseDetection is where a pasted string goes in the base converter.
type BaseDetection struct {
	Base   int    `json:"base"`
	Prefix string `json:"prefix,omitempty"`
	Text   string `json:"text"`
}

// UnitDetection is where a pasted string goes in the magnitude converter.
type UnitDetection struct {
	Unit     string `json:"unit"`
	Exponent uint   `json:"exponent"`
	Text     string `json:"text"`
}

// Detection reports how both converters would route a pasted string.
type Detection struct {
	Input string        `json:"input"`
	Base  BaseDetection `json:"base"`
	Bytes UnitDetection `json:"bytes"`
}

// Unit describes one rung of the unit ladder.
type Unit struct {
	Name     string `json:"name"`
	Exponent uint   `json:"exponent"`
}

// ErrorResponse represents the standardized JSON response for an API error.
type ErrorResponse struct {
	// Error is the short error code or status text.
	Error string `json:"error"`
	// Message is a descriptive error message.
	Message string `json:"message,omitempty"`
}

// BatchLine is the outcome of one line of a batch run. Exactly one of Base,
// Bytes or Error is set.
type BatchLine struct {
	Line  int           `json:"line"`
	Input string        `json:"input"`
	Mode  string        `json:"mode"`
	Base  *BaseResponse `json:"base,omitempty"`
	Bytes *ByteResponse `json:"bytes,omitempty"`
	Error string        `json:"error,omitempty"`
}
