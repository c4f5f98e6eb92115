package types

// OperationResponse is the uniform result contract serialized to protocol
// clients for every context operation. Exactly one of the optional fields is
// typically populated; Errors carries one human-readable line per failure.
type OperationResponse struct {
	Success    bool              `json:"success"`
	Data       []string          `json:"data,omitempty"`
	Errors     []string          `json:"errors,omitempty"`
	Config     *ProjectConfig    `json:"config,omitempty"`
	Validation *ValidationResult `json:"validation,omitempty"`
}

// ValidationResult is the outcome of structural validation, attached to
// responses of operations that validate content.
type ValidationResult struct {
	IsValid            bool     `json:"isValid"`
	Errors             []string `json:"errors,omitempty"`
	CorrectionGuidance string   `json:"correctionGuidance,omitempty"`
}

// SuccessResponse wraps result data in a successful envelope.
func SuccessResponse(data ...string) OperationResponse {
	return OperationResponse{Success: true, Data: data}
}

// ErrorResponse flattens err into a failed envelope with one message line
// per underlying error.
func ErrorResponse(err error) OperationResponse {
	return OperationResponse{Success: false, Errors: ErrorLines(err)}
}

// ErrorLines flattens an error into individual message lines. Joined errors
// (errors.Join) contribute one line per constituent, preserving order, so a
// failed batch read reports every missing name rather than only the first.
func ErrorLines(err error) []string {
	if err == nil {
		return nil
	}
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []string{err.Error()}
	}
	var lines []string
	for _, sub := range joined.Unwrap() {
		lines = append(lines, ErrorLines(sub)...)
	}
	return lines
}
