package domain

import "fmt"

// Length identifies the requested draft length.
type Length string

// Supported draft lengths.
const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

// Valid reports whether the length is one of the supported values.
func (l Length) Valid() bool {
	switch l {
	case LengthShort, LengthMedium, LengthLong:
		return true
	}
	return false
}

// GenerationRequest is the input to a draft-generation call.
type GenerationRequest struct {
	ContentType            ContentType `json:"content_type"`
	Topic                  string      `json:"topic"`
	Tone                   Tone        `json:"tone"`
	Length                 Length      `json:"length"`
	Keywords               []string    `json:"keywords"`
	AdditionalInstructions string      `json:"additional_instructions"`
}

// Validate checks required fields.
func (r *GenerationRequest) Validate() error {
	if r.Topic == "" {
		return fmt.Errorf("%w: topic is required", ErrInvalidRequest)
	}
	if !r.ContentType.Valid() {
		return fmt.Errorf("%w: unknown content type %q", ErrInvalidRequest, r.ContentType)
	}
	if !r.Tone.Valid() {
		return fmt.Errorf("%w: unknown tone %q", ErrInvalidRequest, r.Tone)
	}
	if !r.Length.Valid() {
		return fmt.Errorf("%w: unknown length %q", ErrInvalidRequest, r.Length)
	}
	return nil
}
