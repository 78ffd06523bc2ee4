package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/signed64/internal/ir"
)

// marshalOperands converts operands to canonical JSON TEXT for storage.
// Uses RFC 8785 canonical JSON so the column bytes are reproducible.
func marshalOperands(operands []string) (string, error) {
	if operands == nil {
		operands = []string{}
	}
	data, err := ir.MarshalCanonical(operands)
	if err != nil {
		return "", fmt.Errorf("marshal operands: %w", err)
	}
	return string(data), nil
}

// unmarshalOperands parses canonical JSON TEXT back to operands.
// Operands are decimal strings, so no number precision is at stake.
func unmarshalOperands(data string) ([]string, error) {
	if data == "" || data == "[]" {
		return []string{}, nil
	}
	var operands []string
	if err := json.Unmarshal([]byte(data), &operands); err != nil {
		return nil, fmt.Errorf("unmarshal operands: %w", err)
	}
	return operands, nil
}
