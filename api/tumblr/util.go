package tumblr

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingField is returned when a field the API always sends is absent from a decoded object.
var ErrMissingField = errors.New("required field missing")

type typeExtractor struct {
	Type string `json:"type"`
}

// extracts the "type" discriminator from a JSON object, without decoding anything else
func typeExtract(b []byte) (string, error) {
	var te typeExtractor
	if err := json.Unmarshal(b, &te); err != nil {
		return "", err
	}
	if te.Type == "" {
		return "", fmt.Errorf("%w: type", ErrMissingField)
	}

	return te.Type, nil
}
