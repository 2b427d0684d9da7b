// internal/muses/variant.go
package muses

import "fmt"

// Variant names accepted in configuration.
const (
	Variant72323  = "muses72323"
	VariantLegacy = "legacy"
)

// EncoderFor returns the encoder for a named chip variant.
// An empty name selects the default variant.
func EncoderFor(variant string) (Encoder, error) {
	switch variant {
	case "", Variant72323:
		return Encoder{MaxAttenuation: MaxAttenuation72323}, nil
	case VariantLegacy:
		return Encoder{MaxAttenuation: MaxAttenuationLegacy}, nil
	}
	return Encoder{}, fmt.Errorf("muses: unknown variant %q", variant)
}
