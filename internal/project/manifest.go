// Package project implements the "configuration" ambient concern: a
// per-compilation-unit manifest, soulmod.toml, that supplies C5's
// tunable ceilings and severity policy instead of hard-wired constants.
package project

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"soulcore/internal/diag"
	"soulcore/internal/sema"
)

// Limits mirrors spec.md §6's bit-exact ceilings in their TOML surface
// form. Zero fields fall back to DefaultManifest's values when the
// manifest is loaded, so a project only needs to name the ceilings it
// wants to override.
type Limits struct {
	MaxIdentifierLength   int   `toml:"max_identifier_length"`
	MaxInitializerList    int   `toml:"max_initializer_list"`
	MaxEndpointArraySize  int64 `toml:"max_endpoint_array_size"`
	MaxProcessorArraySize int64 `toml:"max_processor_array_size"`
	MaxDelayLineLength    int64 `toml:"max_delay_line_length"`
	PackedSizeCeiling     int64 `toml:"packed_size_ceiling"`
}

// SeverityPolicy names diagnostic codes (by their stable string name, see
// internal/diag's Code.String) that a warning-level diagnostic should be
// escalated to an error for this compilation unit.
type SeverityPolicy struct {
	PromoteToError []string `toml:"promote_to_error"`
}

// Manifest is the parsed contents of soulmod.toml.
type Manifest struct {
	Limits   Limits         `toml:"limits"`
	Severity SeverityPolicy `toml:"severity"`
}

// DefaultManifest returns spec.md §6's stated ceilings with no severity
// promotions, the manifest a compilation unit gets when it carries no
// soulmod.toml of its own.
func DefaultManifest() Manifest {
	d := sema.DefaultLimits()
	return Manifest{
		Limits: Limits{
			MaxIdentifierLength:   d.MaxIdentifierLength,
			MaxInitializerList:    d.MaxInitializerList,
			MaxEndpointArraySize:  d.MaxEndpointArraySize,
			MaxProcessorArraySize: d.MaxProcessorArraySize,
			MaxDelayLineLength:    d.MaxDelayLineLength,
			PackedSizeCeiling:     int64(d.PackedSizeCeiling),
		},
	}
}

// LoadManifest reads and parses a soulmod.toml at path, filling any field
// the file omits from DefaultManifest.
func LoadManifest(path string) (Manifest, error) {
	m := DefaultManifest()
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("failed to read manifest %q: %w", path, err)
	}
	overlay := DefaultManifest()
	if _, err := toml.Decode(string(data), &overlay); err != nil {
		return Manifest{}, fmt.Errorf("failed to parse manifest %q: %w", path, err)
	}
	mergeLimits(&m.Limits, overlay.Limits)
	m.Severity = overlay.Severity
	return m, nil
}

// mergeLimits applies every non-zero field of overlay to dst, leaving
// dst's defaults in place for fields the manifest left unset. The
// identifier, initializer-list, array-size and delay-line ceilings can
// only be lowered (a larger overlay value keeps dst's value); the packed
// size ceiling is taken from overlay either way.
func mergeLimits(dst *Limits, overlay Limits) {
	if overlay.MaxIdentifierLength != 0 {
		dst.MaxIdentifierLength = min(overlay.MaxIdentifierLength, dst.MaxIdentifierLength)
	}
	if overlay.MaxInitializerList != 0 {
		dst.MaxInitializerList = min(overlay.MaxInitializerList, dst.MaxInitializerList)
	}
	if overlay.MaxEndpointArraySize != 0 {
		dst.MaxEndpointArraySize = min(overlay.MaxEndpointArraySize, dst.MaxEndpointArraySize)
	}
	if overlay.MaxProcessorArraySize != 0 {
		dst.MaxProcessorArraySize = min(overlay.MaxProcessorArraySize, dst.MaxProcessorArraySize)
	}
	if overlay.MaxDelayLineLength != 0 {
		dst.MaxDelayLineLength = min(overlay.MaxDelayLineLength, dst.MaxDelayLineLength)
	}
	if overlay.PackedSizeCeiling != 0 {
		dst.PackedSizeCeiling = overlay.PackedSizeCeiling
	}
}

// SemaLimits converts the manifest's TOML surface form into the
// sema.Limits value the sanity-check passes actually consume.
func (m Manifest) SemaLimits() sema.Limits {
	return sema.Limits{
		MaxIdentifierLength:   m.Limits.MaxIdentifierLength,
		MaxInitializerList:    m.Limits.MaxInitializerList,
		MaxEndpointArraySize:  m.Limits.MaxEndpointArraySize,
		MaxProcessorArraySize: m.Limits.MaxProcessorArraySize,
		MaxDelayLineLength:    m.Limits.MaxDelayLineLength,
		PackedSizeCeiling:     uint64(m.Limits.PackedSizeCeiling),
	}
}

// PromotedCodes resolves the manifest's severity policy against the
// diag.Code taxonomy, ignoring any name that does not name a known code.
func (m Manifest) PromotedCodes() map[diag.Code]bool {
	byName := diag.CodesByName()
	out := make(map[diag.Code]bool, len(m.Severity.PromoteToError))
	for _, name := range m.Severity.PromoteToError {
		if code, ok := byName[name]; ok {
			out[code] = true
		}
	}
	return out
}
