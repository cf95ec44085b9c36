package folio

import "github.com/hajimehoshi/ebiten/v2"

// MaterialKind selects how a material responds to light.
type MaterialKind uint8

const (
	// MaterialBasic is unlit and has no emissive channel.
	MaterialBasic MaterialKind = iota
	// MaterialStandard is the physically based material with an emissive tint.
	MaterialStandard
)

// Default parameters for substituted standard materials.
const (
	defaultMetalness = 0.2
	defaultRoughness = 0.5
)

// Material describes a mesh surface.
type Material struct {
	Kind      MaterialKind
	Color     Color
	Emissive  Color
	Metalness float64
	Roughness float64
	// Texture, when non-nil, is drawn on the mesh's front face instead of
	// Color. The video screen updates it every frame.
	Texture *ebiten.Image
	// ToneMapped is false for the video screen so it is drawn at full
	// brightness regardless of lighting.
	ToneMapped bool
}

// NewBasicMaterial creates an unlit material.
func NewBasicMaterial(c Color) *Material {
	return &Material{Kind: MaterialBasic, Color: c, ToneMapped: true}
}

// NewStandardMaterial creates a physically based material. A nil base
// keeps the default white.
func NewStandardMaterial(base *Color) *Material {
	c := ColorWhite
	if base != nil {
		c = *base
	}
	return &Material{
		Kind:       MaterialStandard,
		Color:      c,
		Emissive:   ColorBlack,
		Metalness:  defaultMetalness,
		Roughness:  defaultRoughness,
		ToneMapped: true,
	}
}

// SupportsEmissiveTint reports whether the material has an emissive channel
// the hover highlight can drive.
func (m *Material) SupportsEmissiveTint() bool {
	return m != nil && m.Kind == MaterialStandard
}

// ensureEmissiveMaterial returns a material that supports an emissive tint,
// substituting a default standard material (keeping the base color when
// there is one) when m does not.
func ensureEmissiveMaterial(m *Material) *Material {
	if m.SupportsEmissiveTint() {
		return m
	}
	if m == nil {
		return NewStandardMaterial(nil)
	}
	base := m.Color
	return NewStandardMaterial(&base)
}
