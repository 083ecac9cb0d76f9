package scenes

// Preset is a named set of Phong material properties.
type Preset struct {
	Name      string
	Diffuse   [3]float32
	Specular  [3]float32
	Shininess float32
}

// Presets are the premade materials offered by the editor.
var Presets = []Preset{
	{
		Name:      "White plastic",
		Diffuse:   [3]float32{1, 1, 1},
		Specular:  [3]float32{0.05, 0.05, 0.05},
		Shininess: 5.95,
	},
	{
		Name:      "Gold",
		Diffuse:   [3]float32{0.960, 0.847, 0.113},
		Specular:  [3]float32{1, 0.780, 0.490},
		Shininess: 60,
	},
	{
		Name:      "Chrome",
		Diffuse:   [3]float32{0.35, 0.35, 0.35},
		Specular:  [3]float32{0.517, 0.560, 0.7},
		Shininess: 12.8,
	},
	{
		Name:      "Ruby",
		Diffuse:   [3]float32{0.61424, 0.04136, 0.04136},
		Specular:  [3]float32{0.727811, 0.626959, 0.626959},
		Shininess: 85,
	},
}

// MaterialParams are the editable surface and light properties of the
// demo. Colors are linear RGB in [0, 1].
type MaterialParams struct {
	Diffuse  [3]float32
	Specular [3]float32
	// ColoredSpecular selects Specular; otherwise SpecularScalar is used
	// for all three channels.
	ColoredSpecular bool
	SpecularScalar  float32
	Shininess       float32
	LightColor      [3]float32
}

// DefaultParams is white plastic under a white light.
func DefaultParams() MaterialParams {
	p := MaterialParams{
		ColoredSpecular: true,
		SpecularScalar:  1,
		LightColor:      [3]float32{1, 1, 1},
	}
	p.Apply(Presets[0])
	return p
}

// Apply copies a preset's surface properties and switches to colored
// specular. The light color is kept.
func (p *MaterialParams) Apply(preset Preset) {
	p.ColoredSpecular = true
	p.Diffuse = preset.Diffuse
	p.Specular = preset.Specular
	p.Shininess = preset.Shininess
}

// EffectiveSpecular returns the specular color the shader should see.
func (p MaterialParams) EffectiveSpecular() [3]float32 {
	if p.ColoredSpecular {
		return p.Specular
	}
	s := p.SpecularScalar
	return [3]float32{s, s, s}
}
