package soil

import "agrisense/internal/landcover"

// biasTargets maps the land-use vocabulary onto working classes. A source
// label with several targets splits its weight equally between them. Mixed
// carries no information and maps to nothing.
var biasTargets = map[string][]Class{
	landcover.BiasSandy:     {Sandy},
	landcover.BiasSandyLoam: {Sandy},
	landcover.BiasGravel:    {Sandy},
	landcover.BiasClay:      {Clay},
	landcover.BiasClayLoam:  {Clay, Loamy},
	landcover.BiasLoamy:     {Loamy},
	landcover.BiasLoam:      {Loamy},
	landcover.BiasMixed:     nil,
}

// ConvertBias projects a land-use soil bias onto the working classes. The
// result is not normalized; unknown labels are ignored.
func ConvertBias(bias map[string]float64) Distribution {
	out := Distribution{Clay: 0, Loamy: 0, Sandy: 0}
	for label, w := range bias {
		targets := biasTargets[label]
		if len(targets) == 0 || !(w > 0) {
			continue
		}
		share := w / float64(len(targets))
		for _, c := range targets {
			out[c] += share
		}
	}
	return out
}
