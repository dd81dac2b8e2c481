// Package profile derives capability profiles for externally hosted models.
//
// Known model ids resolve through a curated table (known.go); everything
// else goes through heuristic inference (infer.go). Profiling is a pure
// function of the descriptor plus the static table: it never fails for a
// well-formed descriptor and degrades to 0.5 baseline scores instead of
// erroring.
package profile

import (
	"strings"

	"selectd/pkg/types"
)

// knownConfidence is assigned to curated profiles.
const knownConfidence = 0.95

// Profiler converts raw model descriptors into capability profiles.
// The zero value is not usable; construct with New.
type Profiler struct {
	known map[string]knownProfile
}

// New returns a Profiler backed by the built-in curated table.
func New() *Profiler {
	return &Profiler{known: knownProfiles}
}

// Profile builds a ModelProfile for one descriptor.
func (p *Profiler) Profile(d types.ModelDescriptor) types.ModelProfile {
	if k, ok := p.known[d.ID]; ok {
		return types.ModelProfile{
			Descriptor: d,
			Scores:     k.Scores,
			Characteristics: types.Characteristics{
				Speed:        k.Speed,
				Cost:         k.Cost,
				Accuracy:     k.Accuracy,
				Context:      contextTier(d.ContextLength),
				Provider:     providerOf(d.ID),
				ModelFamily:  familyOf(d.ID),
				IsReasoning:  k.IsReasoning,
				IsMultimodal: k.IsMultimodal,
			},
			ProfileConfidence: knownConfidence,
		}
	}
	return p.infer(d)
}

// providerOf extracts the substring before the first '/' in a model id.
func providerOf(id string) string {
	if i := strings.IndexByte(id, '/'); i >= 0 {
		return id[:i]
	}
	return id
}
