package generator

import (
	"github.com/toyz/buildforge/internal/bounds"
	"github.com/toyz/buildforge/internal/models"
)

// MemberSynthesizer turns a resolved builder specification into the ordered
// member list consumed by emission backends
type MemberSynthesizer interface {
	Synthesize(spec *models.BuilderSpec, env *bounds.Environment) (*models.Synthesis, error)
}
