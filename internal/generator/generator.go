// Package generator synthesizes the members of a builder class from a
// resolved specification. Synthesis is pure: the same specification always
// yields the same member list and nothing is shared between calls.
package generator

import (
	"github.com/toyz/buildforge/internal/bounds"
	"github.com/toyz/buildforge/internal/config"
	"github.com/toyz/buildforge/internal/errors"
	"github.com/toyz/buildforge/internal/models"
)

// BuildMethodName is the name of the synthesized factory method
const BuildMethodName = "build"

// copySource is the parameter name of the copy constructor
const copySource = "source"

// Generator implements the MemberSynthesizer interface
type Generator struct {
	config config.Config
}

var _ MemberSynthesizer = (*Generator)(nil)

// NewGenerator creates a synthesizer using cfg
func NewGenerator(cfg config.Config) *Generator {
	return &Generator{config: cfg}
}

// Synthesize produces fields, the no-argument and copy constructors, a setter
// and getter per property, default method overrides and build(), in that order.
// When env is nil it is derived from the specification. Any failure returns no
// members at all.
func (g *Generator) Synthesize(spec *models.BuilderSpec, env *bounds.Environment) (*models.Synthesis, error) {
	if spec == nil {
		return nil, errors.NewSpecError("", "", "specification cannot be nil")
	}
	if err := validateSpec(spec); err != nil {
		return nil, err
	}

	if env == nil {
		var err error
		env, err = bounds.New(spec.TypeParams, spec.Self, spec.Value, spec.Builder)
		if err != nil {
			return nil, err
		}
	}

	s := &synthesis{config: g.config, spec: spec, env: env}
	members, err := s.members()
	if err != nil {
		return nil, err
	}

	return &models.Synthesis{
		Builder: spec.Builder,
		Self:    spec.SelfType(),
		Value:   spec.Value,
		Members: members,
	}, nil
}

// synthesis holds the inputs of one Synthesize call
type synthesis struct {
	config config.Config
	spec   *models.BuilderSpec
	env    *bounds.Environment
}

func (s *synthesis) members() ([]models.Member, error) {
	var members []models.Member

	for _, prop := range s.spec.Properties {
		members = append(members, s.field(prop))
	}

	members = append(members, s.noArgConstructor(), s.copyConstructor())

	for _, prop := range s.spec.Properties {
		members = append(members, s.setter(prop), s.getter(prop))
	}

	for _, method := range s.spec.Methods {
		if method.Provider == nil {
			continue
		}
		override, err := s.override(method)
		if err != nil {
			return nil, err
		}
		members = append(members, override)
	}

	return append(members, s.build()), nil
}
