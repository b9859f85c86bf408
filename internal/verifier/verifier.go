// Package verifier hands the synthesized method signatures to a caller
// supplied check, typically an interface coverage check.
package verifier

import (
	"fmt"

	"github.com/toyz/buildforge/internal/errors"
	"github.com/toyz/buildforge/internal/models"
)

// Check inspects the synthesized signatures and reports what it finds
type Check func(signatures []models.Signature) error

// Verify extracts the signature of every synthesized method and passes the
// list to check exactly once.
func Verify(s *models.Synthesis, check Check) error {
	if s == nil {
		return errors.NewSpecError("", "", "synthesis cannot be nil")
	}
	if check == nil {
		return nil
	}
	return check(s.Signatures())
}

// CoverageCheck returns a check flagging every method of iface that has no
// synthesized counterpart with the same name and arity. Each missing method
// becomes one VerificationError.
func CoverageCheck(iface []models.Signature) Check {
	return func(signatures []models.Signature) error {
		implemented := make(map[string]bool, len(signatures))
		for _, sig := range signatures {
			implemented[key(sig)] = true
		}

		errs := errors.NewMultipleErrors()
		for _, want := range iface {
			if !implemented[key(want)] {
				errs.Add(errors.NewVerificationError(want.String()))
			}
		}
		return errs.ToError()
	}
}

// InterfaceOf lists the methods a builder has to implement for spec: the
// fluent setter and getter of every property, every declared method and build.
func InterfaceOf(spec *models.BuilderSpec) []models.Signature {
	if spec == nil {
		return nil
	}

	var out []models.Signature
	for _, prop := range spec.Properties {
		out = append(out,
			models.Signature{
				Name:       prop.SetterName(),
				ReturnType: spec.SelfType(),
				ParamTypes: []models.TypeRef{prop.BuilderSetterType()},
			},
			models.Signature{Name: prop.Name, ReturnType: prop.Type},
		)
	}
	for _, m := range spec.Methods {
		params := make([]models.TypeRef, len(m.Params))
		for i, p := range m.Params {
			params[i] = p.Type
		}
		out = append(out, models.Signature{Name: m.Name, ReturnType: m.Return, ParamTypes: params})
	}
	return append(out, models.Signature{Name: "build", ReturnType: spec.Value})
}

func key(sig models.Signature) string {
	return fmt.Sprintf("%s/%d", sig.Name, len(sig.ParamTypes))
}
