package specfile

import (
	"github.com/toyz/buildforge/internal/utils"
)

var (
	builderName  = utils.NewValidatorChain(utils.NotEmpty("builder")).Add(utils.IsQualifiedName("builder"))
	propertyName = utils.NewValidatorChain(utils.NotEmpty("name"), utils.IsIdentifier("name"))
	methodName   = utils.NewValidatorChain(utils.NotEmpty("name"), utils.IsIdentifier("name"))
)

// optionalIdentifier accepts an empty value or a single identifier
func optionalIdentifier(field string) utils.Validator[string] {
	return utils.Conditional(func(s string) bool { return s != "" }, utils.IsIdentifier(field))
}

func validateBuilder(b builderFile) error {
	checks := []func() error{
		func() error { return builderName.Validate(b.Builder) },
		func() error { return utils.NotEmpty("value")(b.Value) },
		func() error {
			return utils.ValidateEach("typeParams", func(tp typeParamFile) error {
				return utils.IsIdentifier("name")(tp.Name)
			})(b.TypeParams)
		},
		func() error {
			return utils.ValidateEach("properties", func(p propertyFile) error {
				if err := propertyName.Validate(p.Name); err != nil {
					return err
				}
				if err := utils.NotEmpty("type")(p.Type); err != nil {
					return err
				}
				return optionalIdentifier("defaultsFrom")(p.DefaultsFrom)
			})(b.Properties)
		},
		func() error {
			return utils.Unique("properties", func(p propertyFile) string { return p.Name })(b.Properties)
		},
		func() error {
			return utils.ValidateEach("methods", func(m methodFile) error {
				if err := methodName.Validate(m.Name); err != nil {
					return err
				}
				return utils.ValidateEach("params", func(p paramFile) error {
					if err := utils.IsIdentifier("name")(p.Name); err != nil {
						return err
					}
					return utils.NotEmpty("type")(p.Type)
				})(m.Params)
			})(b.Methods)
		},
		func() error { return optionalIdentifier("factory.method")(b.Factory.Method) },
	}

	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func validateProvider(p providerFile) error {
	if err := utils.NotEmpty("owner")(p.Owner); err != nil {
		return err
	}
	return utils.ValidateEach("methods", func(m providerMethodFile) error {
		if err := methodName.Validate(m.Name); err != nil {
			return err
		}
		return utils.ValidateEach("typeVars", utils.IsIdentifier("typeVar"))(m.TypeVars)
	})(p.Methods)
}
