package generator

import (
	"fmt"

	"github.com/toyz/buildforge/internal/errors"
	"github.com/toyz/buildforge/internal/models"
)

// validateSpec rejects specifications no builder can be synthesized from.
// Every problem is reported, not only the first one.
func validateSpec(spec *models.BuilderSpec) error {
	errs := errors.NewMultipleErrors()
	builder := spec.Builder.String()

	report := func(subject, reason string) {
		errs.Add(errors.NewSpecError(builder, subject, reason))
	}
	checkInline := func(subject string, ref *models.MethodRefSpec) {
		if ref == nil || !ref.Inline {
			return
		}
		if ref.Expansion == nil {
			report(subject, "inline provider "+ref.Raw+" has no expansion")
			return
		}
		for _, index := range models.ArgIndexes(ref.Expansion) {
			if index < 0 || index >= ref.Arity() {
				report(subject, fmt.Sprintf("inline provider %s uses $%d but declares %d parameters", ref.Raw, index, ref.Arity()))
				return
			}
		}
	}

	if spec.Builder.IsZero() {
		report("builder", "builder type is required")
	}
	if spec.Value.IsZero() {
		report("value", "value type is required")
	}
	if spec.Factory.Owner.IsZero() {
		report("factory", "factory owner type is required")
	}

	// generated members keyed by name and arity, overloads do not clash
	generated := map[string]string{memberKey(BuildMethodName, 0): "build method"}
	for _, prop := range spec.Properties {
		subject := "property " + prop.Name
		switch {
		case prop.Name == "":
			report("property", "property name is required")
			continue
		case generated[memberKey(prop.Name, 0)] != "":
			report(subject, "name clashes with the "+generated[memberKey(prop.Name, 0)])
			continue
		}
		generated[memberKey(prop.Name, 0)] = "getter of " + prop.Name
		if other, ok := generated[memberKey(prop.SetterName(), 1)]; ok {
			report(subject, "setter "+prop.SetterName()+" clashes with the "+other)
		}
		generated[memberKey(prop.SetterName(), 1)] = "setter of " + prop.Name

		if prop.Type.IsZero() {
			report(subject, "property type is required")
			continue
		}
		if prop.Optional && !prop.Nullable {
			report(subject, "an optional property must be nullable")
		}
		if prop.Optional {
			if _, ok := prop.Wrapper(); !ok {
				report(subject, "optional property type "+prop.Type.String()+" is not a generic optional wrapper")
			}
		}
		if prop.Nullable && prop.Type.IsPrimitive() {
			report(subject, "primitive type "+prop.Type.String()+" cannot be nullable")
		}
		checkInline(subject, prop.DefaultValue)
		checkInline(subject, prop.Validator)
	}

	for _, method := range spec.Methods {
		if method.Name == "" {
			report("method", "method name is required")
			continue
		}
		if method.Provider == nil {
			continue
		}
		if other, ok := generated[memberKey(method.Name, len(method.Params))]; ok {
			report("method "+method.Name, "name clashes with the "+other)
		}
		checkInline("method "+method.Name, method.Provider)
	}

	return errs.ToError()
}

func memberKey(name string, arity int) string {
	return fmt.Sprintf("%s/%d", name, arity)
}
