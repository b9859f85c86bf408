package models

// SpecBuilder provides a fluent interface for assembling a BuilderSpec
type SpecBuilder struct {
	spec BuilderSpec
}

// NewSpecBuilder creates a spec builder for a builder type producing value
func NewSpecBuilder(builder, value string) *SpecBuilder {
	return &SpecBuilder{
		spec: BuilderSpec{
			Builder: Named(builder),
			Value:   Named(value),
			Factory: FactorySpec{Owner: Named(value)},
		},
	}
}

// WithSelf sets the generic self interface the builder implements
func (b *SpecBuilder) WithSelf(self TypeRef, params ...TypeParam) *SpecBuilder {
	b.spec.Self = self
	b.spec.TypeParams = append(b.spec.TypeParams, params...)
	return b
}

// WithProperty appends properties in declaration order
func (b *SpecBuilder) WithProperty(props ...PropertySpec) *SpecBuilder {
	b.spec.Properties = append(b.spec.Properties, props...)
	return b
}

// WithMethod appends non-property interface methods
func (b *SpecBuilder) WithMethod(methods ...MethodSpec) *SpecBuilder {
	b.spec.Methods = append(b.spec.Methods, methods...)
	return b
}

// WithConstructorFactory produces the value through a constructor of owner
func (b *SpecBuilder) WithConstructorFactory(owner TypeRef) *SpecBuilder {
	b.spec.Factory = FactorySpec{Owner: owner}
	return b
}

// WithStaticFactory produces the value through a static method of owner
func (b *SpecBuilder) WithStaticFactory(owner TypeRef, method string) *SpecBuilder {
	b.spec.Factory = FactorySpec{Owner: owner, Method: method}
	return b
}

// Build returns the assembled specification
func (b *SpecBuilder) Build() *BuilderSpec {
	spec := b.spec
	spec.Properties = append([]PropertySpec(nil), b.spec.Properties...)
	spec.Methods = append([]MethodSpec(nil), b.spec.Methods...)
	spec.TypeParams = append([]TypeParam(nil), b.spec.TypeParams...)
	return &spec
}

// Property creates a non-nullable, non-optional property of type t
func Property(name string, t TypeRef) PropertySpec {
	return PropertySpec{Name: name, Type: t}
}

// AsNullable marks the property nullable
func (p PropertySpec) AsNullable() PropertySpec {
	p.Nullable = true
	return p
}

// AsOptional marks the property optional, which implies nullable
func (p PropertySpec) AsOptional() PropertySpec {
	p.Optional = true
	p.Nullable = true
	return p
}

// WithDefault sets the default value provider
func (p PropertySpec) WithDefault(ref MethodRefSpec) PropertySpec {
	p.DefaultValue = &ref
	return p
}

// WithValidator sets the validator
func (p PropertySpec) WithValidator(ref MethodRefSpec) PropertySpec {
	p.Validator = &ref
	return p
}

// WithDefaultsFrom copies defaults from another accessor of the value type
func (p PropertySpec) WithDefaultsFrom(accessor string) PropertySpec {
	p.DefaultsPropertyName = accessor
	return p
}

// WithSetterType overrides the setter parameter type
func (p PropertySpec) WithSetterType(t TypeRef) PropertySpec {
	p.SetterType = t
	return p
}
