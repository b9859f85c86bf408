package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/buildforge/internal/annotations"
	"github.com/toyz/buildforge/internal/config"
	"github.com/toyz/buildforge/internal/errors"
	"github.com/toyz/buildforge/internal/models"
	"github.com/toyz/buildforge/internal/registry"
)

var (
	person        = models.Named("com.example.Person")
	personBuilder = models.Named("com.example.PersonBuilder")
	personSpec    = models.Named("com.example.PersonSpec")
	validators    = models.Named("com.example.Validators")
	defaults      = models.Named("com.example.Defaults")
	describers    = models.Named("com.example.Describers")
	intType       = models.Named("int")
)

func newCatalog(t *testing.T) *registry.MethodCatalog {
	t.Helper()
	catalog := registry.NewMethodCatalog()
	methods := []registry.ProviderMethod{
		{Owner: validators, Name: "notBlank", Params: []models.TypeRef{models.StringType, models.StringType}, Public: true, Static: true},
		{Owner: validators, Name: "positive", Params: []models.TypeRef{intType}, Public: true, Static: true},
		{Owner: validators, Name: "hidden", Params: []models.TypeRef{models.StringType}, Public: true},
		{Owner: validators, Name: "any", TypeVars: []string{"T"}, Params: []models.TypeRef{models.TypeVar("T")}, Public: true, Static: true},
		{Owner: validators, Name: "any", Params: []models.TypeRef{models.ObjectType}, Public: true, Static: true},
		{Owner: validators, Name: "trimmed", Params: []models.TypeRef{models.StringType}, Public: true, Static: true, Inline: true},
		{
			Owner:     validators,
			Name:      "check",
			Params:    []models.TypeRef{models.StringType},
			Public:    true,
			Static:    true,
			Inline:    true,
			Compiled:  true,
			Expansion: models.Call{Receiver: models.ArgRef{Index: 0}, Name: "trim", Args: []models.Expr{models.ArgRef{Index: 5}}},
		},
		{
			Owner:     validators,
			Name:      "requireText",
			Params:    []models.TypeRef{models.StringType, models.StringType},
			Public:    true,
			Static:    true,
			Inline:    true,
			Compiled:  true,
			Expansion: models.StaticCall{Owner: models.Named("java.util.Objects"), Name: "requireNonNull", Args: []models.Expr{models.ArgRef{Index: 0}, models.ArgRef{Index: 1}}},
		},
		{Owner: validators, Name: "nonEmpty", Params: []models.TypeRef{models.Named("java.util.List", models.ObjectType)}, Public: true, Static: true},
		{Owner: validators, Name: "distinct", TypeVars: []string{"T"}, Params: []models.TypeRef{models.Named("java.util.List", models.TypeVar("T"))}, Public: true, Static: true},
		{Owner: defaults, Name: "emptyName", Return: models.StringType, Public: true, Static: true},
		{Owner: defaults, Name: "zero", Params: []models.TypeRef{models.StringType}, Return: intType, Public: true, Static: true},
		{Owner: describers, Name: "describe", Params: []models.TypeRef{personBuilder, models.StringType}, Return: models.StringType, Public: true, Static: true},
		{Owner: describers, Name: "invoke", Params: []models.TypeRef{personBuilder, models.ReflectMethod, models.ArrayOf(models.ObjectType)}, Return: models.StringType, Public: true, Static: true},
		{Owner: describers, Name: "snapshot", Params: []models.TypeRef{personBuilder}, Return: person, Public: true, Static: true},
		{Owner: personSpec, Name: "fallback", Params: []models.TypeRef{models.StringType}, Return: models.StringType},
	}
	for _, m := range methods {
		require.NoError(t, catalog.RegisterMethod(m))
	}
	return catalog
}

func parse(t *testing.T, raw string) annotations.Reference {
	t.Helper()
	ref, err := annotations.ParseReference(raw)
	require.NoError(t, err)
	return ref
}

var (
	nameProp = models.PropertySpec{Name: "name", Type: models.StringType}
	ageProp  = models.PropertySpec{Name: "age", Type: intType}
	tagsProp = models.PropertySpec{Name: "tags", Type: models.Named("java.util.List", models.StringType)}

	describeMethod = models.MethodSpec{
		Name:   "describe",
		Return: models.StringType,
		Params: []models.Param{{Name: "prefix", Type: models.StringType}},
	}

	scope = Scope{Local: personSpec, Builder: personBuilder}
)

func TestResolve(t *testing.T) {
	r := New(newCatalog(t), config.Default())

	tests := []struct {
		name   string
		ref    string
		want   Expectation
		params []models.TypeRef
		ret    models.TypeRef
		call   models.CallKind
		form   models.CallForm
	}{
		{
			name:   "validator with name",
			ref:    "com.example.Validators::notBlank",
			want:   ForValidator(nameProp),
			params: []models.TypeRef{models.StringType, models.StringType},
			ret:    models.Void,
		},
		{
			name:   "validator of primitive",
			ref:    "com.example.Validators::positive",
			want:   ForValidator(ageProp),
			params: []models.TypeRef{intType},
			ret:    models.Void,
		},
		{
			name: "default value without arguments",
			ref:  "com.example.Defaults::emptyName",
			want: ForDefaultValue(nameProp),
			ret:  models.StringType,
		},
		{
			name:   "default value with name",
			ref:    "com.example.Defaults::zero",
			want:   ForDefaultValue(ageProp),
			params: []models.TypeRef{models.StringType},
			ret:    intType,
		},
		{
			name:   "positional implementation",
			ref:    "com.example.Describers::describe",
			want:   ForDefaultImplementation(describeMethod),
			params: []models.TypeRef{personBuilder, models.StringType},
			ret:    models.StringType,
			form:   models.PositionalForm,
		},
		{
			name:   "descriptor implementation",
			ref:    "com.example.Describers::invoke",
			want:   ForDefaultImplementation(describeMethod),
			params: []models.TypeRef{personBuilder, models.ReflectMethod, models.ArrayOf(models.ObjectType)},
			ret:    models.StringType,
			form:   models.DescriptorForm,
		},
		{
			name:   "local implementation",
			ref:    "this::fallback",
			want:   ForDefaultImplementation(describeMethod),
			params: []models.TypeRef{models.StringType},
			ret:    models.StringType,
			call:   models.LocalCall,
		},
		{
			name:   "generic validator",
			ref:    "com.example.Validators::distinct",
			want:   ForValidator(tagsProp),
			params: []models.TypeRef{models.Named("java.util.List", models.TypeVar("T"))},
			ret:    models.Void,
		},
		{
			name:   "explicit signature",
			ref:    "com.example.Validators::notBlank(String, String)",
			want:   ForValidator(nameProp),
			params: []models.TypeRef{models.StringType, models.StringType},
			ret:    models.Void,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(parse(t, tt.ref), tt.want, scope)
			require.NoError(t, err)
			require.NotNil(t, got)

			require.Len(t, got.Params, len(tt.params))
			for i := range tt.params {
				assert.True(t, tt.params[i].Equal(got.Params[i]), "param %d: got %s", i, got.Params[i])
			}
			assert.True(t, tt.ret.Equal(got.Return), "return: got %s", got.Return)
			assert.Equal(t, tt.call, got.Call)
			assert.Equal(t, tt.form, got.Form)
			assert.Equal(t, tt.ref, got.Raw)
		})
	}
}

func TestResolve_Failures(t *testing.T) {
	r := New(newCatalog(t), config.Default())

	tests := []struct {
		name   string
		ref    string
		want   Expectation
		reason errors.ResolutionReason
	}{
		{name: "unknown owner", ref: "com.example.Missing::check", want: ForValidator(nameProp), reason: errors.UnresolvedReference},
		{name: "unknown method", ref: "com.example.Validators::missing", want: ForValidator(nameProp), reason: errors.UnresolvedReference},
		{name: "not static", ref: "com.example.Validators::hidden", want: ForValidator(nameProp), reason: errors.NotPublicOrStatic},
		{name: "wrong value type", ref: "com.example.Validators::positive", want: ForValidator(nameProp), reason: errors.SignatureMismatch},
		{name: "validator as default value", ref: "com.example.Validators::notBlank", want: ForDefaultValue(nameProp), reason: errors.SignatureMismatch},
		{name: "invariant type arguments", ref: "com.example.Validators::nonEmpty", want: ForValidator(tagsProp), reason: errors.SignatureMismatch},
		{name: "ambiguous overloads", ref: "com.example.Validators::any", want: ForValidator(nameProp), reason: errors.AmbiguousReference},
		{name: "explicit signature mismatch", ref: "com.example.Validators::notBlank(String)", want: ForValidator(nameProp), reason: errors.UnresolvedReference},
		{name: "static local method", ref: "this::notBlank", want: ForValidator(nameProp), reason: errors.UnresolvedReference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(parse(t, tt.ref), tt.want, scope)
			require.Error(t, err)
			assert.Nil(t, got)

			refErr, ok := err.(*errors.ReferenceResolutionError)
			require.True(t, ok, "unexpected error type %T", err)
			assert.Equal(t, tt.reason, refErr.Reason)
			assert.Equal(t, tt.ref, refErr.Reference)
			assert.Equal(t, tt.want.Usage.String(), refErr.Usage)
			assert.Equal(t, tt.want.Subject, refErr.Context()["subject"])
		})
	}
}

func TestResolve_ListsAttemptedSignatures(t *testing.T) {
	r := New(newCatalog(t), config.Default())

	_, err := r.Resolve(parse(t, "com.example.Validators::positive"), ForValidator(nameProp), scope)
	require.Error(t, err)

	refErr := err.(*errors.ReferenceResolutionError)
	assert.Equal(t, []string{
		"com.example.Validators::positive(java.lang.String, java.lang.String, java.lang.reflect.Type) -> void",
		"com.example.Validators::positive(java.lang.String, java.lang.String) -> void",
		"com.example.Validators::positive(java.lang.String) -> void",
	}, refErr.Attempted)
}

func TestResolve_InlineProviderMustBeCompiled(t *testing.T) {
	r := New(newCatalog(t), config.Default())

	_, err := r.Resolve(parse(t, "com.example.Validators::trimmed"), ForValidator(nameProp), scope)
	require.Error(t, err)
	assert.Equal(t, errors.InlineEligibilityErrorCode, errors.CodeOf(err))
}

func TestResolve_InlinePlaceholdersMustMatchParameters(t *testing.T) {
	r := New(newCatalog(t), config.Default())

	_, err := r.Resolve(parse(t, "com.example.Validators::check"), ForValidator(nameProp), scope)
	require.Error(t, err)
	assert.Equal(t, errors.InlineEligibilityErrorCode, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "uses $5 but declares 1 parameters")

	got, err := r.Resolve(parse(t, "com.example.Validators::requireText"), ForValidator(nameProp), scope)
	require.NoError(t, err)
	assert.True(t, got.Inline)
	assert.Equal(t, 2, got.Arity())
}

func TestCandidates(t *testing.T) {
	external := Candidates(ForDefaultImplementation(describeMethod), false, personBuilder)
	require.Len(t, external, 2)
	assert.Equal(t, "(com.example.PersonBuilder, java.lang.String) -> java.lang.String", external[0].String())
	assert.Equal(t, "(com.example.PersonBuilder, java.lang.reflect.Method, java.lang.Object[]) -> java.lang.String", external[1].String())

	local := Candidates(ForDefaultImplementation(describeMethod), true, personBuilder)
	require.Len(t, local, 2)
	assert.Equal(t, "(java.lang.String) -> java.lang.String", local[0].String())

	assert.Len(t, Candidates(ForDefaultValue(ageProp), false, personBuilder), 3)
	assert.Len(t, Candidates(ForValidator(ageProp), false, personBuilder), 3)
}

func personDecl() *annotations.BuilderDecl {
	return &annotations.BuilderDecl{
		Builder: "com.example.PersonBuilder",
		Value:   "com.example.Person",
		Self:    "com.example.PersonSpec<V, B>",
		TypeParams: []annotations.TypeParamDecl{
			{Name: "V"},
			{Name: "B", Bound: "com.example.PersonSpec<V, B>"},
		},
		Properties: []annotations.PropertyDecl{
			{Name: "name", Type: "String", Validator: "com.example.Validators::notBlank"},
			{Name: "age", Type: "int", DefaultValue: "com.example.Defaults::zero"},
		},
		Methods: []annotations.MethodDecl{
			{Name: "snapshot", Return: "V", Impl: "com.example.Describers::snapshot"},
			{Name: "greeting", Return: "String"},
		},
		Location: errors.SourceLocation{File: "person.yaml"},
	}
}

func TestResolveSpec(t *testing.T) {
	r := New(newCatalog(t), config.Default())

	spec, env, err := r.ResolveSpec(personDecl())
	require.NoError(t, err)
	require.NotNil(t, spec)
	require.NotNil(t, env)

	assert.True(t, spec.Builder.Equal(personBuilder))
	assert.True(t, spec.Value.Equal(person))
	assert.True(t, spec.Factory.UsesConstructor())
	require.Len(t, spec.TypeParams, 2)
	assert.True(t, spec.TypeParams[0].Bound.Equal(models.ObjectType))

	require.Len(t, spec.Properties, 2)
	require.NotNil(t, spec.Properties[0].Validator)
	assert.Equal(t, "notBlank", spec.Properties[0].Validator.Name)
	require.NotNil(t, spec.Properties[1].DefaultValue)
	assert.Equal(t, "zero", spec.Properties[1].DefaultValue.Name)

	require.Len(t, spec.Methods, 2)
	snapshot := spec.Methods[0]
	require.NotNil(t, snapshot.Provider)
	assert.True(t, snapshot.Provider.Return.Equal(person))
	assert.Nil(t, spec.Methods[1].Provider)
}

func TestResolveSpec_Errors(t *testing.T) {
	broken := func() *annotations.BuilderDecl {
		decl := personDecl()
		decl.Properties[0].Validator = "com.example.Missing::check"
		decl.Properties[1].DefaultValue = "com.example.Validators::notBlank"
		return decl
	}

	t.Run("fail fast", func(t *testing.T) {
		spec, _, err := New(newCatalog(t), config.Default()).ResolveSpec(broken())
		require.Error(t, err)
		assert.Nil(t, spec)

		refErr, ok := err.(*errors.ReferenceResolutionError)
		require.True(t, ok, "unexpected error type %T", err)
		assert.Equal(t, "person.yaml", refErr.Location().File)
	})

	t.Run("collect", func(t *testing.T) {
		cfg := config.Default()
		cfg.FailFast = false
		spec, _, err := New(newCatalog(t), cfg).ResolveSpec(broken())
		require.Error(t, err)
		assert.Nil(t, spec)

		multi, ok := err.(*errors.MultipleErrors)
		require.True(t, ok, "unexpected error type %T", err)
		assert.Equal(t, 2, multi.Count())
		assert.True(t, multi.HasCode(errors.ReferenceResolutionErrorCode))
	})

	t.Run("fail fast within one property", func(t *testing.T) {
		decl := personDecl()
		decl.Properties[1].Validator = "com.example.Missing::check"
		decl.Properties[1].DefaultValue = "com.example.Missing::zero"

		_, _, err := New(newCatalog(t), config.Default()).ResolveSpec(decl)
		require.Error(t, err)

		refErr, ok := err.(*errors.ReferenceResolutionError)
		require.True(t, ok, "expected a single resolution error, got %T: %v", err, err)
		assert.Equal(t, "com.example.Missing::zero", refErr.Reference)
	})

	t.Run("bad type", func(t *testing.T) {
		decl := personDecl()
		decl.Properties[0].Type = "List<"
		_, _, err := New(newCatalog(t), config.Default()).ResolveSpec(decl)
		assert.Equal(t, errors.SyntaxErrorCode, errors.CodeOf(err))
	})

	t.Run("bad bounds", func(t *testing.T) {
		decl := personDecl()
		decl.TypeParams = decl.TypeParams[:1]
		_, _, err := New(newCatalog(t), config.Default()).ResolveSpec(decl)
		assert.Equal(t, errors.GenericSubstitutionErrorCode, errors.CodeOf(err))
	})

	t.Run("nil declaration", func(t *testing.T) {
		_, _, err := New(newCatalog(t), config.Default()).ResolveSpec(nil)
		assert.Equal(t, errors.SpecErrorCode, errors.CodeOf(err))
	})
}
