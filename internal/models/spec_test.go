package models

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	person        = Named("com.example.Person")
	personBuilder = Named("com.example.PersonBuilder")
)

func TestPropertySpec_Optional(t *testing.T) {
	tests := []struct {
		name      string
		prop      PropertySpec
		wrapped   bool
		field     TypeRef
		nullCheck bool
	}{
		{
			name:      "plain reference",
			prop:      Property("name", StringType),
			field:     StringType,
			nullCheck: true,
		},
		{
			name:  "primitive",
			prop:  Property("age", Named("int")),
			field: Named("int"),
		},
		{
			name:  "nullable",
			prop:  Property("nickname", StringType).AsNullable(),
			field: StringType,
		},
		{
			name:    "java optional",
			prop:    Property("email", Named("java.util.Optional", StringType)).AsOptional(),
			wrapped: true,
			field:   StringType,
		},
		{
			name:    "guava optional",
			prop:    Property("email", Named("com.google.common.base.Optional", StringType)).AsOptional(),
			wrapped: true,
			field:   StringType,
		},
		{
			name:  "primitive optional cannot carry",
			prop:  Property("score", Named("OptionalInt")).AsOptional(),
			field: Named("OptionalInt"),
		},
		{
			name:      "optional type without optional flag",
			prop:      Property("email", Named("Optional", StringType)),
			field:     Named("Optional", StringType),
			nullCheck: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, wrapped := tt.prop.Wrapper()
			assert.Equal(t, tt.wrapped, wrapped)
			assert.True(t, tt.field.Equal(tt.prop.FieldType()), "field type %s", tt.prop.FieldType())
			assert.True(t, tt.field.Equal(tt.prop.BuilderSetterType()))
			assert.Equal(t, tt.nullCheck, tt.prop.NeedsNullCheck())
		})
	}
}

func TestPropertySpec_Accessors(t *testing.T) {
	prop := Property("name", StringType)
	assert.Equal(t, "withName", prop.SetterName())
	assert.Equal(t, "name", prop.DefaultsFrom())

	renamed := prop.WithDefaultsFrom("displayName").WithSetterType(Named("java.lang.CharSequence"))
	assert.Equal(t, "displayName", renamed.DefaultsFrom())
	assert.Equal(t, "java.lang.CharSequence", renamed.BuilderSetterType().Name)
	assert.Equal(t, "name", prop.DefaultsFrom(), "property values are copied")
}

func TestOptionalExpressions(t *testing.T) {
	java, ok := LookupOptional(Named("Optional", StringType))
	require.True(t, ok)
	guava, ok := LookupOptional(Named("com.google.common.base.Optional", StringType))
	require.True(t, ok)
	_, ok = LookupOptional(TypeVar("Optional"))
	assert.False(t, ok)

	value := FieldRef{Name: "email"}
	tests := []struct {
		name string
		got  Expr
		want Expr
	}{
		{
			name: "java empty",
			got:  EmptyOptional(java),
			want: StaticCall{Owner: TypeRef{Name: "java.util.Optional"}, Name: "empty"},
		},
		{
			name: "java unwrap passes null",
			got:  UnwrapOptional(java, value),
			want: Call{Receiver: value, Name: "orElse", Args: []Expr{Null{}}},
		},
		{
			name: "guava wrap",
			got:  WrapOptional(guava, value),
			want: StaticCall{Owner: TypeRef{Name: "com.google.common.base.Optional"}, Name: "fromNullable", Args: []Expr{value}},
		},
		{
			name: "guava unwrap",
			got:  UnwrapOptional(guava, value),
			want: Call{Receiver: value, Name: "orNull"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.got); diff != "" {
				t.Errorf("expression mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSubstituteArgs(t *testing.T) {
	expansion := StaticCall{
		Owner: Named("java.util.Objects"),
		Name:  "requireNonNull",
		Args:  []Expr{ArgRef{Index: 0}, Call{Receiver: ArgRef{Index: 1}, Name: "trim"}, ArgRef{Index: 5}},
	}
	got := SubstituteArgs(expansion, []Expr{FieldRef{Name: "name"}, StringLiteral("name")})

	want := StaticCall{
		Owner: Named("java.util.Objects"),
		Name:  "requireNonNull",
		Args:  []Expr{FieldRef{Name: "name"}, Call{Receiver: StringLiteral("name"), Name: "trim"}, ArgRef{Index: 5}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("substitution mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, `"name"`, StringLiteral("name").Value)
	assert.Nil(t, SubstituteArgs(nil, nil))
}

func TestArgIndexes(t *testing.T) {
	expansion := Call{
		Receiver: ArgRef{Index: 1},
		Name:     "concat",
		Args:     []Expr{StaticCall{Owner: Named("java.lang.String"), Name: "valueOf", Args: []Expr{ArgRef{Index: 0}}}},
	}
	assert.Equal(t, []int{1, 0}, ArgIndexes(expansion))
	assert.Empty(t, ArgIndexes(Literal{Type: StringType, Value: `"x"`}))
	assert.Empty(t, ArgIndexes(nil))
}

func TestSpecBuilder(t *testing.T) {
	self := Named("com.example.PersonSpec", person, personBuilder)
	builder := NewSpecBuilder(personBuilder.Name, person.Name).
		WithSelf(self).
		WithProperty(Property("name", StringType)).
		WithStaticFactory(person, "of")

	spec := builder.Build()
	assert.True(t, spec.SelfType().Equal(self))
	assert.False(t, spec.Factory.UsesConstructor())

	_, ok := spec.Property("name")
	assert.True(t, ok)
	_, ok = spec.Property("age")
	assert.False(t, ok)

	builder.WithProperty(Property("age", Named("int")))
	assert.Len(t, spec.Properties, 1, "built specifications are independent of the builder")

	plain := NewSpecBuilder(personBuilder.Name, person.Name).Build()
	assert.True(t, plain.SelfType().Equal(personBuilder))
	assert.True(t, plain.Factory.UsesConstructor())
}

func TestSynthesis_Accessors(t *testing.T) {
	s := &Synthesis{Members: []Member{
		Field{Name: "name", Type: StringType},
		Constructor{},
		Method{Name: "withName", Return: personBuilder, Params: []Param{{Name: "name", Type: StringType}}},
		Method{Name: "build", Return: person},
	}}

	assert.Len(t, s.Fields(), 1)
	assert.Len(t, s.Constructors(), 1)
	assert.Len(t, s.Methods(), 2)

	_, ok := s.Field("name")
	assert.True(t, ok)
	build, ok := s.Method("build")
	require.True(t, ok)
	assert.Equal(t, "build() -> com.example.Person", build.Signature().String())

	sigs := s.Signatures()
	require.Len(t, sigs, 2)
	assert.Equal(t, "withName(java.lang.String) -> com.example.PersonBuilder", sigs[0].String())
}
