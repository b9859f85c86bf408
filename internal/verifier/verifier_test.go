package verifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/buildforge/internal/errors"
	"github.com/toyz/buildforge/internal/models"
)

func synthesis() *models.Synthesis {
	builder := models.Named("com.example.PersonBuilder")
	return &models.Synthesis{
		Builder: builder,
		Self:    builder,
		Value:   models.Named("com.example.Person"),
		Members: []models.Member{
			models.Field{Name: "name", Type: models.StringType},
			models.Constructor{},
			models.Method{Name: "withName", Return: builder, Params: []models.Param{{Name: "name", Type: models.StringType}}},
			models.Method{Name: "name", Return: models.StringType},
			models.Method{Name: "build", Return: models.Named("com.example.Person")},
		},
	}
}

func TestVerify_DeliversSignaturesOnce(t *testing.T) {
	calls := 0
	var got []models.Signature

	err := Verify(synthesis(), func(signatures []models.Signature) error {
		calls++
		got = signatures
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	require.Len(t, got, 3)
	assert.Equal(t, "withName(java.lang.String) -> com.example.PersonBuilder", got[0].String())
	assert.Equal(t, "name", got[1].Name)
	assert.Equal(t, "build", got[2].Name)
}

func TestVerify_NilInputs(t *testing.T) {
	assert.NoError(t, Verify(synthesis(), nil))

	err := Verify(nil, func([]models.Signature) error { return nil })
	require.Error(t, err)
	assert.Equal(t, errors.SpecErrorCode, errors.CodeOf(err))
}

func TestCoverageCheck(t *testing.T) {
	name := models.Signature{Name: "name", ReturnType: models.StringType}
	withName := models.Signature{Name: "withName", ReturnType: models.ObjectType, ParamTypes: []models.TypeRef{models.ObjectType}}
	age := models.Signature{Name: "age", ReturnType: models.Named("int")}
	nameOverload := models.Signature{Name: "name", ReturnType: models.StringType, ParamTypes: []models.TypeRef{models.StringType}}

	tests := []struct {
		name    string
		iface   []models.Signature
		missing []string
	}{
		{
			name:  "fully covered",
			iface: []models.Signature{name, withName},
		},
		{
			name:    "one missing method",
			iface:   []models.Signature{name, age},
			missing: []string{age.String()},
		},
		{
			name:    "arity matters",
			iface:   []models.Signature{nameOverload, age},
			missing: []string{nameOverload.String(), age.String()},
		},
		{
			name: "empty interface",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Verify(synthesis(), CoverageCheck(tt.iface))
			if len(tt.missing) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Equal(t, errors.VerificationErrorCode, errors.CodeOf(err))
			assert.False(t, errors.CodeOf(err).IsFatal())

			var methods []string
			switch e := err.(type) {
			case *errors.VerificationError:
				methods = append(methods, e.Method)
			case *errors.MultipleErrors:
				for _, inner := range e.Errors {
					methods = append(methods, inner.(*errors.VerificationError).Method)
				}
			default:
				t.Fatalf("unexpected error type %T", err)
			}
			assert.Equal(t, tt.missing, methods)
		})
	}
}

func TestInterfaceOf(t *testing.T) {
	builder := models.Named("com.example.PersonBuilder")
	spec := &models.BuilderSpec{
		Builder: builder,
		Value:   models.Named("com.example.Person"),
		Properties: []models.PropertySpec{
			{Name: "name", Type: models.StringType},
		},
		Methods: []models.MethodSpec{
			{Name: "greeting", Return: models.StringType},
		},
	}

	sigs := InterfaceOf(spec)
	require.Len(t, sigs, 4)
	assert.Equal(t, "withName(java.lang.String) -> com.example.PersonBuilder", sigs[0].String())
	assert.Equal(t, "name() -> java.lang.String", sigs[1].String())
	assert.Equal(t, "greeting() -> java.lang.String", sigs[2].String())
	assert.Equal(t, "build() -> com.example.Person", sigs[3].String())

	assert.Nil(t, InterfaceOf(nil))
}

func TestInterfaceOf_FlagsMethodsWithoutProvider(t *testing.T) {
	spec := &models.BuilderSpec{
		Builder: models.Named("com.example.PersonBuilder"),
		Value:   models.Named("com.example.Person"),
		Properties: []models.PropertySpec{
			{Name: "name", Type: models.StringType},
		},
		Methods: []models.MethodSpec{
			{Name: "greeting", Return: models.StringType},
		},
	}

	err := Verify(synthesis(), CoverageCheck(InterfaceOf(spec)))
	require.Error(t, err)
	assert.Equal(t, errors.VerificationErrorCode, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "greeting() -> java.lang.String")
}
