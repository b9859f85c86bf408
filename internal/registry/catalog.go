package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/toyz/buildforge/internal/models"
	"github.com/toyz/buildforge/internal/utils"
)

// ProviderMethod describes a method that can serve as a validator, default
// value provider or default implementation
type ProviderMethod struct {
	Owner     models.TypeRef
	Name      string
	TypeVars  []string // type variables declared by the method itself
	Params    []models.TypeRef
	Return    models.TypeRef
	Public    bool
	Static    bool
	Inline    bool        // expansion is spliced instead of emitting a call
	Compiled  bool        // available before the builder is generated
	Expansion models.Expr // inline expression with ArgRef placeholders
}

// Signature returns the signature of the provider method
func (m ProviderMethod) Signature() models.Signature {
	return models.Signature{Name: m.Name, ReturnType: m.Return, ParamTypes: m.Params}
}

// IsTypeVar reports whether name is a type variable declared by the method
func (m ProviderMethod) IsTypeVar(name string) bool {
	for _, v := range m.TypeVars {
		if v == name {
			return true
		}
	}
	return false
}

// String renders the provider as Owner::name(params) -> return
func (m ProviderMethod) String() string {
	return m.Owner.String() + "::" + m.Signature().String()
}

// Catalog is the read-only view of provider methods the resolver searches
type Catalog interface {
	Methods(owner models.TypeRef) []ProviderMethod
	Lookup(owner models.TypeRef, name string) []ProviderMethod
	HasType(owner models.TypeRef) bool
}

// MethodCatalog indexes provider methods by owner type
type MethodCatalog struct {
	*utils.BaseRegistry[string, []ProviderMethod]
}

// NewMethodCatalog creates an empty method catalog
func NewMethodCatalog() *MethodCatalog {
	catalog := &MethodCatalog{
		BaseRegistry: utils.NewBaseRegistry[string, []ProviderMethod]("method catalog", "owner type", "method lists"),
	}
	catalog.SetValidator(utils.NotEmptyKeyValidator[[]ProviderMethod]("owner type"))
	return catalog
}

// DeclareType makes an owner type known even when it declares no provider methods
func (c *MethodCatalog) DeclareType(owner models.TypeRef) {
	key := owner.Erasure()
	if !c.Has(key) {
		_ = c.Register(key, nil)
	}
}

// RegisterMethod adds a provider method, rejecting duplicate overloads
func (c *MethodCatalog) RegisterMethod(method ProviderMethod) error {
	if method.Name == "" {
		return fmt.Errorf("provider method of %s has no name", method.Owner)
	}
	if method.Return.IsZero() {
		method.Return = models.Void
	}

	return c.Modify(method.Owner.Erasure(), func(existing []ProviderMethod, _ bool) ([]ProviderMethod, error) {
		for _, m := range existing {
			if m.Name == method.Name && sameParams(m.Params, method.Params) {
				return nil, fmt.Errorf("duplicate provider method %s", method)
			}
		}
		return append(append([]ProviderMethod(nil), existing...), method), nil
	})
}

// Methods returns every provider method of owner in registration order
func (c *MethodCatalog) Methods(owner models.TypeRef) []ProviderMethod {
	methods, _ := c.Get(owner.Erasure())
	return methods
}

// Lookup returns the overloads of name declared by owner
func (c *MethodCatalog) Lookup(owner models.TypeRef, name string) []ProviderMethod {
	var result []ProviderMethod
	for _, m := range c.Methods(owner) {
		if m.Name == name {
			result = append(result, m)
		}
	}
	return result
}

// HasType reports whether the owner type is known to the catalog
func (c *MethodCatalog) HasType(owner models.TypeRef) bool {
	return c.Has(owner.Erasure())
}

// Describe lists the catalog content, one provider per line, for diagnostics
func (c *MethodCatalog) Describe() string {
	var lines []string
	c.ForEach(func(_ string, methods []ProviderMethod) {
		for _, m := range methods {
			lines = append(lines, m.String())
		}
	})
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}

func sameParams(a, b []models.TypeRef) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
