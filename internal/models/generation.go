package models

// Synthesis is the ordered member list synthesized for one builder
type Synthesis struct {
	Builder TypeRef  // concrete builder type
	Self    TypeRef  // interface the builder implements
	Value   TypeRef  // value type produced by build()
	Members []Member // declarations in emission order
}

// Fields returns the field members in order
func (s *Synthesis) Fields() []Field {
	var out []Field
	for _, m := range s.Members {
		if f, ok := m.(Field); ok {
			out = append(out, f)
		}
	}
	return out
}

// Constructors returns the constructor members in order
func (s *Synthesis) Constructors() []Constructor {
	var out []Constructor
	for _, m := range s.Members {
		if c, ok := m.(Constructor); ok {
			out = append(out, c)
		}
	}
	return out
}

// Methods returns the method members in order
func (s *Synthesis) Methods() []Method {
	var out []Method
	for _, m := range s.Members {
		if method, ok := m.(Method); ok {
			out = append(out, method)
		}
	}
	return out
}

// Method returns the first method named name
func (s *Synthesis) Method(name string) (Method, bool) {
	for _, m := range s.Methods() {
		if m.Name == name {
			return m, true
		}
	}
	return Method{}, false
}

// Field returns the field named name
func (s *Synthesis) Field(name string) (Field, bool) {
	for _, f := range s.Fields() {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Signatures returns the signatures of every synthesized method
func (s *Synthesis) Signatures() []Signature {
	methods := s.Methods()
	out := make([]Signature, len(methods))
	for i, m := range methods {
		out[i] = m.Signature()
	}
	return out
}

// GeneratedFile is a rendered builder ready to be written
type GeneratedFile struct {
	Builder string // builder type name
	Path    string // output path relative to the output directory
	Content string // rendered source
}
