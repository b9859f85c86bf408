package errors

import (
	"fmt"
	"strings"
)

// SyntaxError reports a raw descriptor, type expression or inline expression
// that could not be parsed
type SyntaxError struct {
	*BaseError
	Input    string // text that failed to parse
	Position int    // byte offset of the failure, -1 when unknown
}

// NewSyntaxError creates a new syntax error for the given input
func NewSyntaxError(input, message string) *SyntaxError {
	return &SyntaxError{
		BaseError: New(SyntaxErrorCode, fmt.Sprintf("cannot parse %q: %s", input, message)),
		Input:     input,
		Position:  -1,
	}
}

// SpecError reports a malformed builder specification
type SpecError struct {
	*BaseError
	Builder string // builder type the specification describes
	Subject string // offending property, method or field name
}

// NewSpecError creates a specification error about a subject of a builder
func NewSpecError(builder, subject, reason string) *SpecError {
	message := fmt.Sprintf("invalid builder specification %s", builder)
	if subject != "" {
		message = fmt.Sprintf("%s: %s: %s", message, subject, reason)
	} else {
		message = fmt.Sprintf("%s: %s", message, reason)
	}

	err := &SpecError{
		BaseError: New(SpecErrorCode, message),
		Builder:   builder,
		Subject:   subject,
	}
	err.WithContext("builder", builder)
	if subject != "" {
		err.WithContext("subject", subject)
	}
	return err
}

// ResolutionReason describes why a method reference could not be resolved
type ResolutionReason int

const (
	UnresolvedReference ResolutionReason = iota
	NotPublicOrStatic
	SignatureMismatch
	AmbiguousReference
)

// String returns the string representation of the reason
func (r ResolutionReason) String() string {
	switch r {
	case NotPublicOrStatic:
		return "NotPublicOrStatic"
	case SignatureMismatch:
		return "SignatureMismatch"
	case AmbiguousReference:
		return "AmbiguousReference"
	default:
		return "UnresolvedReference"
	}
}

// ReferenceResolutionError reports a provider reference that did not resolve
// to exactly one usable method
type ReferenceResolutionError struct {
	*BaseError
	Reason    ResolutionReason
	Reference string   // raw reference as written
	Usage     string   // validator, default value or default implementation
	Attempted []string // every signature that was tried
}

// NewReferenceResolutionError creates a resolution error naming every attempted signature
func NewReferenceResolutionError(reason ResolutionReason, reference, usage string, attempted []string) *ReferenceResolutionError {
	message := fmt.Sprintf("%s: cannot resolve %s reference '%s'", reason, usage, reference)
	if len(attempted) > 0 {
		message = fmt.Sprintf("%s (tried %s)", message, strings.Join(attempted, ", "))
	}

	err := &ReferenceResolutionError{
		BaseError: New(ReferenceResolutionErrorCode, message),
		Reason:    reason,
		Reference: reference,
		Usage:     usage,
		Attempted: attempted,
	}
	err.WithContext("reference", reference)
	err.WithContext("usage", usage)
	err.WithSuggestion(suggestionFor(reason))
	return err
}

func suggestionFor(reason ResolutionReason) string {
	switch reason {
	case NotPublicOrStatic:
		return "External providers must be declared public static; use 'this::name' for methods of the builder interface"
	case SignatureMismatch:
		return "Adjust the provider parameters to one of the attempted signatures"
	case AmbiguousReference:
		return "Add explicit parameter types to the reference, e.g. Owner::name(java.lang.String)"
	default:
		return "Check the owner type and method name of the reference"
	}
}

// InlineEligibilityError reports an inline provider that is not available yet
type InlineEligibilityError struct {
	*BaseError
	Reference string
}

// NewInlineEligibilityError creates an inline eligibility error
func NewInlineEligibilityError(reference string) *InlineEligibilityError {
	err := &InlineEligibilityError{
		BaseError: Newf(InlineEligibilityErrorCode, "inline provider '%s' is not compiled and cannot be expanded", reference),
		Reference: reference,
	}
	err.WithContext("reference", reference)
	err.WithSuggestion("Move the inline provider to a type compiled before the builder is generated")
	return err
}

// NewInlinePlaceholderError reports an inline expansion using a placeholder
// beyond the parameters the provider declares
func NewInlinePlaceholderError(reference string, index, arity int) *InlineEligibilityError {
	err := &InlineEligibilityError{
		BaseError: Newf(InlineEligibilityErrorCode, "inline provider '%s' uses $%d but declares %d parameters", reference, index, arity),
		Reference: reference,
	}
	err.WithContext("reference", reference)
	err.WithSuggestion("Placeholders $0 to $n-1 refer to the provider parameters in declaration order")
	return err
}

// GenericSubstitutionError reports a bound name without a concrete type
type GenericSubstitutionError struct {
	*BaseError
	Bound string
}

// NewGenericSubstitutionError creates a substitution error for a bound name
func NewGenericSubstitutionError(bound, reason string) *GenericSubstitutionError {
	err := &GenericSubstitutionError{
		BaseError: Newf(GenericSubstitutionErrorCode, "cannot substitute bound '%s': %s", bound, reason),
		Bound:     bound,
	}
	err.WithContext("bound", bound)
	return err
}

// VerificationError reports an interface method left without a synthesized counterpart
type VerificationError struct {
	*BaseError
	Method string // offending method signature
}

// NewVerificationError creates a verification error for a method signature
func NewVerificationError(method string) *VerificationError {
	err := &VerificationError{
		BaseError: Newf(VerificationErrorCode, "method %s is not implemented by the builder", method),
		Method:    method,
	}
	err.WithContext("method", method)
	return err
}

// GenerationError represents an error while rendering or writing output
type GenerationError struct {
	*BaseError
	TargetFile string
	Stage      string
}
