package errors

import "fmt"

// WrapParseError wraps a parser failure as a syntax error for the given input
func WrapParseError(input string, cause error) *SyntaxError {
	err := NewSyntaxError(input, cause.Error())
	err.WithCause(cause)
	return err
}

// WrapGenerateError wraps an error with a "failed to generate" message
func WrapGenerateError(item string, cause error) *GenerationError {
	return &GenerationError{
		BaseError:  Wrap(GenerationErrorCode, fmt.Sprintf("failed to generate %s", item), cause),
		TargetFile: item,
	}
}

// WrapTemplateError wraps template processing errors
func WrapTemplateError(templateName, operation string, cause error) *GenerationError {
	message := fmt.Sprintf("failed to %s template '%s'", operation, templateName)
	return &GenerationError{
		BaseError:  Wrap(TemplateErrorCode, message, cause),
		TargetFile: templateName,
		Stage:      operation,
	}
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s file '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(configType, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, configType)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("config_type", configType).
		WithContext("operation", operation)
}

// CodeOf returns the error code of err, or UnknownErrorCode when err is not a ForgeError
func CodeOf(err error) ErrorCode {
	if fe, ok := err.(ForgeError); ok {
		return fe.ErrorCode()
	}
	if me, ok := err.(*MultipleErrors); ok {
		return me.ErrorCode()
	}
	return UnknownErrorCode
}
