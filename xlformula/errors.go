package xlformula

import "fmt"

// ConfigError reports a malformed template configuration.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// NewConfigError creates a new ConfigError with the given message.
func NewConfigError(format string, args ...interface{}) *ConfigError {
	return &ConfigError{Message: fmt.Sprintf(format, args...)}
}

// ErrorTextFromCode maps an Excel error code to its literal.
var ErrorTextFromCode = map[byte]string{
	0x00: "#NULL!",  // Intersection of two cell ranges is empty
	0x07: "#DIV/0!", // Division by zero
	0x0F: "#VALUE!", // Wrong type of operand
	0x17: "#REF!",   // Illegal or deleted cell reference
	0x1D: "#NAME?",  // Wrong function or range name
	0x24: "#NUM!",   // Value range overflow
	0x2A: "#N/A",    // Argument or function not available
}

var errorCodeFromText = func() map[string]byte {
	m := make(map[string]byte, len(ErrorTextFromCode))
	for code, text := range ErrorTextFromCode {
		m[text] = code
	}
	return m
}()

// IsErrorLiteral reports whether s is exactly one of the error literals.
func IsErrorLiteral(s string) bool {
	_, ok := errorCodeFromText[s]
	return ok
}

// ErrorCode returns the Excel error code of an error literal.
func ErrorCode(literal string) (byte, bool) {
	code, ok := errorCodeFromText[literal]
	return code, ok
}
