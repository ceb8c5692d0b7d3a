package diagnostics

// ErrorCode identifies the kind of a fatal diagnostic
type ErrorCode int

const (
	ErrorCodeDecoratorArgNotLiteral   ErrorCode = 1001
	ErrorCodeDecoratorArityWrong      ErrorCode = 1002
	ErrorCodeValueHasWrongType        ErrorCode = 1010
	ErrorCodeComponentMissingTemplate ErrorCode = 2001
	ErrorCodePipeMissingName          ErrorCode = 2002
	ErrorCodeTemplateParseError       ErrorCode = 2008
)
