package tracing

// Span names.
const (
	SpanCompile    = "compiler.compile"
	SpanInitialize = "compiler.initialize"
)

// Span attribute keys.
const (
	AttrSessionID    = "session.id"
	AttrSourceBytes  = "compile.source.bytes"
	AttrSourceHash   = "compile.source.hash"
	AttrTokenCount   = "compile.tokens"
	AttrFunctions    = "compile.functions"
	AttrIRChars      = "compile.ir.chars"
	AttrCacheHit     = "compile.cache.hit"
	AttrFailure      = "compile.failed"
	AttrErrorMessage = "error.message"
)
