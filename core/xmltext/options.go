package xmltext

// Strategy selects the parsing engine used by [Parse].
type Strategy int

const (
	// StrategyAuto tries the structural XML decoder first and silently falls
	// back to the degraded scan when decoding fails. This is the default.
	StrategyAuto Strategy = iota

	// StrategyDOM forces the structural XML decoder with no fallback.
	// Malformed input yields nil.
	StrategyDOM

	// StrategyScan forces the degraded best-effort tag scan, the path taken
	// when no structural parser can handle the input. Exposed so both
	// engines can be exercised against the same corpus.
	StrategyScan
)

type options struct {
	arrayize   bool
	attributes bool
	coerce     bool
	strategy   Strategy
}

func defaultOptions() options {
	return options{arrayize: true, coerce: true, strategy: StrategyAuto}
}

// Option customises a single Parse call.
type Option func(*options)

// WithoutArrays disables arrayization: when a tag repeats among siblings the
// last occurrence wins instead of the values being collected into a slice.
func WithoutArrays() Option {
	return func(o *options) { o.arrayize = false }
}

// WithAttributes captures element attributes under [AttrKey] in the node's
// mapping. The key is omitted entirely for elements without attributes.
// Attribute capture is only supported by the structural decoder.
func WithAttributes() Option {
	return func(o *options) { o.attributes = true }
}

// WithoutCoercion keeps leaf text as raw strings instead of converting
// true/false, null, and numeric literals to their primitive values.
func WithoutCoercion() Option {
	return func(o *options) { o.coerce = false }
}

// WithStrategy overrides the engine selection, see [Strategy].
func WithStrategy(s Strategy) Option {
	return func(o *options) { o.strategy = s }
}
