package apperrors

import "fmt"

// ConversionError indicates that a currency conversion could not be applied.
// SourceCurrency is the currency of the amount being converted. TargetCurrency
// is the term currency of the rate that was attempted, or empty when no rate
// could be resolved at all. Err carries the underlying lookup failure, if any.
type ConversionError struct {
	SourceCurrency string
	TargetCurrency string
	Err            error
}

// NewConversionError creates a ConversionError for the given currency pair.
func NewConversionError(sourceCurrency, targetCurrency string, cause error) *ConversionError {
	return &ConversionError{
		SourceCurrency: sourceCurrency,
		TargetCurrency: targetCurrency,
		Err:            cause,
	}
}

func (e *ConversionError) Error() string {
	target := e.TargetCurrency
	if target == "" {
		target = "<none>"
	}
	if e.Err != nil {
		return fmt.Sprintf("currency conversion failed: %s -> %s: %v", e.SourceCurrency, target, e.Err)
	}
	return fmt.Sprintf("currency conversion failed: %s -> %s", e.SourceCurrency, target)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
