package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// RateType classifies how an exchange rate was obtained.
type RateType string

const (
	// RateTypeAny matches any rate type during provider lookup.
	RateTypeAny RateType = "ANY"
	// RateTypeCurrent marks a rate sourced from the latest available data.
	RateTypeCurrent RateType = "CURRENT"
	// RateTypeHistoric marks a rate valid for a point in the past.
	RateTypeHistoric RateType = "HISTORIC"
	// RateTypeDeferred marks a rate derived from deferred (delayed) data.
	RateTypeDeferred RateType = "DEFERRED"
	// RateTypeOther marks a provider-specific rate classification.
	RateTypeOther RateType = "OTHER"
)

// IsValid reports whether the rate type is one of the known classifications.
func (rt RateType) IsValid() bool {
	switch rt {
	case RateTypeAny, RateTypeCurrent, RateTypeHistoric, RateTypeDeferred, RateTypeOther:
		return true
	}
	return false
}

func (rt RateType) String() string {
	return string(rt)
}

// ConversionContext describes the provenance and configuration of an exchange
// rate: which provider supplied it, how it was obtained, and optionally for
// which validity window it holds. It is an immutable value; the With* methods
// return modified copies. Contexts are passed through the conversion pipeline
// unmodified end-to-end.
type ConversionContext struct {
	providerName string
	rateType     RateType
	validFrom    *time.Time
	validTo      *time.Time
	attributes   map[string]string
}

// NewConversionContext creates a context for the given provider and rate type.
func NewConversionContext(providerName string, rateType RateType) ConversionContext {
	return ConversionContext{
		providerName: providerName,
		rateType:     rateType,
	}
}

// IsZero reports whether the context carries no information at all.
// A zero context is rejected wherever a context is required.
func (cc ConversionContext) IsZero() bool {
	return cc.providerName == "" && cc.rateType == "" &&
		cc.validFrom == nil && cc.validTo == nil && len(cc.attributes) == 0
}

// ProviderName returns the identifier of the rate's data source.
func (cc ConversionContext) ProviderName() string {
	return cc.providerName
}

// RateType returns the rate classification carried by this context.
func (cc ConversionContext) RateType() RateType {
	return cc.rateType
}

// ValidFrom returns the start of the validity window, or nil if unbounded.
func (cc ConversionContext) ValidFrom() *time.Time {
	return copyTime(cc.validFrom)
}

// ValidTo returns the end of the validity window, or nil if unbounded.
func (cc ConversionContext) ValidTo() *time.Time {
	return copyTime(cc.validTo)
}

// Attribute returns a provider-specific named attribute.
func (cc ConversionContext) Attribute(key string) (string, bool) {
	v, ok := cc.attributes[key]
	return v, ok
}

// Attributes returns a copy of all provider-specific attributes.
func (cc ConversionContext) Attributes() map[string]string {
	if len(cc.attributes) == 0 {
		return nil
	}
	out := make(map[string]string, len(cc.attributes))
	for k, v := range cc.attributes {
		out[k] = v
	}
	return out
}

// WithValidity returns a copy of the context bounded to [from, to].
func (cc ConversionContext) WithValidity(from, to time.Time) ConversionContext {
	out := cc.clone()
	out.validFrom = &from
	out.validTo = &to
	return out
}

// WithValidFrom returns a copy of the context valid from the given instant.
func (cc ConversionContext) WithValidFrom(from time.Time) ConversionContext {
	out := cc.clone()
	out.validFrom = &from
	return out
}

// WithAttribute returns a copy of the context with the named attribute set.
func (cc ConversionContext) WithAttribute(key, value string) ConversionContext {
	out := cc.clone()
	if out.attributes == nil {
		out.attributes = make(map[string]string, 1)
	}
	out.attributes[key] = value
	return out
}

// WithRateType returns a copy of the context with a different rate type.
func (cc ConversionContext) WithRateType(rateType RateType) ConversionContext {
	out := cc.clone()
	out.rateType = rateType
	return out
}

// Equal reports whether two contexts are identical in provider, rate type,
// validity window and attributes.
func (cc ConversionContext) Equal(other ConversionContext) bool {
	if cc.providerName != other.providerName || cc.rateType != other.rateType {
		return false
	}
	if !timesEqual(cc.validFrom, other.validFrom) || !timesEqual(cc.validTo, other.validTo) {
		return false
	}
	if len(cc.attributes) != len(other.attributes) {
		return false
	}
	for k, v := range cc.attributes {
		if ov, ok := other.attributes[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

func (cc ConversionContext) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ConversionContext[provider=%s, rateType=%s", cc.providerName, cc.rateType)
	if cc.validFrom != nil {
		fmt.Fprintf(&b, ", validFrom=%s", cc.validFrom.Format(time.RFC3339))
	}
	if cc.validTo != nil {
		fmt.Fprintf(&b, ", validTo=%s", cc.validTo.Format(time.RFC3339))
	}
	if len(cc.attributes) > 0 {
		keys := make([]string, 0, len(cc.attributes))
		for k := range cc.attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, ", %s=%s", k, cc.attributes[k])
		}
	}
	b.WriteString("]")
	return b.String()
}

func (cc ConversionContext) clone() ConversionContext {
	out := ConversionContext{
		providerName: cc.providerName,
		rateType:     cc.rateType,
		validFrom:    copyTime(cc.validFrom),
		validTo:      copyTime(cc.validTo),
	}
	if len(cc.attributes) > 0 {
		out.attributes = make(map[string]string, len(cc.attributes))
		for k, v := range cc.attributes {
			out.attributes[k] = v
		}
	}
	return out
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func timesEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
