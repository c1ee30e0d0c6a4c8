// Package sku derives human-readable stock keeping unit codes from product
// names and variant attributes, and allocates unique codes within a tenant
// namespace by probing sequential numeric suffixes.
package sku

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/stockfy/platform/internal/inventory/domain"
)

const (
	// DefaultPrefix is used when no SKU prefix is configured
	DefaultPrefix = "STK"

	// MaxLength bounds the final SKU string
	MaxLength = 32

	fallbackProduct = "PROD"
	productAbbrLen  = 6
	attrAbbrLen     = 4
	maxProbes       = 10000
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func slugify(value string) string {
	lowered := strings.ToLower(value)
	stripped, _, err := transform.String(deaccent, lowered)
	if err != nil {
		stripped = lowered
	}

	var b strings.Builder
	for _, r := range stripped {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune('-')
		}
	}

	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}

func abbreviate(value string, max int) string {
	cleaned := strings.ReplaceAll(slugify(value), "-", "")
	if len(cleaned) > max {
		cleaned = cleaned[:max]
	}
	return strings.ToUpper(cleaned)
}

// BuildBase derives the base SKU code: uppercased prefix, a six-character
// abbreviation of the product name (literal PROD when the name yields
// nothing), then a four-character abbreviation per non-empty attribute
// value, joined with hyphens
func BuildBase(prefix, productName string, attributeValues []string) string {
	productPart := abbreviate(productName, productAbbrLen)
	if productPart == "" {
		productPart = fallbackProduct
	}

	parts := make([]string, 0, 2+len(attributeValues))
	if p := strings.ToUpper(strings.TrimSpace(prefix)); p != "" {
		parts = append(parts, p)
	}
	parts = append(parts, productPart)

	for _, value := range attributeValues {
		if value == "" {
			continue
		}
		if abbr := abbreviate(value, attrAbbrLen); abbr != "" {
			parts = append(parts, abbr)
		}
	}

	return strings.Join(parts, "-")
}

// Limit truncates value to maxLength without re-validating uniqueness.
// Truncation happens before the probe suffix is appended, so allocation
// re-applies the limit after suffixing.
func Limit(value string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = MaxLength
	}
	if len(value) <= maxLength {
		return value
	}
	return value[:maxLength]
}

// Prober checks whether a SKU is already taken within a tenant namespace
type Prober interface {
	Exists(tenantID, sku string) (bool, error)
}

// Allocator generates unique SKUs within a tenant namespace
type Allocator struct {
	prefix string
	prober Prober
}

// NewAllocator creates an allocator probing through the given prober
func NewAllocator(prefix string, prober Prober) *Allocator {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Allocator{prefix: prefix, prober: prober}
}

// Generate probes -001, -002, ... sequentially and returns the first
// candidate with no existing variant under the tenant. The probe order is
// deterministic: two calls against unchanged tenant state return the same
// candidate. Two concurrent requests sharing a base can both observe a
// candidate as free before either commits; there is no retry-on-constraint
// fallback here, the composite unique index on (tenant_id, sku) rejects
// the loser.
func (a *Allocator) Generate(tenantID, productName string, attributeValues []string) (string, error) {
	base := BuildBase(a.prefix, productName, attributeValues)

	for seq := 1; seq < maxProbes; seq++ {
		candidate := Limit(fmt.Sprintf("%s-%03d", base, seq), MaxLength)
		taken, err := a.prober.Exists(tenantID, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to probe sku candidate: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", domain.ErrSKUGenerationFailed
}
