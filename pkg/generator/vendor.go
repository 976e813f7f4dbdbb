package generator

import (
	"sort"

	"github.com/samber/lo"

	"github.com/matzehuels/flatpak-cargo/pkg/cargo"
)

// VendorRule redirects one cargo source.
type VendorRule struct {
	Key         string
	Replacement cargo.SourceReplacement
}

// VendorConfig accumulates the [source] table that points cargo at the
// vendored tree. It always contains the vendored directory itself and the
// crates.io redirect.
type VendorConfig struct {
	rules map[string]cargo.SourceReplacement
}

// NewVendorConfig returns a config holding only the fixed entries.
func NewVendorConfig() *VendorConfig {
	return &VendorConfig{rules: map[string]cargo.SourceReplacement{
		VendoredSources: {Directory: VendorDir},
		cargo.CratesIO:  {ReplaceWith: VendoredSources},
	}}
}

// Add stores r, replacing an earlier rule with the same key.
func (v *VendorConfig) Add(r VendorRule) {
	v.rules[r.Key] = r.Replacement
}

// Rule returns the replacement stored under key.
func (v *VendorConfig) Rule(key string) (cargo.SourceReplacement, bool) {
	r, ok := v.rules[key]
	return r, ok
}

// Keys returns every source key in sorted order.
func (v *VendorConfig) Keys() []string {
	keys := lo.Keys(v.rules)
	sort.Strings(keys)
	return keys
}

// Config returns the cargo config carrying the rules.
func (v *VendorConfig) Config() cargo.Config {
	return cargo.Config{Source: lo.Assign(v.rules)}
}
