package jit

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Bundle holds dispatch configuration loadable from a YAML file. It is
// the file-level counterpart of Config: named policy kinds instead of
// function values, signature strings instead of Signature values.
type Bundle struct {
	Policy         PolicyConfig      `yaml:"policy"`
	WarnOnFallback bool              `yaml:"warn_on_fallback"`
	Signatures     []string          `yaml:"signatures"`
	Options        map[string]string `yaml:"options"`
}

// PolicyConfig selects a policy by name. Threshold is only meaningful
// for the length-threshold kind; nil means "not set in YAML".
type PolicyConfig struct {
	Kind      string `yaml:"kind"`
	Threshold *int   `yaml:"threshold"`
}

// Policy kind names accepted in a Bundle. An empty kind means "no
// policy": Config.Policy stays nil and New applies its defaults.
const (
	PolicyAlwaysJIT         = "always-jit"
	PolicyAlwaysInterpreter = "always-interpreter"
	PolicyAlwaysRaise       = "always-raise"
	PolicyLengthThreshold   = "length-threshold"
)

// ValidPolicyKinds is the set of recognized policy kind names. Shared by
// Validate and Build.
var ValidPolicyKinds = map[string]bool{
	"":                      true,
	PolicyAlwaysJIT:         true,
	PolicyAlwaysInterpreter: true,
	PolicyAlwaysRaise:       true,
	PolicyLengthThreshold:   true,
}

// LoadBundle reads and parses a YAML dispatch configuration file. Fields
// are checked strictly: unknown keys are errors.
func LoadBundle(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dispatch config: %w", err)
	}
	var bundle Bundle
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&bundle); err != nil {
		return nil, fmt.Errorf("parsing dispatch config: %w", err)
	}
	return &bundle, nil
}

// Validate checks policy kind, parameter ranges, and signature strings.
func (b *Bundle) Validate() error {
	if !ValidPolicyKinds[b.Policy.Kind] {
		return fmt.Errorf("unknown policy kind %q", b.Policy.Kind)
	}
	if b.Policy.Kind == PolicyLengthThreshold {
		if b.Policy.Threshold == nil {
			return fmt.Errorf("policy kind %q requires a threshold", PolicyLengthThreshold)
		}
		if *b.Policy.Threshold < 0 {
			return fmt.Errorf("threshold must be non-negative, got %d", *b.Policy.Threshold)
		}
	} else if b.Policy.Threshold != nil {
		return fmt.Errorf("threshold is only valid for policy kind %q", PolicyLengthThreshold)
	}
	for _, s := range b.Signatures {
		if _, err := ParseSignature(s); err != nil {
			return err
		}
	}
	return nil
}

// Build converts the bundle into a Config ready for New.
func (b *Bundle) Build() (Config, error) {
	if err := b.Validate(); err != nil {
		return Config{}, err
	}

	var policy Policy
	switch b.Policy.Kind {
	case PolicyAlwaysJIT:
		policy = AlwaysCompiled
	case PolicyAlwaysInterpreter:
		policy = AlwaysInterpreted
	case PolicyAlwaysRaise:
		policy = AlwaysRaise
	case PolicyLengthThreshold:
		policy = LengthThreshold(*b.Policy.Threshold)
	}

	sigs := make([]Signature, 0, len(b.Signatures))
	for _, s := range b.Signatures {
		sig, err := ParseSignature(s)
		if err != nil {
			return Config{}, err
		}
		sigs = append(sigs, sig)
	}
	if len(sigs) == 0 {
		sigs = nil
	}

	return Config{
		Policy:         policy,
		WarnOnFallback: b.WarnOnFallback,
		Signatures:     sigs,
		Options:        b.Options,
	}, nil
}
