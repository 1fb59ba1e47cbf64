// Package jit provides a per-call dispatch decision engine between a
// compiled and an interpreted execution path for the same logical
// function.
//
// # Reading Guide
//
// Start with these three files to understand the dispatch kernel:
//   - signature.go: argument-type signatures and how they identify specializations
//   - dispatcher.go: the per-call decision algorithm (fast path, policy, branches)
//   - directive.go: the closed set of policy decisions
//
// # Architecture
//
// The package defines interfaces for the external compilation
// collaborator and keeps only the decision logic in-process:
//   - Compiler / TypeResolver: produce specializations and infer argument types
//   - Specialization: one compiled unit bound to one signature
//   - Registry: the specialization cache (MemoryRegistry is the in-process default)
//   - Policy: user-supplied per-call decision function returning a Directive
//   - jit/event: start/end lifecycle notifications around both execution paths
//
// Once a signature has a registered specialization, calls matching it
// always take the compiled fast path and the policy is never consulted
// again for that signature. The registry only grows.
//
// Bundle (bundle.go) loads the same configuration from YAML for CLI use.
package jit
