// Package vm implements the Ember runtime's symbol-resolution core.
//
// This package contains:
//   - Namespace, QName and Multiname value types
//   - PropertyMap, the namespace-aware definition container
//   - Domain, the hierarchical visibility scope for exported code
//   - Script globals with lazy materialization
//   - Class metadata and generic type specialization
//   - ByteArray-backed domain memory
package vm
