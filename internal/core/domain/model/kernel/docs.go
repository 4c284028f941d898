// Package kernel provides core domain primitives for the ordering system.
// It implements fundamental building blocks following Domain-Driven Design
// principles that are used throughout the domain model.
//
// The package includes:
//   - RefCode: A value object for the opaque, globally unique order reference code
//   - DisplayNumber: A value object for the short, recyclable kitchen ticket number
//
// These primitives enforce domain invariants and validation rules, ensuring
// that identifiers are always well-formed. They are immutable and thread-safe,
// making them suitable for concurrent use.
package kernel
