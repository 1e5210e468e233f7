// Package zenframe contains the core components of zenframe, an in-memory
// columnar storage and indexing engine. This root package defines the public
// value types and interfaces employed during regular use of the engine, as
// well as in its extension, and is an excellent overview of zenframe's key
// concepts: Indexes, Columns, Tables, the absence marker NA and the
// functional transform operations defined over them.
package zenframe
