// Package snirf binds the SNIRF neuroimaging recording schema onto a
// hierarchical container store (see the container subpackage) and provides:
//
// - A typed object graph mirroring the container's group/dataset layout
//   (Snirf -> Nirs -> Probe/Data/Stim/Aux/MetaDataTags)
// - Eager or lazy materialization of that graph from an opened store
// - A rule-based validator producing coded, location-tagged diagnostics
//   through ValidationResult
// - Serialization back to a container: in place, to a new path, to a
//   stream, or into a fresh in-memory store (Copy)
//
// Design policy:
// - Keep the public schema surface in the root package; the store
//   collaborator lives under container/ and the CLI under cmd/snirf.
// - Usage and I/O errors are Go errors. Schema non-conformance of the data
//   itself is never a Go error; it is always collected into
//   ValidationResult so one Validate call reports every problem.
//
// Typical usage:
//
//	doc, err := snirf.Load("scan.snirf")
//	if err != nil { ... }
//	defer doc.Close()
//
//	result, _ := doc.Validate()
//	if !result.Valid() {
//		for _, is := range result.Issues() { ... }
//	}
package snirf
