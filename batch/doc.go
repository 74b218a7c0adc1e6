// Package batch orchestrates label extraction across the pages of one or
// more documents.
//
// The analysis itself (clustering, identifier extraction, crop geometry) is
// pure and per-page; this package supplies the run-level state and policy
// around it:
//
//   - [Aggregator] - groups pages by identifier in first-occurrence order,
//     dropping or collecting duplicates depending on the variant
//   - [ReferenceCell] - the single-assignment first-seen reference size,
//     with an exactly-once write guarantee safe under concurrent use
//   - [Runner] - sequential per-page processing (hangtag variant)
//   - [CartonRunner] - per-document processing driven by the raster content
//     mask (carton variant)
//
// [Runner.RunParallel] implements the two-pass parallel design: a first
// synchronous pass analyzes pages and establishes the reference size, then a
// second pass renders all labels concurrently. The reference size is fully
// established before any render starts, so every output shares it.
package batch
