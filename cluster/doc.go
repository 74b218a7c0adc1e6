// Package cluster isolates the leftmost label column on a multi-label page.
//
// Pages in a label sheet carry k horizontally repeated label instances. The
// [ColumnClusterer] runs a fixed-budget 1-D k-means over the x-centers of the
// page's text fragments, keeps the cluster with the smallest final center,
// and returns a padded tight bounding box around that cluster's fragments,
// clamped to the page.
//
// The iteration count is fixed at ten rounds rather than convergence-checked.
// This bounds the compute per page and keeps results stable on pathological
// inputs; replacing it with an early-exit rule can change which fragments
// land in the leftmost cluster.
//
// # Usage
//
//	clusterer := cluster.NewColumnClusterer()
//	region := clusterer.LeftmostColumn(fragments, dims)
//
// With custom configuration:
//
//	cfg := cluster.DefaultConfig()
//	cfg.Columns = 4
//	clusterer := cluster.NewColumnClustererWithConfig(cfg)
package cluster
