// Package pipeline orchestrates a full composition run: transcript loading,
// synchronization or scene segmentation, visual assignment, ticker rendering,
// and the final layer document, with progress recorded in the run store under
// a single-writer workspace lock.
package pipeline
