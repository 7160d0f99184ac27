// Package visuals loads image manifests and assigns assets to scenes in a
// deterministic round-robin with a fixed effect cycle.
package visuals
