// Package assetcache decodes visual assets once and shares them across
// frames and goroutines.
package assetcache
