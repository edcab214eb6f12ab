// Package cachekeys is the single definition of the cache key scheme.
// The query service computes keys here when reading, and the mutation
// service computes the same keys when invalidating, so the two
// processes can never disagree on naming.
package cachekeys

import "fmt"

// Albums is the key for the full album listing.
func Albums() string { return "albums" }

// Songs is the key for the full song listing.
func Songs() string { return "songs" }

// AlbumSongs is the key for one album's song listing.
func AlbumSongs(albumID string) string {
	return fmt.Sprintf("album:%s:songs", albumID)
}

// Song is the key for a single song.
func Song(id string) string {
	return fmt.Sprintf("song:%s", id)
}
