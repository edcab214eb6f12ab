package commands

import "errors"

// FileUpload is the raw media attached to a mutation, handed to the
// upload collaborator before any store write.
type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Validate rejects empty or nameless uploads before any upload call.
func (f FileUpload) Validate() error {
	if len(f.Data) == 0 {
		return errors.New("uploaded file is empty")
	}
	if f.Filename == "" {
		return errors.New("uploaded file has no name")
	}
	return nil
}

// CreateAlbumCommand creates an album with an uploaded thumbnail.
type CreateAlbumCommand struct {
	Title       string
	Description string
	Thumbnail   FileUpload
}

// Validate validates the CreateAlbumCommand.
func (c CreateAlbumCommand) Validate() error {
	if c.Title == "" {
		return errors.New("title is required")
	}
	if c.Description == "" {
		return errors.New("description is required")
	}
	return c.Thumbnail.Validate()
}

// CreateSongCommand creates a song with an uploaded audio file.
// AlbumID is optional; when set it must resolve to an existing album.
type CreateSongCommand struct {
	Title       string
	Description string
	AlbumID     string
	Audio       FileUpload
}

// Validate validates the CreateSongCommand.
func (c CreateSongCommand) Validate() error {
	if c.Title == "" {
		return errors.New("title is required")
	}
	if c.Description == "" {
		return errors.New("description is required")
	}
	return c.Audio.Validate()
}

// SetSongThumbnailCommand attaches an uploaded thumbnail to a song.
type SetSongThumbnailCommand struct {
	SongID    string
	Thumbnail FileUpload
}

// Validate validates the SetSongThumbnailCommand.
func (c SetSongThumbnailCommand) Validate() error {
	if c.SongID == "" {
		return errors.New("song ID is required")
	}
	return c.Thumbnail.Validate()
}

// DeleteAlbumCommand deletes an album and, cascading, its songs.
type DeleteAlbumCommand struct {
	AlbumID string
}

// Validate validates the DeleteAlbumCommand.
func (c DeleteAlbumCommand) Validate() error {
	if c.AlbumID == "" {
		return errors.New("album ID is required")
	}
	return nil
}

// DeleteSongCommand deletes a single song.
type DeleteSongCommand struct {
	SongID string
}

// Validate validates the DeleteSongCommand.
func (c DeleteSongCommand) Validate() error {
	if c.SongID == "" {
		return errors.New("song ID is required")
	}
	return nil
}
