package generatedresumes

import "errors"

// ErrNotFound means no archived resume with that ID belongs to the caller.
// Missing and foreign records are not distinguished.
var ErrNotFound = errors.New("generated resume not found")
