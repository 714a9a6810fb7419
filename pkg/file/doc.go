// Package file inspects uploaded files and checks objects in local or S3
// backends.
//
// Inspect turns a *multipart.FileHeader into an Info with its content type
// sniffed from magic bytes, so a renamed extension cannot pass as an image or
// a PDF. The validator package's file rules accept both values.
//
// A Store answers two questions about a backend: does an object exist, and
// what does it look like. Two implementations are provided:
//   - LocalStore: files below a base directory, with traversal protection
//   - S3Store: AWS S3 and S3-compatible services (MinIO, Wasabi, etc.)
//
// # Usage
//
//	store, err := file.NewS3Store(ctx, file.S3Config{
//	    Bucket: "uploads",
//	    Region: "eu-central-1",
//	})
//	if err != nil {
//	    return err
//	}
//
//	ok, err := store.Exists(ctx, "avatars/42.png")
//
// Missing objects are reported as (false, nil). Access and transport problems
// are returned as errors wrapping ErrAccessDenied, ErrServiceUnavailable and
// friends so callers can tell a negative answer from a broken backend.
package file
