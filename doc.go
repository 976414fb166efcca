// Package filegate turns a single HTTP endpoint into a file-storage CRUD
// surface: list, read, upload, rename, and delete files confined to a
// configured storage root. It is designed to be mounted into a larger
// HTTP-serving application as one interchangeable unit, not to run as a
// standalone server.
//
// # Operations
//
// Dispatch follows the HTTP method and the presence of the file path
// parameter:
//
//	GET    (no path)   list the storage root
//	GET    (with path) read a file
//	POST               upload one or more multipart files
//	MOVE               rename a file (target name in the Destination header)
//	DELETE (with path) delete a file
//
// # Mounting
//
// The handler implements http.Handler. With a Go 1.22 pattern the file path
// arrives as the "path" wildcard; with http.StripPrefix it is taken from the
// remaining URL path:
//
//	files := filegate.New(filegate.WithRoot("/var/data/uploads"))
//
//	mux := http.NewServeMux()
//	mux.Handle("/files", files)
//	mux.Handle("/files/{path...}", files)
//
// # Gates
//
// Each operation runs behind a configurable authorization gate: allow
// (default), deny, an ordered chain of steps, or an alias reusing another
// operation's gate. Steps run strictly one at a time; a step may reject with
// an error (403 with detail), write its own response (chain ends silently),
// or return nil to proceed:
//
//	requireToken := func(w http.ResponseWriter, r *http.Request) error {
//		if r.Header.Get("X-Token") != secret {
//			return errors.New("invalid token")
//		}
//		return nil
//	}
//
//	h := filegate.New(
//		filegate.WithRoot(dir),
//		filegate.WithGate(filegate.OpPost, filegate.Steps(requireToken)),
//		filegate.WithGate(filegate.OpList, filegate.Alias(filegate.OpPost)),
//		filegate.WithGate(filegate.OpDelete, filegate.Deny()),
//	)
//
// Move is denied by default and must be opened explicitly.
//
// # Uploads
//
// Multipart uploads are validated as a whole batch before any file is
// written: WithExpect sets a minimum file count, WithLimit a maximum, and
// the naming policy decides each file's destination (original upload name,
// the path parameter, or a parameter-named sub-directory). Post-processing
// steps receive the written batch via UploadedFiles and may replace the
// default "{}" success payload.
//
// # Storage roots and safety
//
// The storage root is static (WithRoot) or derived per request
// (WithRootFunc), for example per-tenant directories. Every path derived
// from request data is normalized and checked to remain inside the root;
// traversal attempts fail with "File outside of storage directory".
//
// Storage itself is pluggable through the storage.Storage capability, with
// local-filesystem and S3 backends included.
package filegate
