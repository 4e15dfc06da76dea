package ports

// Port: the environment's save/download mechanism for generated
// documents.
type DocumentSink interface {
	// Save persists a complete document under the given filename.
	Save(filename string, data []byte) error
}
