package finder

import "fmt"

// Kind identifies the pipeline stage an error came from.
type Kind int

const (
	KindTraversal Kind = iota
	KindSignature
	KindExtraction
	KindMetadata

	numKinds
)

var kindNames = [numKinds]string{
	KindTraversal:  "traversal",
	KindSignature:  "signature",
	KindExtraction: "extraction",
	KindMetadata:   "metadata",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// StageError is a per-file failure. It never aborts a run; the file is dropped
// from the output (or, for KindMetadata, only its metadata section is).
type StageError struct {
	Kind Kind
	Path string
	Err  error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s error for %s: %v", e.Kind, e.Path, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
