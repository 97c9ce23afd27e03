package graph

import "errors"

// Structural errors are always fatal to the operation that raised them and
// leave the store unchanged. They are matched with errors.Is.
var (
	ErrDuplicateNode     = errors.New("duplicate node")
	ErrDuplicateEdge     = errors.New("duplicate edge")
	ErrDanglingReference = errors.New("dangling reference")
	ErrNodeNotFound      = errors.New("node not found")
	ErrEdgeNotFound      = errors.New("edge not found")
	ErrCycle             = errors.New("graph has a cycle")
	ErrImmutableIdentity = errors.New("node identity is immutable")
)
