package envq

// Native error codes shared by every backend. The values are Windows system
// error codes; the portable backend reports the same ones so callers see one
// taxonomy everywhere.
const (
	codeSuccess        uint32 = 0
	codeGenFailure     uint32 = 31  // ERROR_GEN_FAILURE
	codeEnvVarNotFound uint32 = 203 // ERROR_ENVVAR_NOT_FOUND
)

// Querier is the size-then-fill collaborator behind the resolver. Every call
// has the same shape: with a nil buffer it reports the buffer length the
// value needs, with a buffer it fills it and reports the length written or,
// when the buffer is too small, the length required now. The second return
// value is the native error code of the call, codeSuccess when the call did
// not fail.
//
// Implementations must not lean on a process-global error register: where
// the underlying interface needs one pre-cleared (the search-path query
// does), that happens inside the implementation and the outcome is returned
// as an explicit code.
type Querier interface {
	ExpandStrings(template string, buf []uint16) (uint32, uint32)
	EnvironmentVariable(name string, buf []uint16) (uint32, uint32)
	CurrentDirectory(buf []uint16) (uint32, uint32)
	SearchPathDirectory(buf []uint16) (uint32, uint32)
}
