// Package envq resolves OS environment queries whose result size is not
// known up front. The underlying interface is a pair of calls: one to learn
// the buffer length a value needs, one to fill a buffer of that length. The
// value can change between the two calls, so the resolver re-sizes and
// retries until both calls agree, with a bounded number of attempts.
//
// Four queries share the loop but differ in how they report the empty, the
// absent, and the failed case; each one is described by a convention and
// instantiated against a Querier backend. The default backend issues the
// real OS calls on Windows and an exact emulation of their conventions
// elsewhere.
package envq
