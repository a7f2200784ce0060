// Package wasmlib runs a WebAssembly build of the solver library under
// wazero and adapts its exports to the native routine tables. Every
// call stages the compressed arrays into guest linear memory, invokes
// the export, and copies writable buffers back out.
//
// The guest is a 32-bit address space, so only the int32 index families
// are available; the 64-bit tables are left nil and the dispatcher
// reports them as not compiled in.
//
// Memory staging goes through the Memory and Allocator interfaces of
// the root package, which a test can satisfy with an in-process fake.
package wasmlib
