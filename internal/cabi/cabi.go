// Package cabi is Pulsar's C ABI shim: the cgo-exported surface a host
// written in C/C++ links against instead of the Go API directly. It mirrors
// parts of cpulsar/{core,parser}.h: opaque handles (never raw Go pointers,
// since cgo forbids storing a Go pointer to Go-managed memory in C memory),
// CPulsar_Malloc/Realloc/Free backed by C's allocator, and
// CPulsar_ParseResult_ToString. It defines no CBuffer type, so custom-type
// data cannot be exchanged through this package. Handles are small integers indexing into a
// package-level table, the same pattern pulsar-tools/bindings/module.h uses
// for its own handle table (m_NextHandle/m_Modules).
package cabi

/*
#include <stdlib.h>
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/pulsar-lang/pulsar/internal/module"
	"github.com/pulsar-lang/pulsar/internal/parser"
)

// handleTable assigns opaque int64 handles to Go values a C host holds onto
// across calls (a *parser.Parser, a *module.Module), without ever exposing
// a Go pointer across the cgo boundary.
type handleTable[T any] struct {
	mu      sync.Mutex
	next    int64
	entries map[int64]T
}

func newHandleTable[T any]() *handleTable[T] {
	return &handleTable[T]{next: 1, entries: make(map[int64]T)}
}

func (t *handleTable[T]) put(v T) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	h := t.next
	t.next++
	t.entries[h] = v
	return h
}

func (t *handleTable[T]) get(h int64) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.entries[h]
	return v, ok
}

func (t *handleTable[T]) delete(h int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, h)
}

var (
	parsers = newHandleTable[*parser.Parser]()
	modules = newHandleTable[*module.Module]()
)

// CPulsar_Malloc allocates size bytes from C's allocator, for a host that
// wants Pulsar-owned memory it frees with CPulsar_Free (or passes into a
// CBuffer's Free/Copy pair).
//
//export CPulsar_Malloc
func CPulsar_Malloc(size C.size_t) unsafe.Pointer {
	return C.malloc(size)
}

// CPulsar_Realloc resizes a block previously returned by CPulsar_Malloc.
//
//export CPulsar_Realloc
func CPulsar_Realloc(block unsafe.Pointer, size C.size_t) unsafe.Pointer {
	return C.realloc(block, size)
}

// CPulsar_Free releases a block previously returned by CPulsar_Malloc or
// CPulsar_Realloc.
//
//export CPulsar_Free
func CPulsar_Free(block unsafe.Pointer) {
	C.free(block)
}

// CPulsar_ParseResult_ToString renders a parser.ParseResult as a newly
// allocated C string the caller owns and must free with CPulsar_Free.
//
//export CPulsar_ParseResult_ToString
func CPulsar_ParseResult_ToString(result C.int) *C.char {
	return C.CString(parser.ParseResult(result).String())
}

// CPulsar_Parser_Create allocates a new Parser over source and returns its
// opaque handle. Handles start at 1 and creation always succeeds, since Go
// strings accept arbitrary bytes; 0 is never returned.
//
//export CPulsar_Parser_Create
func CPulsar_Parser_Create(source *C.char) C.longlong {
	p := parser.New(C.GoString(source))
	return C.longlong(parsers.put(p))
}

// CPulsar_Parser_Delete releases a Parser handle. Deleting an unknown or
// already-deleted handle is a no-op, matching CPulsar_*_Delete's documented
// tolerance of a NULL self.
//
//export CPulsar_Parser_Delete
func CPulsar_Parser_Delete(handle C.longlong) {
	parsers.delete(int64(handle))
}

// CPulsar_Module_Create allocates an empty Module and returns its handle.
//
//export CPulsar_Module_Create
func CPulsar_Module_Create() C.longlong {
	return C.longlong(modules.put(module.New()))
}

// CPulsar_Module_Delete releases a Module handle.
//
//export CPulsar_Module_Delete
func CPulsar_Module_Delete(handle C.longlong) {
	modules.delete(int64(handle))
}

// CPulsar_Parser_ParseIntoModule runs both compiler passes, lowering the
// parser's buffered source into the module at moduleHandle.
//
//export CPulsar_Parser_ParseIntoModule
func CPulsar_Parser_ParseIntoModule(parserHandle, moduleHandle C.longlong) C.int {
	p, ok := parsers.get(int64(parserHandle))
	if !ok {
		return C.int(parser.Error)
	}
	mod, ok := modules.get(int64(moduleHandle))
	if !ok {
		return C.int(parser.Error)
	}
	return C.int(p.ParseIntoModule(mod))
}

// CPulsar_Parser_GetErrorMessage returns the message for the parser's last
// error, as a C string the caller owns and must free with CPulsar_Free.
//
//export CPulsar_Parser_GetErrorMessage
func CPulsar_Parser_GetErrorMessage(parserHandle C.longlong) *C.char {
	p, ok := parsers.get(int64(parserHandle))
	if !ok {
		return C.CString("")
	}
	return C.CString(p.GetLastErrorMessage())
}
