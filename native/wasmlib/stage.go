package wasmlib

import (
	"encoding/binary"
	"math"

	umfbridge "github.com/sparsekit/umfbridge"
)

// arena stages host slices into guest memory for one native call and
// releases every staged block afterwards.
type arena struct {
	mem   umfbridge.Memory
	alloc umfbridge.Allocator

	blocks []stagedBlock
	err    error
}

type stagedBlock struct {
	ptr, size, align uint32
}

func newArena(mem umfbridge.Memory, alloc umfbridge.Allocator) *arena {
	return &arena{mem: mem, alloc: alloc}
}

// push allocates and writes one block. On the first failure the arena
// latches the error and every later push becomes a no-op, so call
// sites can stage a full argument list and check once.
func (a *arena) push(data []byte, align uint32) uint32 {
	if a.err != nil {
		return 0
	}
	size := uint32(len(data))
	if size == 0 {
		return 0
	}
	ptr, err := a.alloc.Alloc(size, align)
	if err != nil {
		a.err = err
		return 0
	}
	a.blocks = append(a.blocks, stagedBlock{ptr: ptr, size: size, align: align})
	if err := a.mem.Write(ptr, data); err != nil {
		a.err = err
		return 0
	}
	return ptr
}

func (a *arena) f64s(s []float64) uint32 {
	buf := make([]byte, 8*len(s))
	for i, v := range s {
		binary.LittleEndian.PutUint64(buf[8*i:], math.Float64bits(v))
	}
	return a.push(buf, 8)
}

func (a *arena) i32s(s []int32) uint32 {
	buf := make([]byte, 4*len(s))
	for i, v := range s {
		binary.LittleEndian.PutUint32(buf[4*i:], uint32(v))
	}
	return a.push(buf, 4)
}

// slot stages one pointer-sized guest cell holding an initial value.
func (a *arena) slot(initial uint32) uint32 {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, initial)
	return a.push(buf, 4)
}

func (a *arena) release() {
	for i := len(a.blocks) - 1; i >= 0; i-- {
		b := a.blocks[i]
		a.alloc.Free(b.ptr, b.size, b.align)
	}
	a.blocks = a.blocks[:0]
}

// Read-back helpers for writable arguments.

func readF64s(mem umfbridge.Memory, ptr uint32, dst []float64) error {
	if ptr == 0 || len(dst) == 0 {
		return nil
	}
	raw, err := mem.Read(ptr, uint32(8*len(dst)))
	if err != nil {
		return err
	}
	for i := range dst {
		dst[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[8*i:]))
	}
	return nil
}

func readI32s(mem umfbridge.Memory, ptr uint32, dst []int32) error {
	if ptr == 0 || len(dst) == 0 {
		return nil
	}
	raw, err := mem.Read(ptr, uint32(4*len(dst)))
	if err != nil {
		return err
	}
	for i := range dst {
		dst[i] = int32(binary.LittleEndian.Uint32(raw[4*i:]))
	}
	return nil
}
