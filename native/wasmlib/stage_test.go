package wasmlib

import (
	"encoding/binary"
	"fmt"
	"testing"

	umfbridge "github.com/sparsekit/umfbridge"
)

// fakeMemory is a flat in-process guest memory with a bump allocator.
type fakeMemory struct {
	data  []byte
	next  uint32
	frees []uint32
	fail  bool
}

func newFakeMemory(size uint32) *fakeMemory {
	// keep offset 0 as the null pointer
	return &fakeMemory{data: make([]byte, size), next: 8}
}

func (m *fakeMemory) Read(off, length uint32) ([]byte, error) {
	if int(off)+int(length) > len(m.data) {
		return nil, fmt.Errorf("read [%d,%d) out of bounds", off, off+length)
	}
	return m.data[off : off+length], nil
}

func (m *fakeMemory) Write(off uint32, data []byte) error {
	if m.fail {
		return fmt.Errorf("write fault at %d", off)
	}
	if int(off)+len(data) > len(m.data) {
		return fmt.Errorf("write [%d,%d) out of bounds", off, int(off)+len(data))
	}
	copy(m.data[off:], data)
	return nil
}

func (m *fakeMemory) ReadU32(off uint32) (uint32, error) {
	raw, err := m.Read(off, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(raw), nil
}

func (m *fakeMemory) ReadU64(off uint32) (uint64, error) {
	raw, err := m.Read(off, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(raw), nil
}

func (m *fakeMemory) WriteU32(off, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return m.Write(off, buf[:])
}

func (m *fakeMemory) WriteU64(off uint32, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return m.Write(off, buf[:])
}

func (m *fakeMemory) Alloc(size, align uint32) (uint32, error) {
	if align != 0 && m.next%align != 0 {
		m.next += align - m.next%align
	}
	if int(m.next)+int(size) > len(m.data) {
		return 0, fmt.Errorf("guest heap exhausted")
	}
	ptr := m.next
	m.next += size
	return ptr, nil
}

func (m *fakeMemory) Free(ptr, size, align uint32) {
	m.frees = append(m.frees, ptr)
}

var (
	_ umfbridge.Memory    = (*fakeMemory)(nil)
	_ umfbridge.Allocator = (*fakeMemory)(nil)
)

func TestArenaRoundTrip(t *testing.T) {
	mem := newFakeMemory(1 << 16)
	a := newArena(mem, mem)

	fs := []float64{1.5, -2.25, 0}
	is := []int32{0, 2, 1, -7}
	fp := a.f64s(fs)
	ip := a.i32s(is)
	if a.err != nil {
		t.Fatalf("staging: %v", a.err)
	}
	if fp%8 != 0 || ip%4 != 0 {
		t.Fatalf("misaligned blocks: %d %d", fp, ip)
	}

	gotF := make([]float64, len(fs))
	if err := readF64s(mem, fp, gotF); err != nil {
		t.Fatalf("read back floats: %v", err)
	}
	gotI := make([]int32, len(is))
	if err := readI32s(mem, ip, gotI); err != nil {
		t.Fatalf("read back ints: %v", err)
	}
	for i := range fs {
		if gotF[i] != fs[i] {
			t.Fatalf("f64[%d] = %v, want %v", i, gotF[i], fs[i])
		}
	}
	for i := range is {
		if gotI[i] != is[i] {
			t.Fatalf("i32[%d] = %v, want %v", i, gotI[i], is[i])
		}
	}
	a.release()
}

func TestArenaNilSlicesStageNull(t *testing.T) {
	mem := newFakeMemory(1 << 12)
	a := newArena(mem, mem)
	if p := a.f64s(nil); p != 0 {
		t.Fatalf("empty slice staged at %d", p)
	}
	if p := a.i32s(nil); p != 0 {
		t.Fatalf("empty slice staged at %d", p)
	}
	if a.err != nil {
		t.Fatalf("unexpected error: %v", a.err)
	}
	if len(a.blocks) != 0 {
		t.Fatalf("null stages recorded blocks: %d", len(a.blocks))
	}
}

func TestArenaSlot(t *testing.T) {
	mem := newFakeMemory(1 << 12)
	a := newArena(mem, mem)
	p := a.slot(0xdeadbeef)
	if a.err != nil {
		t.Fatalf("slot: %v", a.err)
	}
	v, err := mem.ReadU32(p)
	if err != nil {
		t.Fatalf("read slot: %v", err)
	}
	if v != 0xdeadbeef {
		t.Fatalf("slot value %#x", v)
	}
}

func TestArenaLatchesFirstError(t *testing.T) {
	mem := newFakeMemory(64) // too small for the second push
	a := newArena(mem, mem)

	a.f64s(make([]float64, 4))
	a.f64s(make([]float64, 100))
	first := a.err
	if first == nil {
		t.Fatal("oversized push must fail")
	}
	// Later pushes are no-ops and keep the original error.
	if p := a.i32s([]int32{1}); p != 0 {
		t.Fatalf("push after error staged at %d", p)
	}
	if a.err != first {
		t.Fatalf("latched error replaced: %v", a.err)
	}
	a.release()
}

func TestArenaReleasesReverseOrder(t *testing.T) {
	mem := newFakeMemory(1 << 12)
	a := newArena(mem, mem)
	p1 := a.f64s([]float64{1})
	p2 := a.i32s([]int32{2})
	p3 := a.slot(3)
	if a.err != nil {
		t.Fatalf("staging: %v", a.err)
	}
	a.release()
	want := []uint32{p3, p2, p1}
	if len(mem.frees) != len(want) {
		t.Fatalf("frees: %v", mem.frees)
	}
	for i := range want {
		if mem.frees[i] != want[i] {
			t.Fatalf("free order %v, want %v", mem.frees, want)
		}
	}
	if len(a.blocks) != 0 {
		t.Fatal("release must clear the block list")
	}
}

func TestArenaWriteFaultLatched(t *testing.T) {
	mem := newFakeMemory(1 << 12)
	mem.fail = true
	a := newArena(mem, mem)
	if p := a.f64s([]float64{1}); p != 0 {
		t.Fatalf("faulted write staged at %d", p)
	}
	if a.err == nil {
		t.Fatal("write fault must latch")
	}
	// The block was allocated before the write failed, release still
	// frees it.
	a.release()
	if len(mem.frees) != 1 {
		t.Fatalf("frees after fault: %v", mem.frees)
	}
}
