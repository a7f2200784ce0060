package wasmlib

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	umfbridge "github.com/sparsekit/umfbridge"
	"github.com/sparsekit/umfbridge/errors"
	"github.com/sparsekit/umfbridge/native"
)

// Module is one instantiated solver guest.
type Module struct {
	ctx     context.Context
	runtime wazero.Runtime
	mod     api.Module
	mem     umfbridge.Memory
	alloc   umfbridge.Allocator
}

// New compiles and instantiates a WebAssembly solver build. The guest
// must export linear memory, malloc and free, and the umfpack_di and
// umfpack_zi call surface.
func New(ctx context.Context, wasm []byte) (*Module, error) {
	r := wazero.NewRuntime(ctx)
	wasi_snapshot_preview1.MustInstantiate(ctx, r)

	mod, err := r.InstantiateWithConfig(ctx, wasm,
		wazero.NewModuleConfig().WithName("umfpack"))
	if err != nil {
		_ = r.Close(ctx)
		return nil, errors.Wrap(errors.PhaseNative, errors.KindInvalidInput, err, "instantiating solver guest")
	}
	m := &Module{ctx: ctx, runtime: r, mod: mod}
	m.mem = guestMemory{mem: mod.Memory()}
	alloc, err := newGuestAllocator(ctx, mod)
	if err != nil {
		_ = r.Close(ctx)
		return nil, err
	}
	m.alloc = alloc
	return m, nil
}

// Close releases the guest and its runtime.
func (m *Module) Close() error {
	return m.runtime.Close(m.ctx)
}

// Memory exposes guest linear memory.
func (m *Module) Memory() umfbridge.Memory { return m.mem }

// Library adapts the guest exports to routine tables. The 64-bit
// families are nil, a 32-bit guest cannot index beyond them.
func (m *Module) Library() *native.Library {
	return &native.Library{
		DI:   m.routines("di", false),
		ZI:   m.routines("zi", true),
		Name: "wasm",
	}
}

func (m *Module) call(name string, args ...uint64) (uint64, error) {
	fn := m.mod.ExportedFunction(name)
	if fn == nil {
		return 0, errors.InvalidInput(errors.PhaseNative,
			fmt.Sprintf("guest does not export %s", name))
	}
	res, err := fn.Call(m.ctx, args...)
	if err != nil {
		return 0, errors.Wrap(errors.PhaseNative, errors.KindStatus, err, name)
	}
	if len(res) == 0 {
		return 0, nil
	}
	return res[0], nil
}

// guestMemory adapts wazero linear memory to the Memory interface.
type guestMemory struct {
	mem api.Memory
}

func (g guestMemory) Read(offset, length uint32) ([]byte, error) {
	b, ok := g.mem.Read(offset, length)
	if !ok {
		return nil, errors.InvalidInput(errors.PhaseNative, "guest memory read out of range")
	}
	return b, nil
}

func (g guestMemory) Write(offset uint32, data []byte) error {
	if !g.mem.Write(offset, data) {
		return errors.InvalidInput(errors.PhaseNative, "guest memory write out of range")
	}
	return nil
}

func (g guestMemory) ReadU32(offset uint32) (uint32, error) {
	v, ok := g.mem.ReadUint32Le(offset)
	if !ok {
		return 0, errors.InvalidInput(errors.PhaseNative, "guest memory read out of range")
	}
	return v, nil
}

func (g guestMemory) ReadU64(offset uint32) (uint64, error) {
	v, ok := g.mem.ReadUint64Le(offset)
	if !ok {
		return 0, errors.InvalidInput(errors.PhaseNative, "guest memory read out of range")
	}
	return v, nil
}

func (g guestMemory) WriteU32(offset, value uint32) error {
	if !g.mem.WriteUint32Le(offset, value) {
		return errors.InvalidInput(errors.PhaseNative, "guest memory write out of range")
	}
	return nil
}

func (g guestMemory) WriteU64(offset uint32, value uint64) error {
	if !g.mem.WriteUint64Le(offset, value) {
		return errors.InvalidInput(errors.PhaseNative, "guest memory write out of range")
	}
	return nil
}

// guestAllocator allocates through the guest's own malloc and free so
// staged buffers live where the solver expects them.
type guestAllocator struct {
	ctx    context.Context
	malloc api.Function
	free   api.Function
}

func newGuestAllocator(ctx context.Context, mod api.Module) (*guestAllocator, error) {
	malloc := mod.ExportedFunction("malloc")
	free := mod.ExportedFunction("free")
	if malloc == nil || free == nil {
		return nil, errors.InvalidInput(errors.PhaseNative, "guest does not export malloc and free")
	}
	return &guestAllocator{ctx: ctx, malloc: malloc, free: free}, nil
}

func (a *guestAllocator) Alloc(size, align uint32) (uint32, error) {
	res, err := a.malloc.Call(a.ctx, uint64(size))
	if err != nil {
		return 0, errors.Wrap(errors.PhaseNative, errors.KindStatus, err, "guest malloc")
	}
	ptr := uint32(res[0])
	if ptr == 0 {
		return 0, errors.InvalidInput(errors.PhaseNative, "guest malloc returned null")
	}
	return ptr, nil
}

func (a *guestAllocator) Free(ptr, size, align uint32) {
	if ptr == 0 {
		return
	}
	_, _ = a.free.Call(a.ctx, uint64(ptr))
}
