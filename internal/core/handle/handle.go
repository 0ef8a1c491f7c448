package handle

// Handle encodes a 32-bit slot index in the lower bits and a 32-bit generation
// in the upper bits. The generation lets callers detect stale references to a
// slot that has since been retired. Generations start at 1, so the zero Handle
// is never live and IsZero doubles as a validity check.
type Handle uint64

func New(index uint32, generation uint32) Handle {
	return Handle(uint64(generation)<<32 | uint64(index))
}

func (h Handle) Index() uint32      { return uint32(h) }
func (h Handle) Generation() uint32 { return uint32(h >> 32) }
func (h Handle) IsZero() bool       { return h == 0 }

// Allocator hands out generational handles with a free list. Pooled
// projectiles keep their handle for the process lifetime, so Retire only
// matters for hosts that tear entities down outside the pool.
type Allocator struct {
	generations []uint32
	freeList    []uint32
	nextIndex   uint32
}

func NewAllocator() *Allocator {
	return &Allocator{
		generations: make([]uint32, 0, 256),
		freeList:    make([]uint32, 0, 64),
	}
}

func (a *Allocator) Create() Handle {
	if len(a.freeList) > 0 {
		idx := a.freeList[len(a.freeList)-1]
		a.freeList = a.freeList[:len(a.freeList)-1]
		return New(idx, a.generations[idx])
	}
	idx := a.nextIndex
	a.nextIndex++
	if int(idx) >= len(a.generations) {
		// Fresh slots begin at generation 1: New(0, 0) must stay reserved
		// as the zero Handle.
		a.generations = append(a.generations, 1)
	}
	return New(idx, a.generations[idx])
}

func (a *Allocator) Alive(h Handle) bool {
	idx := h.Index()
	if idx >= a.nextIndex {
		return false
	}
	return a.generations[idx] == h.Generation()
}

// Retire invalidates a handle by bumping its slot generation and returning
// the slot to the free list. No-op for stale or out-of-range handles.
func (a *Allocator) Retire(h Handle) {
	idx := h.Index()
	if idx >= a.nextIndex {
		return
	}
	if a.generations[idx] != h.Generation() {
		return
	}
	a.generations[idx]++
	a.freeList = append(a.freeList, idx)
}
