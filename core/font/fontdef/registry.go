package fontdef

import (
	"fmt"
	"strings"
	"sync"

	"github.com/npillmayer/lcdfont/core"
)

// Registry is the set of font slots of the renderer.
type Registry struct {
	sync.Mutex
	slots map[uint8]*Descriptor
	def   uint8
}

// DefaultSlots is the number of slots of the renderer.
const DefaultSlots = 4

var globalRegistry *Registry

var globalRegistryCreation sync.Once

// GlobalRegistry is an application-wide registry with DefaultSlots slots.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalRegistry = NewRegistry(DefaultSlots)
	})
	return globalRegistry
}

// NewRegistry creates a registry with slots 0…n-1. Slot 0 holds the default
// font.
func NewRegistry(n int) *Registry {
	reg := &Registry{slots: make(map[uint8]*Descriptor, n)}
	for i := 0; i < n && i < 256; i++ {
		reg.slots[uint8(i)] = &Descriptor{FontCode: uint8(i)}
	}
	return reg
}

// Query returns the descriptor in slot id.
func (reg *Registry) Query(id uint8) (Descriptor, bool) {
	if reg == nil {
		return Descriptor{}, false
	}
	reg.Lock()
	defer reg.Unlock()
	d, ok := reg.slots[id]
	if !ok {
		return Descriptor{}, false
	}
	return *d, true
}

// Default returns the descriptor of the default slot, or a zero descriptor if
// the registry has no slots.
func (reg *Registry) Default() Descriptor {
	d, _ := reg.Query(reg.defaultSlot())
	return d
}

func (reg *Registry) defaultSlot() uint8 {
	if reg == nil {
		return 0
	}
	return reg.def
}

func (reg *Registry) store(id uint8, d Descriptor) bool {
	if reg == nil {
		return false
	}
	reg.Lock()
	defer reg.Unlock()
	slot, ok := reg.slots[id]
	if !ok {
		return false
	}
	*slot = d
	return true
}

// Len returns the number of slots.
func (reg *Registry) Len() int {
	if reg == nil {
		return 0
	}
	reg.Lock()
	defer reg.Unlock()
	return len(reg.slots)
}

// LogSlots dumps the slots to the trace (level Info).
func (reg *Registry) LogSlots() {
	reg.Lock()
	defer reg.Unlock()
	tracer().Infof("--- font slots ---")
	for i := 0; i < 256; i++ {
		if d, ok := reg.slots[uint8(i)]; ok {
			tracer().Infof("slot [%d] = %q (%d glyphs)", i, d.FontName, d.WideCount)
		}
	}
	tracer().Infof("------------------")
}

// Install creates the factories in slots 0, 1, … of reg, in order, with zero
// spacing and options. Factories beyond the last slot are not installed; the
// error returned for them carries code EMISSING and is not fatal.
func Install(reg *Registry, factories []Factory) error {
	var missing []string
	n := reg.Len()
	for i, f := range factories {
		if i >= n {
			missing = append(missing, f.Name())
			continue
		}
		f.Create(reg, uint8(i), 0, 0, 0)
	}
	if len(missing) > 0 {
		return fmt.Errorf("no font slot for %s: %w", strings.Join(missing, ", "),
			core.ErrorWithCode(nil, core.EMISSING))
	}
	return nil
}
