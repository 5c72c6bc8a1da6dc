package soda

import "sync"

// fakeEngine is an in-process stand-in for the native library. It records
// every call crossing the boundary and can emit events back through the
// same dispatch path the cgo trampolines use, including from other
// goroutines to mimic engine-internal threads.
type fakeEngine struct {
	mu sync.Mutex

	createErr error

	cfg        *Config
	serialized []byte
	id         uintptr
	pushes     [][]byte
	started    int
	destroyed  int
}

var _ engineBinding = (*fakeEngine)(nil)

func (f *fakeEngine) available() bool { return true }

func (f *fakeEngine) create(cfg *Config, id uintptr) (uintptr, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.id = id
	if f.createErr != nil {
		return 0, f.createErr
	}
	c := *cfg
	f.cfg = &c
	return 0xBEEF, nil
}

func (f *fakeEngine) addAudio(handle uintptr, chunk []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushes = append(f.pushes, append([]byte(nil), chunk...))
}

func (f *fakeEngine) destroy(handle uintptr) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed++
}

func (f *fakeEngine) createExtended(serializedConfig []byte, id uintptr) (uintptr, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.id = id
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.serialized = append([]byte(nil), serializedConfig...)
	return 0xF00D, nil
}

func (f *fakeEngine) start(handle uintptr) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started++
}

func (f *fakeEngine) addAudioExtended(handle uintptr, chunk []byte) {
	f.addAudio(handle, chunk)
}

func (f *fakeEngine) destroyExtended(handle uintptr) {
	f.destroy(handle)
}

// emitText delivers a legacy-interface event as the engine would.
func (f *fakeEngine) emitText(text string, final bool) {
	f.mu.Lock()
	id := f.id
	f.mu.Unlock()
	dispatchText(id, text, final)
}

// emitSerialized delivers an extended-interface payload as the engine would.
func (f *fakeEngine) emitSerialized(payload []byte) {
	f.mu.Lock()
	id := f.id
	f.mu.Unlock()
	dispatchSerialized(id, payload)
}

func (f *fakeEngine) pushCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pushes)
}

func (f *fakeEngine) pushLens() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	lens := make([]int, len(f.pushes))
	for i, p := range f.pushes {
		lens[i] = len(p)
	}
	return lens
}

// newFakeBuilder returns a builder wired to a fresh fake engine.
func newFakeBuilder() (*Builder, *fakeEngine) {
	f := &fakeEngine{}
	b := NewBuilder()
	b.binding = f
	return b, f
}
