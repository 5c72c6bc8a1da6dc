//go:build !soda

package soda

// Without the "soda" build tag the native library is not linked. The stub
// keeps the package buildable everywhere; Build fails with
// ErrEngineUnavailable instead of failing at link time.
type stubEngine struct{}

var defaultBinding engineBinding = stubEngine{}

func (stubEngine) available() bool { return false }

func (stubEngine) create(cfg *Config, id uintptr) (uintptr, error) {
	return 0, ErrEngineUnavailable
}

func (stubEngine) addAudio(handle uintptr, chunk []byte) {}

func (stubEngine) destroy(handle uintptr) {}

func (stubEngine) createExtended(serializedConfig []byte, id uintptr) (uintptr, error) {
	return 0, ErrEngineUnavailable
}

func (stubEngine) start(handle uintptr) {}

func (stubEngine) addAudioExtended(handle uintptr, chunk []byte) {}

func (stubEngine) destroyExtended(handle uintptr) {}
