//go:build !(cgo && (linux || freebsd || openbsd || netbsd || dragonfly || darwin || windows)) && !((linux || freebsd || openbsd || netbsd || dragonfly) && !cgo)

package clipboard

func newBackend() (backend, error) { return nil, errUnsupported }
