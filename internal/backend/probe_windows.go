//go:build windows

package backend

import (
	"github.com/staticvec-ml/staticvec/internal/backend/webgpu"
	"github.com/staticvec-ml/staticvec/internal/tensor"
)

// probeWebGPU attempts to initialize a WebGPU backend.
// Returns nil when no adapter is available.
func probeWebGPU() tensor.Backend {
	gpu, err := webgpu.New()
	if err != nil {
		return nil
	}
	return gpu
}

// releaseBackend frees GPU resources held by a probe backend.
func releaseBackend(b tensor.Backend) {
	if gpu, ok := b.(*webgpu.Backend); ok {
		gpu.Release()
	}
}
