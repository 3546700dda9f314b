//go:build !cuda

package compute

// GPUBackend without the cuda build tag: no device, kernels run on the host
// worker pool.
type GPUBackend struct {
	host *CPUBackend
}

func NewGPUBackend() *GPUBackend {
	return &GPUBackend{host: NewCPUBackend(0)}
}

func (g *GPUBackend) Name() string    { return "gpu (not available, host emulation)" }
func (g *GPUBackend) Mode() Mode      { return ModeGPU }
func (g *GPUBackend) Available() bool { return false }
func (g *GPUBackend) Cleanup()        {}

func (g *GPUBackend) Run(n, nParticles int, kernel Kernel) *Accumulator {
	return g.host.Run(n, nParticles, kernel)
}
