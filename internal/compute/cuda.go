//go:build cuda

package compute

/*
#cgo CFLAGS: -I/opt/cuda/include
#cgo LDFLAGS: -L/opt/cuda/lib64 -lcudart
#include <stdio.h>
#include <cuda_runtime_api.h>

static int cuda_device_count() {
	int n = 0;
	if (cudaGetDeviceCount(&n) != cudaSuccess) {
		return 0;
	}
	return n;
}

static void cuda_device_name(char* buf, int len) {
	struct cudaDeviceProp prop;
	if (cudaGetDeviceProperties(&prop, 0) == cudaSuccess) {
		snprintf(buf, len, "%s", prop.name);
	}
}
*/
import "C"
import "unsafe"

// GPUBackend binds to CUDA device 0. Kernels are staged through the host
// worker pool until device kernels are linked for them.
type GPUBackend struct {
	available  bool
	deviceName string
	host       *CPUBackend
}

func NewGPUBackend() *GPUBackend {
	count := int(C.cuda_device_count())
	name := ""
	if count > 0 {
		buf := make([]byte, 256)
		C.cuda_device_name((*C.char)(unsafe.Pointer(&buf[0])), C.int(len(buf)))
		name = C.GoString((*C.char)(unsafe.Pointer(&buf[0])))
	}
	return &GPUBackend{
		available:  count > 0,
		deviceName: name,
		host:       NewCPUBackend(0),
	}
}

func (g *GPUBackend) Name() string {
	if g.available {
		return "gpu (" + g.deviceName + ")"
	}
	return "gpu (not available, host emulation)"
}

func (g *GPUBackend) Mode() Mode      { return ModeGPU }
func (g *GPUBackend) Available() bool { return g.available }
func (g *GPUBackend) Cleanup()        {}

func (g *GPUBackend) Run(n, nParticles int, kernel Kernel) *Accumulator {
	return g.host.Run(n, nParticles, kernel)
}
