// Package compute provides the CPU and GPU backends forces dispatch to.
//
// A backend is chosen once, when a force is built, from the context's
// execution mode:
//
//	backend, err := compute.Select(ctx.ExecMode())
//	res := backend.Run(len(pairs), pd.N(), kernel)
//
// [Select] never falls back silently: an unknown mode is an
// *md.ConfigurationError wrapping md.ErrUnknownMode.
//
// # GPU Support
//
// Build with the cuda tag to link the device query against libcudart:
//
//	go build -tags cuda ./...
//
// Without the tag the GPU backend reports itself unavailable and evaluates
// kernels on the host worker pool, so GPU-mode configurations stay runnable
// on machines without a device.
package compute
