package platform

import "context"

// Client is the interface for the cloud-management API operations used by fizzcheck.
// Mocked in tests, real implementation speaks the CloudStack HTTP API.
type Client interface {
	// Credential check
	ListCapabilities(ctx context.Context) (*Capabilities, error)

	// FizzBuzz command
	FizzBuzz(ctx context.Context, req FizzBuzzRequest) (*FizzBuzzResponse, error)

	// Guest VMs
	ListVirtualMachines(ctx context.Context, params ListVirtualMachinesParams) ([]VirtualMachine, error)
	// DestroyVirtualMachine is async; the job is not awaited.
	DestroyVirtualMachine(ctx context.Context, vmID string, expunge bool) (*AsyncJob, error)
}

// InstanceCounter returns the number of guest workload instances on a platform.
// Used when a fizzBuzz input is not a number.
type InstanceCounter interface {
	CountInstances(ctx context.Context) (int, error)
}
