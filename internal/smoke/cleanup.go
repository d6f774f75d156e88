package smoke

import (
	"context"
	"errors"
	"fmt"

	"github.com/zeropsio/fizzcheck/internal/platform"
)

// Resource is a cloud resource created by a case and released at tearDown.
type Resource interface {
	Release(ctx context.Context, client platform.Client) error
	String() string
}

// VirtualMachine is a guest VM to destroy and expunge at tearDown.
type VirtualMachine struct {
	ID string
}

func (vm VirtualMachine) Release(ctx context.Context, client platform.Client) error {
	_, err := client.DestroyVirtualMachine(ctx, vm.ID, true)
	return err
}

func (vm VirtualMachine) String() string {
	return "virtual machine " + vm.ID
}

// cleanupResources releases resources in reverse registration order. Every
// resource is attempted; the failures are joined.
func cleanupResources(ctx context.Context, client platform.Client, resources []Resource) error {
	var errs []error
	for i := len(resources) - 1; i >= 0; i-- {
		if err := resources[i].Release(ctx, client); err != nil {
			errs = append(errs, fmt.Errorf("release %s: %w", resources[i], err))
		}
	}
	return errors.Join(errs...)
}
