package platform

import (
	"context"
	"fmt"
	"strconv"
)

func (m *Mock) ListCapabilities(_ context.Context) (*Capabilities, error) {
	if err := m.getError("ListCapabilities"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.capabilities == nil {
		return nil, fmt.Errorf("mock: no capabilities configured")
	}
	return m.capabilities, nil
}

func (m *Mock) FizzBuzz(_ context.Context, req FizzBuzzRequest) (*FizzBuzzResponse, error) {
	m.mu.Lock()
	m.fizzCalls = append(m.fizzCalls, req)
	m.mu.Unlock()

	if err := m.getError("FizzBuzz"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if resp, ok := m.answers[numberKey(req.Number)]; ok {
		return resp, nil
	}
	if m.answerFn != nil {
		return m.answerFn(req), nil
	}
	return nil, fmt.Errorf("mock: no answer configured for number %s", numberKey(req.Number))
}

func (m *Mock) ListVirtualMachines(_ context.Context, _ ListVirtualMachinesParams) ([]VirtualMachine, error) {
	if err := m.getError("ListVirtualMachines"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.vms, nil
}

func (m *Mock) DestroyVirtualMachine(_ context.Context, vmID string, _ bool) (*AsyncJob, error) {
	if err := m.getError("DestroyVirtualMachine"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.destroyed = append(m.destroyed, vmID)
	return &AsyncJob{JobID: "job-destroy-" + vmID}, nil
}

// CountInstances counts configured VMs, like CloudStackClient does.
func (m *Mock) CountInstances(ctx context.Context) (int, error) {
	vms, err := m.ListVirtualMachines(ctx, ListVirtualMachinesParams{})
	if err != nil {
		return 0, err
	}
	return len(vms), nil
}

func numberKey(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}
