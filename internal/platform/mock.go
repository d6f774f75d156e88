package platform

import (
	"sync"
)

// Compile-time interface checks.
var (
	_ Client          = (*Mock)(nil)
	_ InstanceCounter = (*Mock)(nil)
)

// Mock is a configurable mock for the platform Client interface.
type Mock struct {
	mu sync.RWMutex

	capabilities *Capabilities
	answers      map[string]*FizzBuzzResponse // number key ("" = omitted) -> response
	answerFn     func(req FizzBuzzRequest) *FizzBuzzResponse
	vms          []VirtualMachine
	destroyed    []string
	fizzCalls    []FizzBuzzRequest

	// Error overrides: method name -> error
	errors map[string]error
}

// NewMock creates a new configurable mock.
func NewMock() *Mock {
	return &Mock{
		answers: make(map[string]*FizzBuzzResponse),
		errors:  make(map[string]error),
	}
}

// WithCapabilities sets the capabilities returned by ListCapabilities.
func (m *Mock) WithCapabilities(c *Capabilities) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.capabilities = c
	return m
}

// WithAnswer sets the text answer returned for number. A nil number stands for
// a request without the number parameter.
func (m *Mock) WithAnswer(number *int, answer string) *Mock {
	return m.WithResponse(number, TextAnswer(answer))
}

// WithResponse sets the raw response returned for number.
func (m *Mock) WithResponse(number *int, resp *FizzBuzzResponse) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answers[numberKey(number)] = resp
	return m
}

// WithAnswerFunc computes answers for requests without a configured answer.
func (m *Mock) WithAnswerFunc(fn func(req FizzBuzzRequest) *FizzBuzzResponse) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answerFn = fn
	return m
}

// WithVirtualMachines sets the VMs returned by ListVirtualMachines.
func (m *Mock) WithVirtualMachines(vms []VirtualMachine) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vms = vms
	return m
}

// WithError sets an error for a specific method.
func (m *Mock) WithError(method string, err error) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[method] = err
	return m
}

// FizzBuzzCalls returns the requests received by FizzBuzz, in order.
func (m *Mock) FizzBuzzCalls() []FizzBuzzRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]FizzBuzzRequest, len(m.fizzCalls))
	copy(out, m.fizzCalls)
	return out
}

// Destroyed returns the IDs passed to DestroyVirtualMachine, in order.
func (m *Mock) Destroyed() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.destroyed))
	copy(out, m.destroyed)
	return out
}

func (m *Mock) getError(method string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.errors[method]
}
