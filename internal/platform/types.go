package platform

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// DefaultAPITimeout is the global timeout for each API call.
const DefaultAPITimeout = 30 * time.Second

// FizzBuzzRequest is the input of the fizzBuzz command.
type FizzBuzzRequest struct {
	// Number is omitted from the request when nil.
	Number *int
}

// FizzBuzzResponse is the output of the fizzBuzz command.
// Answer is kept raw so callers can tell a malformed answer from a wrong one.
type FizzBuzzResponse struct {
	Answer json.RawMessage `json:"answer"`
}

// AnswerText coerces the answer to text. JSON strings are returned as is and
// JSON numbers in their literal form; anything else is an error.
func (r *FizzBuzzResponse) AnswerText() (string, error) {
	if r == nil {
		return "", NewPlatformError(ErrInvalidResponse, "fizzBuzz response is empty", "")
	}
	raw := bytes.TrimSpace(r.Answer)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", NewPlatformError(ErrInvalidResponse, "fizzBuzz response has no answer", "")
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", NewPlatformError(ErrInvalidResponse, "fizzBuzz answer is not a valid string: "+err.Error(), "")
		}
		return s, nil
	case '{', '[', 't', 'f':
		return "", NewPlatformError(ErrInvalidResponse, "fizzBuzz answer is not text: "+string(raw), "")
	}

	var num json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&num); err != nil {
		return "", NewPlatformError(ErrInvalidResponse, "fizzBuzz answer is not text: "+string(raw), "")
	}
	return num.String(), nil
}

// TextAnswer builds a response whose answer is the JSON string s.
func TextAnswer(s string) *FizzBuzzResponse {
	return &FizzBuzzResponse{Answer: json.RawMessage(strconv.Quote(s))}
}

// VirtualMachine is a guest VM as returned by listVirtualMachines.
type VirtualMachine struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayname,omitempty"`
	State       string `json:"state"` // Running, Stopped, Starting, Destroyed, ...
	ZoneName    string `json:"zonename,omitempty"`
	Account     string `json:"account,omitempty"`
	Created     string `json:"created,omitempty"`
}

// ListVirtualMachinesParams filters listVirtualMachines. Zero values are omitted.
type ListVirtualMachinesParams struct {
	State    string
	Keyword  string
	ListAll  bool
	Page     int
	PageSize int
}

// Capabilities is the output of listCapabilities.
type Capabilities struct {
	CloudStackVersion string `json:"cloudstackversion"`
	APILimitInterval  int    `json:"apilimitinterval,omitempty"`
	APILimitMax       int    `json:"apilimitmax,omitempty"`
}

// AsyncJob references an asynchronous API job.
type AsyncJob struct {
	JobID string `json:"jobid"`
}

// Project represents a Zerops project.
type Project struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// ServiceStack represents a Zerops service, reduced to what instance counting needs.
type ServiceStack struct {
	ID        string `json:"id"`
	Name      string `json:"name"` // hostname
	ProjectID string `json:"projectId"`
	Status    string `json:"status"`
}

// IsActive returns true if the service is running workload.
func (s *ServiceStack) IsActive() bool {
	return s.Status == "RUNNING" || s.Status == "ACTIVE"
}
