// Package cloudstacktest provides an in-process fake of the CloudStack API
// commands used by fizzcheck. It is meant for tests only.
package cloudstacktest

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/zeropsio/fizzcheck/internal/fizzbuzz"
	"github.com/zeropsio/fizzcheck/internal/platform"
)

// Default credentials accepted by the fake server.
const (
	APIKey    = "test-api-key"
	SecretKey = "test-secret-key"
	APIPath   = "/client/api"
)

// Server is a fake CloudStack API backed by httptest.
type Server struct {
	srv *httptest.Server

	mu             sync.Mutex
	vms            []platform.VirtualMachine
	fixedAnswer    *string
	rawAnswer      json.RawMessage
	failCommand    string
	failStatus     int
	failText       string
	randomFallback bool
	rng            *rand.Rand
	requests       []url.Values
	jobSeq         int
}

// Option configures a Server.
type Option func(*Server)

// WithVirtualMachines sets the VMs returned by listVirtualMachines.
func WithVirtualMachines(vms ...platform.VirtualMachine) Option {
	return func(s *Server) { s.vms = append([]platform.VirtualMachine(nil), vms...) }
}

// WithFixedAnswer makes fizzBuzz always answer text.
func WithFixedAnswer(text string) Option {
	return func(s *Server) { s.fixedAnswer = &text }
}

// WithRawAnswer makes fizzBuzz answer with the given JSON value.
func WithRawAnswer(raw string) Option {
	return func(s *Server) { s.rawAnswer = json.RawMessage(raw) }
}

// WithFailure makes command fail with the given HTTP status and error text.
func WithFailure(command string, status int, text string) Option {
	return func(s *Server) {
		s.failCommand = strings.ToLower(command)
		s.failStatus = status
		s.failText = text
	}
}

// WithRandomFallback answers a fizzBuzz request without a number by a random
// number, the way the reference command does, instead of FizzBuzzing the VM count.
func WithRandomFallback() Option {
	return func(s *Server) { s.randomFallback = true }
}

// WithSeed seeds the random answers.
func WithSeed(seed int64) Option {
	return func(s *Server) { s.rng = rand.New(rand.NewSource(seed)) } //nolint:gosec // test data
}

// New starts a fake server and stops it when the test ends.
func New(t testing.TB, opts ...Option) *Server {
	t.Helper()
	s := &Server{
		rng: rand.New(rand.NewSource(1)), //nolint:gosec // test data
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get(APIPath, s.handleAPI)
	s.srv = httptest.NewServer(r)
	t.Cleanup(s.srv.Close)
	return s
}

// URL returns the full API endpoint URL.
func (s *Server) URL() string {
	return s.srv.URL + APIPath
}

// Client returns a CloudStackClient configured for this server.
func (s *Server) Client(t testing.TB) *platform.CloudStackClient {
	t.Helper()
	c, err := platform.NewCloudStackClient(s.URL(), APIKey, SecretKey,
		platform.WithHTTPClient(s.srv.Client()))
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	return c
}

// Requests returns the query of every request received, in order.
func (s *Server) Requests() []url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]url.Values, len(s.requests))
	copy(out, s.requests)
	return out
}

// VirtualMachines returns the current VM list.
func (s *Server) VirtualMachines() []platform.VirtualMachine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]platform.VirtualMachine(nil), s.vms...)
}

func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	command := q.Get("command")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, q)

	if q.Get("apiKey") != APIKey || q.Get("signature") != platform.Sign(q, SecretKey) {
		writeError(w, command, http.StatusUnauthorized, "unable to verify user credentials and/or request signature")
		return
	}
	if s.failCommand != "" && s.failCommand == strings.ToLower(command) {
		writeError(w, command, s.failStatus, s.failText)
		return
	}

	switch command {
	case "listCapabilities":
		writeResponse(w, command, map[string]any{
			"capability": platform.Capabilities{CloudStackVersion: "4.11.0", APILimitInterval: 1, APILimitMax: 100},
		})
	case "fizzBuzz":
		s.fizzBuzz(w, q)
	case "listVirtualMachines":
		s.listVirtualMachines(w, q)
	case "destroyVirtualMachine":
		s.destroyVirtualMachine(w, q)
	default:
		writeError(w, command, 432, "The given command does not exist or it is not available for user")
	}
}

func (s *Server) fizzBuzz(w http.ResponseWriter, q url.Values) {
	if s.rawAnswer != nil {
		writeResponse(w, "fizzBuzz", map[string]any{"fizzbuzz": map[string]json.RawMessage{"answer": s.rawAnswer}})
		return
	}
	if s.fixedAnswer != nil {
		writeResponse(w, "fizzBuzz", map[string]any{"fizzbuzz": map[string]string{"answer": *s.fixedAnswer}})
		return
	}

	var answer string
	if raw := q.Get("number"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, "fizzBuzz", 431, "Unable to execute API command fizzbuzz due to invalid value. Invalid parameter number value="+raw)
			return
		}
		answer = s.answer(n)
	} else if s.randomFallback {
		answer = s.answer(0)
	} else {
		answer = capitalized(fizzbuzz.Answer(len(s.vms)))
	}
	writeResponse(w, "fizzBuzz", map[string]any{"fizzbuzz": map[string]string{"answer": answer}})
}

// answer mirrors the reference command: only positive numbers get a
// Fizz/Buzz word, every other input gets a random number in [1, 99].
func (s *Server) answer(n int) string {
	if n > 0 {
		switch {
		case n%15 == 0:
			return "FizzBuzz"
		case n%3 == 0:
			return "Fizz"
		case n%5 == 0:
			return "Buzz"
		}
	}
	return strconv.Itoa(s.rng.Intn(99) + 1)
}

func (s *Server) listVirtualMachines(w http.ResponseWriter, q url.Values) {
	vms := make([]platform.VirtualMachine, 0, len(s.vms))
	for _, vm := range s.vms {
		if state := q.Get("state"); state != "" && !strings.EqualFold(vm.State, state) {
			continue
		}
		vms = append(vms, vm)
	}
	resp := map[string]any{}
	if len(vms) > 0 {
		resp["count"] = len(vms)
		resp["virtualmachine"] = vms
	}
	writeResponse(w, "listVirtualMachines", resp)
}

func (s *Server) destroyVirtualMachine(w http.ResponseWriter, q url.Values) {
	id := q.Get("id")
	for i, vm := range s.vms {
		if vm.ID != id {
			continue
		}
		s.vms = append(s.vms[:i], s.vms[i+1:]...)
		s.jobSeq++
		writeResponse(w, "destroyVirtualMachine", map[string]any{"jobid": "job-" + strconv.Itoa(s.jobSeq)})
		return
	}
	writeError(w, "destroyVirtualMachine", 431, "Unable to execute API command destroyvirtualmachine due to invalid value. Invalid parameter id value="+id)
}

func capitalized(answer string) string {
	switch answer {
	case fizzbuzz.FizzBuzz:
		return "FizzBuzz"
	case fizzbuzz.Fizz:
		return "Fizz"
	case fizzbuzz.Buzz:
		return "Buzz"
	}
	return answer
}

func writeResponse(w http.ResponseWriter, command string, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{strings.ToLower(command) + "response": payload})
}

func writeError(w http.ResponseWriter, command string, status int, text string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		strings.ToLower(command) + "response": map[string]any{
			"uuidList":    []string{},
			"errorcode":   status,
			"cserrorcode": 9999,
			"errortext":   text,
		},
	})
}
