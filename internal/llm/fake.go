package llm

import (
	"context"
	"sync"
)

// FakeResponse is what Fake returns for one model.
type FakeResponse struct {
	Text string
	Err  error
}

// Fake is an in-memory Client for tests. Models missing from Responses fail
// as unavailable.
type Fake struct {
	ProviderName string
	Responses    map[string]FakeResponse

	mu    sync.Mutex
	calls []Request
}

func (f *Fake) Name() string {
	if f.ProviderName == "" {
		return "fake"
	}
	return f.ProviderName
}

func (f *Fake) Generate(ctx context.Context, req Request) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", NewError(f.Name(), req.Model, 0, err)
	}

	resp, ok := f.Responses[req.Model]
	if !ok {
		return "", &Error{Provider: f.Name(), Model: req.Model, Kind: KindModelUnavailable, Err: errModelMissing}
	}
	if resp.Err != nil {
		return "", resp.Err
	}
	if resp.Text == "" {
		return "", NewError(f.Name(), req.Model, 0, ErrEmptyResponse)
	}
	return resp.Text, nil
}

// Calls returns the requests seen so far, in order.
func (f *Fake) Calls() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.calls...)
}

// Models returns the model ids requested so far, in order.
func (f *Fake) Models() []string {
	var models []string
	for _, c := range f.Calls() {
		models = append(models, c.Model)
	}
	return models
}

type fakeError string

func (e fakeError) Error() string { return string(e) }

const errModelMissing = fakeError("model not configured on fake")
