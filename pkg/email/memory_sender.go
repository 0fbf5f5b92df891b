package email

import (
	"context"
	"strconv"
	"sync"
)

// MemorySender records messages instead of delivering them. Tests script
// failures through SetSendError and SetVerifyError.
type MemorySender struct {
	mu        sync.Mutex
	sent      []Message
	sendErr   error
	verifyErr error
	block     bool
	calls     int
}

func NewMemorySender() *MemorySender {
	return &MemorySender{}
}

// SetSendError makes subsequent Send calls fail with err. Nil clears it.
func (m *MemorySender) SetSendError(err error) {
	m.mu.Lock()
	m.sendErr = err
	m.mu.Unlock()
}

func (m *MemorySender) SetVerifyError(err error) {
	m.mu.Lock()
	m.verifyErr = err
	m.mu.Unlock()
}

// SetBlocking makes Send wait for context cancellation, simulating a
// stalled relay.
func (m *MemorySender) SetBlocking(block bool) {
	m.mu.Lock()
	m.block = block
	m.mu.Unlock()
}

func (m *MemorySender) Send(ctx context.Context, msg Message) (string, error) {
	m.mu.Lock()
	m.calls++
	block, err := m.block, m.sendErr
	m.mu.Unlock()

	if block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if err != nil {
		return "", err
	}
	if err := msg.Validate(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return "<memory-" + strconv.Itoa(len(m.sent)) + "@" + domainOf(msg.From) + ">", nil
}

func (m *MemorySender) Verify(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.verifyErr
}

// Sent returns a copy of delivered messages.
func (m *MemorySender) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.sent...)
}

// Calls counts Send invocations, including failed ones.
func (m *MemorySender) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
