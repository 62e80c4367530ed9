package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"intellialert/internal/domain/dto"

	"github.com/stretchr/testify/require"
)

type fakeCallProvider struct {
	mutex sync.Mutex
	calls []dto.OutboundCall
	sid   string
	err   error
}

func (f *fakeCallProvider) CreateCall(_ context.Context, call dto.OutboundCall) (string, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.calls = append(f.calls, call)
	return f.sid, f.err
}

type fakeCompletion struct {
	mutex   sync.Mutex
	queries []string
	reply   string
}

func (f *fakeCompletion) Complete(_ context.Context, query string) string {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.queries = append(f.queries, query)
	return f.reply
}

func (f *fakeCompletion) received() []string {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return append([]string(nil), f.queries...)
}

type recordingBroadcaster struct {
	messages chan dto.BroadcastMessage
}

func newRecordingBroadcaster() *recordingBroadcaster {
	return &recordingBroadcaster{messages: make(chan dto.BroadcastMessage, 8)}
}

func (b *recordingBroadcaster) Broadcast(message dto.BroadcastMessage) {
	b.messages <- message
}

func (b *recordingBroadcaster) next(t *testing.T) dto.BroadcastMessage {
	t.Helper()
	select {
	case msg := <-b.messages:
		return msg
	case <-time.After(2 * time.Second):
		require.FailNow(t, "no broadcast received")
		return nil
	}
}

func (b *recordingBroadcaster) none(t *testing.T) {
	t.Helper()
	select {
	case msg := <-b.messages:
		require.FailNowf(t, "unexpected broadcast", "%#v", msg)
	case <-time.After(100 * time.Millisecond):
	}
}
