package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"testing"
	"time"

	"github.com/louisbranch/balitours/internal/tours/contact"
	"github.com/segmentio/kafka-go"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

type fakeReader struct {
	msgs []kafka.Message
}

func (r *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if err := ctx.Err(); err != nil {
		return kafka.Message{}, err
	}
	if len(r.msgs) == 0 {
		return kafka.Message{}, io.EOF
	}
	msg := r.msgs[0]
	r.msgs = r.msgs[1:]
	return msg, nil
}

func (r *fakeReader) Close() error { return nil }

func sampleIntent() contact.Intent {
	return contact.Intent{
		Subject:    "Uluwatu Sunset Tour",
		Message:    contact.BookingMessage("Uluwatu Sunset Tour"),
		URI:        "https://wa.me/1?text=x",
		Source:     "web",
		OccurredAt: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestPublisherRecordWritesJSON(t *testing.T) {
	t.Parallel()

	writer := &fakeWriter{}
	publisher := NewPublisher(writer)
	intent := sampleIntent()
	if err := publisher.Record(context.Background(), intent); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if len(writer.msgs) != 1 {
		t.Fatalf("messages = %d, want 1", len(writer.msgs))
	}
	msg := writer.msgs[0]
	if string(msg.Key) != intent.Subject {
		t.Fatalf("key = %q", msg.Key)
	}
	var decoded contact.Intent
	if err := json.Unmarshal(msg.Value, &decoded); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if decoded.Subject != intent.Subject || decoded.URI != intent.URI || !decoded.OccurredAt.Equal(intent.OccurredAt) {
		t.Fatalf("decoded = %+v, want %+v", decoded, intent)
	}
	if len(msg.Headers) != 1 || string(msg.Headers[0].Value) != "web" {
		t.Fatalf("headers = %+v", msg.Headers)
	}
	if err := publisher.Close(); err != nil || !writer.closed {
		t.Fatalf("Close() error = %v closed=%v", err, writer.closed)
	}
}

func TestPublisherRecordWrapsWriteError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	err := NewPublisher(&fakeWriter{err: boom}).Record(context.Background(), sampleIntent())
	if !errors.Is(err, boom) {
		t.Fatalf("Record() error = %v, want boom", err)
	}
	var nilPublisher *Publisher
	if err := nilPublisher.Record(context.Background(), sampleIntent()); err == nil {
		t.Fatal("expected error for nil publisher")
	}
}

func TestPublisherSatisfiesContactSink(t *testing.T) {
	t.Parallel()

	var _ contact.Sink = (*Publisher)(nil)
}

func TestTailSkipsGarbageAndStopsAtEOF(t *testing.T) {
	t.Parallel()

	payload, _ := json.Marshal(sampleIntent())
	reader := &fakeReader{msgs: []kafka.Message{
		{Value: []byte("not json")},
		{Value: payload},
	}}
	var got []contact.Intent
	err := Tail(context.Background(), reader, func(intent contact.Intent) error {
		got = append(got, intent)
		return nil
	})
	if err != nil {
		t.Fatalf("Tail() error = %v", err)
	}
	if len(got) != 1 || got[0].Subject != "Uluwatu Sunset Tour" {
		t.Fatalf("Tail() intents = %+v", got)
	}
}

func TestTailPropagatesCallbackError(t *testing.T) {
	t.Parallel()

	payload, _ := json.Marshal(sampleIntent())
	stop := errors.New("stop")
	reader := &fakeReader{msgs: []kafka.Message{{Value: payload}, {Value: payload}}}
	err := Tail(context.Background(), reader, func(contact.Intent) error { return stop })
	if !errors.Is(err, stop) {
		t.Fatalf("Tail() error = %v, want stop", err)
	}
}

func TestSplitBrokers(t *testing.T) {
	t.Parallel()

	got := SplitBrokers(" a:9092, ,b:9092 ")
	if !reflect.DeepEqual(got, []string{"a:9092", "b:9092"}) {
		t.Fatalf("SplitBrokers() = %v", got)
	}
	if _, err := Dial("", ""); err == nil {
		t.Fatal("expected error for empty brokers")
	}
}
