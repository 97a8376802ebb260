package sinks

import (
	"context"
	"testing"
)

type recordingLogger struct {
	infos []string
}

func (r *recordingLogger) InfoObj(msg, _ string, _ interface{}) { r.infos = append(r.infos, msg) }
func (r *recordingLogger) DebugObj(string, string, interface{}) {}
func (r *recordingLogger) WarnObj(string, string, interface{})  {}
func (r *recordingLogger) ErrorObj(string, string, interface{}) {}

func TestLogSinkLogsReceipt(t *testing.T) {
	log := &recordingLogger{}
	sink := NewLogSink("console", log)

	if err := sink.Deliver(context.Background(), Event{TargetID: "t1"}); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if len(log.infos) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(log.infos))
	}
}
