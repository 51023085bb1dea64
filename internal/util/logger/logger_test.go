package logger

import "testing"

func TestInitRejectsUnknownLevel(t *testing.T) {
	if err := Init("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestInitSetsLevel(t *testing.T) {
	if err := Init("warn"); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if Log.Core().Enabled(-1) {
		t.Fatal("debug should be disabled at warn level")
	}
	if !Log.Core().Enabled(1) {
		t.Fatal("warn should be enabled at warn level")
	}
}
