package ai

import "testing"

func TestNewDescriberRequiresKey(t *testing.T) {
	if _, err := NewDescriber(""); err == nil {
		t.Error("NewDescriber() accepted an empty API key")
	}

	d, err := NewDescriber("sk-test")
	if err != nil {
		t.Fatalf("NewDescriber() error = %v", err)
	}
	if d.model == "" || d.maxTokens <= 0 {
		t.Errorf("Describer defaults not set: %+v", d)
	}
}
