package model

import "testing"

func TestStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status   Status
		expected bool
	}{
		{StatusQueued, false},
		{StatusStarting, false},
		{StatusDownloading, false},
		{StatusFinished, true},
		{StatusError, true},
		{StatusNotFound, false},
	}

	for _, test := range tests {
		result := test.status.IsTerminal()
		if result != test.expected {
			t.Errorf("Status(%s).IsTerminal() = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestStatus_IsActive(t *testing.T) {
	tests := []struct {
		status   Status
		expected bool
	}{
		{StatusQueued, true},
		{StatusStarting, true},
		{StatusDownloading, true},
		{StatusFinished, false},
		{StatusError, false},
		{StatusNotFound, false},
	}

	for _, test := range tests {
		result := test.status.IsActive()
		if result != test.expected {
			t.Errorf("Status(%s).IsActive() = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestStatus_String(t *testing.T) {
	status := StatusDownloading
	expected := "downloading"
	result := status.String()

	if result != expected {
		t.Errorf("Status.String() = %s, expected %s", result, expected)
	}
}
