package detector

import "testing"

func TestSimulatorDeterministicPerSubject(t *testing.T) {
	sim := Simulator{}
	a := sim.Detect("subject-42")
	b := sim.Detect("subject-42")

	if len(a) != len(b) {
		t.Fatalf("len mismatch: %d vs %d", len(a), len(b))
	}
	for label, conf := range a {
		if b[label] != conf {
			t.Fatalf("label %s: %v vs %v", label, conf, b[label])
		}
	}
}

func TestSimulatorVariesAcrossSubjects(t *testing.T) {
	sim := Simulator{}
	a := sim.Detect("subject-a")
	b := sim.Detect("subject-b")

	same := len(a) == len(b)
	if same {
		for label, conf := range a {
			if b[label] != conf {
				same = false
				break
			}
		}
	}
	if same {
		t.Fatalf("different subjects produced identical vectors")
	}
}

func TestSimulatorConfidencesInDetectorRange(t *testing.T) {
	sim := Simulator{}
	for _, subject := range []string{"x", "y", "z", "subject-42"} {
		for label, conf := range sim.Detect(subject) {
			if conf < 0 || conf > 100 {
				t.Fatalf("subject %s label %s: confidence %v out of [0,100]", subject, label, conf)
			}
		}
	}
}

func TestClientDisabledWithoutBaseURL(t *testing.T) {
	c := NewClient("", 0)
	if c.Enabled() {
		t.Fatalf("client without a base URL must report disabled")
	}
}
