package fonts

import "testing"

func TestSourceParsesOnce(t *testing.T) {
	a, err := Source()
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	b, _ := Source()
	if a != b {
		t.Error("Source should return the same instance on every call")
	}
}

func TestFace(t *testing.T) {
	face, err := Face(LabelSize)
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	if face == nil {
		t.Fatal("Face returned nil")
	}
}
