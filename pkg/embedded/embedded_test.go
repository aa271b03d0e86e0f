package embedded

import (
	"errors"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/config.yaml":    {Data: []byte("frame: {}\n")},
		"data/blessings.yaml": {Data: []byte("blessings: [a]\n")},
	}
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	Init(nil)
	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(testFS())
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}
	Init(nil)
}

// TestReadFileNotInitialized 测试未初始化时读取
func TestReadFileNotInitialized(t *testing.T) {
	Init(nil)

	_, err := ReadFile("data/config.yaml")
	if !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
	if Exists("data/config.yaml") {
		t.Error("Exists() should be false before Init()")
	}
}

func TestReadFile(t *testing.T) {
	Init(testFS())
	t.Cleanup(func() { Init(nil) })

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"plain", "data/config.yaml", "frame: {}\n", false},
		{"dot prefix", "./data/blessings.yaml", "blessings: [a]\n", false},
		{"missing", "data/missing.yaml", "", true},
		{"bad prefix", "assets/font.ttf", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadFile(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("ReadFile(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}

	if !Exists("data/config.yaml") || Exists("data/nope.yaml") {
		t.Error("Exists() mismatch")
	}
}
