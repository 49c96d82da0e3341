package highscore

import (
	"errors"
	"testing"
)

type failingKV struct {
	getErr error
	setErr error
	value  string
	has    bool
	writes int
}

func (f *failingKV) Get(string) (string, bool, error) {
	return f.value, f.has, f.getErr
}

func (f *failingKV) Set(_, value string) error {
	f.writes++
	if f.setErr != nil {
		return f.setErr
	}
	f.value, f.has = value, true
	return nil
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		kv   KV
		want int
	}{
		{"absent", &failingKV{}, 0},
		{"stored", &failingKV{value: "42", has: true}, 42},
		{"padded", &failingKV{value: " 7\n", has: true}, 7},
		{"malformed", &failingKV{value: "abc", has: true}, 0},
		{"negative", &failingKV{value: "-3", has: true}, 0},
		{"read error", &failingKV{getErr: errors.New("disk gone")}, 0},
		{"nil backend", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.kv, nil)
			if got := s.Load(); got != tt.want {
				t.Errorf("Load() = %d, expected %d", got, tt.want)
			}
			if s.Best() != tt.want {
				t.Errorf("Best() = %d, expected %d", s.Best(), tt.want)
			}
		})
	}
}

func TestIsNew(t *testing.T) {
	s := New(NewMemoryKV(), nil)
	s.Load()

	if s.IsNew(0) {
		t.Error("0 must not beat an empty high score")
	}
	if !s.IsNew(1) {
		t.Error("1 should beat an empty high score")
	}
}

func TestRecordSequence(t *testing.T) {
	kv := NewMemoryKV()
	kv.Set(Key, "5")

	s := New(kv, nil)
	if got := s.Load(); got != 5 {
		t.Fatalf("Load() = %d, expected 5", got)
	}

	if !s.IsNew(7) {
		t.Fatal("7 should be a new record over 5")
	}
	if err := s.Save(7); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if v, _, _ := kv.Get(Key); v != "7" {
		t.Errorf("persisted value = %q, expected 7", v)
	}

	if s.IsNew(3) {
		t.Error("3 must not be a record after 7")
	}

	reloaded := New(kv, nil)
	if got := reloaded.Load(); got != 7 {
		t.Errorf("reloaded Load() = %d, expected 7", got)
	}
}

func TestSaveFailureKeepsMemoryValue(t *testing.T) {
	kv := &failingKV{setErr: errors.New("quota exceeded")}
	s := New(kv, nil)
	s.Load()

	if err := s.Save(9); err == nil {
		t.Error("Save() should report the write error")
	}
	if s.Best() != 9 {
		t.Errorf("Best() = %d, expected in-memory 9 after failed write", s.Best())
	}
	if s.IsNew(9) {
		t.Error("9 must not count as new after it was saved in memory")
	}
}
