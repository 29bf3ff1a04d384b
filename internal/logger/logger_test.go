package logger

import (
	"sync"
	"testing"
)

func TestInitOnlyFirstCallTakesEffect(t *testing.T) {
	first, err := Init("dev")
	if err != nil {
		t.Fatal(err)
	}
	second, err := Init("prod")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("repeated Init must return the same logger")
	}
}

func TestConcurrentFirstUse(t *testing.T) {
	const n = 8
	loggers := make([]any, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			loggers[i] = L()
		}(i)
	}
	wg.Wait()
	for i, l := range loggers {
		if l == nil {
			t.Fatalf("L() returned nil at %d", i)
		}
		if l != loggers[0] {
			t.Errorf("L() returned distinct loggers at %d", i)
		}
	}
}

func TestBaseNeverNil(t *testing.T) {
	if Base() == nil {
		t.Fatal("Base() must never return nil")
	}
	Sync()
}
