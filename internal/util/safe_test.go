package util

import "testing"

func TestSafeDoRecovers(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("SafeDo did not recover from panic: %v", r)
		}
	}()

	SafeDo(NewLogger(), func() { panic("boom") })
}

func TestSafeGo(t *testing.T) {
	done := make(chan struct{})
	SafeGo(nil, func() {
		defer close(done)
		panic("boom in goroutine")
	})
	<-done
}
