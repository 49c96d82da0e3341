//go:build js

package highscore

import (
	"errors"
	"syscall/js"
)

// LocalStorage is a KV backed by the browser's window.localStorage.
type LocalStorage struct {
	storage js.Value
}

// NewLocalStorage returns a KV over window.localStorage, or an error when the
// page has no storage (private mode, sandboxed iframe).
func NewLocalStorage() (*LocalStorage, error) {
	storage := js.Global().Get("localStorage")
	if storage.IsUndefined() || storage.IsNull() {
		return nil, errors.New("highscore: localStorage is not available")
	}
	return &LocalStorage{storage: storage}, nil
}

// Get returns the value for key.
func (l *LocalStorage) Get(key string) (value string, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New("highscore: localStorage read failed")
		}
	}()
	v := l.storage.Call("getItem", key)
	if v.IsNull() || v.IsUndefined() {
		return "", false, nil
	}
	return v.String(), true, nil
}

// Set stores value under key. Quota errors surface as a returned error.
func (l *LocalStorage) Set(key, value string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New("highscore: localStorage write failed")
		}
	}()
	l.storage.Call("setItem", key, value)
	return nil
}
