package config

import "sync"

// Subscribers are keyed by the setting group they depend on, so a reload
// only fans out to the components that actually care.

var (
	subMu       sync.Mutex
	subscribers = map[string][]func(Settings){}
)

// Subscribe registers fn to run whenever Publish is called for the given
// settings key (e.g. "replacements", "scope", "alias"). The empty key
// subscribes to every change.
func Subscribe(key string, fn func(Settings)) {
	subMu.Lock()
	defer subMu.Unlock()
	subscribers[key] = append(subscribers[key], fn)
}

// Publish notifies subscribers of the given keys, plus catch-all
// subscribers, with the new settings snapshot.
func Publish(s Settings, keys ...string) {
	subMu.Lock()
	var fns []func(Settings)
	for _, key := range keys {
		fns = append(fns, subscribers[key]...)
	}
	fns = append(fns, subscribers[""]...)
	subMu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}
