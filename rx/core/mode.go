package core

// Mode is the delivery mode of an Observable.
//
// A Local observable delivers from a single logical owner, so the state its
// operators capture is mutated without synchronization. A Shared observable
// may invoke observers from several goroutines; operators built on it
// serialize access to their per-subscription state.
type Mode uint8

const (
	Local Mode = iota
	Shared
)

func (m Mode) String() string {
	switch m {
	case Local:
		return "local"
	case Shared:
		return "shared"
	default:
		return "unknown"
	}
}
