package session

// Notifier receives user-visible session notices. In the web shell this is
// the snackbar surface; the console writes them to stderr. Transient
// two-factor poll failures never reach the notifier, only terminal outcomes
// and explicit action failures do.
type Notifier interface {
	Info(message string)
	Error(message string)
}

// NopNotifier discards all notices.
type NopNotifier struct{}

func (NopNotifier) Info(string)  {}
func (NopNotifier) Error(string) {}
