package notify

import "github.com/AzizovM-doder/Rent-A-Room/internal/platform/logger"

// Notifier surfaces transient progress/result notifications for in-flight
// requests. The web UI showed these as toasts; here the default sink is the
// log, and a UI embedding the core can plug in its own implementation.
type Notifier interface {
	Loading(id, msg string)
	Success(id, msg string)
	Error(id, msg string)
}

type logNotifier struct {
	log logger.Logger
}

func NewLogNotifier(log logger.Logger) Notifier {
	return &logNotifier{log: log}
}

func (n *logNotifier) Loading(id, msg string) {
	n.log.Infof("[%s] %s", id, msg)
}

func (n *logNotifier) Success(id, msg string) {
	n.log.Infof("[%s] %s", id, msg)
}

func (n *logNotifier) Error(id, msg string) {
	n.log.Warnf("[%s] %s", id, msg)
}

type nop struct{}

func NewNop() Notifier { return nop{} }

func (nop) Loading(id, msg string) {}
func (nop) Success(id, msg string) {}
func (nop) Error(id, msg string)   {}
