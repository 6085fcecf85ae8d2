package logger

// NoOp discards everything. Used in tests and as a safe default.
type NoOp struct{}

func NewNoOp() Logger { return &NoOp{} }

func (l *NoOp) Debug(args ...interface{})                   {}
func (l *NoOp) Debugf(template string, args ...interface{}) {}
func (l *NoOp) Info(args ...interface{})                    {}
func (l *NoOp) Infof(template string, args ...interface{})  {}
func (l *NoOp) Warn(args ...interface{})                    {}
func (l *NoOp) Warnf(template string, args ...interface{})  {}
func (l *NoOp) Error(args ...interface{})                   {}
func (l *NoOp) Errorf(template string, args ...interface{}) {}
func (l *NoOp) Fatal(args ...interface{})                   {}
func (l *NoOp) Fatalf(template string, args ...interface{}) {}
func (l *NoOp) With(args ...interface{}) Logger             { return l }
