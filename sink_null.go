package activity

// NullSink is a no-op implementation of Sink.
type NullSink struct{}

func NewNullSink() *NullSink {
	return &NullSink{}
}

func (s *NullSink) Name() string {
	return "null"
}

func (s *NullSink) Write(level Level, record Record) error {
	return nil
}

func (s *NullSink) Close() error {
	return nil
}
