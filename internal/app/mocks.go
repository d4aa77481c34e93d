package app

// MockEmailProvider swallows all mail. Used in development and tests where no
// SMTP server is configured.
type MockEmailProvider struct{}

func (m *MockEmailProvider) Send(to, subject, htmlBody string) error { return nil }
