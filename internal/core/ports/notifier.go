package ports

// Notifier delivers a plain-text message to a recipient. Delivery is
// fire-and-forget from the caller's perspective: implementations may
// queue and retry, and errors never fail the business flow that
// triggered the notification.
type Notifier interface {
	Send(toAddress, subject, body string) error
}

// PasswordHasher is a one-way, cost-parameterized hash over passwords.
// Verification compares a plaintext against a stored digest; the digest
// is never reversed.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}
