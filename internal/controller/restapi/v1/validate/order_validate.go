package validate

const (
	// MaxCallbackBytes bounds webhook bodies; the gateway's payloads are
	// a few hundred bytes.
	MaxCallbackBytes int = 64 * 1024

	UUIDLen int = 36
)
