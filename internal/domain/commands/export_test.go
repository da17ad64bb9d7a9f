package commands

// TruncatePatch exposes truncatePatch for testing.
func TruncatePatch(patch string, maxBytes int) string {
	return truncatePatch(patch, maxBytes)
}

// ClassifyHost exposes classifyHost for testing.
var ClassifyHost = classifyHost
