package syncmem

import "fmt"

// A ProtocolError reports a response that failed or could not be matched to
// an outstanding transaction. Either case means the committed view may lag
// or diverge from the cache, so it is always surfaced to the caller.
type ProtocolError struct {
	ID        string
	Address   uint64
	Reason    string
	Unmatched bool
}

func (e *ProtocolError) Error() string {
	if e.Unmatched {
		return fmt.Sprintf(
			"response to %s does not match any outstanding transaction", e.ID)
	}

	return fmt.Sprintf("transaction %s at address 0x%02x returned an error: %s",
		e.ID, e.Address, e.Reason)
}
