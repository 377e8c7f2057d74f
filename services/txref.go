package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewTxRef builds the correlation token shared by the gateway request, the
// order record and the later callback. Timestamp keeps references sortable,
// the uuid fragment makes same-millisecond attempts distinct. A tx_ref is
// never reused across retries.
func NewTxRef() string {
	return fmt.Sprintf("CAF-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
