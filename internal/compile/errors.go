package compile

import (
	"fmt"

	"github.com/roundlabs/unirun/internal/graphdesc"
)

// BindingError reports a consumer whose link resolves to an output slot that
// was never bound. Given a correct topological order this signals a violated
// invariant (for example the producer was skipped), so it is fatal.
type BindingError struct {
	ConsumerID graphdesc.ID
	ProducerID graphdesc.ID
	Output     string
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("node %s consumes output %q of node %s, but that output was never bound",
		e.ConsumerID.Quote(), e.Output, e.ProducerID.Quote())
}
