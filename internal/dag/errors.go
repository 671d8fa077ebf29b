package dag

import (
	"fmt"

	"github.com/roundlabs/unirun/internal/graphdesc"
)

// CycleError reports that the execution graph contains a dependency cycle
// and names one node involved in (or blocked behind) it.
type CycleError struct {
	NodeID graphdesc.ID
}

func (e *CycleError) Error() string {
	if e.NodeID == "" {
		return "cycle detected in execution graph"
	}
	return fmt.Sprintf("cycle detected in execution graph involving node %s", e.NodeID.Quote())
}
