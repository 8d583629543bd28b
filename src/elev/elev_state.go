package elev

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"

	"elevsim/src/types"
	"elevsim/src/utils"
)

// Snapshot returns a deep copy of the car, safe to hand out of the owning loop.
func (e *ElevState) Snapshot() ElevState {
	var snap ElevState
	if err := deepcopy.Copy(&snap, e); err != nil {
		panic(err)
	}
	return snap
}

// OrderedStops lists pending stops in the order the car will visit them on
// its current leg: descending when going down, ascending otherwise.
func (e *ElevState) OrderedStops() []int {
	return e.Stops.Ordered(e.Dir == types.MD_Down)
}

// FormatStatus is the per-tick status line for the car.
func (e *ElevState) FormatStatus() string {
	return fmt.Sprintf("Car %d is on floor: %d, Stops [%s]", e.ID, e.Floor, utils.FormatFloors(e.OrderedStops()))
}
