package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	AssignTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockroom_assign_total",
		Help: "Cell assignments by result.",
	}, []string{"result"})

	RemoveTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockroom_remove_total",
		Help: "Cell removals by result.",
	}, []string{"result"})

	MoveTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockroom_move_total",
		Help: "Item moves by result.",
	}, []string{"result"})

	CellOverwriteTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockroom_cell_overwrite_total",
		Help: "Assignments that replaced a previous occupant of the same coordinate.",
	})

	MoveInconsistentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockroom_move_inconsistent_total",
		Help: "Moves that removed the item from its source but failed the destination assignment.",
	})
)

// Handler exposes the default registry on a gin route.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
