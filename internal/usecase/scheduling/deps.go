package scheduling

import (
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/audit"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/cache"
	domain "github.com/OsamaDeghidy/A-List-Home-Pros/internal/domain/scheduling"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/notify"
)

// Deps is the shared wiring for the scheduling use cases. Audit, Notify and
// Cache may be nil (tests, seed command); every use case treats them as
// optional side channels.
type Deps struct {
	Repo   domain.Repository
	Audit  *audit.Dispatcher
	Notify *notify.Dispatcher
	Cache  *cache.AvailabilityCache
}

func (d Deps) dispatchAudit(ev audit.Event) {
	if d.Audit != nil {
		d.Audit.Dispatch(ev)
	}
}

func (d Deps) dispatchNotify(ev notify.Event) {
	if d.Notify != nil {
		d.Notify.Dispatch(ev)
	}
}
