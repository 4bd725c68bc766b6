package services

import (
	"github.com/sirupsen/logrus"

	"github.com/stocktakehq/stocktake/modules/assets/domain/aggregates/asset"
	"github.com/stocktakehq/stocktake/pkg/eventbus"
)

// AssetEventLogger writes an audit line for every asset lifecycle event.
type AssetEventLogger struct {
	log *logrus.Logger
}

func NewAssetEventLogger(log *logrus.Logger) *AssetEventLogger {
	return &AssetEventLogger{log: log}
}

func (l *AssetEventLogger) Register(bus eventbus.EventBus) {
	bus.Subscribe(l.onCreated)
	bus.Subscribe(l.onUpdated)
	bus.Subscribe(l.onDeleted)
}

func (l *AssetEventLogger) onCreated(ev *asset.CreatedEvent) {
	l.entry(ev.TenantID.String(), ev.ActorID.String(), ev.Result).Info("asset created")
}

func (l *AssetEventLogger) onUpdated(ev *asset.UpdatedEvent) {
	entry := l.entry(ev.TenantID.String(), ev.ActorID.String(), ev.Result)
	if ev.Previous.ContainerID() != ev.Result.ContainerID() {
		entry = entry.WithField("previous_container_id", ev.Previous.ContainerID().String())
	}
	entry.Info("asset updated")
}

func (l *AssetEventLogger) onDeleted(ev *asset.DeletedEvent) {
	l.entry(ev.TenantID.String(), ev.ActorID.String(), ev.Result).Info("asset deleted")
}

func (l *AssetEventLogger) entry(tenantID, actorID string, a asset.Asset) *logrus.Entry {
	return l.log.WithFields(logrus.Fields{
		"tenant_id":    tenantID,
		"actor_id":     actorID,
		"asset_id":     a.ID().String(),
		"container_id": a.ContainerID().String(),
		"assigned_to":  a.Assignment().String(),
	})
}
