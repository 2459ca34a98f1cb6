package server

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Maintenance interface {
	ID() string
	Clean(ctx context.Context) error
}

type GroupMaintenance struct {
	logger          *zap.Logger
	maintenanceList []Maintenance
}

func NewGroupMaintenance(logger *zap.Logger, m ...Maintenance) GroupMaintenance {
	return GroupMaintenance{
		logger:          logger,
		maintenanceList: m,
	}
}

// Start runs a cleaning round every interval until ctx is done.
func (o *GroupMaintenance) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		o.Run(ctx)
	}
}

func (o *GroupMaintenance) Run(ctx context.Context) {
	var wg sync.WaitGroup

	wg.Add(len(o.maintenanceList))

	for i := 0; i < len(o.maintenanceList); i++ {
		m := o.maintenanceList[i]

		go func() {
			defer wg.Done()

			o.clean(ctx, m)
		}()
	}

	wg.Wait()
}

func (o *GroupMaintenance) clean(ctx context.Context, m Maintenance) {
	o.logger.Debug("clean: start",
		zap.String("id", m.ID()),
	)

	start := time.Now()

	err := m.Clean(ctx)
	if err != nil {
		o.logger.Error("failed to clean",
			zap.String("id", m.ID()),
			zap.Error(err),
		)

		return
	}

	o.logger.Debug("clean: finish",
		zap.Duration("duration", time.Since(start)),
		zap.String("id", m.ID()),
	)
}
