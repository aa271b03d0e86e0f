package systems

import (
	"time"

	"github.com/decker502/rising/internal/particle"
	"github.com/decker502/rising/pkg/clock"
)

// AmbientSpawner 定时补充花瓣
// 与帧循环解耦，按固定间隔批量生成，作为逐帧概率补充之外的第二个来源
type AmbientSpawner struct {
	timers   clock.Timers
	store    *particle.Store
	interval time.Duration
	timer    *clock.Timer
	spawned  int
}

// NewAmbientSpawner 创建花瓣补充器
func NewAmbientSpawner(timers clock.Timers, store *particle.Store, interval time.Duration) *AmbientSpawner {
	return &AmbientSpawner{
		timers:   timers,
		store:    store,
		interval: interval,
	}
}

// Start 启动定时器，重复调用不会产生多个定时器
func (as *AmbientSpawner) Start() {
	if as.timer.Active() {
		return
	}
	as.timer = as.timers.Every(as.interval, func() {
		as.spawned += as.store.SpawnPetalBatch()
	})
}

// Stop 停止定时器
func (as *AmbientSpawner) Stop() {
	as.timer.Stop()
}

// IsRunning 返回定时器是否在运行
func (as *AmbientSpawner) IsRunning() bool {
	return as.timer.Active()
}

// Spawned 返回累计补充的花瓣数
func (as *AmbientSpawner) Spawned() int {
	return as.spawned
}
