package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/lazychanges/internal/app/services"
)

func (m *Model) startAutoRefresh() tea.Cmd {
	if m.autoRefreshStarted {
		return nil
	}
	interval := m.autoRefreshInterval()
	if interval <= 0 {
		return nil
	}
	m.autoRefreshStarted = true
	return m.autoRefreshTick()
}

func (m *Model) autoRefreshInterval() time.Duration {
	if m.config == nil || !m.config.AutoRefresh {
		return 0
	}
	if m.config.RefreshIntervalSeconds <= 0 {
		return 0
	}
	interval := time.Duration(m.config.RefreshIntervalSeconds) * time.Second
	if interval < time.Second {
		m.debugf("auto refresh interval too small (%s), clamping to 1s", interval)
		return time.Second
	}
	return interval
}

func (m *Model) autoRefreshTick() tea.Cmd {
	interval := m.autoRefreshInterval()
	if interval <= 0 {
		return nil
	}
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return autoRefreshTickMsg{}
	})
}

func (m *Model) startWorkTreeWatcher() tea.Cmd {
	if m.watch != nil && m.watch.Started {
		return nil
	}
	if m.watch == nil {
		m.watch = services.NewWorkTreeWatchService(m.git, m.debugf)
	}
	started, err := m.watch.Start(m.ctx, m.config)
	if err != nil {
		return func() tea.Msg {
			return errMsg{err: err}
		}
	}
	if !started {
		return nil
	}
	m.autoRefreshStarted = true
	return m.waitForWatchEvent()
}

func (m *Model) stopWorkTreeWatcher() {
	if m.watch == nil || !m.watch.Started {
		return
	}
	m.watch.Stop()
}

func (m *Model) waitForWatchEvent() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	events := m.watch.NextEvent()
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		_, ok := <-events
		if !ok {
			return nil
		}
		return workdirChangedMsg{}
	}
}

func (m *Model) shouldRefreshWatchEvent(now time.Time) bool {
	if m.watch == nil {
		return false
	}
	return m.watch.ShouldRefresh(now)
}
