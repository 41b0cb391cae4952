package app

import (
	"github.com/llehouerou/reelcheck/internal/errmsg"
	"github.com/llehouerou/reelcheck/internal/state"
)

// restoreSession reopens the last reviewed source. Playback starts from its
// first frame.
func (m *Model) restoreSession() {
	sess, err := m.StateMgr.GetSession()
	if err != nil {
		m.Log.WithError(err).Warn("session unavailable")
		return
	}
	if sess == nil || sess.SourceURL == "" {
		return
	}

	if err := m.Service.SetSource(sess.SourceURL); err != nil {
		m.report(errmsg.OpSourceLoad, err)
		return
	}
	m.Log.WithField("source", sess.SourceURL).Info("session restored")
}

// saveSession records url as the last reviewed source.
func (m *Model) saveSession(url string) {
	if url == "" {
		return
	}
	m.StateMgr.SaveSession(state.SessionState{SourceURL: url})
}

// SavePrefs persists the review toggles.
func (m *Model) SavePrefs() {
	err := m.StateMgr.SavePrefs(state.Prefs{
		Loop:    m.Service.Loop(),
		Muted:   m.Service.Muted(),
		Overlay: m.Overlay,
	})
	if err != nil {
		m.Log.WithError(err).Warn("save prefs failed")
		m.setStatus(errmsg.Format(errmsg.OpPrefsSave, err), StatusError)
	}
}
